package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned by service functions when an operation violates a
// business rule: registering for a trip that has already started, registering
// a client twice for the same trip, or deleting a client that still has
// registrations. Handlers should map this to HTTP 400.
//
// The repo layer also returns ErrConflict when a store constraint fires
// (duplicate (client_id, trip_id) pair, duplicate pesel, or a foreign key
// blocking a delete), so races that slip past the service-level checks
// surface the same way as the checks themselves.
var ErrConflict = errors.New("conflict")
