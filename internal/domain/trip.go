// Package domain contains the core data types for the trip booking API.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip represents a bookable travel offering.
// Trips are read-only through this API — there is no create or edit
// operation; rows are seeded directly into the store.
type Trip struct {
	ID          uuid.UUID
	Name        string
	Description string
	DateFrom    time.Time
	DateTo      time.Time
	MaxPeople   int
	CreatedAt   time.Time
}

// TripSummary is the listing projection of a trip: the trip fields plus the
// names of its associated countries and of every registered client.
type TripSummary struct {
	Name        string
	Description string
	DateFrom    time.Time
	DateTo      time.Time
	MaxPeople   int
	Countries   []string
	Clients     []TripClient
}

// TripClient is the (first name, last name) pair of one registered client,
// as shown in the trip listing.
type TripClient struct {
	FirstName string
	LastName  string
}
