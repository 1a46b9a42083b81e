// Package handler implements the HTTP handlers for the trip booking API.
// All handlers are methods on Server; they are split into resource-specific
// files (trip.go, client.go, registration.go, ...) but share the same struct
// so they can access its dependencies.
package handler

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jwozniak/trip-booking-api/internal/domain"
)

// TripServicer defines the listing operation the trip handler depends on.
// Defining the interfaces here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	List(ctx context.Context, p domain.PaginationParams) ([]domain.TripSummary, int64, error)
}

// ClientServicer defines the lifecycle operation the client handler depends on.
type ClientServicer interface {
	Delete(ctx context.Context, id uuid.UUID) error
}

// RegistrationServicer defines the registration operation the handler depends on.
type RegistrationServicer interface {
	Register(ctx context.Context, tripID uuid.UUID, in domain.RegistrationInput) error
}

// RosterServicer defines the roster export operation the handler depends on.
type RosterServicer interface {
	Export(ctx context.Context, tripID uuid.UUID) ([]domain.RosterRow, error)
}

// Server holds the services behind all API endpoints.
// Handler methods live in resource-specific files but all operate on this struct.
type Server struct {
	trips         TripServicer
	clients       ClientServicer
	registrations RegistrationServicer
	roster        RosterServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, clients ClientServicer, registrations RegistrationServicer, roster RosterServicer) *Server {
	return &Server{
		trips:         trips,
		clients:       clients,
		registrations: registrations,
		roster:        roster,
	}
}

// Routes returns a chi router with every API endpoint mounted.
// The DELETE route lives under /trips-clients because the client resource is
// only ever addressed for deletion — it has no standalone CRUD surface.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Get("/trips", s.ListTrips)
	r.Post("/trips/{tripId}/clients", s.RegisterClient)
	r.Get("/trips/{tripId}/clients/export", s.ExportRoster)
	r.Delete("/trips-clients/{clientId}", s.DeleteClient)
	return r
}
