package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwozniak/trip-booking-api/internal/domain"
	"github.com/jwozniak/trip-booking-api/internal/repo"
)

// RegistrationService implements the trip registration rules.
// It is stateless: every piece of state lives in the store, so one instance
// serves all requests concurrently.
type RegistrationService struct {
	trips         repo.TripRepo
	clients       repo.ClientRepo
	registrations repo.RegistrationRepo

	// now supplies the clock reading used for the start-date comparison and
	// the registered_at timestamp. It is read exactly once per Register call
	// so both uses agree. Tests override it to pin time.
	now func() time.Time
}

// NewRegistrationService constructs a RegistrationService backed by the
// provided repos, using the wall clock.
func NewRegistrationService(trips repo.TripRepo, clients repo.ClientRepo, registrations repo.RegistrationRepo) *RegistrationService {
	return &RegistrationService{
		trips:         trips,
		clients:       clients,
		registrations: registrations,
		now:           time.Now,
	}
}

// WithClock returns a copy of the service using the given clock.
// Intended for tests.
func (s *RegistrationService) WithClock(now func() time.Time) *RegistrationService {
	c := *s
	c.now = now
	return &c
}

// Register attaches a client to a trip.
//
// The trip must exist (domain.ErrNotFound otherwise) and must not have
// started — a trip whose start date is at or before the clock reading is
// rejected with domain.ErrConflict.
//
// The client identity is resolved by exact pesel match: an existing client
// is reused, a new one is created from the input fields. Name, email, and
// telephone play no part in deduplication. A client already registered for
// the trip is rejected with domain.ErrConflict.
//
// The new client (if any) and the registration row are persisted as a
// single atomic unit; no partial state survives a store failure.
func (s *RegistrationService) Register(ctx context.Context, tripID uuid.UUID, in domain.RegistrationInput) error {
	now := s.now()

	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return fmt.Errorf("service.RegistrationService.Register: %w", err)
	}
	if !trip.DateFrom.After(now) {
		return fmt.Errorf("service.RegistrationService.Register: %w: trip has already started", domain.ErrConflict)
	}

	client, err := s.clients.GetByPesel(ctx, in.Pesel)
	switch {
	case err == nil:
		registered, err := s.registrations.Exists(ctx, client.ID, tripID)
		if err != nil {
			return fmt.Errorf("service.RegistrationService.Register: %w", err)
		}
		if registered {
			return fmt.Errorf("service.RegistrationService.Register: %w: client already registered for this trip", domain.ErrConflict)
		}

		err = s.registrations.Create(ctx, domain.ClientTrip{
			ClientID:     client.ID,
			TripID:       tripID,
			RegisteredAt: now,
			PaymentDate:  in.PaymentDate,
		})
		if err != nil {
			return fmt.Errorf("service.RegistrationService.Register: %w", err)
		}
		return nil

	case errors.Is(err, domain.ErrNotFound):
		_, err := s.registrations.CreateWithClient(ctx,
			domain.Client{
				FirstName: in.FirstName,
				LastName:  in.LastName,
				Email:     in.Email,
				Telephone: in.Telephone,
				Pesel:     in.Pesel,
			},
			domain.ClientTrip{
				TripID:       tripID,
				RegisteredAt: now,
				PaymentDate:  in.PaymentDate,
			})
		if err != nil {
			return fmt.Errorf("service.RegistrationService.Register: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("service.RegistrationService.Register: %w", err)
	}
}
