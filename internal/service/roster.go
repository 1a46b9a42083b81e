package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwozniak/trip-booking-api/internal/domain"
	"github.com/jwozniak/trip-booking-api/internal/repo"
)

// RosterService assembles a flat export of one trip's registered clients.
type RosterService struct {
	trips         repo.TripRepo
	registrations repo.RegistrationRepo
}

// NewRosterService constructs a RosterService backed by the provided repos.
func NewRosterService(trips repo.TripRepo, registrations repo.RegistrationRepo) *RosterService {
	return &RosterService{trips: trips, registrations: registrations}
}

// Export returns one RosterRow per registration on the trip, ordered by
// registration time. Returns domain.ErrNotFound if the trip does not exist.
// Always returns a non-nil slice so callers can safely range over it.
func (s *RosterService) Export(ctx context.Context, tripID uuid.UUID) ([]domain.RosterRow, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.RosterService.Export: %w", err)
	}

	regs, err := s.registrations.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.RosterService.Export: %w", err)
	}

	rows := make([]domain.RosterRow, 0, len(regs))
	for _, reg := range regs {
		rows = append(rows, domain.RosterRow{
			TripName:     trip.Name,
			TripDateFrom: trip.DateFrom.Format("2006-01-02"),
			TripDateTo:   trip.DateTo.Format("2006-01-02"),
			FirstName:    reg.Client.FirstName,
			LastName:     reg.Client.LastName,
			Email:        reg.Client.Email,
			Telephone:    reg.Client.Telephone,
			Pesel:        reg.Client.Pesel,
			RegisteredAt: reg.RegisteredAt,
			PaymentDate:  reg.PaymentDate,
		})
	}
	return rows, nil
}
