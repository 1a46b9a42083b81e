package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwozniak/trip-booking-api/internal/domain"
	"github.com/jwozniak/trip-booking-api/internal/repo"
)

// ClientService implements the client lifecycle rules.
type ClientService struct {
	clients repo.ClientRepo
}

// NewClientService constructs a ClientService backed by the provided ClientRepo.
func NewClientService(clients repo.ClientRepo) *ClientService {
	return &ClientService{clients: clients}
}

// Delete removes a client that has no trip registrations.
// Returns domain.ErrNotFound if the client does not exist, and
// domain.ErrConflict if any registration references the client — past trips
// block deletion just like future ones.
//
// The check-then-delete sequence is backed by the client_trips foreign key:
// a registration created between the check and the delete turns the delete
// into a conflict at the store, never an orphaned link.
func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.clients.GetByID(ctx, id); err != nil {
		return fmt.Errorf("service.ClientService.Delete: %w", err)
	}

	n, err := s.clients.CountRegistrations(ctx, id)
	if err != nil {
		return fmt.Errorf("service.ClientService.Delete: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("service.ClientService.Delete: %w: client has assigned trips", domain.ErrConflict)
	}

	if err := s.clients.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ClientService.Delete: %w", err)
	}
	return nil
}
