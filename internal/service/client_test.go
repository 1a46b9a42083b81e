package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jwozniak/trip-booking-api/internal/domain"
	"github.com/jwozniak/trip-booking-api/internal/service"
)

// clientOnRecord returns a ClientRepo that knows one client with the given id.
func clientOnRecord(id uuid.UUID) *mockClientRepo {
	return &mockClientRepo{
		getByID: func(_ context.Context, got uuid.UUID) (domain.Client, error) {
			if got != id {
				return domain.Client{}, domain.ErrNotFound
			}
			return domain.Client{ID: id, FirstName: "Anna", LastName: "Nowak"}, nil
		},
	}
}

func TestClientDelete_OK(t *testing.T) {
	id := uuid.New()
	deleted := false

	clients := clientOnRecord(id)
	clients.countRegistrations = func(_ context.Context, _ uuid.UUID) (int64, error) { return 0, nil }
	clients.delete = func(_ context.Context, got uuid.UUID) error {
		assert.Equal(t, id, got)
		deleted = true
		return nil
	}
	svc := service.NewClientService(clients)

	err := svc.Delete(context.Background(), id)

	assert.NoError(t, err)
	assert.True(t, deleted)
}

func TestClientDelete_NotFound(t *testing.T) {
	svc := service.NewClientService(clientOnRecord(uuid.New()))

	err := svc.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClientDelete_HasRegistrations(t *testing.T) {
	id := uuid.New()
	deleteCalled := false

	clients := clientOnRecord(id)
	// A single past registration is enough to block deletion.
	clients.countRegistrations = func(_ context.Context, _ uuid.UUID) (int64, error) { return 1, nil }
	clients.delete = func(_ context.Context, _ uuid.UUID) error {
		deleteCalled = true
		return nil
	}
	svc := service.NewClientService(clients)

	err := svc.Delete(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.False(t, deleteCalled, "delete must not run when registrations exist")
}

func TestClientDelete_RepoError(t *testing.T) {
	repoErr := errors.New("db exploded")
	id := uuid.New()

	clients := clientOnRecord(id)
	clients.countRegistrations = func(_ context.Context, _ uuid.UUID) (int64, error) { return 0, repoErr }
	svc := service.NewClientService(clients)

	err := svc.Delete(context.Background(), id)

	assert.ErrorIs(t, err, repoErr)
}

func TestClientDelete_RaceBackedByConstraint(t *testing.T) {
	// A registration created between the count check and the delete makes the
	// store's foreign key fire; the service surfaces it as a conflict.
	id := uuid.New()

	clients := clientOnRecord(id)
	clients.countRegistrations = func(_ context.Context, _ uuid.UUID) (int64, error) { return 0, nil }
	clients.delete = func(_ context.Context, _ uuid.UUID) error {
		return domain.ErrConflict
	}
	svc := service.NewClientService(clients)

	err := svc.Delete(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrConflict)
}
