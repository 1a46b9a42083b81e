package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwozniak/trip-booking-api/internal/domain"
)

func TestDeleteClient_200(t *testing.T) {
	id := uuid.New()
	var gotID uuid.UUID
	clients := &mockClientServicer{
		delete: func(_ context.Context, clientID uuid.UUID) error {
			gotID = clientID
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/trips-clients/"+id.String(), nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(serverMocks{clients: clients}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, gotID)
	assert.Equal(t, "Client deleted successfully", decodeMessage(t, rec.Body))
}

func TestDeleteClient_404(t *testing.T) {
	clients := &mockClientServicer{
		delete: func(_ context.Context, _ uuid.UUID) error {
			return fmt.Errorf("service.ClientService.Delete: %w", domain.ErrNotFound)
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/trips-clients/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(serverMocks{clients: clients}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Client not found", decodeMessage(t, rec.Body))
}

func TestDeleteClient_400_HasRegistrations(t *testing.T) {
	clients := &mockClientServicer{
		delete: func(_ context.Context, _ uuid.UUID) error {
			return fmt.Errorf("service.ClientService.Delete: %w: client has assigned trips", domain.ErrConflict)
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/trips-clients/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(serverMocks{clients: clients}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Client has assigned trips and cannot be deleted", decodeMessage(t, rec.Body))
}

func TestDeleteClient_400_InvalidID(t *testing.T) {
	called := false
	clients := &mockClientServicer{
		delete: func(_ context.Context, _ uuid.UUID) error {
			called = true
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/trips-clients/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(serverMocks{clients: clients}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, called, "service must not be reached with a malformed id")
}
