package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jwozniak/trip-booking-api/internal/domain"
	"github.com/jwozniak/trip-booking-api/internal/handler"
)

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs.
type mockTripServicer struct {
	list func(ctx context.Context, p domain.PaginationParams) ([]domain.TripSummary, int64, error)
}

func (m *mockTripServicer) List(ctx context.Context, p domain.PaginationParams) ([]domain.TripSummary, int64, error) {
	return m.list(ctx, p)
}

// mockClientServicer is a test double for handler.ClientServicer.
type mockClientServicer struct {
	delete func(ctx context.Context, id uuid.UUID) error
}

func (m *mockClientServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// mockRegistrationServicer is a test double for handler.RegistrationServicer.
type mockRegistrationServicer struct {
	register func(ctx context.Context, tripID uuid.UUID, in domain.RegistrationInput) error
}

func (m *mockRegistrationServicer) Register(ctx context.Context, tripID uuid.UUID, in domain.RegistrationInput) error {
	return m.register(ctx, tripID, in)
}

// mockRosterServicer is a test double for handler.RosterServicer.
type mockRosterServicer struct {
	export func(ctx context.Context, tripID uuid.UUID) ([]domain.RosterRow, error)
}

func (m *mockRosterServicer) Export(ctx context.Context, tripID uuid.UUID) ([]domain.RosterRow, error) {
	return m.export(ctx, tripID)
}

// compile-time checks: the mocks must satisfy the handler interfaces.
var (
	_ handler.TripServicer         = (*mockTripServicer)(nil)
	_ handler.ClientServicer       = (*mockClientServicer)(nil)
	_ handler.RegistrationServicer = (*mockRegistrationServicer)(nil)
	_ handler.RosterServicer       = (*mockRosterServicer)(nil)
)

// serverMocks bundles one mock per servicer so tests can override only the
// ones they exercise.
type serverMocks struct {
	trips         *mockTripServicer
	clients       *mockClientServicer
	registrations *mockRegistrationServicer
	roster        *mockRosterServicer
}

// newHTTPHandler wires a Server with the given mocks into the real chi
// router. This mirrors exactly how main.go wires it in production, so route
// patterns and URL parameter extraction are covered too.
func newHTTPHandler(m serverMocks) http.Handler {
	if m.trips == nil {
		m.trips = &mockTripServicer{}
	}
	if m.clients == nil {
		m.clients = &mockClientServicer{}
	}
	if m.registrations == nil {
		m.registrations = &mockRegistrationServicer{}
	}
	if m.roster == nil {
		m.roster = &mockRosterServicer{}
	}
	return handler.NewServer(m.trips, m.clients, m.registrations, m.roster).Routes()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// decodeMessage extracts the "message" field from a {"message": ...} body.
func decodeMessage(t *testing.T, body *bytes.Buffer) string {
	t.Helper()
	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp.Message
}
