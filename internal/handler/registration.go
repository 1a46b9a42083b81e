package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jwozniak/trip-booking-api/internal/domain"
)

// registerClientRequest is the body of POST /trips/{tripId}/clients.
// PaymentDate is optional; omit it when the client has not paid yet.
type registerClientRequest struct {
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Email       string     `json:"email"`
	Telephone   string     `json:"telephone"`
	Pesel       string     `json:"pesel"`
	PaymentDate *time.Time `json:"paymentDate,omitempty"`
}

// RegisterClient handles POST /trips/{tripId}/clients.
// The client is resolved by pesel: a known pesel reuses the existing client
// record, an unknown one creates a new record from the request fields.
func (s *Server) RegisterClient(w http.ResponseWriter, r *http.Request) {
	tripID, err := uuid.Parse(chi.URLParam(r, "tripId"))
	if err != nil {
		writeMessage(w, r, http.StatusBadRequest, "invalid trip id")
		return
	}

	var req registerClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Pesel == "" {
		writeMessage(w, r, http.StatusBadRequest, "pesel is required")
		return
	}

	input := domain.RegistrationInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Telephone:   req.Telephone,
		Pesel:       req.Pesel,
		PaymentDate: req.PaymentDate,
	}

	if err := s.registrations.Register(r.Context(), tripID, input); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeMessage(w, r, http.StatusNotFound, "Trip not found")
		case errors.Is(err, domain.ErrConflict):
			writeMessage(w, r, http.StatusBadRequest, conflictMessage(err))
		default:
			writeInternalError(w, r, err)
		}
		return
	}

	writeMessage(w, r, http.StatusOK, "Client successfully registered for the trip")
}
