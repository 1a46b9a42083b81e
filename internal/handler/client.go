package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jwozniak/trip-booking-api/internal/domain"
)

// DeleteClient handles DELETE /trips-clients/{clientId}.
// A client can only be deleted while no registration — past or future —
// references them.
func (s *Server) DeleteClient(w http.ResponseWriter, r *http.Request) {
	clientID, err := uuid.Parse(chi.URLParam(r, "clientId"))
	if err != nil {
		writeMessage(w, r, http.StatusBadRequest, "invalid client id")
		return
	}

	if err := s.clients.Delete(r.Context(), clientID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeMessage(w, r, http.StatusNotFound, "Client not found")
		case errors.Is(err, domain.ErrConflict):
			writeMessage(w, r, http.StatusBadRequest, "Client has assigned trips and cannot be deleted")
		default:
			writeInternalError(w, r, err)
		}
		return
	}

	writeMessage(w, r, http.StatusOK, "Client deleted successfully")
}
