package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jwozniak/trip-booking-api/internal/domain"
)

// messageResponse is the body of every non-listing response: a single
// human-readable message.
type messageResponse struct {
	Message string `json:"message"`
}

// writeJSON encodes v as the response body with the given status code.
// Encoding failures are logged, not surfaced — the status line is already
// written by the time Encode can fail.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "encode response", "error", err)
	}
}

// writeMessage writes a {"message": ...} body with the given status code.
func writeMessage(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, messageResponse{Message: message})
}

// writeInternalError logs the error and returns a generic 500 body.
// Infrastructure failures are never surfaced verbatim to clients.
func writeInternalError(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "request failed", "error", err)
	writeMessage(w, r, http.StatusInternalServerError, "internal server error")
}

// conflictMessage extracts the human-readable tail from a wrapped
// domain.ErrConflict, e.g.
//
//	"service.RegistrationService.Register: conflict: trip has already started"
//
// becomes "trip has already started". Falls back to the full error text when
// no conflict marker is present.
func conflictMessage(err error) string {
	msg := err.Error()
	marker := domain.ErrConflict.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}
