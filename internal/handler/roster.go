// Package handler — roster.go implements GET /trips/{tripId}/clients/export.
// Returns the trip's registered clients as a flat table.
// Supports content negotiation via ?format=csv (CSV) or default (JSON).
package handler

import (
	"encoding/csv"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jwozniak/trip-booking-api/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_name", "trip_date_from", "trip_date_to",
	"first_name", "last_name", "email", "telephone", "pesel",
	"registered_at", "payment_date",
}

// rosterRow is the JSON shape of one roster export row.
type rosterRow struct {
	TripName     string     `json:"tripName"`
	TripDateFrom string     `json:"tripDateFrom"`
	TripDateTo   string     `json:"tripDateTo"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Email        string     `json:"email"`
	Telephone    string     `json:"telephone"`
	Pesel        string     `json:"pesel"`
	RegisteredAt time.Time  `json:"registeredAt"`
	PaymentDate  *time.Time `json:"paymentDate,omitempty"`
}

// ExportRoster handles GET /trips/{tripId}/clients/export.
// It returns one row per registration on the trip.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) ExportRoster(w http.ResponseWriter, r *http.Request) {
	tripID, err := uuid.Parse(chi.URLParam(r, "tripId"))
	if err != nil {
		writeMessage(w, r, http.StatusBadRequest, "invalid trip id")
		return
	}

	rows, err := s.roster.Export(r.Context(), tripID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeMessage(w, r, http.StatusNotFound, "Trip not found")
			return
		}
		writeInternalError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		writeRosterCSV(w, r, rows)
		return
	}

	out := make([]rosterRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, rosterRow(row))
	}
	writeJSON(w, r, http.StatusOK, out)
}

// writeRosterCSV encodes roster rows as CSV directly onto the response.
// Nil payment dates are encoded as empty strings.
func writeRosterCSV(w http.ResponseWriter, r *http.Request, rows []domain.RosterRow) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="roster.csv"`)

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeaders); err != nil {
		writeInternalError(w, r, err)
		return
	}
	for _, row := range rows {
		record := []string{
			row.TripName,
			row.TripDateFrom,
			row.TripDateTo,
			row.FirstName,
			row.LastName,
			row.Email,
			row.Telephone,
			row.Pesel,
			row.RegisteredAt.UTC().Format(time.RFC3339),
			formatOptionalTime(row.PaymentDate),
		}
		if err := cw.Write(record); err != nil {
			// The status line is already written; log and stop.
			writeInternalError(w, r, err)
			return
		}
	}
	cw.Flush()
}

// formatOptionalTime returns the RFC3339 representation of t, or "" if t is nil.
func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
