package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/jwozniak/trip-booking-api/internal/domain"
)

// tripListResponse is the body of GET /trips.
// AllPages carries the total trip count — the field name predates this
// implementation and is kept for wire compatibility with existing clients.
type tripListResponse struct {
	PageNum  int           `json:"pageNum"`
	PageSize int           `json:"pageSize"`
	AllPages int64         `json:"allPages"`
	Trips    []tripSummary `json:"trips"`
}

type tripSummary struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	DateFrom    time.Time    `json:"dateFrom"`
	DateTo      time.Time    `json:"dateTo"`
	MaxPeople   int          `json:"maxPeople"`
	Countries   []string     `json:"countries"`
	Clients     []tripClient `json:"clients"`
}

type tripClient struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// ListTrips handles GET /trips.
// Supports ?page= and ?pageSize= query parameters (defaults: page=1,
// pageSize=10, max=100). Out-of-range or non-numeric values fall back to
// the defaults.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	params := domain.NewPaginationParams(
		queryInt(r, "page"),
		queryInt(r, "pageSize"),
	)

	trips, total, err := s.trips.List(r.Context(), params)
	if err != nil {
		writeInternalError(w, r, err)
		return
	}

	resp := tripListResponse{
		PageNum:  params.Page,
		PageSize: params.PageSize,
		AllPages: total,
		Trips:    make([]tripSummary, len(trips)),
	}
	for i, t := range trips {
		resp.Trips[i] = summaryToResponse(t)
	}

	writeJSON(w, r, http.StatusOK, resp)
}

// summaryToResponse converts a domain.TripSummary into its JSON shape.
func summaryToResponse(t domain.TripSummary) tripSummary {
	clients := make([]tripClient, len(t.Clients))
	for i, c := range t.Clients {
		clients[i] = tripClient{FirstName: c.FirstName, LastName: c.LastName}
	}
	countries := t.Countries
	if countries == nil {
		countries = []string{}
	}
	return tripSummary{
		Name:        t.Name,
		Description: t.Description,
		DateFrom:    t.DateFrom,
		DateTo:      t.DateTo,
		MaxPeople:   t.MaxPeople,
		Countries:   countries,
		Clients:     clients,
	}
}

// queryInt returns the named query parameter as *int, or nil when the
// parameter is absent or not a valid integer.
func queryInt(r *http.Request, name string) *int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
