package domain

import "time"

// RosterRow is a single row in a trip's roster export.
// It is a flat, denormalized view: one row per registration, with the trip
// fields repeated on every row. Dates are pre-formatted by the service so
// JSON and CSV encodings agree.
type RosterRow struct {
	// Trip fields — identical on every row of one export.
	TripName     string
	TripDateFrom string // "2006-01-02" formatted date
	TripDateTo   string

	// Client fields.
	FirstName string
	LastName  string
	Email     string
	Telephone string
	Pesel     string

	RegisteredAt time.Time
	PaymentDate  *time.Time // nil when unpaid
}
