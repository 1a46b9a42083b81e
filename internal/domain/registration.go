package domain

import (
	"time"

	"github.com/google/uuid"
)

// ClientTrip is the link record representing one client's registration for
// one trip. Identity is the (ClientID, TripID) pair; the store enforces its
// uniqueness so concurrent duplicate registrations cannot both succeed.
// Link rows are created once and never updated.
type ClientTrip struct {
	ClientID     uuid.UUID
	TripID       uuid.UUID
	RegisteredAt time.Time
	PaymentDate  *time.Time // nil when the client has not paid yet
}

// TripRegistration is one registration row joined with its client record,
// as read back for roster exports.
type TripRegistration struct {
	Client       Client
	RegisteredAt time.Time
	PaymentDate  *time.Time
}

// RegistrationInput carries the client fields supplied with a registration
// request. Pesel is the sole deduplication key; the remaining fields are
// used only when no client with that Pesel exists yet.
type RegistrationInput struct {
	FirstName   string
	LastName    string
	Email       string
	Telephone   string
	Pesel       string
	PaymentDate *time.Time
}
