package domain

import (
	"time"

	"github.com/google/uuid"
)

// Client is a person record. Identity across registration calls is
// determined by Pesel — two clients may share names or email addresses, but
// an identical Pesel always resolves to the same client row.
type Client struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Email     string
	Telephone string
	Pesel     string
	CreatedAt time.Time
}
