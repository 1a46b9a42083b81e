package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jwozniak/trip-booking-api/internal/domain"
)

// ClientRepo defines the persistence operations for Clients.
type ClientRepo interface {
	// GetByID retrieves a single client by its UUID primary key.
	// Returns domain.ErrNotFound if no client with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Client, error)

	// GetByPesel retrieves a client by exact pesel match — the natural
	// identity key used to deduplicate clients across registrations.
	// Returns domain.ErrNotFound if no client with that pesel exists.
	GetByPesel(ctx context.Context, pesel string) (domain.Client, error)

	// CountRegistrations returns the number of client_trips rows referencing
	// the client, past trips included.
	CountRegistrations(ctx context.Context, id uuid.UUID) (int64, error)

	// Delete removes a client by ID. Returns domain.ErrNotFound if it does
	// not exist, and domain.ErrConflict if a registration created after the
	// caller's check still references the client (foreign key violation).
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgClientRepo is the Postgres implementation of ClientRepo.
type pgClientRepo struct {
	db db
}

// NewClientRepo constructs a ClientRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewClientRepo(db db) ClientRepo {
	return &pgClientRepo{db: db}
}

// GetByID retrieves a client by primary key.
func (r *pgClientRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Client, error) {
	const q = `
		SELECT id, first_name, last_name, email, telephone, pesel, created_at
		FROM clients
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanClient(row)
	if err != nil {
		return domain.Client{}, fmt.Errorf("repo.ClientRepo.GetByID: %w", err)
	}
	return result, nil
}

// GetByPesel retrieves a client by exact pesel. The clients_pesel_idx unique
// index keeps this an indexed lookup.
func (r *pgClientRepo) GetByPesel(ctx context.Context, pesel string) (domain.Client, error) {
	const q = `
		SELECT id, first_name, last_name, email, telephone, pesel, created_at
		FROM clients
		WHERE pesel = @pesel`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"pesel": pesel})
	result, err := scanClient(row)
	if err != nil {
		return domain.Client{}, fmt.Errorf("repo.ClientRepo.GetByPesel: %w", err)
	}
	return result, nil
}

// CountRegistrations counts the client_trips rows referencing the client.
func (r *pgClientRepo) CountRegistrations(ctx context.Context, id uuid.UUID) (int64, error) {
	const q = `SELECT count(*) FROM client_trips WHERE client_id = @client_id`

	var n int64
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"client_id": id}).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.ClientRepo.CountRegistrations: %w", err)
	}
	return n, nil
}

// Delete removes a client by primary key.
func (r *pgClientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM clients WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		if isPgErr(err, pgErrForeignKeyViolation) {
			return fmt.Errorf("repo.ClientRepo.Delete: %w: client has registrations", domain.ErrConflict)
		}
		return fmt.Errorf("repo.ClientRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ClientRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanClient maps a single database row into a domain.Client.
func scanClient(s scanner) (domain.Client, error) {
	var (
		c  domain.Client
		id pgtype.UUID
	)

	err := s.Scan(&id, &c.FirstName, &c.LastName, &c.Email, &c.Telephone, &c.Pesel, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Client{}, domain.ErrNotFound
		}
		return domain.Client{}, err
	}

	c.ID = uuid.UUID(id.Bytes)
	return c, nil
}

// Postgres error codes this package maps onto domain sentinels.
const (
	pgErrUniqueViolation     = "23505"
	pgErrForeignKeyViolation = "23503"
)

// isPgErr reports whether err is a Postgres error with the given SQLSTATE code.
func isPgErr(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
