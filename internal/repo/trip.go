// Package repo contains all database access logic for the trip booking API.
// Each aggregate has its own file with an interface and a Postgres
// implementation. No business logic lives here — only SQL and type mapping.
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

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
//
// Begin is included because registration needs a transaction of its own;
// pgx.Tx satisfies it too (nested transactions become savepoints), so the
// rollback-isolated test harness keeps working.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// ListPaged returns one page of trip summaries ordered by date_from
	// descending, plus the total unpaginated trip count. Each summary
	// carries the trip's country names and the names of every registered
	// client.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.TripSummary, int64, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `
		SELECT id, name, description, date_from, date_to, max_people, created_at
		FROM trips
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of trip summaries and the total trip count.
// The page of trips is fetched first; countries and registered client names
// for exactly those trips are then loaded in two follow-up queries and
// grouped in Go. Three plain queries beat one aggregate query for clarity,
// and the page is at most 100 rows so the id lists stay small.
func (r *pgTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.TripSummary, int64, error) {
	const countQ = `SELECT count(*) FROM trips`

	var total int64
	if err := r.db.QueryRow(ctx, countQ).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: count: %w", err)
	}

	const pageQ = `
		SELECT id, name, description, date_from, date_to, max_people, created_at
		FROM trips
		ORDER BY date_from DESC
		LIMIT @page_size OFFSET @offset`

	rows, err := r.db.Query(ctx, pageQ, pgx.NamedArgs{
		"page_size": p.PageSize,
		"offset":    p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var (
		ids       []uuid.UUID
		summaries []domain.TripSummary
	)
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: scan: %w", err)
		}
		ids = append(ids, t.ID)
		summaries = append(summaries, domain.TripSummary{
			Name:        t.Name,
			Description: t.Description,
			DateFrom:    t.DateFrom,
			DateTo:      t.DateTo,
			MaxPeople:   t.MaxPeople,
			Countries:   []string{},
			Clients:     []domain.TripClient{},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: rows: %w", err)
	}
	if len(ids) == 0 {
		return summaries, total, nil
	}

	// Index of trip id → position in the page, so the follow-up queries can
	// attach their rows without nested loops.
	byID := make(map[uuid.UUID]int, len(ids))
	for i, id := range ids {
		byID[id] = i
	}

	if err := r.attachCountries(ctx, byID, summaries, ids); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	if err := r.attachClients(ctx, byID, summaries, ids); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}

	return summaries, total, nil
}

// attachCountries loads the country names for the given trip ids and appends
// them to the matching summaries.
func (r *pgTripRepo) attachCountries(ctx context.Context, byID map[uuid.UUID]int, summaries []domain.TripSummary, ids []uuid.UUID) error {
	const q = `
		SELECT ct.trip_id, c.name
		FROM country_trips ct
		JOIN countries c ON c.id = ct.country_id
		WHERE ct.trip_id = ANY(@ids)
		ORDER BY c.name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"ids": ids})
	if err != nil {
		return fmt.Errorf("countries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			tripID pgtype.UUID
			name   string
		)
		if err := rows.Scan(&tripID, &name); err != nil {
			return fmt.Errorf("countries: scan: %w", err)
		}
		i := byID[uuid.UUID(tripID.Bytes)]
		summaries[i].Countries = append(summaries[i].Countries, name)
	}
	return rows.Err()
}

// attachClients loads the (first, last) name pairs of every client registered
// for the given trip ids, in registration order.
func (r *pgTripRepo) attachClients(ctx context.Context, byID map[uuid.UUID]int, summaries []domain.TripSummary, ids []uuid.UUID) error {
	const q = `
		SELECT ct.trip_id, cl.first_name, cl.last_name
		FROM client_trips ct
		JOIN clients cl ON cl.id = ct.client_id
		WHERE ct.trip_id = ANY(@ids)
		ORDER BY ct.registered_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"ids": ids})
	if err != nil {
		return fmt.Errorf("clients: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			tripID pgtype.UUID
			tc     domain.TripClient
		)
		if err := rows.Scan(&tripID, &tc.FirstName, &tc.LastName); err != nil {
			return fmt.Errorf("clients: scan: %w", err)
		}
		i := byID[uuid.UUID(tripID.Bytes)]
		summaries[i].Clients = append(summaries[i].Clients, tc)
	}
	return rows.Err()
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanTrip to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t  domain.Trip
		id pgtype.UUID
	)

	err := s.Scan(&id, &t.Name, &t.Description, &t.DateFrom, &t.DateTo, &t.MaxPeople, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	return t, nil
}
