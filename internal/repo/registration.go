package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jwozniak/trip-booking-api/internal/domain"
)

// execer is the single-statement subset of db, satisfied by pgx.Tx as well.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// RegistrationRepo defines the persistence operations for ClientTrip links.
type RegistrationRepo interface {
	// Exists reports whether a registration links the client to the trip.
	Exists(ctx context.Context, clientID, tripID uuid.UUID) (bool, error)

	// Create inserts a registration for an existing client.
	// Returns domain.ErrConflict if the (client, trip) pair is already
	// registered — the composite primary key enforces this even when two
	// registrations race.
	Create(ctx context.Context, reg domain.ClientTrip) error

	// CreateWithClient inserts a brand-new client and their registration as
	// a single transaction, returning the persisted client. Returns
	// domain.ErrConflict if another registration created a client with the
	// same pesel first, or if the (client, trip) pair already exists.
	// No partial state survives a failure.
	CreateWithClient(ctx context.Context, client domain.Client, reg domain.ClientTrip) (domain.Client, error)

	// ListByTrip returns every registration for the trip joined with its
	// client record, ordered by registration time ascending.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.TripRegistration, error)
}

// pgRegistrationRepo is the Postgres implementation of RegistrationRepo.
type pgRegistrationRepo struct {
	db db
}

// NewRegistrationRepo constructs a RegistrationRepo backed by the provided
// db connection. In production pass *pgxpool.Pool; in tests pass a pgx.Tx —
// the transactional CreateWithClient nests via a savepoint in that case.
func NewRegistrationRepo(db db) RegistrationRepo {
	return &pgRegistrationRepo{db: db}
}

// Exists checks for a registration by composite key.
func (r *pgRegistrationRepo) Exists(ctx context.Context, clientID, tripID uuid.UUID) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM client_trips
			WHERE client_id = @client_id AND trip_id = @trip_id
		)`

	var exists bool
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"client_id": clientID,
		"trip_id":   tripID,
	}).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("repo.RegistrationRepo.Exists: %w", err)
	}
	return exists, nil
}

// Create inserts a registration row for an existing client.
func (r *pgRegistrationRepo) Create(ctx context.Context, reg domain.ClientTrip) error {
	if err := insertRegistration(ctx, r.db, reg); err != nil {
		return fmt.Errorf("repo.RegistrationRepo.Create: %w", err)
	}
	return nil
}

// CreateWithClient inserts the client and their registration in one transaction.
func (r *pgRegistrationRepo) CreateWithClient(ctx context.Context, client domain.Client, reg domain.ClientTrip) (domain.Client, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Client{}, fmt.Errorf("repo.RegistrationRepo.CreateWithClient: begin: %w", err)
	}
	// Rollback is a no-op after a successful Commit.
	defer tx.Rollback(ctx)

	const insertClient = `
		INSERT INTO clients (first_name, last_name, email, telephone, pesel)
		VALUES (@first_name, @last_name, @email, @telephone, @pesel)
		RETURNING id, first_name, last_name, email, telephone, pesel, created_at`

	row := tx.QueryRow(ctx, insertClient, pgx.NamedArgs{
		"first_name": client.FirstName,
		"last_name":  client.LastName,
		"email":      client.Email,
		"telephone":  client.Telephone,
		"pesel":      client.Pesel,
	})
	created, err := scanClient(row)
	if err != nil {
		if isPgErr(err, pgErrUniqueViolation) {
			// Another registration created this pesel concurrently.
			return domain.Client{}, fmt.Errorf("repo.RegistrationRepo.CreateWithClient: %w: pesel already exists", domain.ErrConflict)
		}
		return domain.Client{}, fmt.Errorf("repo.RegistrationRepo.CreateWithClient: insert client: %w", err)
	}

	reg.ClientID = created.ID
	if err := insertRegistration(ctx, tx, reg); err != nil {
		return domain.Client{}, fmt.Errorf("repo.RegistrationRepo.CreateWithClient: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Client{}, fmt.Errorf("repo.RegistrationRepo.CreateWithClient: commit: %w", err)
	}
	return created, nil
}

// ListByTrip returns the trip's registrations joined with client records.
func (r *pgRegistrationRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.TripRegistration, error) {
	const q = `
		SELECT cl.id, cl.first_name, cl.last_name, cl.email, cl.telephone, cl.pesel, cl.created_at,
		       ct.registered_at, ct.payment_date
		FROM client_trips ct
		JOIN clients cl ON cl.id = ct.client_id
		WHERE ct.trip_id = @trip_id
		ORDER BY ct.registered_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.RegistrationRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	var regs []domain.TripRegistration
	for rows.Next() {
		var (
			reg         domain.TripRegistration
			id          pgtype.UUID
			paymentDate pgtype.Timestamptz
		)
		err := rows.Scan(&id, &reg.Client.FirstName, &reg.Client.LastName,
			&reg.Client.Email, &reg.Client.Telephone, &reg.Client.Pesel,
			&reg.Client.CreatedAt, &reg.RegisteredAt, &paymentDate)
		if err != nil {
			return nil, fmt.Errorf("repo.RegistrationRepo.ListByTrip: scan: %w", err)
		}
		reg.Client.ID = uuid.UUID(id.Bytes)
		if paymentDate.Valid {
			pd := paymentDate.Time
			reg.PaymentDate = &pd
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.RegistrationRepo.ListByTrip: rows: %w", err)
	}

	return regs, nil
}

// insertRegistration inserts one client_trips row, mapping constraint
// violations to domain sentinels. Shared by Create and CreateWithClient.
func insertRegistration(ctx context.Context, db execer, reg domain.ClientTrip) error {
	const q = `
		INSERT INTO client_trips (client_id, trip_id, registered_at, payment_date)
		VALUES (@client_id, @trip_id, @registered_at, @payment_date)`

	_, err := db.Exec(ctx, q, pgx.NamedArgs{
		"client_id":     reg.ClientID,
		"trip_id":       reg.TripID,
		"registered_at": reg.RegisteredAt,
		"payment_date":  reg.PaymentDate, // nil becomes NULL
	})
	if err != nil {
		if isPgErr(err, pgErrUniqueViolation) {
			return fmt.Errorf("%w: client already registered for this trip", domain.ErrConflict)
		}
		if isPgErr(err, pgErrForeignKeyViolation) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}
