package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrOverlap           = errors.New("booking overlaps an existing reservation")
	ErrNoMatchingBooking = errors.New("booking not found in expected status")
)

const bookingColumns = "id, artist_id, client_id, service_id, start_at, end_at, status, created_at, updated_at"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Reserve is the single place a blocking interval can be introduced. The
// overlap check and the insert run in one transaction under a per-artist
// advisory lock, so concurrent reserves for the same artist serialize while
// other artists proceed untouched.
func (r *repository) Reserve(ctx context.Context, artistID, clientID int64, serviceID int, startAt, endAt time.Time) (*Booking, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", artistID); err != nil {
		return nil, err
	}

	overlapQuery := `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE artist_id = $1 AND status IN ('pending', 'confirmed')
			AND start_at < $3 AND end_at > $2
		)
	`

	var exists bool
	if err := tx.GetContext(ctx, &exists, overlapQuery, artistID, startAt, endAt); err != nil {
		return nil, err
	}

	if exists {
		return nil, ErrOverlap
	}

	insert := `
		INSERT INTO bookings (id, artist_id, client_id, service_id, start_at, end_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'pending')
		RETURNING ` + bookingColumns

	var booking Booking
	if err := tx.GetContext(ctx, &booking, insert, uuid.New(), artistID, clientID, serviceID, startAt, endAt); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &booking, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking Booking
	if err := r.db.GetContext(ctx, &booking, query, id); err != nil {
		return nil, err
	}

	return &booking, nil
}

// UpdateStatus performs a guarded transition: the row must currently be in
// the expected from status or nothing changes.
func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) error {
	query := `
		UPDATE bookings
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	result, err := r.db.ExecContext(ctx, query, id, from, to)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNoMatchingBooking
	}

	return nil
}

// ExpirePending releases stale holds: pending rows created before cutoff move
// to declined. Running it twice is a no-op the second time; it never touches
// confirmed rows.
func (r *repository) ExpirePending(ctx context.Context, cutoff time.Time) ([]Booking, error) {
	query := `
		UPDATE bookings
		SET status = 'declined', updated_at = NOW()
		WHERE status = 'pending' AND created_at < $1
		RETURNING ` + bookingColumns

	var expired []Booking
	if err := r.db.SelectContext(ctx, &expired, query, cutoff); err != nil {
		return nil, err
	}

	return expired, nil
}

func (r *repository) CompleteElapsed(ctx context.Context, now time.Time) ([]Booking, error) {
	query := `
		UPDATE bookings
		SET status = 'completed', updated_at = NOW()
		WHERE status = 'confirmed' AND end_at <= $1
		RETURNING ` + bookingColumns

	var completed []Booking
	if err := r.db.SelectContext(ctx, &completed, query, now); err != nil {
		return nil, err
	}

	return completed, nil
}

func (r *repository) ListBlocking(ctx context.Context, artistID int64, from, to time.Time) ([]Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE artist_id = $1 AND status IN ('pending', 'confirmed')
		AND start_at < $3 AND end_at > $2
		ORDER BY start_at
	`

	var bookings []Booking
	if err := r.db.SelectContext(ctx, &bookings, query, artistID, from, to); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) ListByClient(ctx context.Context, clientID int64) ([]Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE client_id = $1
		ORDER BY start_at DESC
	`

	var bookings []Booking
	if err := r.db.SelectContext(ctx, &bookings, query, clientID); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) ListByArtist(ctx context.Context, artistID int64, from, to time.Time) ([]Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE artist_id = $1 AND start_at < $3 AND end_at > $2
		ORDER BY start_at
	`

	var bookings []Booking
	if err := r.db.SelectContext(ctx, &bookings, query, artistID, from, to); err != nil {
		return nil, err
	}

	return bookings, nil
}

// IsRetryable reports whether a storage error is a transient transaction
// failure (serialization or deadlock) worth retrying.
func IsRetryable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}
