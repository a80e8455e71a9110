package calendar

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var (
	ErrRuleNotFoundOrInactive = errors.New("rule not found or already inactive")
	ErrExceptionNotFoundRow   = errors.New("time off exception not found")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// CreateRule inserts the new rule and deactivates any previously active rules
// for the same (artist, weekday) in a single transaction, stamping their
// superseded_by with the new rule's id.
func (r *repository) CreateRule(ctx context.Context, artistID int64, weekday, startMinute, endMinute int) (*AvailabilityRule, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	insert := `
		INSERT INTO availability_rules (artist_id, weekday, start_minute, end_minute, active)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING id, artist_id, weekday, start_minute, end_minute, active, superseded_by, created_at
	`

	var rule AvailabilityRule
	if err := tx.GetContext(ctx, &rule, insert, artistID, weekday, startMinute, endMinute); err != nil {
		return nil, err
	}

	supersede := `
		UPDATE availability_rules
		SET active = FALSE, superseded_by = $1
		WHERE artist_id = $2 AND weekday = $3 AND active = TRUE AND id <> $1
	`

	if _, err := tx.ExecContext(ctx, supersede, rule.ID, artistID, weekday); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &rule, nil
}

func (r *repository) DeactivateRule(ctx context.Context, artistID int64, ruleID int) error {
	query := `
		UPDATE availability_rules
		SET active = FALSE
		WHERE id = $1 AND artist_id = $2 AND active = TRUE
	`

	result, err := r.db.ExecContext(ctx, query, ruleID, artistID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrRuleNotFoundOrInactive
	}

	return nil
}

func (r *repository) ListActiveRules(ctx context.Context, artistID int64) ([]AvailabilityRule, error) {
	query := `
		SELECT id, artist_id, weekday, start_minute, end_minute, active, superseded_by, created_at
		FROM availability_rules
		WHERE artist_id = $1 AND active = TRUE
		ORDER BY weekday, start_minute
	`

	var rules []AvailabilityRule
	if err := r.db.SelectContext(ctx, &rules, query, artistID); err != nil {
		return nil, err
	}

	return rules, nil
}

func (r *repository) ListRules(ctx context.Context, artistID int64) ([]AvailabilityRule, error) {
	query := `
		SELECT id, artist_id, weekday, start_minute, end_minute, active, superseded_by, created_at
		FROM availability_rules
		WHERE artist_id = $1
		ORDER BY created_at DESC
	`

	var rules []AvailabilityRule
	if err := r.db.SelectContext(ctx, &rules, query, artistID); err != nil {
		return nil, err
	}

	return rules, nil
}

func (r *repository) AddException(ctx context.Context, artistID int64, startAt, endAt time.Time, reason string) (*TimeOffException, error) {
	query := `
		INSERT INTO time_off_exceptions (artist_id, start_at, end_at, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING id, artist_id, start_at, end_at, reason, created_at
	`

	var exc TimeOffException
	if err := r.db.GetContext(ctx, &exc, query, artistID, startAt, endAt, reason); err != nil {
		return nil, err
	}

	return &exc, nil
}

func (r *repository) RemoveException(ctx context.Context, artistID int64, exceptionID int) error {
	query := `
		DELETE FROM time_off_exceptions
		WHERE id = $1 AND artist_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, exceptionID, artistID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrExceptionNotFoundRow
	}

	return nil
}

func (r *repository) ListExceptions(ctx context.Context, artistID int64, from, to time.Time) ([]TimeOffException, error) {
	query := `
		SELECT id, artist_id, start_at, end_at, reason, created_at
		FROM time_off_exceptions
		WHERE artist_id = $1 AND start_at < $3 AND end_at > $2
		ORDER BY start_at
	`

	var excs []TimeOffException
	if err := r.db.SelectContext(ctx, &excs, query, artistID, from, to); err != nil {
		return nil, err
	}

	return excs, nil
}
