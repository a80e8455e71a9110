package catalog

import (
	"context"

	"github.com/jmoiron/sqlx"

	"emvibook/internal/db"
)

type PostgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, artistID int64, name string, durationMinutes int, priceCents int64) (*Service, error) {
	query := `
		INSERT INTO services (artist_id, name, duration_minutes, price_cents, active)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING id, artist_id, name, duration_minutes, price_cents, active, created_at
	`

	var svc Service
	err := r.db.GetContext(ctx, &svc, query, artistID, name, durationMinutes, priceCents)
	if err != nil {
		return nil, err
	}

	return &svc, nil
}

func (r *PostgresRepository) NameExists(ctx context.Context, artistID int64, name string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM services WHERE artist_id = $1 AND name = $2 AND active)`
	return db.Exists(ctx, r.db, query, artistID, name)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (*Service, error) {
	query := `
		SELECT id, artist_id, name, duration_minutes, price_cents, active, created_at
		FROM services
		WHERE id = $1
	`

	var svc Service
	err := r.db.GetContext(ctx, &svc, query, id)
	if err != nil {
		return nil, err
	}

	return &svc, nil
}

func (r *PostgresRepository) ListByArtist(ctx context.Context, artistID int64, onlyActive bool) ([]Service, error) {
	query := `
		SELECT id, artist_id, name, duration_minutes, price_cents, active, created_at
		FROM services
		WHERE artist_id = $1
	`

	if onlyActive {
		query += " AND active = TRUE"
	}

	query += " ORDER BY created_at ASC"

	var services []Service
	err := r.db.SelectContext(ctx, &services, query, artistID)
	if err != nil {
		return nil, err
	}

	return services, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int, artistID int64, name string, durationMinutes int, priceCents int64, active bool) (*Service, error) {
	query := `
		UPDATE services
		SET name = $3, duration_minutes = $4, price_cents = $5, active = $6
		WHERE id = $1 AND artist_id = $2
		RETURNING id, artist_id, name, duration_minutes, price_cents, active, created_at
	`

	var svc Service
	err := r.db.GetContext(ctx, &svc, query, id, artistID, name, durationMinutes, priceCents, active)
	if err != nil {
		return nil, err
	}

	return &svc, nil
}

func (r *PostgresRepository) Deactivate(ctx context.Context, id int, artistID int64) (*Service, error) {
	query := `
		UPDATE services
		SET active = FALSE
		WHERE id = $1 AND artist_id = $2
		RETURNING id, artist_id, name, duration_minutes, price_cents, active, created_at
	`

	var svc Service
	err := r.db.GetContext(ctx, &svc, query, id, artistID)
	if err != nil {
		return nil, err
	}

	return &svc, nil
}
