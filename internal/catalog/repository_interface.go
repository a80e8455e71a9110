package catalog

import "context"

type Repository interface {
	Create(ctx context.Context, artistID int64, name string, durationMinutes int, priceCents int64) (*Service, error)
	NameExists(ctx context.Context, artistID int64, name string) (bool, error)
	GetByID(ctx context.Context, id int) (*Service, error)
	ListByArtist(ctx context.Context, artistID int64, onlyActive bool) ([]Service, error)
	Update(ctx context.Context, id int, artistID int64, name string, durationMinutes int, priceCents int64, active bool) (*Service, error)
	Deactivate(ctx context.Context, id int, artistID int64) (*Service, error)
}
