package catalog

import (
	"context"
	"database/sql"
	"errors"
)

const (
	minDurationMinutes = 15
	maxDurationMinutes = 8 * 60
)

var (
	ErrServiceNotFound  = errors.New("service not found")
	ErrInvalidService   = errors.New("invalid service data")
	ErrDuplicateService = errors.New("artist already offers an active service with this name")
)

type CatalogService interface {
	Create(ctx context.Context, artistID int64, req CreateServiceRequest) (*Service, error)
	GetByID(ctx context.Context, id int) (*Service, error)
	ListByArtist(ctx context.Context, artistID int64, onlyActive bool) ([]Service, error)
	Update(ctx context.Context, id int, artistID int64, req UpdateServiceRequest) (*Service, error)
	Deactivate(ctx context.Context, id int, artistID int64) (*Service, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) CatalogService {
	return &service{
		repo: repo,
	}
}

func validateOffering(name string, durationMinutes int, priceCents int64) error {
	if name == "" {
		return ErrInvalidService
	}
	if durationMinutes < minDurationMinutes || durationMinutes > maxDurationMinutes {
		return ErrInvalidService
	}
	if priceCents < 0 {
		return ErrInvalidService
	}
	return nil
}

func (s *service) Create(ctx context.Context, artistID int64, req CreateServiceRequest) (*Service, error) {
	if err := validateOffering(req.Name, req.DurationMinutes, req.PriceCents); err != nil {
		return nil, err
	}

	taken, err := s.repo.NameExists(ctx, artistID, req.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateService
	}

	return s.repo.Create(ctx, artistID, req.Name, req.DurationMinutes, req.PriceCents)
}

func (s *service) GetByID(ctx context.Context, id int) (*Service, error) {
	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return svc, nil
}

func (s *service) ListByArtist(ctx context.Context, artistID int64, onlyActive bool) ([]Service, error) {
	return s.repo.ListByArtist(ctx, artistID, onlyActive)
}

func (s *service) Update(ctx context.Context, id int, artistID int64, req UpdateServiceRequest) (*Service, error) {
	if err := validateOffering(req.Name, req.DurationMinutes, req.PriceCents); err != nil {
		return nil, err
	}
	if req.Active == nil {
		return nil, ErrInvalidService
	}

	svc, err := s.repo.Update(ctx, id, artistID, req.Name, req.DurationMinutes, req.PriceCents, *req.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return svc, nil
}

// Deactivate retires an offering without deleting the row: past bookings keep
// their service reference, and existing confirmed bookings stay untouched.
func (s *service) Deactivate(ctx context.Context, id int, artistID int64) (*Service, error) {
	svc, err := s.repo.Deactivate(ctx, id, artistID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return svc, nil
}
