package catalog

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCatalogRepo struct {
	mock.Mock
}

func (m *MockCatalogRepo) Create(ctx context.Context, artistID int64, name string, durationMinutes int, priceCents int64) (*Service, error) {
	args := m.Called(ctx, artistID, name, durationMinutes, priceCents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Service), args.Error(1)
}

func (m *MockCatalogRepo) NameExists(ctx context.Context, artistID int64, name string) (bool, error) {
	args := m.Called(ctx, artistID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogRepo) GetByID(ctx context.Context, id int) (*Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Service), args.Error(1)
}

func (m *MockCatalogRepo) ListByArtist(ctx context.Context, artistID int64, onlyActive bool) ([]Service, error) {
	args := m.Called(ctx, artistID, onlyActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Service), args.Error(1)
}

func (m *MockCatalogRepo) Update(ctx context.Context, id int, artistID int64, name string, durationMinutes int, priceCents int64, active bool) (*Service, error) {
	args := m.Called(ctx, id, artistID, name, durationMinutes, priceCents, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Service), args.Error(1)
}

func (m *MockCatalogRepo) Deactivate(ctx context.Context, id int, artistID int64) (*Service, error) {
	args := m.Called(ctx, id, artistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Service), args.Error(1)
}

func TestCreateService(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		req     CreateServiceRequest
		wantErr error
	}{
		{
			name: "valid service",
			req:  CreateServiceRequest{Name: "Gel manicure", DurationMinutes: 60, PriceCents: 4500},
		},
		{
			name:    "empty name",
			req:     CreateServiceRequest{Name: "", DurationMinutes: 60, PriceCents: 4500},
			wantErr: ErrInvalidService,
		},
		{
			name:    "duration below minimum",
			req:     CreateServiceRequest{Name: "Quick polish", DurationMinutes: 10, PriceCents: 1000},
			wantErr: ErrInvalidService,
		},
		{
			name:    "duration above maximum",
			req:     CreateServiceRequest{Name: "Marathon", DurationMinutes: 9 * 60, PriceCents: 1000},
			wantErr: ErrInvalidService,
		},
		{
			name:    "negative price",
			req:     CreateServiceRequest{Name: "Gel manicure", DurationMinutes: 60, PriceCents: -1},
			wantErr: ErrInvalidService,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockCatalogRepo)
			svc := NewService(repo)

			if tt.wantErr == nil {
				repo.On("NameExists", ctx, int64(7), tt.req.Name).Return(false, nil)
				repo.On("Create", ctx, int64(7), tt.req.Name, tt.req.DurationMinutes, tt.req.PriceCents).
					Return(&Service{ID: 1, ArtistID: 7, Name: tt.req.Name, DurationMinutes: tt.req.DurationMinutes, PriceCents: tt.req.PriceCents, Active: true}, nil)
			}

			created, err := svc.Create(ctx, 7, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, created)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.req.Name, created.Name)
				assert.True(t, created.Active)
			}

			repo.AssertExpectations(t)
		})
	}

	t.Run("duplicate active name", func(t *testing.T) {
		repo := new(MockCatalogRepo)
		svc := NewService(repo)

		req := CreateServiceRequest{Name: "Gel manicure", DurationMinutes: 60, PriceCents: 4500}
		repo.On("NameExists", ctx, int64(7), "Gel manicure").Return(true, nil)

		_, err := svc.Create(ctx, 7, req)
		assert.ErrorIs(t, err, ErrDuplicateService)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetServiceByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		repo := new(MockCatalogRepo)
		svc := NewService(repo)

		repo.On("GetByID", ctx, 3).Return(&Service{ID: 3, ArtistID: 7, Name: "Balayage", DurationMinutes: 120}, nil)

		got, err := svc.GetByID(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "Balayage", got.Name)
	})

	t.Run("missing maps to not found", func(t *testing.T) {
		repo := new(MockCatalogRepo)
		svc := NewService(repo)

		repo.On("GetByID", ctx, 99).Return(nil, sql.ErrNoRows)

		got, err := svc.GetByID(ctx, 99)
		assert.ErrorIs(t, err, ErrServiceNotFound)
		assert.Nil(t, got)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		repo := new(MockCatalogRepo)
		svc := NewService(repo)

		dbErr := errors.New("connection reset")
		repo.On("GetByID", ctx, 3).Return(nil, dbErr)

		_, err := svc.GetByID(ctx, 3)
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestUpdateService(t *testing.T) {
	ctx := context.Background()
	active := true

	t.Run("valid update", func(t *testing.T) {
		repo := new(MockCatalogRepo)
		svc := NewService(repo)

		req := UpdateServiceRequest{Name: "Gel manicure", DurationMinutes: 45, PriceCents: 5000, Active: &active}
		repo.On("Update", ctx, 3, int64(7), "Gel manicure", 45, int64(5000), true).
			Return(&Service{ID: 3, ArtistID: 7, Name: "Gel manicure", DurationMinutes: 45, PriceCents: 5000, Active: true}, nil)

		got, err := svc.Update(ctx, 3, 7, req)
		require.NoError(t, err)
		assert.Equal(t, 45, got.DurationMinutes)
		repo.AssertExpectations(t)
	})

	t.Run("missing active flag", func(t *testing.T) {
		repo := new(MockCatalogRepo)
		svc := NewService(repo)

		req := UpdateServiceRequest{Name: "Gel manicure", DurationMinutes: 45, PriceCents: 5000}
		_, err := svc.Update(ctx, 3, 7, req)
		assert.ErrorIs(t, err, ErrInvalidService)
	})

	t.Run("not owned maps to not found", func(t *testing.T) {
		repo := new(MockCatalogRepo)
		svc := NewService(repo)

		req := UpdateServiceRequest{Name: "Gel manicure", DurationMinutes: 45, PriceCents: 5000, Active: &active}
		repo.On("Update", ctx, 3, int64(8), "Gel manicure", 45, int64(5000), true).
			Return(nil, sql.ErrNoRows)

		_, err := svc.Update(ctx, 3, 8, req)
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})
}

func TestDeactivateService(t *testing.T) {
	ctx := context.Background()

	t.Run("deactivates own service", func(t *testing.T) {
		repo := new(MockCatalogRepo)
		svc := NewService(repo)

		repo.On("Deactivate", ctx, 3, int64(7)).
			Return(&Service{ID: 3, ArtistID: 7, Name: "Gel manicure", DurationMinutes: 45, PriceCents: 5000, Active: false}, nil)

		got, err := svc.Deactivate(ctx, 3, 7)
		require.NoError(t, err)
		assert.False(t, got.Active)
		repo.AssertExpectations(t)
	})

	t.Run("not owned maps to not found", func(t *testing.T) {
		repo := new(MockCatalogRepo)
		svc := NewService(repo)

		repo.On("Deactivate", ctx, 3, int64(8)).Return(nil, sql.ErrNoRows)

		_, err := svc.Deactivate(ctx, 3, 8)
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})
}
