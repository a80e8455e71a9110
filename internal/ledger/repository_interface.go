package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Reserve(ctx context.Context, artistID, clientID int64, serviceID int, startAt, endAt time.Time) (*Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) error
	ExpirePending(ctx context.Context, cutoff time.Time) ([]Booking, error)
	CompleteElapsed(ctx context.Context, now time.Time) ([]Booking, error)
	ListBlocking(ctx context.Context, artistID int64, from, to time.Time) ([]Booking, error)
	ListByClient(ctx context.Context, clientID int64) ([]Booking, error)
	ListByArtist(ctx context.Context, artistID int64, from, to time.Time) ([]Booking, error)
}
