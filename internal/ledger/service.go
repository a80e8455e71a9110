package ledger

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound        = errors.New("booking not found")
	ErrBookingConflict        = errors.New("booking conflicts with an existing reservation")
	ErrInvalidTransition      = errors.New("invalid booking state transition")
	ErrInvalidInterval        = errors.New("booking interval start must be before end")
	ErrCancellationWindowOver = errors.New("cancellation window has closed")
)

type Service interface {
	Reserve(ctx context.Context, artistID, clientID int64, serviceID int, startAt, endAt time.Time) (*Booking, error)
	Confirm(ctx context.Context, id uuid.UUID) (*Booking, error)
	Decline(ctx context.Context, id uuid.UUID) (*Booking, error)
	Cancel(ctx context.Context, id uuid.UUID) (*Booking, error)
	ExpirePending(ctx context.Context, now time.Time) ([]Booking, error)
	CompleteElapsed(ctx context.Context, now time.Time) ([]Booking, error)
	Get(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListBlocking(ctx context.Context, artistID int64, from, to time.Time) ([]Booking, error)
	ListByClient(ctx context.Context, clientID int64) ([]Booking, error)
	ListByArtist(ctx context.Context, artistID int64, from, to time.Time) ([]Booking, error)
}

type service struct {
	repo               Repository
	pendingTTL         time.Duration
	cancellationCutoff time.Duration
}

func NewService(repo Repository, pendingTTL, cancellationCutoff time.Duration) Service {
	return &service{
		repo:               repo,
		pendingTTL:         pendingTTL,
		cancellationCutoff: cancellationCutoff,
	}
}

func (s *service) Reserve(ctx context.Context, artistID, clientID int64, serviceID int, startAt, endAt time.Time) (*Booking, error) {
	if !startAt.Before(endAt) {
		return nil, ErrInvalidInterval
	}

	booking, err := s.repo.Reserve(ctx, artistID, clientID, serviceID, startAt.UTC(), endAt.UTC())
	if err != nil {
		if errors.Is(err, ErrOverlap) {
			return nil, ErrBookingConflict
		}
		return nil, err
	}

	return booking, nil
}

func (s *service) Confirm(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return s.transition(ctx, id, StatusPending, StatusConfirmed)
}

func (s *service) Decline(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return s.transition(ctx, id, StatusPending, StatusDeclined)
}

// Cancel releases a confirmed booking, but only until the cancellation cutoff
// before its start. A pending hold is not cancellable: it is declined by the
// artist or released by TTL expiry.
func (s *service) Cancel(ctx context.Context, id uuid.UUID) (*Booking, error) {
	booking, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.Status != StatusConfirmed {
		return nil, ErrInvalidTransition
	}

	if time.Now().After(booking.StartAt.Add(-s.cancellationCutoff)) {
		return nil, ErrCancellationWindowOver
	}

	return s.transition(ctx, id, StatusConfirmed, StatusCancelled)
}

func (s *service) transition(ctx context.Context, id uuid.UUID, from, to Status) (*Booking, error) {
	err := s.repo.UpdateStatus(ctx, id, from, to)
	if err != nil {
		if !errors.Is(err, ErrNoMatchingBooking) {
			return nil, err
		}
		// Distinguish a missing booking from one in the wrong state.
		if _, getErr := s.repo.GetByID(ctx, id); getErr != nil {
			return nil, ErrBookingNotFound
		}
		return nil, ErrInvalidTransition
	}

	return s.repo.GetByID(ctx, id)
}

func (s *service) ExpirePending(ctx context.Context, now time.Time) ([]Booking, error) {
	return s.repo.ExpirePending(ctx, now.Add(-s.pendingTTL))
}

func (s *service) CompleteElapsed(ctx context.Context, now time.Time) ([]Booking, error) {
	return s.repo.CompleteElapsed(ctx, now)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *service) ListBlocking(ctx context.Context, artistID int64, from, to time.Time) ([]Booking, error) {
	return s.repo.ListBlocking(ctx, artistID, from, to)
}

func (s *service) ListByClient(ctx context.Context, clientID int64) ([]Booking, error) {
	return s.repo.ListByClient(ctx, clientID)
}

func (s *service) ListByArtist(ctx context.Context, artistID int64, from, to time.Time) ([]Booking, error) {
	return s.repo.ListByArtist(ctx, artistID, from, to)
}
