package engine

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"emvibook/internal/calendar"
	"emvibook/internal/catalog"
	"emvibook/internal/events"
	"emvibook/internal/ledger"
	"emvibook/internal/logger"
	"emvibook/internal/metrics"
	"emvibook/internal/slots"
)

const (
	// Longest availability window a single query may cover.
	maxQueryWindow = 90 * 24 * time.Hour

	reserveAttempts = 3
	reserveBackoff  = 100 * time.Millisecond
)

var (
	ErrNoActiveRules      = errors.New("artist has no active availability rules")
	ErrInvalidQueryWindow = errors.New("invalid availability query window")
	ErrSlotUnavailable    = errors.New("requested slot is not available")
	ErrStartInPast        = errors.New("booking must start in the future")
	ErrInvalidInterval    = errors.New("requested interval is malformed or shorter than the service")
	ErrServiceUnavailable = errors.New("service is not offered by this artist")
	ErrNotAllowed         = errors.New("not allowed to act on this booking")
)

// EventEmitter is what the engine needs from the event queue.
type EventEmitter interface {
	Emit(ctx context.Context, event events.Event)
}

// Service ties the calendar, catalog and booking ledger together into the
// operations the HTTP layer exposes. All availability reads expire stale
// pending holds first so queries never show slots blocked by dead holds.
type Service struct {
	rules        calendar.Service
	offerings    catalog.CatalogService
	bookings     ledger.Service
	emitter      EventEmitter
	minIncrement time.Duration
}

func NewService(rules calendar.Service, offerings catalog.CatalogService, bookings ledger.Service, emitter EventEmitter, minIncrement time.Duration) *Service {
	return &Service{
		rules:        rules,
		offerings:    offerings,
		bookings:     bookings,
		emitter:      emitter,
		minIncrement: minIncrement,
	}
}

// GetAvailability resolves the open slots for one artist over [from, to).
// Returns ErrNoActiveRules when the artist has never published a schedule,
// so callers can distinguish "no schedule" from "fully booked".
func (s *Service) GetAvailability(ctx context.Context, artistID int64, from, to time.Time) ([]slots.ResolvedSlot, error) {
	if !from.Before(to) || to.Sub(from) > maxQueryWindow {
		return nil, ErrInvalidQueryWindow
	}

	s.expireStaleHolds(ctx)

	rules, err := s.rules.ListActiveRules(ctx, artistID)
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return nil, ErrNoActiveRules
	}

	exceptions, err := s.rules.ListTimeOff(ctx, artistID, from, to)
	if err != nil {
		return nil, err
	}

	blocking, err := s.bookings.ListBlocking(ctx, artistID, from, to)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resolved := slots.Resolve(rules, exceptions, blocking, from, to, s.minIncrement)
	metrics.RecordResolve(time.Since(start).Seconds())

	return resolved, nil
}

// RequestBooking places a pending hold for a client on an artist's slot.
// A zero endAt books exactly the service duration; an explicit endAt may
// pad beyond it but never undercut it. The requested interval is re-resolved
// against current state immediately before reserving; the reservation itself
// is serialized per artist in the ledger, so two clients racing for the same
// slot cannot both win.
func (s *Service) RequestBooking(ctx context.Context, clientID, artistID int64, serviceID int, startAt, endAt time.Time) (*ledger.Booking, error) {
	offering, err := s.offerings.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if offering.ArtistID != artistID || !offering.Active {
		return nil, ErrServiceUnavailable
	}

	startAt = startAt.UTC()
	if !startAt.After(time.Now().UTC()) {
		return nil, ErrStartInPast
	}

	duration := time.Duration(offering.DurationMinutes) * time.Minute
	if endAt.IsZero() {
		endAt = startAt.Add(duration)
	} else {
		endAt = endAt.UTC()
		if !startAt.Before(endAt) || endAt.Sub(startAt) < duration {
			return nil, ErrInvalidInterval
		}
	}

	// Stale holds must not block a fresh request.
	s.expireStaleHolds(ctx)

	if err := s.checkOpen(ctx, artistID, startAt, endAt); err != nil {
		return nil, err
	}

	booking, err := s.reserveWithRetry(ctx, artistID, clientID, serviceID, startAt, endAt)
	if err != nil {
		if errors.Is(err, ledger.ErrBookingConflict) || ledger.IsRetryable(err) {
			metrics.RecordReserveConflict()
			return nil, ErrSlotUnavailable
		}
		return nil, err
	}

	metrics.RecordBooking(string(booking.Status))
	s.emit(ctx, events.BookingRequested, booking)

	return booking, nil
}

// checkOpen verifies [startAt, endAt) lies inside a currently open slot.
// Resolved with a zero increment so a short service is not rejected just
// for being under the public listing increment.
func (s *Service) checkOpen(ctx context.Context, artistID int64, startAt, endAt time.Time) error {
	rules, err := s.rules.ListActiveRules(ctx, artistID)
	if err != nil {
		return err
	}
	if len(rules) == 0 {
		return ErrNoActiveRules
	}

	exceptions, err := s.rules.ListTimeOff(ctx, artistID, startAt, endAt)
	if err != nil {
		return err
	}

	blocking, err := s.bookings.ListBlocking(ctx, artistID, startAt, endAt)
	if err != nil {
		return err
	}

	open := slots.Resolve(rules, exceptions, blocking, startAt, endAt, 0)
	for _, slot := range open {
		if !slot.StartAt.After(startAt) && !slot.EndAt.Before(endAt) {
			return nil
		}
	}
	return ErrSlotUnavailable
}

func (s *Service) reserveWithRetry(ctx context.Context, artistID, clientID int64, serviceID int, startAt, endAt time.Time) (*ledger.Booking, error) {
	var booking *ledger.Booking
	var err error

	for attempt := 1; attempt <= reserveAttempts; attempt++ {
		booking, err = s.bookings.Reserve(ctx, artistID, clientID, serviceID, startAt, endAt)
		if err == nil || !ledger.IsRetryable(err) {
			return booking, err
		}

		logger.Infof("Retrying reservation for artist %d (attempt %d): %v", artistID, attempt, err)
		time.Sleep(time.Duration(attempt) * reserveBackoff)
	}

	return nil, err
}

// Confirm accepts a pending booking. Only the booked artist may confirm.
func (s *Service) Confirm(ctx context.Context, artistID int64, id uuid.UUID) (*ledger.Booking, error) {
	if err := s.authorizeArtist(ctx, artistID, id); err != nil {
		return nil, err
	}

	booking, err := s.bookings.Confirm(ctx, id)
	if err != nil {
		return nil, err
	}

	metrics.RecordBooking(string(booking.Status))
	s.emit(ctx, events.BookingConfirmed, booking)

	return booking, nil
}

// Decline rejects a pending booking and releases its hold.
func (s *Service) Decline(ctx context.Context, artistID int64, id uuid.UUID) (*ledger.Booking, error) {
	if err := s.authorizeArtist(ctx, artistID, id); err != nil {
		return nil, err
	}

	booking, err := s.bookings.Decline(ctx, id)
	if err != nil {
		return nil, err
	}

	metrics.RecordBooking(string(booking.Status))
	s.emit(ctx, events.BookingDeclined, booking)

	return booking, nil
}

// Cancel releases a confirmed booking. Either side of the booking may
// cancel; the ledger enforces the cancellation cutoff.
func (s *Service) Cancel(ctx context.Context, userID int64, id uuid.UUID) (*ledger.Booking, error) {
	existing, err := s.bookings.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.ArtistID != userID && existing.ClientID != userID {
		return nil, ErrNotAllowed
	}

	booking, err := s.bookings.Cancel(ctx, id)
	if err != nil {
		return nil, err
	}

	metrics.RecordBooking(string(booking.Status))
	s.emit(ctx, events.BookingCancelled, booking)

	return booking, nil
}

// GetBooking fetches a single booking for either participant.
func (s *Service) GetBooking(ctx context.Context, userID int64, id uuid.UUID) (*ledger.Booking, error) {
	booking, err := s.bookings.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.ArtistID != userID && booking.ClientID != userID {
		return nil, ErrNotAllowed
	}
	return booking, nil
}

func (s *Service) ListClientBookings(ctx context.Context, clientID int64) ([]ledger.Booking, error) {
	return s.bookings.ListByClient(ctx, clientID)
}

func (s *Service) ListArtistBookings(ctx context.Context, artistID int64, from, to time.Time) ([]ledger.Booking, error) {
	if !from.Before(to) || to.Sub(from) > maxQueryWindow {
		return nil, ErrInvalidQueryWindow
	}
	return s.bookings.ListByArtist(ctx, artistID, from, to)
}

func (s *Service) authorizeArtist(ctx context.Context, artistID int64, id uuid.UUID) error {
	booking, err := s.bookings.Get(ctx, id)
	if err != nil {
		return err
	}
	if booking.ArtistID != artistID {
		return ErrNotAllowed
	}
	return nil
}

func (s *Service) expireStaleHolds(ctx context.Context) {
	expired, err := s.bookings.ExpirePending(ctx, time.Now().UTC())
	if err != nil {
		logger.Errorf("Failed to expire pending holds: %v", err)
		return
	}
	if len(expired) == 0 {
		return
	}

	metrics.RecordExpiredHolds(len(expired))
	for i := range expired {
		s.emit(ctx, events.BookingDeclined, &expired[i])
	}
}

// Sweep runs one maintenance pass: expire stale pending holds and mark
// confirmed bookings whose end time has passed as completed. Both steps
// are idempotent, so overlapping sweeps are harmless.
func (s *Service) Sweep(ctx context.Context) {
	s.expireStaleHolds(ctx)

	completed, err := s.bookings.CompleteElapsed(ctx, time.Now().UTC())
	if err != nil {
		logger.Errorf("Failed to complete elapsed bookings: %v", err)
		return
	}
	if len(completed) > 0 {
		logger.Infof("Marked %d elapsed bookings completed", len(completed))
		for i := range completed {
			s.emit(ctx, events.BookingCompleted, &completed[i])
		}
	}
}

func (s *Service) emit(ctx context.Context, name string, b *ledger.Booking) {
	if s.emitter == nil {
		return
	}
	s.emitter.Emit(ctx, events.Event{
		Event:     name,
		BookingID: b.ID,
		ArtistID:  b.ArtistID,
		ClientID:  b.ClientID,
		ServiceID: b.ServiceID,
		StartAt:   b.StartAt,
		EndAt:     b.EndAt,
	})
}
