package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"emvibook/internal/logger"
	"emvibook/internal/metrics"
)

const queueKey = "booking_events"

// Event names pushed onto the queue. Downstream consumers (notification
// workers, analytics) drain the list; the engine only produces. A hold
// released by TTL expiry emits BookingDeclined like an explicit decline.
const (
	BookingRequested = "booking.requested"
	BookingConfirmed = "booking.confirmed"
	BookingDeclined  = "booking.declined"
	BookingCancelled = "booking.cancelled"
	BookingCompleted = "booking.completed"
)

type Event struct {
	Event     string    `json:"event"`
	BookingID uuid.UUID `json:"booking_id"`
	ArtistID  int64     `json:"artist_id"`
	ClientID  int64     `json:"client_id"`
	ServiceID int       `json:"service_id"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	Timestamp time.Time `json:"timestamp"`
}

type Emitter struct {
	redis *redis.Client
}

func New(redisAddr string) *Emitter {
	return &Emitter{
		redis: redis.NewClient(&redis.Options{
			Addr: redisAddr,
		}),
	}
}

// Emit queues a lifecycle event. Failures are logged and counted but
// never propagated: event delivery must not fail a booking operation.
func (e *Emitter) Emit(ctx context.Context, event Event) {
	event.Timestamp = time.Now().UTC()

	data, err := json.Marshal(event)
	if err != nil {
		logger.Errorf("Failed to marshal event %s for booking %s: %v", event.Event, event.BookingID, err)
		metrics.RecordEvent(event.Event, "error")
		return
	}

	if err := e.redis.LPush(ctx, queueKey, data).Err(); err != nil {
		logger.Errorf("Failed to queue event %s for booking %s: %v", event.Event, event.BookingID, err)
		metrics.RecordEvent(event.Event, "error")
		return
	}

	logger.Debugf("Event queued: %s for booking %s", event.Event, event.BookingID)
	metrics.RecordEvent(event.Event, "queued")
}

func (e *Emitter) QueueLength(ctx context.Context) int64 {
	length, _ := e.redis.LLen(ctx, queueKey).Result()
	return length
}

func (e *Emitter) Close() error {
	return e.redis.Close()
}
