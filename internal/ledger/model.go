package ledger

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusDeclined  Status = "declined"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// Blocks reports whether a booking in this status holds its interval against
// other reservations. A pending hold blocks just like a confirmed booking
// until it is promoted or released.
func (s Status) Blocks() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Terminal statuses have no outgoing transitions.
func (s Status) Terminal() bool {
	return s == StatusDeclined || s == StatusCancelled || s == StatusCompleted
}

type Booking struct {
	ID        uuid.UUID `db:"id" json:"id"`
	ArtistID  int64     `db:"artist_id" json:"artist_id"`
	ClientID  int64     `db:"client_id" json:"client_id"`
	ServiceID int       `db:"service_id" json:"service_id"`
	StartAt   time.Time `db:"start_at" json:"start_at"`
	EndAt     time.Time `db:"end_at" json:"end_at"`
	Status    Status    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
