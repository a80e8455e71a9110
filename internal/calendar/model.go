package calendar

import "time"

// AvailabilityRule is a recurring weekly open-hours window for one artist.
// Rules are never mutated in place: superseding inserts a new row and
// deactivates the old one, leaving a superseded_by back-reference so bookings
// made against a prior version stay explainable.
type AvailabilityRule struct {
	ID           int       `db:"id" json:"id"`
	ArtistID     int64     `db:"artist_id" json:"artist_id"`
	Weekday      int       `db:"weekday" json:"weekday"`
	StartMinute  int       `db:"start_minute" json:"start_minute"`
	EndMinute    int       `db:"end_minute" json:"end_minute"`
	Active       bool      `db:"active" json:"active"`
	SupersededBy *int      `db:"superseded_by" json:"superseded_by,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// TimeOffException blocks availability for a dated interval regardless of
// rules. Removal is a hard delete; exceptions carry no booking dependency.
type TimeOffException struct {
	ID        int       `db:"id" json:"id"`
	ArtistID  int64     `db:"artist_id" json:"artist_id"`
	StartAt   time.Time `db:"start_at" json:"start_at"`
	EndAt     time.Time `db:"end_at" json:"end_at"`
	Reason    string    `db:"reason" json:"reason,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CreateRuleRequest struct {
	Weekday     int `json:"weekday"`
	StartMinute int `json:"start_minute"`
	EndMinute   int `json:"end_minute"`
}

type CreateTimeOffRequest struct {
	StartAt string `json:"start_at" binding:"required"`
	EndAt   string `json:"end_at" binding:"required"`
	Reason  string `json:"reason"`
}
