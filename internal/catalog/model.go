package catalog

import "time"

// Service is a bookable offering published by an artist, e.g. a 60
// minute gel manicure. Duration drives how long a booking occupies the
// artist's calendar.
type Service struct {
	ID              int       `db:"id" json:"id"`
	ArtistID        int64     `db:"artist_id" json:"artist_id"`
	Name            string    `db:"name" json:"name"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	PriceCents      int64     `db:"price_cents" json:"price_cents"`
	Active          bool      `db:"active" json:"active"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

type CreateServiceRequest struct {
	Name            string `json:"name" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required"`
	PriceCents      int64  `json:"price_cents"`
}

type UpdateServiceRequest struct {
	Name            string `json:"name" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required"`
	PriceCents      int64  `json:"price_cents"`
	Active          *bool  `json:"active" binding:"required"`
}
