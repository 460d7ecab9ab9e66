package domain

import (
	"context"
	"time"
)

// Showtime is a scheduled screening on a screen. AvailableSeats is a cached
// counter; the authoritative value is always re-derivable from the screen's
// BOOKED seats, and RecomputeAvailableSeats is the reconciliation path.
type Showtime struct {
	ID             int
	ScreenID       int
	StartTime      time.Time
	TotalSeats     int
	AvailableSeats int
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type ShowtimeRepository interface {
	Create(ctx context.Context, showtime *Showtime) error
	GetByID(ctx context.Context, id int) (*Showtime, error)
	Deactivate(ctx context.Context, id int) error
	RecomputeAvailableSeats(ctx context.Context, id int) (int, error)
}
