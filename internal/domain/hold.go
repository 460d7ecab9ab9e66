package domain

import (
	"context"
	"time"
)

// HoldTTL is the fixed lifetime of a seat hold.
const HoldTTL = 10 * time.Minute

// SeatHold is an advisory, time-bounded claim on one seat by one holder. It
// grants priority during seat selection, not ownership: expiry is time-based,
// so liveness must be re-checked at every point a hold is relied upon. The
// real exclusion guarantee lives in the booking transaction.
type SeatHold struct {
	ID         string
	SeatID     int
	SeatNumber string
	ShowtimeID int
	HolderID   string
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

// IsLive reports whether the hold is still in effect at the given instant.
// A hold row's mere existence proves nothing; the sweeper runs on a delay.
func (h SeatHold) IsLive(now time.Time) bool {
	return h.ExpiresAt.After(now)
}

type HoldRepository interface {
	// HoldSeats atomically creates one hold per seat, or fails without
	// creating any. Conflicts are reported as SeatsUnavailableError or
	// SeatsHeldError carrying the offending seat numbers.
	HoldSeats(ctx context.Context, showtime *Showtime, seatIDs []int, holderID string, ttl time.Duration) ([]SeatHold, error)

	// ReleaseHolds deletes only holds owned by holderID. Foreign hold ids
	// are ignored rather than rejected, so callers cannot probe for the
	// existence of other customers' holds.
	ReleaseHolds(ctx context.Context, holdIDs []string, holderID string) (int64, error)

	// GetLiveSeatIDs returns the seat ids of the showtime that currently
	// carry a live hold, keyed by holder.
	GetLiveSeatIDs(ctx context.Context, showtimeID int) (map[int]string, error)

	// DeleteExpired removes all holds whose expiry has passed and returns
	// how many rows were deleted.
	DeleteExpired(ctx context.Context) (int64, error)
}
