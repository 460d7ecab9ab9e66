package domain

import "context"

// SeatUpdate is one record of a channel feed: an externally originated seat
// status change (theater point-of-sale, walk-in desk, partner platform).
type SeatUpdate struct {
	SeatNumber  string
	Status      SeatStatus
	Channel     Channel
	ExternalRef *string
}

// SeatUpdateResult reports the per-seat outcome of a sync batch. Channel
// feeds are append-only streams, so one bad record never rejects the batch.
type SeatUpdateResult struct {
	SeatNumber string
	Applied    bool
	BookingRef string
	Err        error
}

type ChannelSyncRepository interface {
	// ApplyUpdate applies a single external seat update in its own
	// transaction. Transitions to BOOKED materialize a channel-attributed
	// booking so the seat's back-reference stays valid and auditable.
	// Re-applying an already-applied update is a no-op.
	ApplyUpdate(ctx context.Context, showtime *Showtime, update SeatUpdate) (*SeatUpdateResult, error)
}
