package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

type PaymentMethod string

const (
	// PaymentMethodCash settles synchronously at the counter, so bookings
	// confirm immediately. Card and online methods stay PENDING until the
	// payment collaborator calls back with a settlement result.
	PaymentMethodCash   PaymentMethod = "CASH"
	PaymentMethodCard   PaymentMethod = "CARD"
	PaymentMethodOnline PaymentMethod = "ONLINE"
)

type Channel string

const (
	ChannelDirect  Channel = "DIRECT"
	ChannelWalkIn  Channel = "WALK_IN"
	ChannelPOS     Channel = "POS"
	ChannelPartner Channel = "PARTNER"
)

// ChannelCustomerName is the reserved placeholder identity for bookings
// materialized from external channels, which have no authenticated customer.
// Reporting distinguishes these from genuine anonymous booking failures by
// this name plus the origin channel tag.
const ChannelCustomerName = "CHANNEL"

// Booking is the durable record of a sale. Immutable once CONFIRMED except
// for the payment and check-in fields.
type Booking struct {
	ID            int
	Reference     string
	ShowtimeID    *int
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	SeatNumbers   []string
	SeatCount     int
	UnitPrice     decimal.Decimal
	TotalAmount   decimal.Decimal
	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus
	BookingStatus BookingStatus
	Channel       Channel
	ExternalRef   *string
	CheckedInAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsCheckInEligible reports whether the check-in collaborator may stamp this
// booking: only a confirmed booking with completed payment is a valid ticket.
func (b *Booking) IsCheckInEligible() bool {
	return b.PaymentStatus == PaymentStatusCompleted && b.BookingStatus == BookingStatusConfirmed
}

// NewBookingReference mints a globally unique, human-shareable reference such
// as TKT-9F3A27C1. The hex tail comes from a v4 UUID, so retries with
// identical input always produce a fresh reference.
func NewBookingReference() string {
	id := uuid.New()

	return "TKT-" + strings.ToUpper(id.String()[:8])
}

// CreateBookingParams carries everything the booking transaction needs.
// HolderID identifies the caller for hold ownership checks; it is the session
// token for guests or the customer id supplied by the identity layer.
type CreateBookingParams struct {
	ShowtimeID    int
	SeatNumbers   []string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	PaymentMethod PaymentMethod
	Channel       Channel
	HolderID      string
	ExternalRef   *string
}

type BookingRepository interface {
	// Create runs the whole booking unit of work in one transaction: seat
	// resolution, conflict checks, the booking row, hold supersession,
	// seat claiming, and the counter decrement commit together or not at
	// all. Rival transactions on the same seats are serialized by seat row
	// locks, with the booking_seats unique index as the storage backstop.
	Create(ctx context.Context, params CreateBookingParams) (*Booking, error)

	// Cancel reverts the sale: seats back to AVAILABLE, back-references
	// cleared, counter restored, all atomically.
	Cancel(ctx context.Context, bookingID int) (*Booking, error)

	GetByID(ctx context.Context, id int) (*Booking, error)
	GetByReference(ctx context.Context, reference string) (*Booking, error)

	// Settle transitions a PENDING booking according to the settlement
	// result reported by the payment collaborator. A failed settlement
	// cancels the booking and frees its seats.
	Settle(ctx context.Context, externalRef string, succeeded bool) (*Booking, error)

	// CheckIn stamps the check-in timestamp, only when the booking is
	// CONFIRMED with COMPLETED payment and not already checked in.
	CheckIn(ctx context.Context, bookingID int) (*Booking, error)
}
