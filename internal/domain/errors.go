package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRecordNotFound      = errors.New("record not found")
	ErrShowtimeInactive    = errors.New("showtime is not active")
	ErrEditConflict        = errors.New("edit conflict")
	ErrSeatGeneration      = errors.New("seat layout generation failed")
	ErrBookingNotEligible  = errors.New("booking is not eligible for check-in")
	ErrAlreadyCheckedIn    = errors.New("booking is already checked in")
	ErrSettlementNotFound  = errors.New("no pending booking for settlement reference")
	ErrTransientStore      = errors.New("transient storage error")
)

// SeatsUnavailableError reports seats that conflict with a confirmed booking
// or are blocked. It carries the seat numbers so the caller can re-render
// availability.
type SeatsUnavailableError struct {
	SeatNumbers []string
}

func (e *SeatsUnavailableError) Error() string {
	return fmt.Sprintf("seats unavailable: %s", strings.Join(e.SeatNumbers, ", "))
}

// SeatsHeldError reports seats under a live hold belonging to another holder.
type SeatsHeldError struct {
	SeatNumbers []string
}

func (e *SeatsHeldError) Error() string {
	return fmt.Sprintf("seats held by another customer: %s", strings.Join(e.SeatNumbers, ", "))
}

// SeatsUnknownError reports requested seat numbers that do not exist on the
// showtime's screen.
type SeatsUnknownError struct {
	SeatNumbers []string
}

func (e *SeatsUnknownError) Error() string {
	return fmt.Sprintf("unknown seats: %s", strings.Join(e.SeatNumbers, ", "))
}
