// Package api defines the request and response bodies of the HTTP surface.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	ValidationErrors []ValidationError `json:"validationErrors"`
	RequestId        string            `json:"requestId,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
}

// SeatConflictResponse carries the seat numbers a caller must re-select.
type SeatConflictResponse struct {
	Message     string    `json:"message"`
	SeatNumbers []string  `json:"seatNumbers"`
	RequestId   string    `json:"requestId,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

type HealthcheckResponse struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
}

type CreateScreenRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Capacity int    `json:"capacity" validate:"required,gt=0,lte=500"`
}

type ScreenResponse struct {
	Id       int    `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Seats    []Seat `json:"seats,omitempty"`
}

type Seat struct {
	Id         int             `json:"id"`
	SeatNumber string          `json:"seatNumber"`
	Row        int             `json:"row"`
	Column     int             `json:"column"`
	Category   string          `json:"category"`
	Price      decimal.Decimal `json:"price"`
	Status     string          `json:"status"`
}

type CreateShowtimeRequest struct {
	ScreenId  int       `json:"screenId" validate:"required,gt=0"`
	StartTime time.Time `json:"startTime" validate:"required"`
}

type ShowtimeResponse struct {
	Id             int       `json:"id"`
	ScreenId       int       `json:"screenId"`
	StartTime      time.Time `json:"startTime"`
	TotalSeats     int       `json:"totalSeats"`
	AvailableSeats int       `json:"availableSeats"`
	Active         bool      `json:"active"`
}

type HoldSeatsRequest struct {
	SeatIdList []int `json:"seatIdList" validate:"required,min=1,max=8,unique,dive,gt=0"`
}

type Hold struct {
	Id         string    `json:"id"`
	SeatId     int       `json:"seatId"`
	SeatNumber string    `json:"seatNumber"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

type HoldsResponse struct {
	ShowtimeId int    `json:"showtimeId"`
	Holds      []Hold `json:"holds"`
}

type ReleaseHoldsRequest struct {
	HoldIdList []string `json:"holdIdList" validate:"required,min=1,dive,uuid4"`
}

type CreateBookingRequest struct {
	ShowtimeId    int      `json:"showtimeId" validate:"required,gt=0"`
	SeatNumbers   []string `json:"seatNumbers" validate:"required,min=1,max=8,unique,dive,seat_number"`
	CustomerName  string   `json:"customerName" validate:"required,max=100"`
	CustomerEmail string   `json:"customerEmail" validate:"required,email"`
	CustomerPhone string   `json:"customerPhone" validate:"omitempty,max=20"`
	PaymentMethod string   `json:"paymentMethod" validate:"required,payment_method"`
	ExternalRef   *string  `json:"externalRef,omitempty" validate:"omitempty,max=200"`
}

type BookingResponse struct {
	Id            int             `json:"id"`
	Reference     string          `json:"reference"`
	ShowtimeId    *int            `json:"showtimeId,omitempty"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	SeatNumbers   []string        `json:"seatNumbers"`
	SeatCount     int             `json:"seatCount"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaymentMethod string          `json:"paymentMethod"`
	PaymentStatus string          `json:"paymentStatus"`
	BookingStatus string          `json:"bookingStatus"`
	Channel       string          `json:"channel"`
	CheckedInAt   *time.Time      `json:"checkedInAt,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type SeatUpdate struct {
	SeatNumber  string  `json:"seatNumber" validate:"required,seat_number"`
	Status      string  `json:"status" validate:"required,seat_status"`
	Channel     string  `json:"channel" validate:"omitempty,channel"`
	ExternalRef *string `json:"externalRef,omitempty" validate:"omitempty,max=200"`
}

type SyncRequest struct {
	Updates []SeatUpdate `json:"updates" validate:"required,min=1,max=100,dive"`
}

type SeatUpdateResult struct {
	SeatNumber string  `json:"seatNumber"`
	Applied    bool    `json:"applied"`
	BookingRef string  `json:"bookingRef,omitempty"`
	Error      *string `json:"error,omitempty"`
}

type SyncResponse struct {
	ShowtimeId     int                `json:"showtimeId"`
	Applied        int                `json:"applied"`
	Failed         int                `json:"failed"`
	AvailableSeats int                `json:"availableSeats"`
	Results        []SeatUpdateResult `json:"results"`
}

type AvailabilitySeat struct {
	Id         int             `json:"id"`
	SeatNumber string          `json:"seatNumber"`
	Row        int             `json:"row"`
	Column     int             `json:"column"`
	Category   string          `json:"category"`
	Price      decimal.Decimal `json:"price"`
	Available  bool            `json:"available"`
	Held       bool            `json:"held"`
}

type AvailabilityResponse struct {
	ShowtimeId     int                `json:"showtimeId"`
	AvailableSeats int                `json:"availableSeats"`
	Seats          []AvailabilitySeat `json:"seats"`
}
