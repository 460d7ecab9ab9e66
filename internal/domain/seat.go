package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type SeatStatus string

const (
	SeatStatusAvailable SeatStatus = "AVAILABLE"
	SeatStatusBooked    SeatStatus = "BOOKED"
	SeatStatusBlocked   SeatStatus = "BLOCKED"
)

// Seat is a physical seat of a screen. Only Status and BookingID mutate per
// sale; everything else is fixed when the screen is provisioned.
type Seat struct {
	ID         int
	ScreenID   int
	SeatNumber string
	Row        int
	Col        int
	CategoryID int
	Category   string
	Price      decimal.Decimal
	Status     SeatStatus
	BookingID  *int
}

type SeatCategory struct {
	ID    int
	Name  string
	Price decimal.Decimal
}

type SeatRepository interface {
	GetByScreen(ctx context.Context, screenID int) ([]Seat, error)
	GetByID(ctx context.Context, id int) (*Seat, error)
	CountByScreen(ctx context.Context, screenID int) (int, error)
	CreateBulk(ctx context.Context, seats []Seat) error
	GetCategories(ctx context.Context) ([]SeatCategory, error)
	EnsureDefaultCategories(ctx context.Context) ([]SeatCategory, error)
}
