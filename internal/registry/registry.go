// Package registry owns the static seat inventory of a screen: listing, and
// lazy provisioning of a deterministic layout when a screen has no seats yet.
package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/metinatakli/ticket-inventory-system/internal/domain"
)

const seatsPerRow = 10

type Registry struct {
	seats  domain.SeatRepository
	logger *slog.Logger
}

func NewRegistry(seats domain.SeatRepository, logger *slog.Logger) *Registry {
	return &Registry{
		seats:  seats,
		logger: logger,
	}
}

func (r *Registry) ListSeats(ctx context.Context, screenID int) ([]domain.Seat, error) {
	return r.seats.GetByScreen(ctx, screenID)
}

// EnsureSeatsProvisioned generates and persists a layout for the screen if it
// has none. Generation is deterministic from capacity and the category set,
// and persistence is idempotent on (screen, seat number), so a retry or a
// racing first query converges on the same layout.
func (r *Registry) EnsureSeatsProvisioned(ctx context.Context, screenID, capacity int) ([]domain.Seat, error) {
	count, err := r.seats.CountByScreen(ctx, screenID)
	if err != nil {
		return nil, err
	}

	if count > 0 {
		return r.seats.GetByScreen(ctx, screenID)
	}

	categories, err := r.seats.GetCategories(ctx)
	if err != nil {
		return nil, err
	}

	if len(categories) == 0 {
		r.logger.Warn("no seat categories configured, creating defaults", "screen_id", screenID)

		categories, err = r.seats.EnsureDefaultCategories(ctx)
		if err != nil {
			return nil, err
		}
	}

	layout, err := GenerateLayout(screenID, capacity, categories)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSeatGeneration, err)
	}

	if err := r.seats.CreateBulk(ctx, layout); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSeatGeneration, err)
	}

	r.logger.Info("provisioned seat layout", "screen_id", screenID, "seats", len(layout))

	return r.seats.GetByScreen(ctx, screenID)
}

// GenerateLayout builds a seat grid of rows of ten from the screen capacity.
// Categories are assigned by row band in ascending price order: the cheapest
// category fills the front rows, the most expensive the back rows.
func GenerateLayout(screenID, capacity int, categories []domain.SeatCategory) ([]domain.Seat, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("capacity must be positive, got %d", capacity)
	}

	if len(categories) == 0 {
		return nil, fmt.Errorf("no seat categories available")
	}

	rowCount := (capacity + seatsPerRow - 1) / seatsPerRow
	seats := make([]domain.Seat, 0, capacity)

	for i := 0; i < capacity; i++ {
		row := i / seatsPerRow
		col := i%seatsPerRow + 1
		category := categoryForRow(row, rowCount, categories)

		seats = append(seats, domain.Seat{
			ScreenID:   screenID,
			SeatNumber: fmt.Sprintf("%s%d", rowLabel(row), col),
			Row:        row + 1,
			Col:        col,
			CategoryID: category.ID,
			Category:   category.Name,
			Price:      category.Price,
			Status:     domain.SeatStatusAvailable,
		})
	}

	return seats, nil
}

func categoryForRow(row, rowCount int, categories []domain.SeatCategory) domain.SeatCategory {
	band := row * len(categories) / rowCount
	if band >= len(categories) {
		band = len(categories) - 1
	}

	return categories[band]
}

func rowLabel(row int) string {
	if row < 26 {
		return string(rune('A' + row))
	}

	return string(rune('A'+row/26-1)) + string(rune('A'+row%26))
}
