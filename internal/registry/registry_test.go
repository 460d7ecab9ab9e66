package registry

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/metinatakli/ticket-inventory-system/internal/domain"
	"github.com/metinatakli/ticket-inventory-system/internal/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testCategories() []domain.SeatCategory {
	return []domain.SeatCategory{
		{ID: 1, Name: "STANDARD", Price: decimal.NewFromInt(100)},
		{ID: 2, Name: "PREMIUM", Price: decimal.NewFromInt(150)},
	}
}

func TestGenerateLayout(t *testing.T) {
	tests := []struct {
		name       string
		capacity   int
		wantSeats  int
		wantErr    bool
		checkSeats func(t *testing.T, seats []domain.Seat)
	}{
		{
			name:     "should reject non-positive capacity",
			capacity: 0,
			wantErr:  true,
		},
		{
			name:      "should fill a single partial row",
			capacity:  7,
			wantSeats: 7,
			checkSeats: func(t *testing.T, seats []domain.Seat) {
				assert.Equal(t, "A1", seats[0].SeatNumber)
				assert.Equal(t, "A7", seats[6].SeatNumber)
			},
		},
		{
			name:      "should split rows of ten and band categories front to back",
			capacity:  40,
			wantSeats: 40,
			checkSeats: func(t *testing.T, seats []domain.Seat) {
				assert.Equal(t, "A1", seats[0].SeatNumber)
				assert.Equal(t, "D10", seats[39].SeatNumber)

				// Cheapest category in front rows, priciest in the back.
				assert.Equal(t, "STANDARD", seats[0].Category)
				assert.Equal(t, "PREMIUM", seats[39].Category)
			},
		},
		{
			name:      "should label rows beyond Z with double letters",
			capacity:  270,
			wantSeats: 270,
			checkSeats: func(t *testing.T, seats []domain.Seat) {
				assert.Equal(t, "AA1", seats[260].SeatNumber)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seats, err := GenerateLayout(1, tt.capacity, testCategories())

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Len(t, seats, tt.wantSeats)

			// The layout must be deterministic.
			again, err := GenerateLayout(1, tt.capacity, testCategories())
			require.NoError(t, err)

			if diff := cmp.Diff(seats, again, cmp.Comparer(decimal.Decimal.Equal)); diff != "" {
				t.Errorf("Mismatch (-want +got):\n%s", diff)
			}

			if tt.checkSeats != nil {
				tt.checkSeats(t, seats)
			}
		})
	}
}

func TestEnsureSeatsProvisioned(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("should short-circuit when seats already exist", func(t *testing.T) {
		seatRepo := new(mocks.MockSeatRepo)
		seatRepo.On("CountByScreen", mock.Anything, 1).Return(20, nil)
		seatRepo.On("GetByScreen", mock.Anything, 1).Return([]domain.Seat{{ID: 1}}, nil)

		r := NewRegistry(seatRepo, logger)

		seats, err := r.EnsureSeatsProvisioned(context.Background(), 1, 20)

		require.NoError(t, err)
		assert.Len(t, seats, 1)
		seatRepo.AssertNotCalled(t, "CreateBulk")
	})

	t.Run("should create default categories when none are configured", func(t *testing.T) {
		seatRepo := new(mocks.MockSeatRepo)
		seatRepo.On("CountByScreen", mock.Anything, 1).Return(0, nil)
		seatRepo.On("GetCategories", mock.Anything).Return([]domain.SeatCategory{}, nil)
		seatRepo.On("EnsureDefaultCategories", mock.Anything).Return(testCategories(), nil)
		seatRepo.On("CreateBulk", mock.Anything, mock.MatchedBy(func(seats []domain.Seat) bool {
			return len(seats) == 20
		})).Return(nil)
		seatRepo.On("GetByScreen", mock.Anything, 1).Return(seatsOfLen(20), nil)

		r := NewRegistry(seatRepo, logger)

		seats, err := r.EnsureSeatsProvisioned(context.Background(), 1, 20)

		require.NoError(t, err)
		assert.Len(t, seats, 20)
		seatRepo.AssertExpectations(t)
	})
}

func seatsOfLen(n int) []domain.Seat {
	seats := make([]domain.Seat, n)
	for i := range seats {
		seats[i] = domain.Seat{ID: i + 1}
	}
	return seats
}
