package mocks

import (
	"context"
	"time"

	"github.com/metinatakli/ticket-inventory-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockHoldRepo struct {
	mock.Mock
	domain.HoldRepository
}

func (m *MockHoldRepo) HoldSeats(ctx context.Context, showtime *domain.Showtime, seatIDs []int, holderID string, ttl time.Duration) ([]domain.SeatHold, error) {
	args := m.Called(ctx, showtime, seatIDs, holderID, ttl)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.SeatHold), args.Error(1)
}

func (m *MockHoldRepo) ReleaseHolds(ctx context.Context, holdIDs []string, holderID string) (int64, error) {
	args := m.Called(ctx, holdIDs, holderID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHoldRepo) GetLiveSeatIDs(ctx context.Context, showtimeID int) (map[int]string, error) {
	args := m.Called(ctx, showtimeID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(map[int]string), args.Error(1)
}

func (m *MockHoldRepo) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
