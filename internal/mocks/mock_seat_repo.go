package mocks

import (
	"context"

	"github.com/metinatakli/ticket-inventory-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockSeatRepo struct {
	mock.Mock
	domain.SeatRepository
}

func (m *MockSeatRepo) GetByScreen(ctx context.Context, screenID int) ([]domain.Seat, error) {
	args := m.Called(ctx, screenID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Seat), args.Error(1)
}

func (m *MockSeatRepo) GetByID(ctx context.Context, id int) (*domain.Seat, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Seat), args.Error(1)
}

func (m *MockSeatRepo) CountByScreen(ctx context.Context, screenID int) (int, error) {
	args := m.Called(ctx, screenID)
	return args.Int(0), args.Error(1)
}

func (m *MockSeatRepo) CreateBulk(ctx context.Context, seats []domain.Seat) error {
	args := m.Called(ctx, seats)
	return args.Error(0)
}

func (m *MockSeatRepo) GetCategories(ctx context.Context) ([]domain.SeatCategory, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.SeatCategory), args.Error(1)
}

func (m *MockSeatRepo) EnsureDefaultCategories(ctx context.Context) ([]domain.SeatCategory, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.SeatCategory), args.Error(1)
}
