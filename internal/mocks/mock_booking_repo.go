package mocks

import (
	"context"

	"github.com/metinatakli/ticket-inventory-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepo struct {
	mock.Mock
	domain.BookingRepository
}

func (m *MockBookingRepo) Create(ctx context.Context, params domain.CreateBookingParams) (*domain.Booking, error) {
	args := m.Called(ctx, params)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) Cancel(ctx context.Context, bookingID int) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) GetByID(ctx context.Context, id int) (*domain.Booking, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	args := m.Called(ctx, reference)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) Settle(ctx context.Context, externalRef string, succeeded bool) (*domain.Booking, error) {
	args := m.Called(ctx, externalRef, succeeded)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) CheckIn(ctx context.Context, bookingID int) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Booking), args.Error(1)
}
