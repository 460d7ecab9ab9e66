package mocks

import (
	"context"

	"github.com/metinatakli/ticket-inventory-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockChannelSyncRepo struct {
	mock.Mock
	domain.ChannelSyncRepository
}

func (m *MockChannelSyncRepo) ApplyUpdate(ctx context.Context, showtime *domain.Showtime, update domain.SeatUpdate) (*domain.SeatUpdateResult, error) {
	args := m.Called(ctx, showtime, update)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.SeatUpdateResult), args.Error(1)
}
