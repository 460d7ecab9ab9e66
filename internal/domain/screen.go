package domain

import (
	"context"
	"time"
)

type Screen struct {
	ID        int
	Name      string
	Capacity  int
	CreatedAt time.Time
}

type ScreenRepository interface {
	Create(ctx context.Context, screen *Screen) error
	GetByID(ctx context.Context, id int) (*Screen, error)
}
