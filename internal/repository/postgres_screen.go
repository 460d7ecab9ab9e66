package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/ticket-inventory-system/internal/domain"
)

type PostgresScreenRepository struct {
	db *pgxpool.Pool
}

func NewPostgresScreenRepository(db *pgxpool.Pool) *PostgresScreenRepository {
	return &PostgresScreenRepository{
		db: db,
	}
}

func (p *PostgresScreenRepository) Create(ctx context.Context, screen *domain.Screen) error {
	query := `
		INSERT INTO screens (name, capacity)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	return p.db.QueryRow(ctx, query, screen.Name, screen.Capacity).Scan(&screen.ID, &screen.CreatedAt)
}

func (p *PostgresScreenRepository) GetByID(ctx context.Context, id int) (*domain.Screen, error) {
	query := `
		SELECT id, name, capacity, created_at
		FROM screens
		WHERE id = $1
	`

	var screen domain.Screen

	err := p.db.QueryRow(ctx, query, id).Scan(
		&screen.ID,
		&screen.Name,
		&screen.Capacity,
		&screen.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &screen, nil
}
