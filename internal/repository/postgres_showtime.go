package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/ticket-inventory-system/internal/domain"
)

type PostgresShowtimeRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShowtimeRepository(db *pgxpool.Pool) *PostgresShowtimeRepository {
	return &PostgresShowtimeRepository{
		db: db,
	}
}

func (p *PostgresShowtimeRepository) Create(ctx context.Context, showtime *domain.Showtime) error {
	// The counter starts at total minus seats already BOOKED on the screen,
	// so the invariant holds from the first read.
	query := `
		INSERT INTO showtimes (screen_id, start_time, total_seats, available_seats)
		SELECT $1, $2, COUNT(*), COUNT(*) - COUNT(*) FILTER (WHERE status = 'BOOKED')
		FROM seats
		WHERE screen_id = $1
		RETURNING id, total_seats, available_seats, active, created_at, updated_at
	`

	return p.db.QueryRow(ctx, query, showtime.ScreenID, showtime.StartTime).Scan(
		&showtime.ID,
		&showtime.TotalSeats,
		&showtime.AvailableSeats,
		&showtime.Active,
		&showtime.CreatedAt,
		&showtime.UpdatedAt,
	)
}

func (p *PostgresShowtimeRepository) GetByID(ctx context.Context, id int) (*domain.Showtime, error) {
	query := `
		SELECT id, screen_id, start_time, total_seats, available_seats, active, created_at, updated_at
		FROM showtimes
		WHERE id = $1
	`

	var showtime domain.Showtime

	err := p.db.QueryRow(ctx, query, id).Scan(
		&showtime.ID,
		&showtime.ScreenID,
		&showtime.StartTime,
		&showtime.TotalSeats,
		&showtime.AvailableSeats,
		&showtime.Active,
		&showtime.CreatedAt,
		&showtime.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &showtime, nil
}

func (p *PostgresShowtimeRepository) Deactivate(ctx context.Context, id int) error {
	query := `
		UPDATE showtimes
		SET active = false, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := p.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

// RecomputeAvailableSeats rebuilds the cached counter from actual seat
// statuses. This is the authoritative reconciliation step; it heals any drift
// accumulated from partial failures elsewhere, and always wins over the
// incremental fast path.
func (p *PostgresShowtimeRepository) RecomputeAvailableSeats(ctx context.Context, id int) (int, error) {
	query := `
		UPDATE showtimes st
		SET available_seats = st.total_seats - (
			SELECT COUNT(*)
			FROM seats s
			WHERE s.screen_id = st.screen_id AND s.status = 'BOOKED'
		), updated_at = NOW()
		WHERE st.id = $1
		RETURNING st.available_seats
	`

	var availableSeats int

	err := p.db.QueryRow(ctx, query, id).Scan(&availableSeats)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrRecordNotFound
		}

		return 0, err
	}

	return availableSeats, nil
}
