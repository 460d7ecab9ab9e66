package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/ticket-inventory-system/internal/domain"
)

type PostgresSeatRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSeatRepository(db *pgxpool.Pool) *PostgresSeatRepository {
	return &PostgresSeatRepository{
		db: db,
	}
}

func (p *PostgresSeatRepository) GetByScreen(ctx context.Context, screenID int) ([]domain.Seat, error) {
	query := `
		SELECT s.id, s.screen_id, s.seat_number, s.seat_row, s.seat_col,
			s.category_id, c.name, s.price, s.status, s.booking_id
		FROM seats s
		JOIN seat_categories c ON s.category_id = c.id
		WHERE s.screen_id = $1
		ORDER BY s.seat_row, s.seat_col
	`

	rows, err := p.db.Query(ctx, query, screenID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0)

	for rows.Next() {
		var seat domain.Seat

		err = rows.Scan(
			&seat.ID,
			&seat.ScreenID,
			&seat.SeatNumber,
			&seat.Row,
			&seat.Col,
			&seat.CategoryID,
			&seat.Category,
			&seat.Price,
			&seat.Status,
			&seat.BookingID,
		)

		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}

func (p *PostgresSeatRepository) GetByID(ctx context.Context, id int) (*domain.Seat, error) {
	query := `
		SELECT s.id, s.screen_id, s.seat_number, s.seat_row, s.seat_col,
			s.category_id, c.name, s.price, s.status, s.booking_id
		FROM seats s
		JOIN seat_categories c ON s.category_id = c.id
		WHERE s.id = $1
	`

	var seat domain.Seat

	err := p.db.QueryRow(ctx, query, id).Scan(
		&seat.ID,
		&seat.ScreenID,
		&seat.SeatNumber,
		&seat.Row,
		&seat.Col,
		&seat.CategoryID,
		&seat.Category,
		&seat.Price,
		&seat.Status,
		&seat.BookingID,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &seat, nil
}

func (p *PostgresSeatRepository) CountByScreen(ctx context.Context, screenID int) (int, error) {
	var count int

	err := p.db.QueryRow(ctx, `SELECT COUNT(*) FROM seats WHERE screen_id = $1`, screenID).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// CreateBulk persists a generated layout. Inserts are idempotent on
// (screen_id, seat_number), so a retried provisioning run or a racing first
// query cannot duplicate seats.
func (p *PostgresSeatRepository) CreateBulk(ctx context.Context, seats []domain.Seat) error {
	if len(seats) == 0 {
		return nil
	}

	query := `
		INSERT INTO seats (screen_id, seat_number, seat_row, seat_col, category_id, price)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (screen_id, seat_number) DO NOTHING
	`

	batch := &pgx.Batch{}

	for _, seat := range seats {
		batch.Queue(query, seat.ScreenID, seat.SeatNumber, seat.Row, seat.Col, seat.CategoryID, seat.Price)
	}

	return p.db.SendBatch(ctx, batch).Close()
}

func (p *PostgresSeatRepository) GetCategories(ctx context.Context) ([]domain.SeatCategory, error) {
	query := `
		SELECT id, name, price
		FROM seat_categories
		ORDER BY price
	`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]domain.SeatCategory, 0)

	for rows.Next() {
		var category domain.SeatCategory

		err = rows.Scan(&category.ID, &category.Name, &category.Price)
		if err != nil {
			return nil, err
		}

		categories = append(categories, category)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

// EnsureDefaultCategories creates the minimal category set when none exist,
// so lazy seat generation never fails for lack of configuration.
func (p *PostgresSeatRepository) EnsureDefaultCategories(ctx context.Context) ([]domain.SeatCategory, error) {
	query := `
		INSERT INTO seat_categories (name, price)
		VALUES ('STANDARD', 100.00), ('PREMIUM', 150.00)
		ON CONFLICT (name) DO NOTHING
	`

	_, err := p.db.Exec(ctx, query)
	if err != nil {
		return nil, err
	}

	return p.GetCategories(ctx)
}
