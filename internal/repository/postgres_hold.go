package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/ticket-inventory-system/internal/domain"
)

type PostgresHoldRepository struct {
	db *pgxpool.Pool
}

func NewPostgresHoldRepository(db *pgxpool.Pool) *PostgresHoldRepository {
	return &PostgresHoldRepository{
		db: db,
	}
}

// HoldSeats creates one hold per seat inside a single transaction. The seat
// rows are locked first so two racing hold requests for the same seats are
// serialized; whichever commits second sees the winner's holds and fails.
// Liveness is always expressed as expires_at > NOW() — an expired row that
// the sweeper has not yet removed never blocks a new hold.
func (p *PostgresHoldRepository) HoldSeats(
	ctx context.Context,
	showtime *domain.Showtime,
	seatIDs []int,
	holderID string,
	ttl time.Duration) ([]domain.SeatHold, error) {

	var holds []domain.SeatHold

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `SET LOCAL lock_timeout = '3s'`)
		if err != nil {
			return err
		}

		query := `
			SELECT id, seat_number, status
			FROM seats
			WHERE screen_id = $1 AND id = ANY($2)
			ORDER BY id
			FOR UPDATE
		`

		rows, err := tx.Query(ctx, query, showtime.ScreenID, seatIDs)
		if err != nil {
			return err
		}

		type lockedSeat struct {
			id         int
			seatNumber string
			status     domain.SeatStatus
		}

		seats := make([]lockedSeat, 0, len(seatIDs))

		for rows.Next() {
			var seat lockedSeat

			if err := rows.Scan(&seat.id, &seat.seatNumber, &seat.status); err != nil {
				rows.Close()
				return err
			}

			seats = append(seats, seat)
		}

		if err = rows.Err(); err != nil {
			return err
		}

		if len(seats) != len(seatIDs) {
			return domain.ErrRecordNotFound
		}

		unavailable := make([]string, 0)
		for _, seat := range seats {
			if seat.status != domain.SeatStatusAvailable {
				unavailable = append(unavailable, seat.seatNumber)
			}
		}

		query = `
			SELECT DISTINCT s.seat_number
			FROM booking_seats bs
			JOIN seats s ON s.id = bs.seat_id
			JOIN bookings b ON b.id = bs.booking_id
			WHERE bs.showtime_id = $1 AND bs.seat_id = ANY($2) AND b.booking_status = 'CONFIRMED'
		`

		booked, err := collectStrings(tx.Query(ctx, query, showtime.ID, seatIDs))
		if err != nil {
			return err
		}

		unavailable = mergeSeatNumbers(unavailable, booked)
		if len(unavailable) > 0 {
			return &domain.SeatsUnavailableError{SeatNumbers: unavailable}
		}

		query = `
			SELECT DISTINCT s.seat_number
			FROM seat_holds h
			JOIN seats s ON s.id = h.seat_id
			WHERE h.seat_id = ANY($1) AND h.expires_at > NOW() AND h.holder_id <> $2
		`

		held, err := collectStrings(tx.Query(ctx, query, seatIDs, holderID))
		if err != nil {
			return err
		}

		if len(held) > 0 {
			return &domain.SeatsHeldError{SeatNumbers: held}
		}

		// Clear expired leftovers and the holder's own previous holds on
		// these seats; the fresh holds below replace them.
		query = `
			DELETE FROM seat_holds
			WHERE seat_id = ANY($1) AND (expires_at <= NOW() OR holder_id = $2)
		`

		_, err = tx.Exec(ctx, query, seatIDs, holderID)
		if err != nil {
			return err
		}

		expiresAt := time.Now().Add(ttl)
		holds = make([]domain.SeatHold, 0, len(seats))
		copyRows := make([][]any, 0, len(seats))

		for _, seat := range seats {
			hold := domain.SeatHold{
				ID:         uuid.New().String(),
				SeatID:     seat.id,
				SeatNumber: seat.seatNumber,
				ShowtimeID: showtime.ID,
				HolderID:   holderID,
				ExpiresAt:  expiresAt,
			}

			holds = append(holds, hold)
			copyRows = append(copyRows, []any{hold.ID, hold.SeatID, hold.ShowtimeID, hold.HolderID, hold.ExpiresAt})
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"seat_holds"},
			[]string{"id", "seat_id", "showtime_id", "holder_id", "expires_at"},
			pgx.CopyFromRows(copyRows),
		)

		return err
	})

	if err != nil {
		return nil, wrapTransient(err)
	}

	return holds, nil
}

// ReleaseHolds deletes only the caller's holds. Hold ids belonging to another
// holder simply do not match the predicate, so the operation stays a silent
// no-op for them and leaks nothing about their existence.
func (p *PostgresHoldRepository) ReleaseHolds(ctx context.Context, holdIDs []string, holderID string) (int64, error) {
	query := `
		DELETE FROM seat_holds
		WHERE id = ANY($1::uuid[]) AND holder_id = $2
	`

	tag, err := p.db.Exec(ctx, query, holdIDs, holderID)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func (p *PostgresHoldRepository) GetLiveSeatIDs(ctx context.Context, showtimeID int) (map[int]string, error) {
	query := `
		SELECT seat_id, holder_id
		FROM seat_holds
		WHERE showtime_id = $1 AND expires_at > NOW()
	`

	rows, err := p.db.Query(ctx, query, showtimeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holders := make(map[int]string)

	for rows.Next() {
		var (
			seatID   int
			holderID string
		)

		if err := rows.Scan(&seatID, &holderID); err != nil {
			return nil, err
		}

		holders[seatID] = holderID
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return holders, nil
}

func (p *PostgresHoldRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := p.db.Exec(ctx, `DELETE FROM seat_holds WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func collectStrings(rows pgx.Rows, err error) ([]string, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make([]string, 0)

	for rows.Next() {
		var value string

		if err := rows.Scan(&value); err != nil {
			return nil, err
		}

		values = append(values, value)
	}

	return values, rows.Err()
}

func mergeSeatNumbers(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	merged := make([]string, 0, len(a)+len(b))

	for _, numbers := range [][]string{a, b} {
		for _, n := range numbers {
			if !seen[n] {
				seen[n] = true
				merged = append(merged, n)
			}
		}
	}

	return merged
}
