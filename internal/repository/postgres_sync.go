package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/ticket-inventory-system/internal/domain"
)

type PostgresChannelSyncRepository struct {
	db *pgxpool.Pool
}

func NewPostgresChannelSyncRepository(db *pgxpool.Pool) *PostgresChannelSyncRepository {
	return &PostgresChannelSyncRepository{
		db: db,
	}
}

// ApplyUpdate applies one externally originated seat transition in its own
// transaction, so a bad record in a channel feed never poisons the rest of
// the batch. Deterministic rejections (unknown seat, seat claimed by a rival
// booking) come back on the result, not as an error; only store-level
// failures abort the feed. Re-applying an update the seat already reflects
// is a no-op, which makes the whole batch idempotent.
func (p *PostgresChannelSyncRepository) ApplyUpdate(
	ctx context.Context,
	showtime *domain.Showtime,
	update domain.SeatUpdate) (*domain.SeatUpdateResult, error) {

	result := &domain.SeatUpdateResult{SeatNumber: update.SeatNumber}

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `SET LOCAL lock_timeout = '3s'`)
		if err != nil {
			return err
		}

		query := `
			SELECT id, seat_number, price, status, booking_id
			FROM seats
			WHERE screen_id = $1 AND seat_number = $2
			FOR UPDATE
		`

		var seat domain.Seat

		err = tx.QueryRow(ctx, query, showtime.ScreenID, update.SeatNumber).Scan(
			&seat.ID,
			&seat.SeatNumber,
			&seat.Price,
			&seat.Status,
			&seat.BookingID,
		)

		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		if seat.Status == update.Status {
			result.Applied = true

			if update.Status == domain.SeatStatusBooked && seat.BookingID != nil {
				err = tx.QueryRow(ctx, `SELECT reference FROM bookings WHERE id = $1`, *seat.BookingID).
					Scan(&result.BookingRef)
				if err != nil && !errors.Is(err, pgx.ErrNoRows) {
					return err
				}
			}

			return nil
		}

		switch update.Status {
		case domain.SeatStatusBooked:
			return p.applyBooked(ctx, tx, showtime, seat, update, result)
		case domain.SeatStatusAvailable:
			return p.applyReleased(ctx, tx, showtime, seat, result)
		case domain.SeatStatusBlocked:
			return p.applyBlocked(ctx, tx, showtime, seat, result)
		default:
			return errors.New("unknown target seat status")
		}
	})

	if err != nil {
		var seatsUnavailable *domain.SeatsUnavailableError

		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			result.Err = fmt.Errorf("seat %s not found on this screen", update.SeatNumber)
		case errors.As(err, &seatsUnavailable):
			result.Err = err
		default:
			return nil, wrapTransient(err)
		}
	}

	return result, nil
}

// applyBooked materializes a channel-attributed booking for the seat so its
// back-reference stays valid and the sale is auditable. The placeholder
// customer name plus the channel tag distinguish it from a direct sale.
func (p *PostgresChannelSyncRepository) applyBooked(
	ctx context.Context,
	tx pgx.Tx,
	showtime *domain.Showtime,
	seat domain.Seat,
	update domain.SeatUpdate,
	result *domain.SeatUpdateResult) error {

	channel := update.Channel
	if channel == "" {
		channel = domain.ChannelPOS
	}

	query := `
		INSERT INTO bookings (
			reference, showtime_id, customer_name, customer_email, customer_phone,
			seat_numbers, seat_count, unit_price, total_amount, payment_method,
			payment_status, booking_status, channel, external_ref
		)
		VALUES ($1, $2, $3, '', '', $4, 1, $5, $5, 'EXTERNAL', 'COMPLETED', 'CONFIRMED', $6, $7)
		RETURNING id, reference
	`

	var (
		bookingID int
		reference string
	)

	err := tx.QueryRow(
		ctx,
		query,
		domain.NewBookingReference(),
		showtime.ID,
		domain.ChannelCustomerName,
		[]string{seat.SeatNumber},
		seat.Price,
		channel,
		update.ExternalRef,
	).Scan(&bookingID, &reference)

	if err != nil {
		return err
	}

	if err := claimSeats(ctx, tx, bookingID, showtime.ID, []int{seat.ID}); err != nil {
		if isUniqueViolation(err, "booking_seats_showtime_id_seat_id_key") {
			return &domain.SeatsUnavailableError{SeatNumbers: []string{seat.SeatNumber}}
		}

		return err
	}

	// A channel sale trumps any hold on the seat.
	if _, err := tx.Exec(ctx, `DELETE FROM seat_holds WHERE seat_id = $1`, seat.ID); err != nil {
		return err
	}

	result.Applied = true
	result.BookingRef = reference

	return nil
}

func (p *PostgresChannelSyncRepository) applyReleased(
	ctx context.Context,
	tx pgx.Tx,
	showtime *domain.Showtime,
	seat domain.Seat,
	result *domain.SeatUpdateResult) error {

	query := `
		UPDATE seats
		SET status = 'AVAILABLE', booking_id = NULL
		WHERE id = $1
	`

	if _, err := tx.Exec(ctx, query, seat.ID); err != nil {
		return err
	}

	query = `DELETE FROM booking_seats WHERE showtime_id = $1 AND seat_id = $2`

	if _, err := tx.Exec(ctx, query, showtime.ID, seat.ID); err != nil {
		return err
	}

	// Single-seat channel bookings exist only to carry the seat's claim, so
	// releasing the seat cancels them. Multi-seat direct bookings are left
	// alone; releasing one of their seats is an inventory correction, not a
	// cancellation.
	if seat.BookingID != nil {
		query = `
			UPDATE bookings
			SET booking_status = 'CANCELLED', updated_at = NOW()
			WHERE id = $1 AND channel <> 'DIRECT' AND seat_count = 1
		`

		if _, err := tx.Exec(ctx, query, *seat.BookingID); err != nil {
			return err
		}
	}

	result.Applied = true

	return nil
}

func (p *PostgresChannelSyncRepository) applyBlocked(
	ctx context.Context,
	tx pgx.Tx,
	showtime *domain.Showtime,
	seat domain.Seat,
	result *domain.SeatUpdateResult) error {

	if seat.Status == domain.SeatStatusBooked {
		if err := p.applyReleased(ctx, tx, showtime, seat, result); err != nil {
			return err
		}
	}

	query := `
		UPDATE seats
		SET status = 'BLOCKED', booking_id = NULL
		WHERE id = $1
	`

	if _, err := tx.Exec(ctx, query, seat.ID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM seat_holds WHERE seat_id = $1`, seat.ID); err != nil {
		return err
	}

	result.Applied = true

	return nil
}
