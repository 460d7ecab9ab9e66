package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/ticket-inventory-system/internal/domain"
	"github.com/shopspring/decimal"
)

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

const bookingColumns = `
	id, reference, showtime_id, customer_name, customer_email, customer_phone,
	seat_numbers, seat_count, unit_price, total_amount, payment_method,
	payment_status, booking_status, channel, external_ref, checked_in_at,
	created_at, updated_at
`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var booking domain.Booking

	err := row.Scan(
		&booking.ID,
		&booking.Reference,
		&booking.ShowtimeID,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.CustomerPhone,
		&booking.SeatNumbers,
		&booking.SeatCount,
		&booking.UnitPrice,
		&booking.TotalAmount,
		&booking.PaymentMethod,
		&booking.PaymentStatus,
		&booking.BookingStatus,
		&booking.Channel,
		&booking.ExternalRef,
		&booking.CheckedInAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &booking, nil
}

// Create converts a set of seats into a booking as one atomic unit of work.
// The showtime row is locked first (it owns the counter), then the seat rows
// in id order, which serializes rival bookings and rival holds on the same
// seats. The unique index on booking_seats (showtime_id, seat_id) backstops
// the double-booking invariant in the storage layer: even if the serialized
// check were ever bypassed, a second booking for a taken seat cannot commit.
func (p *PostgresBookingRepository) Create(ctx context.Context, params domain.CreateBookingParams) (*domain.Booking, error) {
	var booking *domain.Booking

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `SET LOCAL lock_timeout = '3s'`)
		if err != nil {
			return err
		}

		query := `
			SELECT id, screen_id, total_seats, available_seats, active
			FROM showtimes
			WHERE id = $1
			FOR UPDATE
		`

		var showtime domain.Showtime

		err = tx.QueryRow(ctx, query, params.ShowtimeID).Scan(
			&showtime.ID,
			&showtime.ScreenID,
			&showtime.TotalSeats,
			&showtime.AvailableSeats,
			&showtime.Active,
		)

		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		if !showtime.Active {
			return domain.ErrRecordNotFound
		}

		seats, err := lockSeatsByNumber(ctx, tx, showtime.ScreenID, params.SeatNumbers)
		if err != nil {
			return err
		}

		unavailable := make([]string, 0)
		for _, seat := range seats {
			if seat.Status != domain.SeatStatusAvailable {
				unavailable = append(unavailable, seat.SeatNumber)
			}
		}

		seatIDs := make([]int, len(seats))
		for i, seat := range seats {
			seatIDs[i] = seat.ID
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

		held, err := collectStrings(tx.Query(ctx, query, seatIDs, params.HolderID))
		if err != nil {
			return err
		}

		if len(held) > 0 {
			return &domain.SeatsHeldError{SeatNumbers: held}
		}

		totalAmount := decimal.Zero
		for _, seat := range seats {
			totalAmount = totalAmount.Add(seat.Price)
		}
		unitPrice := totalAmount.Div(decimal.NewFromInt(int64(len(seats)))).Round(2)

		paymentStatus := domain.PaymentStatusPending
		bookingStatus := domain.BookingStatusPending

		// Cash settles at the counter, so the sale completes in the same
		// transaction. Everything else waits for the settlement callback.
		if params.PaymentMethod == domain.PaymentMethodCash {
			paymentStatus = domain.PaymentStatusCompleted
			bookingStatus = domain.BookingStatusConfirmed
		}

		seatNumbers := make([]string, len(seats))
		for i, seat := range seats {
			seatNumbers[i] = seat.SeatNumber
		}

		query = `
			INSERT INTO bookings (
				reference, showtime_id, customer_name, customer_email, customer_phone,
				seat_numbers, seat_count, unit_price, total_amount, payment_method,
				payment_status, booking_status, channel, external_ref
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			RETURNING ` + bookingColumns

		booking, err = scanBooking(tx.QueryRow(
			ctx,
			query,
			domain.NewBookingReference(),
			showtime.ID,
			params.CustomerName,
			params.CustomerEmail,
			params.CustomerPhone,
			seatNumbers,
			len(seats),
			unitPrice,
			totalAmount,
			params.PaymentMethod,
			paymentStatus,
			bookingStatus,
			params.Channel,
			params.ExternalRef,
		))

		if err != nil {
			return err
		}

		// Holds on the claimed seats are superseded by the booking,
		// whoever owned them.
		_, err = tx.Exec(ctx, `DELETE FROM seat_holds WHERE seat_id = ANY($1)`, seatIDs)
		if err != nil {
			return err
		}

		return claimSeats(ctx, tx, booking.ID, showtime.ID, seatIDs)
	})

	if err != nil {
		if isUniqueViolation(err, "booking_seats_showtime_id_seat_id_key") {
			return nil, &domain.SeatsUnavailableError{SeatNumbers: params.SeatNumbers}
		}

		return nil, wrapTransient(err)
	}

	return booking, nil
}

func lockSeatsByNumber(ctx context.Context, tx pgx.Tx, screenID int, seatNumbers []string) ([]domain.Seat, error) {
	// Locked in id order so concurrent bookings with overlapping seat sets
	// cannot deadlock each other.
	query := `
		SELECT id, seat_number, price, status
		FROM seats
		WHERE screen_id = $1 AND seat_number = ANY($2)
		ORDER BY id
		FOR UPDATE
	`

	rows, err := tx.Query(ctx, query, screenID, seatNumbers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0, len(seatNumbers))

	for rows.Next() {
		var seat domain.Seat

		if err := rows.Scan(&seat.ID, &seat.SeatNumber, &seat.Price, &seat.Status); err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(seats) != len(seatNumbers) {
		found := make(map[string]bool, len(seats))
		for _, seat := range seats {
			found[seat.SeatNumber] = true
		}

		missing := make([]string, 0)
		for _, n := range seatNumbers {
			if !found[n] {
				missing = append(missing, n)
			}
		}

		return nil, &domain.SeatsUnknownError{SeatNumbers: missing}
	}

	return seats, nil
}

func claimSeats(ctx context.Context, tx pgx.Tx, bookingID, showtimeID int, seatIDs []int) error {
	rows := make([][]any, 0, len(seatIDs))
	for _, seatID := range seatIDs {
		rows = append(rows, []any{bookingID, showtimeID, seatID})
	}

	_, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"booking_seats"},
		[]string{"booking_id", "showtime_id", "seat_id"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return err
	}

	query := `
		UPDATE seats
		SET status = 'BOOKED', booking_id = $1
		WHERE id = ANY($2)
	`

	_, err = tx.Exec(ctx, query, bookingID, seatIDs)
	if err != nil {
		return err
	}

	query = `
		UPDATE showtimes
		SET available_seats = available_seats - $1, updated_at = NOW()
		WHERE id = $2
	`

	_, err = tx.Exec(ctx, query, len(seatIDs), showtimeID)

	return err
}

func (p *PostgresBookingRepository) Cancel(ctx context.Context, bookingID int) (*domain.Booking, error) {
	var booking *domain.Booking

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		current, err := lockBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}

		if current.BookingStatus == domain.BookingStatusCancelled {
			return domain.ErrEditConflict
		}

		booking, err = cancelBookingTx(ctx, tx, current, refundedStatus(current.PaymentStatus))

		return err
	})

	if err != nil {
		return nil, wrapTransient(err)
	}

	return booking, nil
}

func refundedStatus(current domain.PaymentStatus) domain.PaymentStatus {
	if current == domain.PaymentStatusCompleted {
		return domain.PaymentStatusRefunded
	}

	return current
}

func lockBooking(ctx context.Context, tx pgx.Tx, bookingID int) (*domain.Booking, error) {
	query := `SELECT` + bookingColumns + `FROM bookings WHERE id = $1 FOR UPDATE`

	return scanBooking(tx.QueryRow(ctx, query, bookingID))
}

// cancelBookingTx reverts the sale inside an existing transaction: booking
// CANCELLED, seats back to AVAILABLE with back-references cleared, claim rows
// removed, counter restored.
func cancelBookingTx(
	ctx context.Context,
	tx pgx.Tx,
	current *domain.Booking,
	paymentStatus domain.PaymentStatus) (*domain.Booking, error) {

	query := `
		UPDATE bookings
		SET booking_status = 'CANCELLED', payment_status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + bookingColumns

	booking, err := scanBooking(tx.QueryRow(ctx, query, paymentStatus, current.ID))
	if err != nil {
		return nil, err
	}

	query = `
		UPDATE seats
		SET status = 'AVAILABLE', booking_id = NULL
		WHERE booking_id = $1
	`

	if _, err = tx.Exec(ctx, query, current.ID); err != nil {
		return nil, err
	}

	if _, err = tx.Exec(ctx, `DELETE FROM booking_seats WHERE booking_id = $1`, current.ID); err != nil {
		return nil, err
	}

	if current.ShowtimeID != nil {
		query = `
			UPDATE showtimes
			SET available_seats = available_seats + $1, updated_at = NOW()
			WHERE id = $2
		`

		if _, err = tx.Exec(ctx, query, current.SeatCount, *current.ShowtimeID); err != nil {
			return nil, err
		}
	}

	return booking, nil
}

func (p *PostgresBookingRepository) GetByID(ctx context.Context, id int) (*domain.Booking, error) {
	query := `SELECT` + bookingColumns + `FROM bookings WHERE id = $1`

	return scanBooking(p.db.QueryRow(ctx, query, id))
}

func (p *PostgresBookingRepository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	query := `SELECT` + bookingColumns + `FROM bookings WHERE reference = $1`

	return scanBooking(p.db.QueryRow(ctx, query, reference))
}

// Settle applies the payment collaborator's verdict to a PENDING booking. A
// successful settlement confirms the sale; a failed one cancels it and frees
// the seats in the same transaction.
func (p *PostgresBookingRepository) Settle(ctx context.Context, externalRef string, succeeded bool) (*domain.Booking, error) {
	var booking *domain.Booking

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `SELECT` + bookingColumns + `
			FROM bookings
			WHERE external_ref = $1 AND payment_status = 'PENDING'
			FOR UPDATE`

		current, err := scanBooking(tx.QueryRow(ctx, query, externalRef))
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return domain.ErrSettlementNotFound
			}

			return err
		}

		if !succeeded {
			booking, err = cancelBookingTx(ctx, tx, current, domain.PaymentStatusFailed)
			return err
		}

		query = `
			UPDATE bookings
			SET payment_status = 'COMPLETED', booking_status = 'CONFIRMED', updated_at = NOW()
			WHERE id = $1
			RETURNING ` + bookingColumns

		booking, err = scanBooking(tx.QueryRow(ctx, query, current.ID))

		return err
	})

	if err != nil {
		return nil, wrapTransient(err)
	}

	return booking, nil
}

func (p *PostgresBookingRepository) CheckIn(ctx context.Context, bookingID int) (*domain.Booking, error) {
	var booking *domain.Booking

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		current, err := lockBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}

		if current.CheckedInAt != nil {
			return domain.ErrAlreadyCheckedIn
		}

		if !current.IsCheckInEligible() {
			return domain.ErrBookingNotEligible
		}

		query := `
			UPDATE bookings
			SET checked_in_at = NOW(), updated_at = NOW()
			WHERE id = $1
			RETURNING ` + bookingColumns

		booking, err = scanBooking(tx.QueryRow(ctx, query, bookingID))

		return err
	})

	if err != nil {
		return nil, wrapTransient(err)
	}

	return booking, nil
}
