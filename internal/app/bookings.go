package app

import (
	"context"
	"net/http"

	"github.com/metinatakli/ticket-inventory-system/api"
	"github.com/metinatakli/ticket-inventory-system/internal/domain"
)

// CreateBookingHandler runs the booking unit of work. All correctness lives in
// the repository transaction; the handler's job is shaping input and output
// and firing the confirmation mail without blocking the response.
func (app *Application) CreateBookingHandler(w http.ResponseWriter, r *http.Request) {
	var input api.CreateBookingRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	params := domain.CreateBookingParams{
		ShowtimeID:    input.ShowtimeId,
		SeatNumbers:   input.SeatNumbers,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: input.CustomerPhone,
		PaymentMethod: domain.PaymentMethod(input.PaymentMethod),
		Channel:       domain.ChannelDirect,
		HolderID:      app.contextGetHolderID(r),
		ExternalRef:   input.ExternalRef,
	}

	booking, err := app.bookingRepo.Create(r.Context(), params)
	if err != nil {
		app.respondDomainError(w, r, err)
		return
	}

	go func(ctx context.Context) {
		// new logger for this goroutine, inheriting context from the request
		// important for tracing across async boundaries
		gLogger := app.contextGetLogger(r.WithContext(ctx))

		defer func() {
			if err := recover(); err != nil {
				gLogger.Error("panic occurred during sending booking confirmation mail", "panic", err)
			}
		}()

		data := map[string]any{
			"reference":   booking.Reference,
			"seatNumbers": booking.SeatNumbers,
			"totalAmount": booking.TotalAmount,
		}

		err = app.mailer.Send(booking.CustomerEmail, "booking_confirmation.tmpl", data)
		if err != nil {
			gLogger.Error("failed to send booking confirmation email", "error", err, "reference", booking.Reference)
		} else {
			gLogger.Info("booking confirmation email sent", "reference", booking.Reference)
		}
	}(r.Context())

	err = app.writeJSON(w, http.StatusCreated, toApiBooking(booking), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetBookingHandler(w http.ResponseWriter, r *http.Request) {
	reference := app.readStringParam(r, "reference")
	if reference == "" {
		app.notFoundResponse(w, r)
		return
	}

	booking, err := app.bookingRepo.GetByReference(r.Context(), reference)
	if err != nil {
		app.respondDomainError(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiBooking(booking), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CancelBookingHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	bookingID, err := app.readIntParam(r, "bookingId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	booking, err := app.bookingRepo.Cancel(r.Context(), bookingID)
	if err != nil {
		app.respondDomainError(w, r, err)
		return
	}

	logger.Info("booking cancelled", "booking_id", booking.ID, "reference", booking.Reference, "seats", booking.SeatCount)

	err = app.writeJSON(w, http.StatusOK, toApiBooking(booking), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CheckInHandler(w http.ResponseWriter, r *http.Request) {
	bookingID, err := app.readIntParam(r, "bookingId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	booking, err := app.bookingRepo.CheckIn(r.Context(), bookingID)
	if err != nil {
		app.respondDomainError(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiBooking(booking), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toApiBooking(booking *domain.Booking) api.BookingResponse {
	return api.BookingResponse{
		Id:            booking.ID,
		Reference:     booking.Reference,
		ShowtimeId:    booking.ShowtimeID,
		CustomerName:  booking.CustomerName,
		CustomerEmail: booking.CustomerEmail,
		SeatNumbers:   booking.SeatNumbers,
		SeatCount:     booking.SeatCount,
		UnitPrice:     booking.UnitPrice,
		TotalAmount:   booking.TotalAmount,
		PaymentMethod: string(booking.PaymentMethod),
		PaymentStatus: string(booking.PaymentStatus),
		BookingStatus: string(booking.BookingStatus),
		Channel:       string(booking.Channel),
		CheckedInAt:   booking.CheckedInAt,
		CreatedAt:     booking.CreatedAt,
	}
}
