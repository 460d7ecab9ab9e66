package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/ticket-inventory-system/api"
	"github.com/metinatakli/ticket-inventory-system/internal/domain"
)

func (app *Application) CreateShowtimeHandler(w http.ResponseWriter, r *http.Request) {
	var input api.CreateShowtimeRequest

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

	screen, err := app.screenRepo.GetByID(r.Context(), input.ScreenId)
	if err != nil {
		app.respondDomainError(w, r, err)
		return
	}

	// Seats must exist before the showtime so its capacity and counter are
	// derived from the real layout.
	_, err = app.registry.EnsureSeatsProvisioned(r.Context(), screen.ID, screen.Capacity)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	showtime := &domain.Showtime{
		ScreenID:  screen.ID,
		StartTime: input.StartTime,
	}

	err = app.showtimeRepo.Create(r.Context(), showtime)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toApiShowtime(showtime), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetShowtimeHandler(w http.ResponseWriter, r *http.Request) {
	showtimeID, err := app.readIntParam(r, "showtimeId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	showtime, err := app.showtimeRepo.GetByID(r.Context(), showtimeID)
	if err != nil {
		app.respondDomainError(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiShowtime(showtime), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeactivateShowtimeHandler(w http.ResponseWriter, r *http.Request) {
	showtimeID, err := app.readIntParam(r, "showtimeId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.showtimeRepo.Deactivate(r.Context(), showtimeID)
	if err != nil {
		app.respondDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toApiShowtime(showtime *domain.Showtime) api.ShowtimeResponse {
	return api.ShowtimeResponse{
		Id:             showtime.ID,
		ScreenId:       showtime.ScreenID,
		StartTime:      showtime.StartTime,
		TotalSeats:     showtime.TotalSeats,
		AvailableSeats: showtime.AvailableSeats,
		Active:         showtime.Active,
	}
}

// respondDomainError translates the error taxonomy shared by all handlers:
// deterministic business outcomes go back to the caller with enough detail to
// re-render availability; transient store errors are retryable.
func (app *Application) respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		seatsUnavailable *domain.SeatsUnavailableError
		seatsHeld        *domain.SeatsHeldError
		seatsUnknown     *domain.SeatsUnknownError
	)

	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		app.notFoundResponse(w, r)
	case errors.As(err, &seatsUnavailable):
		app.seatConflictResponse(w, r, "some of the selected seats are already booked", seatsUnavailable.SeatNumbers)
	case errors.As(err, &seatsHeld):
		app.seatConflictResponse(w, r, "some of the selected seats are held by another customer", seatsHeld.SeatNumbers)
	case errors.As(err, &seatsUnknown):
		app.badRequestResponse(w, r, err)
	case errors.Is(err, domain.ErrShowtimeInactive),
		errors.Is(err, domain.ErrEditConflict),
		errors.Is(err, domain.ErrAlreadyCheckedIn),
		errors.Is(err, domain.ErrBookingNotEligible):
		app.editConflictResponseWithErr(w, r, err)
	case errors.Is(err, domain.ErrSettlementNotFound):
		app.notFoundResponseWithErr(w, r, err)
	case errors.Is(err, domain.ErrTransientStore):
		app.unavailableResponse(w, r, err)
	default:
		app.serverErrorResponse(w, r, err)
	}
}
