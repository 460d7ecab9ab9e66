package app

import (
	"fmt"
	"net/http"

	"github.com/metinatakli/ticket-inventory-system/api"
	"github.com/metinatakli/ticket-inventory-system/internal/domain"
)

// HoldSeatsHandler gives the caller a fair exclusive window on the selected
// seats during checkout. The hold is advisory: the booking transaction is the
// real correctness boundary, so this handler only needs the atomic
// no-partial-holds guarantee from the repository.
func (app *Application) HoldSeatsHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	showtimeID, err := app.readIntParam(r, "showtimeId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.HoldSeatsRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	showtime, err := app.showtimeRepo.GetByID(r.Context(), showtimeID)
	if err != nil {
		app.respondDomainError(w, r, err)
		return
	}

	if !showtime.Active {
		app.notFoundResponseWithErr(w, r, fmt.Errorf("showtime %d is no longer active", showtimeID))
		return
	}

	holderID := app.contextGetHolderID(r)

	holds, err := app.holdRepo.HoldSeats(r.Context(), showtime, input.SeatIdList, holderID, domain.HoldTTL)
	if err != nil {
		logger.Warn("hold request rejected", "showtime_id", showtimeID, "error", err)
		app.respondDomainError(w, r, err)
		return
	}

	resp := api.HoldsResponse{
		ShowtimeId: showtimeID,
		Holds:      toApiHolds(holds),
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ReleaseHoldsHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	if _, err := app.readIntParam(r, "showtimeId"); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.ReleaseHoldsRequest

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

	holderID := app.contextGetHolderID(r)

	// Foreign hold ids are silently skipped, so a 204 here never confirms
	// or denies the existence of another customer's hold.
	released, err := app.holdRepo.ReleaseHolds(r.Context(), input.HoldIdList, holderID)
	if err != nil {
		app.respondDomainError(w, r, err)
		return
	}

	logger.Info("holds released", "requested", len(input.HoldIdList), "released", released)

	w.WriteHeader(http.StatusNoContent)
}

func toApiHolds(holds []domain.SeatHold) []api.Hold {
	apiHolds := make([]api.Hold, len(holds))

	for i, v := range holds {
		apiHolds[i] = api.Hold{
			Id:         v.ID,
			SeatId:     v.SeatID,
			SeatNumber: v.SeatNumber,
			ExpiresAt:  v.ExpiresAt,
		}
	}

	return apiHolds
}
