package app

import (
	"net/http"

	"github.com/metinatakli/ticket-inventory-system/api"
	"github.com/metinatakli/ticket-inventory-system/internal/domain"
)

// ApplyExternalSeatUpdateHandler ingests a channel feed batch. Updates are
// applied one by one in independent transactions, so a conflicting record
// reports per-seat instead of rejecting the batch. The cached availability
// counter is recomputed from seat rows afterwards; the recomputed value wins
// over any incremental drift.
func (app *Application) ApplyExternalSeatUpdateHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	showtimeID, err := app.readIntParam(r, "showtimeId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.SyncRequest

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

	results := make([]api.SeatUpdateResult, 0, len(input.Updates))
	applied, failed := 0, 0

	for _, u := range input.Updates {
		update := domain.SeatUpdate{
			SeatNumber:  u.SeatNumber,
			Status:      domain.SeatStatus(u.Status),
			Channel:     domain.Channel(u.Channel),
			ExternalRef: u.ExternalRef,
		}

		result, err := app.syncRepo.ApplyUpdate(r.Context(), showtime, update)
		if err != nil {
			// Store-level failure, not a per-seat business outcome.
			app.respondDomainError(w, r, err)
			return
		}

		apiResult := api.SeatUpdateResult{
			SeatNumber: result.SeatNumber,
			Applied:    result.Applied,
			BookingRef: result.BookingRef,
		}

		if result.Err != nil {
			msg := result.Err.Error()
			apiResult.Error = &msg
			failed++

			logger.Warn("channel update rejected", "showtime_id", showtimeID, "seat", u.SeatNumber, "error", result.Err)
		} else {
			applied++
		}

		results = append(results, apiResult)
	}

	availableSeats, err := app.showtimeRepo.RecomputeAvailableSeats(r.Context(), showtimeID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	logger.Info("channel sync applied", "showtime_id", showtimeID, "applied", applied, "failed", failed)

	resp := api.SyncResponse{
		ShowtimeId:     showtimeID,
		Applied:        applied,
		Failed:         failed,
		AvailableSeats: availableSeats,
		Results:        results,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// GetRealTimeAvailabilityHandler composes seat status with live holds. A seat
// is available only when its row says AVAILABLE and no unexpired hold covers
// it; expired holds are ignored here even before the sweeper removes them.
func (app *Application) GetRealTimeAvailabilityHandler(w http.ResponseWriter, r *http.Request) {
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

	seats, err := app.registry.ListSeats(r.Context(), showtime.ScreenID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	liveHolds, err := app.holdRepo.GetLiveSeatIDs(r.Context(), showtimeID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	holderID := app.contextGetHolderID(r)

	availabilitySeats := make([]api.AvailabilitySeat, len(seats))
	availableCount := 0

	for i, seat := range seats {
		holdOwner, held := liveHolds[seat.ID]

		// The caller's own hold does not make the seat unavailable to them.
		heldByOther := held && holdOwner != holderID
		available := seat.Status == domain.SeatStatusAvailable && !heldByOther

		if available {
			availableCount++
		}

		availabilitySeats[i] = api.AvailabilitySeat{
			Id:         seat.ID,
			SeatNumber: seat.SeatNumber,
			Row:        seat.Row,
			Column:     seat.Col,
			Category:   seat.Category,
			Price:      seat.Price,
			Available:  available,
			Held:       heldByOther,
		}
	}

	resp := api.AvailabilityResponse{
		ShowtimeId:     showtimeID,
		AvailableSeats: availableCount,
		Seats:          availabilitySeats,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
