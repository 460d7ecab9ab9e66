package app

import (
	"net/http"

	"github.com/metinatakli/ticket-inventory-system/api"
	"github.com/metinatakli/ticket-inventory-system/internal/domain"
)

func (app *Application) CreateScreenHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.CreateScreenRequest

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

	screen := &domain.Screen{
		Name:     input.Name,
		Capacity: input.Capacity,
	}

	err = app.screenRepo.Create(r.Context(), screen)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	seats, err := app.registry.EnsureSeatsProvisioned(r.Context(), screen.ID, screen.Capacity)
	if err != nil {
		logger.Error("seat provisioning failed", "screen_id", screen.ID, "error", err)
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.ScreenResponse{
		Id:       screen.ID,
		Name:     screen.Name,
		Capacity: screen.Capacity,
		Seats:    toApiSeats(seats),
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// ListScreenSeatsHandler lists the screen's seats, lazily generating the
// layout when the screen has none yet. The generation is idempotent, so a
// racing first query converges on the same layout.
func (app *Application) ListScreenSeatsHandler(w http.ResponseWriter, r *http.Request) {
	screenID, err := app.readIntParam(r, "screenId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	screen, err := app.screenRepo.GetByID(r.Context(), screenID)
	if err != nil {
		app.respondDomainError(w, r, err)
		return
	}

	seats, err := app.registry.EnsureSeatsProvisioned(r.Context(), screen.ID, screen.Capacity)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.ScreenResponse{
		Id:       screen.ID,
		Name:     screen.Name,
		Capacity: screen.Capacity,
		Seats:    toApiSeats(seats),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toApiSeats(seats []domain.Seat) []api.Seat {
	apiSeats := make([]api.Seat, len(seats))

	for i, v := range seats {
		apiSeats[i] = api.Seat{
			Id:         v.ID,
			SeatNumber: v.SeatNumber,
			Row:        v.Row,
			Column:     v.Col,
			Category:   v.Category,
			Price:      v.Price,
			Status:     string(v.Status),
		}
	}

	return apiSeats
}
