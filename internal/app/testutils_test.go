package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/metinatakli/ticket-inventory-system/api"
	"github.com/metinatakli/ticket-inventory-system/internal/mailer"
	"github.com/metinatakli/ticket-inventory-system/internal/mocks"
	"github.com/metinatakli/ticket-inventory-system/internal/registry"
	"github.com/metinatakli/ticket-inventory-system/internal/validator"
)

func newTestApplication(opts ...func(*Application)) *Application {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	seatRepo := &mocks.MockSeatRepo{}

	app := &Application{
		validator:    validator.NewValidator(),
		logger:       logger,
		mailer:       mailer.NewMockMailer(),
		screenRepo:   &mocks.MockScreenRepo{},
		showtimeRepo: &mocks.MockShowtimeRepo{},
		seatRepo:     seatRepo,
		holdRepo:     &mocks.MockHoldRepo{},
		bookingRepo:  &mocks.MockBookingRepo{},
		syncRepo:     &mocks.MockChannelSyncRepo{},
	}

	for _, opt := range opts {
		opt(app)
	}

	// Built last so a replaced seat repo is the one the registry consults.
	app.registry = registry.NewRegistry(app.seatRepo, logger)

	return app
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest(method, url, bytes.NewReader(jsonData))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

// withURLParams injects chi route parameters so handlers can be exercised
// without spinning up the full router.
func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()

	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}

	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func withHolder(r *http.Request, holderID string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), contextKeyHolderID, holderID))
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, tt struct {
	wantStatus     int
	wantErrMessage string
}) {
	if tt.wantStatus >= 200 && tt.wantStatus < 300 {
		return
	}

	switch tt.wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp api.ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if !errorSet[tt.wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", tt.wantErrMessage)
		}

	default:
		var errorResp api.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if tt.wantErrMessage != "" && errorResp.Message != tt.wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, tt.wantErrMessage)
		}
	}
}

func ptr[T any](v T) *T {
	return &v
}
