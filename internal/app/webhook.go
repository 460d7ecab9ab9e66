package app

import (
	"errors"
	"io"
	"net/http"

	"github.com/metinatakli/ticket-inventory-system/internal/domain"
	"github.com/stripe/stripe-go/v82"
)

const webhookMaxBodyBytes = int64(65536)

// SettlementWebhookHandler receives settlement results from the payment
// collaborator. The engine treats settlement as an external event: the
// webhook only transitions a PENDING booking, it never creates one. Unknown
// or irrelevant event types are acknowledged so the provider stops retrying.
func (app *Application) SettlementWebhookHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	r.Body = http.MaxBytesReader(w, r.Body, webhookMaxBodyBytes)

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	event, err := app.eventVerifier.Verify(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		logger.Warn("webhook signature verification failed", "error", err)
		app.errorResponse(w, r, http.StatusBadRequest, "invalid webhook signature")
		return
	}

	var succeeded bool

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted:
		succeeded = true
	case stripe.EventTypeCheckoutSessionExpired, stripe.EventTypeCheckoutSessionAsyncPaymentFailed:
		succeeded = false
	default:
		logger.Info("ignoring webhook event", "type", event.Type)
		w.WriteHeader(http.StatusOK)
		return
	}

	var externalRef string
	if event.Data != nil {
		externalRef, _ = event.Data.Object["id"].(string)
	}

	if externalRef == "" {
		app.badRequestResponse(w, r, errors.New("webhook event carries no session id"))
		return
	}

	booking, err := app.bookingRepo.Settle(r.Context(), externalRef, succeeded)
	if err != nil {
		if errors.Is(err, domain.ErrSettlementNotFound) {
			// A retry for a booking already settled, or a session the engine
			// never issued. Acknowledge so the provider stops retrying.
			logger.Info("no pending booking for settlement", "external_ref", externalRef)
			w.WriteHeader(http.StatusOK)
			return
		}

		app.respondDomainError(w, r, err)
		return
	}

	logger.Info("booking settled",
		"reference", booking.Reference,
		"payment_status", booking.PaymentStatus,
		"booking_status", booking.BookingStatus,
	)

	w.WriteHeader(http.StatusOK)
}
