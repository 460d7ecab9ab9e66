// Package payment integrates the external payment collaborator. The engine
// never talks to the provider synchronously during booking; it only verifies
// and consumes the settlement events the provider pushes back.
package payment

import (
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

type EventVerifier interface {
	Verify(payload []byte, signature string) (stripe.Event, error)
}

type StripeEventVerifier struct {
	webhookSecret string
}

func NewStripeEventVerifier(webhookSecret string) *StripeEventVerifier {
	return &StripeEventVerifier{
		webhookSecret: webhookSecret,
	}
}

func (v *StripeEventVerifier) Verify(payload []byte, signature string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, signature, v.webhookSecret)
}
