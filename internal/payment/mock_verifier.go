package payment

import (
	"encoding/json"

	"github.com/stripe/stripe-go/v82"
)

// MockEventVerifier decodes the payload without checking the signature, so
// tests can post raw event JSON.
type MockEventVerifier struct {
	Err error
}

func NewMockEventVerifier() *MockEventVerifier {
	return &MockEventVerifier{}
}

func (v *MockEventVerifier) Verify(payload []byte, signature string) (stripe.Event, error) {
	if v.Err != nil {
		return stripe.Event{}, v.Err
	}

	var event stripe.Event

	err := json.Unmarshal(payload, &event)
	if err != nil {
		return stripe.Event{}, err
	}

	if event.Data != nil && len(event.Data.Raw) > 0 && event.Data.Object == nil {
		err = json.Unmarshal(event.Data.Raw, &event.Data.Object)
		if err != nil {
			return stripe.Event{}, err
		}
	}

	return event, nil
}
