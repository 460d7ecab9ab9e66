package mailer

import "sync"

// Email is one captured Send call.
type Email struct {
	Recipient    string
	TemplateFile string
	Data         any
}

// MockMailer captures sends instead of talking SMTP, so tests can assert on
// confirmation mail without a mail server.
type MockMailer struct {
	mu   sync.RWMutex
	sent []Email
}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Send(recipient, templateFile string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = append(m.sent, Email{
		Recipient:    recipient,
		TemplateFile: templateFile,
		Data:         data,
	})

	return nil
}

// GetSentEmails returns a snapshot of everything captured so far.
func (m *MockMailer) GetSentEmails() []Email {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Email, len(m.sent))
	copy(out, m.sent)

	return out
}

func (m *MockMailer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = nil
}
