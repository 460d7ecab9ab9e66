package mailer

// Mailer renders the named template and sends it to a single recipient.
// Confirmation sends run in their own goroutine off the request path, so
// implementations must be safe for concurrent use.
type Mailer interface {
	Send(recipient, templateFile string, data any) error
}
