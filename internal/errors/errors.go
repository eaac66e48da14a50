// internal/errors/errors.go
package appErrors

import "fmt"

// ErrClientNotFound is a sentinel error for an unknown CRM client.
type ErrClientNotFound struct {
	ClientID string
}

func (e *ErrClientNotFound) Error() string {
	return fmt.Sprintf("client %q not found", e.ClientID)
}

// Helper constructor
func NewClientNotFound(id string) error {
	return &ErrClientNotFound{ClientID: id}
}

// ErrTemplateNotFound covers both unknown and unapproved template ids.
type ErrTemplateNotFound struct {
	TemplateID string
}

func (e *ErrTemplateNotFound) Error() string {
	return fmt.Sprintf("template %q not found", e.TemplateID)
}

func NewTemplateNotFound(id string) error {
	return &ErrTemplateNotFound{TemplateID: id}
}

// ErrMessageNotFound means no delivery record exists for a provider message id.
type ErrMessageNotFound struct {
	MessageID string
}

func (e *ErrMessageNotFound) Error() string {
	return fmt.Sprintf("message %q not found", e.MessageID)
}

func NewMessageNotFound(id string) error {
	return &ErrMessageNotFound{MessageID: id}
}

// ErrValidation rejects a request before any provider call is made.
type ErrValidation struct {
	Reason string
}

func (e *ErrValidation) Error() string {
	return e.Reason
}

func NewValidation(format string, args ...interface{}) error {
	return &ErrValidation{Reason: fmt.Sprintf(format, args...)}
}

// ErrProvider carries the upstream rejection verbatim: HTTP status and body
// exactly as the provider returned them.
type ErrProvider struct {
	StatusCode int
	Body       string
}

func (e *ErrProvider) Error() string {
	return fmt.Sprintf("provider rejected request: status %d: %s", e.StatusCode, e.Body)
}

func NewProvider(statusCode int, body string) error {
	return &ErrProvider{StatusCode: statusCode, Body: body}
}

// ErrTransport means the provider never answered. Timeout marks the
// retryable class; no retry is attempted here but callers can tell it apart
// from a permanent rejection.
type ErrTransport struct {
	Timeout bool
	Err     error
}

func (e *ErrTransport) Error() string {
	if e.Timeout {
		return fmt.Sprintf("provider call timed out: %v", e.Err)
	}
	return fmt.Sprintf("provider unreachable: %v", e.Err)
}

func (e *ErrTransport) Unwrap() error { return e.Err }

func NewTransport(err error, timeout bool) error {
	return &ErrTransport{Err: err, Timeout: timeout}
}
