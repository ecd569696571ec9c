package email

import (
	"context"
	"fmt"
	"regexp"
)

var addressRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Sender sends a single transactional email.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Message is one outbound email.
type Message struct {
	To       string
	Subject  string
	BodyHTML string
	Tag      string // optional transport-side category for analytics
}

// Validate checks the message is sendable.
func (m Message) Validate() error {
	if m.To == "" || !addressRegex.MatchString(m.To) {
		return fmt.Errorf("%w: recipient address %q", ErrInvalidParams, m.To)
	}
	if m.Subject == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidParams)
	}
	if m.BodyHTML == "" {
		return fmt.Errorf("%w: body is required", ErrInvalidParams)
	}
	return nil
}
