package email

import (
	"context"
	"log/slog"
)

// DevSender logs messages instead of sending them. Used in development
// and as a safe default when no Postmark tokens are configured.
type DevSender struct {
	log *slog.Logger
}

// NewDevSender creates a logging-only sender.
func NewDevSender(log *slog.Logger) *DevSender {
	if log == nil {
		log = slog.Default()
	}
	return &DevSender{log: log}
}

func (s *DevSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "dev email sender: not delivering",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("tag", msg.Tag),
	)
	return nil
}
