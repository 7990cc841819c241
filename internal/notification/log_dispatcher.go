package notification

import (
	"context"
	"log/slog"
)

// LogDispatcher renders messages and logs them instead of sending. It stands
// in for the Resend dispatcher when no API key is configured, which keeps
// local development working without an email account.
type LogDispatcher struct {
	logger *slog.Logger
}

// NewLogDispatcher creates a new LogDispatcher.
func NewLogDispatcher(logger *slog.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

// Dispatch logs the rendered message.
func (d *LogDispatcher) Dispatch(_ context.Context, msg Message) error {
	subject, _, err := Render(msg)
	if err != nil {
		return err
	}

	d.logger.Info("email delivery skipped, no api key configured",
		"type", msg.Type,
		"to", msg.To,
		"subject", subject,
	)
	return nil
}
