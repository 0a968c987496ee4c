package mailer

import (
	"context"
	"log/slog"
)

// LogSender logs emails instead of delivering them. Used in development.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send implements Sender.
func (s *LogSender) Send(ctx context.Context, email *Email) error {
	if err := email.Validate(); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "email not delivered (log provider)",
		slog.String("from", email.From.String()),
		slog.String("reply_to", email.ReplyTo),
		slog.Any("to", email.To),
		slog.String("subject", email.Subject),
		slog.String("text", email.Text),
	)
	return nil
}
