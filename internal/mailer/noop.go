package mailer

import (
	"context"
	"log/slog"
)

// LogMailer logs verification emails instead of sending them. Used in local
// development when no SMTP server is configured.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a mailer that only logs.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// SendVerificationEmail logs the verification token and returns nil.
func (m *LogMailer) SendVerificationEmail(ctx context.Context, to, token string) error {
	m.logger.InfoContext(ctx, "verification email (not sent, smtp disabled)",
		slog.String("to", to),
		slog.String("token", token),
	)
	return nil
}
