package email

import (
	"context"
	"log/slog"
	"sync"
)

// LogMailer logs messages instead of sending them. It keeps every message
// it was given, which tests read through Sent.
type LogMailer struct {
	fromName string
	logger   *slog.Logger

	mu   sync.Mutex
	sent []Email
}

// NewLogMailer returns a mailer that only logs.
func NewLogMailer(fromName string, logger *slog.Logger) *LogMailer {
	if fromName == "" {
		fromName = DefaultFromName
	}
	return &LogMailer{fromName: fromName, logger: logger}
}

// Name implements Mailer.
func (m *LogMailer) Name() string {
	return "log"
}

// SendOutreach implements Mailer.
func (m *LogMailer) SendOutreach(ctx context.Context, msg Outreach) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	email, err := Render(msg, m.fromName)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.sent = append(m.sent, email)
	m.mu.Unlock()

	m.logger.Info("outreach email (not sent)", "to", email.To, "subject", email.Subject)
	return nil
}

// Sent returns a copy of the logged messages.
func (m *LogMailer) Sent() []Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Email(nil), m.sent...)
}

var _ Mailer = (*LogMailer)(nil)

// New returns an SMTPMailer when a host is configured and a LogMailer
// otherwise.
func New(config SMTPConfig, logger *slog.Logger) Mailer {
	if config.Host == "" {
		return NewLogMailer(config.FromName, logger)
	}
	return NewSMTPMailer(config, logger)
}
