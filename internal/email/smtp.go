package email

import (
	"context"
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"
)

// SMTPMailer sends through an SMTP server.
type SMTPMailer struct {
	config SMTPConfig
	dialer *gomail.Dialer
	logger *slog.Logger
}

// NewSMTPMailer returns a mailer for config. Credentials are optional.
func NewSMTPMailer(config SMTPConfig, logger *slog.Logger) *SMTPMailer {
	if config.From == "" {
		config.From = DefaultFromEmail
	}
	if config.FromName == "" {
		config.FromName = DefaultFromName
	}

	return &SMTPMailer{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
		logger: logger,
	}
}

// Name implements Mailer.
func (m *SMTPMailer) Name() string {
	return fmt.Sprintf("smtp (%s:%d)", m.config.Host, m.config.Port)
}

// SendOutreach implements Mailer.
func (m *SMTPMailer) SendOutreach(ctx context.Context, msg Outreach) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	email, err := Render(msg, m.config.FromName)
	if err != nil {
		return err
	}

	gm := gomail.NewMessage()
	gm.SetAddressHeader("From", m.config.From, m.config.FromName)
	gm.SetHeader("To", email.To)
	gm.SetHeader("Subject", email.Subject)
	gm.SetBody("text/plain", email.TextBody)
	gm.AddAlternative("text/html", email.HTMLBody)

	if err := m.dialer.DialAndSend(gm); err != nil {
		m.logger.Error("failed to send email",
			"to", email.To,
			"subject", email.Subject,
			"error", err,
		)
		return fmt.Errorf("send email: %w", err)
	}

	m.logger.Info("email sent", "to", email.To, "subject", email.Subject)
	return nil
}

var _ Mailer = (*SMTPMailer)(nil)
