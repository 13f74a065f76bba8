// Package email sends outreach emails to leads.
//
// SMTPMailer delivers through an SMTP server with gomail. LogMailer writes
// each message to the logger and is used when no SMTP host is configured.
package email

import (
	"context"
)

// Mailer sends outreach messages.
type Mailer interface {
	// SendOutreach emails the introduction message to one lead.
	SendOutreach(ctx context.Context, msg Outreach) error

	// Name identifies the backend on the outreach page.
	Name() string
}

// Outreach is the data rendered into an outreach email.
type Outreach struct {
	To          string
	CompanyName string
	Industry    string
	Location    string
	Website     string
}

// Email is a rendered message.
type Email struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// SMTPConfig holds SMTP server configuration.
type SMTPConfig struct {
	Host     string // empty selects the log mailer
	Port     int
	Username string // empty for unauthenticated relays such as Mailhog
	Password string
	From     string
	FromName string
}

const (
	DefaultFromEmail = "outreach@leadshift.local"
	DefaultFromName  = "LeadShift"
)
