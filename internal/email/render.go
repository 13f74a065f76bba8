package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Render builds the subject and bodies of an outreach email.
func Render(msg Outreach, fromName string) (Email, error) {
	data := map[string]any{
		"CompanyName": msg.CompanyName,
		"Industry":    msg.Industry,
		"Location":    msg.Location,
		"Website":     msg.Website,
		"FromName":    fromName,
		"Year":        time.Now().Year(),
	}

	var html bytes.Buffer
	if err := templates.ExecuteTemplate(&html, "outreach.html", data); err != nil {
		return Email{}, fmt.Errorf("render outreach template: %w", err)
	}

	var text strings.Builder
	fmt.Fprintf(&text, "Hello %s team,\n\n", msg.CompanyName)
	text.WriteString("We help companies find and qualify new business faster and would love to show you how.\n\n")
	if msg.Website != "" {
		fmt.Fprintf(&text, "We had a look at %s and think there is a good fit.\n\n", msg.Website)
	}
	text.WriteString("Would you be open to a short call this week?\n\n")
	fmt.Fprintf(&text, "Best regards,\n%s\n", fromName)

	return Email{
		To:       msg.To,
		Subject:  fmt.Sprintf("%s: a quick introduction", msg.CompanyName),
		HTMLBody: html.String(),
		TextBody: text.String(),
	}, nil
}
