package fakedata

import (
	"slices"
	"time"
)

// Contact is a person at a lead's company.
type Contact struct {
	Name  string
	Title string
	Email string
	Phone string
}

// ActionItem is a follow-up agreed on a call.
type ActionItem struct {
	Text          string
	Completed     bool
	CompletedDate *time.Time
}

// Call is one recorded call with its AI summary.
type Call struct {
	Title       string
	Date        time.Time
	Duration    int // minutes
	Sentiment   string
	Summary     string
	KeyPoints   []string
	ActionItems []ActionItem
}

// Email is one message exchanged with a lead.
type Email struct {
	Direction string // "sent" or "received"
	Subject   string
	Preview   string
	Date      time.Time
	Status    string // Delivered, Opened, Clicked, Replied; empty when unknown
	Metrics   map[string]string
}

// LeadActivity is the synthetic contact history shown on a lead page.
type LeadActivity struct {
	Contacts []Contact
	Calls    []Call
	Emails   []Email
}

var (
	callTitles = []string{
		"Initial Outreach Call",
		"Product Demo",
		"Follow-up Discussion",
		"Requirements Gathering",
		"Decision Maker Meeting",
	}
	sentiments    = []string{"positive", "neutral", "negative"}
	emailStatuses = []string{"Delivered", "Opened", "Clicked", "Replied", ""}
)

// LeadActivity returns contacts, calls and emails for a company whose
// domain is domainName. Calls and emails are ordered newest first.
func (g *Generator) LeadActivity(domainName string) LeadActivity {
	var a LeadActivity

	for range g.between(1, 3) {
		a.Contacts = append(a.Contacts, Contact{
			Name:  g.fullName(),
			Title: g.pick(jobTitles),
			Email: "contact@" + domainName,
			Phone: g.phone(),
		})
	}

	for range g.between(2, 5) {
		call := Call{
			Title:     g.pick(callTitles),
			Date:      g.recent(30),
			Duration:  g.between(5, 45),
			Sentiment: g.pick(sentiments),
			Summary:   g.paragraph(),
		}
		for range g.between(2, 5) {
			call.KeyPoints = append(call.KeyPoints, g.sentence(5))
		}
		for range g.between(1, 4) {
			item := ActionItem{Text: g.sentence(5), Completed: g.rng.IntN(2) == 0}
			if item.Completed {
				done := g.recent(7)
				item.CompletedDate = &done
			}
			call.ActionItems = append(call.ActionItems, item)
		}
		a.Calls = append(a.Calls, call)
	}
	slices.SortStableFunc(a.Calls, func(x, y Call) int { return y.Date.Compare(x.Date) })

	for range g.between(3, 8) {
		email := Email{
			Direction: "received",
			Subject:   g.sentence(4),
			Preview:   g.paragraph(),
			Date:      g.recent(30),
		}
		if g.rng.IntN(2) == 0 {
			email.Direction = "sent"
			email.Status = g.pick(emailStatuses)
		}
		if email.Status != "" {
			email.Metrics = map[string]string{
				"Opened":     itoa(g.between(1, 5)) + " times",
				"Time spent": itoa(g.between(10, 300)) + "s",
			}
			if email.Status == "Clicked" || email.Status == "Replied" {
				email.Metrics["Clicked"] = itoa(g.between(1, 3)) + " links"
			}
		}
		a.Emails = append(a.Emails, email)
	}
	slices.SortStableFunc(a.Emails, func(x, y Email) int { return y.Date.Compare(x.Date) })

	return a
}
