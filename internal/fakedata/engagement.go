package fakedata

import (
	"fmt"
	"slices"
	"time"
)

// EngagementSummary holds headline engagement figures. Change fields are
// percentage points against the previous period.
type EngagementSummary struct {
	ResponseRate          int
	ResponseRateChange    int
	AvgCallScore          int
	AvgCallScoreChange    int
	EmailOpenRate         int
	EmailOpenRateChange   int
	AvgResponseTime       int // hours
	AvgResponseTimeChange int
	TotalInteractions     int
	TotalCalls            int
	TotalEmails           int
	ResponsesReceived     int
}

// EmailMetrics are delivery funnel percentages.
type EmailMetrics struct {
	Delivered int
	Opened    int
	Clicked   int
	Replied   int
	Forwarded int
	Spam      int
}

// EmailChartPoint is one day of open and reply rates.
type EmailChartPoint struct {
	Date    time.Time
	Opens   int
	Replies int
}

// EmailTemplate is an outreach template with its performance.
type EmailTemplate struct {
	Name         string
	Preview      string
	ResponseRate int
	Sent         int
	OpenRate     int
	ClickRate    int
}

// Sentiment is the share of calls per sentiment, summing to roughly 1.
type Sentiment struct {
	Positive float64
	Neutral  float64
	Negative float64
}

// Topic is a subject raised on calls and how often, in percent.
type Topic struct {
	Name      string
	Frequency int
}

// CallMetrics summarises calls over the period.
type CallMetrics struct {
	TotalCalls  int
	AvgDuration int // minutes
	Sentiment   Sentiment
	TopTopics   []Topic
}

// Followup is a scheduled next step with a company.
type Followup struct {
	Company       string
	DaysRemaining int
	Task          string
	Channel       string // "email" or "call"
	ScheduledTime string
}

// Engagement is the full engagement tracking dataset.
type Engagement struct {
	Summary      EngagementSummary
	EmailMetrics EmailMetrics
	EmailChart   []EmailChartPoint
	TopTemplates []EmailTemplate
	CallMetrics  CallMetrics
	Followups    []Followup
}

var templateNames = []string{
	"Tech Talent Partnership",
	"Senior Developer Opportunities",
	"Software Engineering Recruitment",
	"Tech Lead Placement",
	"Developer Hiring Solution",
}

var followupTasks = []string{
	"Follow up on technical requirements for %s",
	"Send candidate profiles to %s",
	"Schedule technical interview with %s",
	"Discuss offer details with %s",
	"Present shortlisted candidates to %s",
}

// Engagement returns a full engagement dataset. Follow-ups are ordered by
// days remaining.
func (g *Generator) Engagement() Engagement {
	e := Engagement{
		Summary: EngagementSummary{
			ResponseRate:          g.between(25, 49),
			ResponseRateChange:    g.change(9),
			AvgCallScore:          g.between(7, 9),
			AvgCallScoreChange:    g.change(1),
			EmailOpenRate:         g.between(45, 74),
			EmailOpenRateChange:   g.change(14),
			AvgResponseTime:       g.between(12, 35),
			AvgResponseTimeChange: g.change(5),
			TotalInteractions:     g.between(500, 799),
			TotalCalls:            g.between(200, 349),
			TotalEmails:           g.between(800, 1299),
			ResponsesReceived:     g.between(300, 499),
		},
		EmailMetrics: EmailMetrics{
			Delivered: g.between(90, 99),
			Opened:    g.between(45, 74),
			Clicked:   g.between(25, 44),
			Replied:   g.between(15, 29),
			Forwarded: g.between(5, 14),
			Spam:      g.between(1, 3),
		},
	}

	today := truncateDay(g.now())
	for i := range 14 {
		e.EmailChart = append(e.EmailChart, EmailChartPoint{
			Date:    today.AddDate(0, 0, i-13),
			Opens:   g.between(30, 69),
			Replies: g.between(10, 39),
		})
	}

	for i := range 3 {
		e.TopTemplates = append(e.TopTemplates, EmailTemplate{
			Name:         templateNames[i%len(templateNames)],
			Preview:      g.sentence(6) + " " + g.sentence(6),
			ResponseRate: g.between(20, 44),
			Sent:         g.between(50, 249),
			OpenRate:     g.between(50, 79),
			ClickRate:    g.between(20, 44),
		})
	}

	e.CallMetrics = CallMetrics{
		TotalCalls:  g.between(100, 199),
		AvgDuration: g.between(5, 11),
		Sentiment: Sentiment{
			Positive: 0.45 + g.rng.Float64()*0.2,
			Neutral:  0.2 + g.rng.Float64()*0.15,
			Negative: 0.05 + g.rng.Float64()*0.15,
		},
		TopTopics: []Topic{
			{"Technical skills", g.between(70, 89)},
			{"Salary expectations", g.between(60, 79)},
			{"Project experience", g.between(50, 69)},
			{"Team collaboration", g.between(40, 59)},
			{"Remote work", g.between(30, 49)},
		},
	}

	for range 4 {
		company := g.pick(companies)
		channel := "email"
		if g.rng.IntN(2) == 0 {
			channel = "call"
		}
		period := "AM"
		if g.rng.IntN(2) == 0 {
			period = "PM"
		}
		e.Followups = append(e.Followups, Followup{
			Company:       company,
			DaysRemaining: g.rng.IntN(7),
			Task:          fmt.Sprintf(followupTasks[g.rng.IntN(len(followupTasks))], company),
			Channel:       channel,
			ScheduledTime: fmt.Sprintf("%d:%02d %s", g.between(1, 12), g.rng.IntN(6)*10, period),
		})
	}
	slices.SortStableFunc(e.Followups, func(a, b Followup) int {
		return a.DaysRemaining - b.DaysRemaining
	})

	return e
}

// change returns a signed change of at most limit.
func (g *Generator) change(limit int) int {
	n := g.rng.IntN(limit + 1)
	if g.rng.IntN(2) == 0 {
		return -n
	}
	return n
}
