package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/DukeRupert/leadshift/internal/domain"
	"github.com/DukeRupert/leadshift/internal/fakedata"
	"github.com/DukeRupert/leadshift/internal/service"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// DashboardHandler serves the dashboard and engagement pages.
type DashboardHandler struct {
	insights service.InsightService
	logger   *slog.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(insights service.InsightService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{insights: insights, logger: logger}
}

// RegisterRoutes registers the dashboard routes.
func (h *DashboardHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
	})
	mux.HandleFunc("GET /dashboard", h.Dashboard)
	mux.HandleFunc("GET /engagement", h.Engagement)
}

// Dashboard renders headline numbers, call history, top leads and email
// engagement.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	o := h.insights.Overview(r.Context())

	m := newPage(w, r, "Dashboard", "dashboard")
	m.Notice = o.Notice
	renderHTML(w, http.StatusOK, dashboardPage(m, o))
}

// Engagement renders the engagement tracking page.
func (h *DashboardHandler) Engagement(w http.ResponseWriter, r *http.Request) {
	e := h.insights.Engagement(r.Context())

	m := newPage(w, r, "Engagement", "engagement")
	renderHTML(w, http.StatusOK, engagementPage(m, e))
}

func dashboardPage(m pageMeta, o service.Overview) Node {
	calls := 0
	for _, d := range o.CallHistory {
		calls += d.Total
	}
	avg := "-"
	if o.Stats.Scored > 0 {
		avg = strconv.Itoa(o.Stats.AverageScore)
	}

	return page(m,
		Div(
			Class("grid gap-4 sm:grid-cols-2 lg:grid-cols-4"),
			statCard("Active leads", strconv.Itoa(o.Stats.Total), fmt.Sprintf("%d scored", o.Stats.Scored)),
			statCard("Average score", avg, "across scored leads"),
			statCard("Calls (30 days)", strconv.Itoa(calls), ""),
			statCard("Email open rate", percent(o.Email.OpenRate), fmt.Sprintf("%d sent", o.Email.TotalSent)),
		),
		Div(
			Class("mt-6 grid gap-6 lg:grid-cols-2"),
			card("Top performing leads", topLeadsTable(o.TopLeads)),
			card("Email engagement", emailAnalytics(o.Email)),
		),
		Div(Class("mt-6"), card("Call history", callHistoryTable(o.CallHistory))),
	)
}

func topLeadsTable(leads []fakedata.TopLead) Node {
	if len(leads) == 0 {
		return P(Class(mutedClass), Text("No leads scored 80 or above yet."))
	}
	return Table(
		Class("w-full text-sm"),
		THead(Tr(Th(Class(thClass), Text("Company")), Th(Class(thClass), Text("Score")), Th(Class(thClass), Text("Engagement")), Th(Class(thClass), Text("Last contact")))),
		TBody(Map(leads, func(l fakedata.TopLead) Node {
			return Tr(
				Td(Class(tdClass), A(Href("/leads/"+l.ID), Class("underline"), Text(l.CompanyName))),
				Td(Class(tdClass), bandBadge(l.Score)),
				Td(Class(tdClass), Text(percent(l.EngagementRate))),
				Td(Class(tdClass), Text(formatDate(l.LastContact))),
			)
		})),
	)
}

func emailAnalytics(a fakedata.EmailAnalytics) Node {
	peak := 1
	for _, d := range a.Weekly {
		peak = max(peak, d.Sent)
	}
	return Div(
		Dl(
			Class("grid grid-cols-3 gap-4"),
			definition("Opened", Textf("%d (%d%%)", a.Opened, a.OpenRate)),
			definition("Replied", Textf("%d (%d%%)", a.Replied, a.ReplyRate)),
			definition("Clicked", Textf("%d (%d%%)", a.Clicked, a.ClickRate)),
		),
		Div(Class("mt-4 space-y-2"), Map(a.Weekly, func(d fakedata.WeekdayVolume) Node {
			return Div(
				Class("grid grid-cols-[3rem_1fr_4rem] items-center gap-2 text-xs"),
				Span(Text(d.Name)),
				bar(d.Sent*100/peak, "#0EA5E9"),
				Span(Class("text-right"), Textf("%d / %d", d.Opened, d.Sent)),
			)
		})),
	)
}

func callHistoryTable(days []fakedata.CallDay) Node {
	return Div(
		Class("max-h-80 overflow-y-auto"),
		Table(
			Class("w-full text-sm"),
			THead(Tr(Th(Class(thClass), Text("Date")), Th(Class(thClass), Text("Successful")), Th(Class(thClass), Text("Unsuccessful")), Th(Class(thClass), Text("Total")))),
			TBody(Map(days, func(d fakedata.CallDay) Node {
				return Tr(
					Td(Class(tdClass), Text(formatDate(d.Date))),
					Td(Class(tdClass), Text(strconv.Itoa(d.Successful))),
					Td(Class(tdClass), Text(strconv.Itoa(d.Unsuccessful))),
					Td(Class(tdClass), Text(strconv.Itoa(d.Total))),
				)
			})),
		),
	)
}

func engagementPage(m pageMeta, e fakedata.Engagement) Node {
	s := e.Summary
	return page(m,
		Div(
			Class("grid gap-4 sm:grid-cols-2 lg:grid-cols-4"),
			statCard("Response rate", percent(s.ResponseRate), signed(s.ResponseRateChange)+" pts vs last period"),
			statCard("Avg call score", strconv.Itoa(s.AvgCallScore)+"/10", signed(s.AvgCallScoreChange)+" vs last period"),
			statCard("Email open rate", percent(s.EmailOpenRate), signed(s.EmailOpenRateChange)+" pts vs last period"),
			statCard("Avg response time", strconv.Itoa(s.AvgResponseTime)+"h", signed(s.AvgResponseTimeChange)+"h vs last period"),
		),
		Div(
			Class("mt-6 grid gap-6 lg:grid-cols-2"),
			card("Email metrics", Div(Class("space-y-3"),
				metricBar("Delivered", e.EmailMetrics.Delivered, "#16A34A"),
				metricBar("Opened", e.EmailMetrics.Opened, "#0EA5E9"),
				metricBar("Clicked", e.EmailMetrics.Clicked, "#6366F1"),
				metricBar("Replied", e.EmailMetrics.Replied, "#27B99C"),
				metricBar("Forwarded", e.EmailMetrics.Forwarded, "#EAB308"),
				metricBar("Spam", e.EmailMetrics.Spam, "#DC2626"),
			)),
			card("Calls", Div(Class("space-y-3"),
				P(Class(mutedClass), Textf("%d calls · %d min average", e.CallMetrics.TotalCalls, e.CallMetrics.AvgDuration)),
				metricBar("Positive", share(e.CallMetrics.Sentiment.Positive), "#16A34A"),
				metricBar("Neutral", share(e.CallMetrics.Sentiment.Neutral), "#6B7280"),
				metricBar("Negative", share(e.CallMetrics.Sentiment.Negative), "#DC2626"),
				H3(Class("pt-2 text-sm font-medium"), Text("Top topics")),
				Group(Map(e.CallMetrics.TopTopics, func(t fakedata.Topic) Node {
					return metricBar(t.Name, t.Frequency, "#0EA5E9")
				})),
			)),
		),
		Div(
			Class("mt-6 grid gap-6 lg:grid-cols-2"),
			card("Top templates", Ul(Class("space-y-3"), Map(e.TopTemplates, func(t fakedata.EmailTemplate) Node {
				return Li(
					P(Class("font-medium"), Text(t.Name)),
					P(Class(mutedClass), Text(t.Preview)),
					P(Class("text-xs"), Textf("%d sent · %d%% open · %d%% click · %d%% response", t.Sent, t.OpenRate, t.ClickRate, t.ResponseRate)),
				)
			}))),
			card("Upcoming follow-ups", Ul(Class("divide-y divide-slate-100 dark:divide-slate-800"), Map(e.Followups, func(f fakedata.Followup) Node {
				return Li(
					Class("py-2"),
					P(Class("font-medium"), Text(f.Task)),
					P(Class(mutedClass), Textf("%s · %s · %s", dueIn(f.DaysRemaining), f.Channel, f.ScheduledTime)),
				)
			}))),
		),
	)
}

func metricBar(label string, pct int, color string) Node {
	return Div(
		Div(Class("mb-1 flex justify-between text-xs"), Span(Text(label)), Span(Text(percent(pct)))),
		bar(pct, color),
	)
}

func share(f float64) int {
	return int(f*100 + 0.5)
}

func signed(n int) string {
	if n > 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func dueIn(days int) string {
	switch days {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	default:
		return fmt.Sprintf("In %d days", days)
	}
}

// scoreDistribution renders one bar per score band.
func scoreDistribution(stats domain.LeadStats) Node {
	total := max(stats.Total, 1)
	return Div(Class("space-y-3"), Map(domain.ScoreBands, func(b domain.ScoreBand) Node {
		n := stats.ByBand[b]
		return Div(
			Attr("data-band", string(b)),
			Div(Class("mb-1 flex justify-between text-xs"), Span(Text(b.Label())), Span(Textf("%d", n))),
			bar(n*100/total, b.Color()),
		)
	}))
}
