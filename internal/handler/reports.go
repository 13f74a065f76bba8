package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/DukeRupert/leadshift/internal/report"
	"github.com/DukeRupert/leadshift/internal/service"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// ReportHandler serves the reports page and the full PDF report.
type ReportHandler struct {
	leads   service.LeadService
	reports service.ReportService
	logger  *slog.Logger
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(leads service.LeadService, reports service.ReportService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{leads: leads, reports: reports, logger: logger}
}

// RegisterRoutes registers the report routes.
func (h *ReportHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /reports", h.Index)
	mux.HandleFunc("GET /reports/leads.pdf", h.LeadsPDF)
}

// Index renders the score distribution and industry breakdown.
func (h *ReportHandler) Index(w http.ResponseWriter, r *http.Request) {
	ds := h.leads.Dataset(r.Context())
	data := report.NewData(service.TitleAllLeads, ds.Source, ds.Leads, time.Now())

	m := newPage(w, r, "Reports", "reports")
	m.Notice = ds.Notice
	renderHTML(w, http.StatusOK, reportsPage(m, data))
}

// LeadsPDF downloads the report covering every lead.
func (h *ReportHandler) LeadsPDF(w http.ResponseWriter, r *http.Request) {
	ds := h.leads.Dataset(r.Context())

	attachment(w, report.FormatPDF.ContentType(), exportName("leads-report", ".pdf"))
	if err := h.reports.LeadsPDF(r.Context(), service.TitleAllLeads, ds.Source, ds.Leads, w); err != nil {
		h.logger.Error("pdf report failed", "error", err)
	}
}

func reportsPage(m pageMeta, data *report.Data) Node {
	industries := data.Industries()
	total := max(data.Stats.Total, 1)

	return page(m,
		Div(
			Class("mb-6 flex items-center justify-between"),
			P(Class(mutedClass), Textf("%d leads · generated %s", data.Stats.Total, formatDateTime(data.GeneratedAt))),
			Div(
				Class("flex gap-2"),
				A(Href("/leads/export.csv"), Class(buttonClass("")), Text("Export CSV")),
				A(Href("/reports/leads.pdf"), Class(buttonClass("primary")), Text("Download PDF")),
			),
		),
		Div(
			Class("grid gap-6 lg:grid-cols-2"),
			card("Score distribution", scoreDistribution(data.Stats)),
			card("Industries", If(len(industries) == 0, P(Class(mutedClass), Text("No leads yet."))),
				Div(Class("space-y-3"), Map(industries, func(ic report.IndustryCount) Node {
					return Div(
						Div(Class("mb-1 flex justify-between text-xs"), Span(Text(ic.Industry)), Span(Text(strconv.Itoa(ic.Count)))),
						bar(ic.Count*100/total, "#0EA5E9"),
					)
				})),
			),
		),
	)
}
