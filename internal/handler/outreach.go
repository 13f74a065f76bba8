package handler

import (
	"log/slog"
	"net/http"

	"github.com/DukeRupert/leadshift/internal/domain"
	"github.com/DukeRupert/leadshift/internal/service"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const outreachLogLimit = 50

// OutreachHandler serves the outreach log.
type OutreachHandler struct {
	outreach service.OutreachService
	logger   *slog.Logger
}

// NewOutreachHandler creates a new OutreachHandler.
func NewOutreachHandler(outreach service.OutreachService, logger *slog.Logger) *OutreachHandler {
	return &OutreachHandler{outreach: outreach, logger: logger}
}

// RegisterRoutes registers the outreach routes.
func (h *OutreachHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /outreach", h.Index)
}

// Index lists the most recent outreach attempts.
func (h *OutreachHandler) Index(w http.ResponseWriter, r *http.Request) {
	entries, err := h.outreach.Recent(r.Context(), outreachLogLimit)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	mailer, calls := h.outreach.Backends()
	m := newPage(w, r, "Outreach", "outreach")
	renderHTML(w, http.StatusOK, outreachPage(m, mailer, calls, entries))
}

func outreachPage(m pageMeta, mailer, calls string, entries []domain.OutreachEntry) Node {
	return page(m,
		P(Class("mb-4 "+mutedClass), Textf("Emails are sent via %s. Call requests go to %s.", mailer, calls)),
		card("Recent activity",
			If(len(entries) == 0, P(Class(mutedClass), Text("No outreach yet. Select leads and choose an action to get started."))),
			If(len(entries) > 0, Table(
				Class("w-full text-sm"),
				THead(Tr(
					Th(Class(thClass), Text("When")),
					Th(Class(thClass), Text("Company")),
					Th(Class(thClass), Text("Channel")),
					Th(Class(thClass), Text("Status")),
					Th(Class(thClass), Text("Detail")),
				)),
				TBody(Map(entries, func(e domain.OutreachEntry) Node {
					return Tr(
						Td(Class(tdClass), Text(formatDateTime(e.CreatedAt))),
						Td(Class(tdClass), A(Href("/leads/"+e.LeadID), Class("underline"), Text(e.CompanyName))),
						Td(Class(tdClass), Text(string(e.Channel))),
						Td(Class(tdClass), Span(Attr("data-status", string(e.Status)), Text(string(e.Status)))),
						Td(Class(tdClass+" "+mutedClass), Text(e.Detail)),
					)
				})),
			)),
		),
	)
}
