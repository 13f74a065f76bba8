// Package handler contains the HTTP handlers for LeadShift: the dashboard
// pages rendered with gomponents and the JSON API under /routes/api/.
package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/DukeRupert/leadshift/internal/domain"
	"github.com/DukeRupert/leadshift/internal/report"
	"github.com/DukeRupert/leadshift/internal/service"
)

// Notices shown after bulk actions.
const (
	MsgSelectLeads   = "Select at least one lead"
	MsgChooseFile    = "Please choose a CSV file to upload"
	MsgEmailCampaign = "Preparing email campaign for %d leads"
	MsgAICalls       = "Preparing AI calls for %d leads"
)

// Bulk actions accepted by POST /leads/actions.
const (
	ActionEmail  = "email"
	ActionCall   = "call"
	ActionExport = "export"
	ActionReport = "report"
)

// recentUploads is how many uploads the upload panel lists.
const recentUploads = 5

// LeadHandler serves the leads page, its table partial, bulk actions,
// lead detail and exports.
type LeadHandler struct {
	leads    service.LeadService
	insights service.InsightService
	outreach service.OutreachService
	reports  service.ReportService
	logger   *slog.Logger
}

// NewLeadHandler creates a new LeadHandler.
func NewLeadHandler(
	leads service.LeadService,
	insights service.InsightService,
	outreach service.OutreachService,
	reports service.ReportService,
	logger *slog.Logger,
) *LeadHandler {
	return &LeadHandler{
		leads:    leads,
		insights: insights,
		outreach: outreach,
		reports:  reports,
		logger:   logger,
	}
}

// RegisterRoutes registers the lead routes. uploadLimit wraps the upload
// form post when non-nil.
func (h *LeadHandler) RegisterRoutes(mux *http.ServeMux, uploadLimit func(http.Handler) http.Handler) {
	var upload http.Handler = http.HandlerFunc(h.Upload)
	if uploadLimit != nil {
		upload = uploadLimit(upload)
	}

	mux.HandleFunc("GET /leads", h.Index)
	mux.HandleFunc("GET /leads/table", h.Table)
	mux.HandleFunc("GET /leads/export.csv", h.ExportCSV)
	mux.HandleFunc("GET /leads/{id}", h.Show)
	mux.Handle("POST /leads/upload", upload)
	mux.HandleFunc("POST /leads/actions", h.Actions)
	mux.HandleFunc("GET /uploads/{id}/file", h.DownloadUpload)
}

// Index renders the leads page. The table arrives in a second request,
// so the page shows it in its loading state first.
func (h *LeadHandler) Index(w http.ResponseWriter, r *http.Request) {
	st := parseLeadsState(r.URL.Query())
	ds := h.leads.Dataset(r.Context())

	m := newPage(w, r, "Leads", "leads")
	m.Notice = ds.Notice

	var uploads []domain.Upload
	if st.UploadOpen {
		var err error
		uploads, err = h.leads.Uploads(r.Context(), recentUploads)
		if err != nil {
			h.logger.Warn("failed to list recent uploads", "error", err)
		}
	}

	renderHTML(w, http.StatusOK, leadsPage(m, st, ds, uploads))
}

// Table renders the table partial: the selection bar and the table.
func (h *LeadHandler) Table(w http.ResponseWriter, r *http.Request) {
	st := parseLeadsState(r.URL.Query())
	ds := h.leads.Dataset(r.Context())
	m := newPage(w, r, "Leads", "leads")

	renderHTML(w, http.StatusOK, leadsTablePartial(m, st, ds.Leads, false))
}

// Upload handles the HTML upload form.
func (h *LeadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		redirectWithFlash(w, r, "/leads?upload=1", MsgChooseFile)
		return
	}
	defer file.Close()

	result, err := h.leads.Upload(r.Context(), header.Filename, file, header.Size)
	if err != nil {
		if domain.ErrorCode(err) == domain.EINTERNAL {
			h.logger.Error("upload failed", "error", err, "filename", header.Filename)
		}
		redirectWithFlash(w, r, "/leads?upload=1", domain.ErrorMessage(err))
		return
	}

	redirectWithFlash(w, r, "/leads", result.Message)
}

// Actions applies a bulk action to the selected leads.
func (h *LeadHandler) Actions(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid("LeadHandler.Actions", "Invalid form"))
		return
	}

	back := safeReturn(r.PostFormValue("return"), "/leads", "/leads")
	ds := h.leads.Dataset(r.Context())
	selected := domain.SelectLeads(ds.Leads, domain.ParseSelection(r.PostForm["selected"]))
	if len(selected) == 0 {
		redirectWithFlash(w, r, back, MsgSelectLeads)
		return
	}

	switch action := r.PostFormValue("action"); action {
	case ActionEmail:
		if _, err := h.outreach.SendEmails(r.Context(), selected); err != nil {
			redirectWithFlash(w, r, back, domain.ErrorMessage(err))
			return
		}
		redirectWithFlash(w, r, back, fmt.Sprintf(MsgEmailCampaign, len(selected)))

	case ActionCall:
		if _, err := h.outreach.RequestCalls(r.Context(), selected); err != nil {
			redirectWithFlash(w, r, back, domain.ErrorMessage(err))
			return
		}
		redirectWithFlash(w, r, back, fmt.Sprintf(MsgAICalls, len(selected)))

	case ActionExport:
		h.logger.Info("exporting leads", "count", len(selected))
		attachment(w, report.FormatCSV.ContentType(), exportName("leads-selected", ".csv"))
		if err := h.reports.ExportCSV(r.Context(), selected, w); err != nil {
			h.logger.Error("csv export failed", "error", err)
		}

	case ActionReport:
		attachment(w, report.FormatPDF.ContentType(), exportName("leads-selected", ".pdf"))
		if err := h.reports.LeadsPDF(r.Context(), service.TitleSelectedLeads, ds.Source, selected, w); err != nil {
			h.logger.Error("pdf report failed", "error", err)
		}

	default:
		ErrorResponse(w, r, h.logger, domain.Errorf(domain.EINVALID, "LeadHandler.Actions", "Unknown action %q", action))
	}
}

// Show renders one lead with its synthetic contact history.
func (h *LeadHandler) Show(w http.ResponseWriter, r *http.Request) {
	lead, err := h.leads.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		m := newPage(w, r, "Lead not found", "leads")
		if domain.ErrorCode(err) == domain.ENOTFOUND {
			renderHTML(w, http.StatusNotFound, errorPage(m, "This lead does not exist or was removed."))
			return
		}
		h.logger.Error("failed to load lead", "error", err, "lead_id", r.PathValue("id"))
		renderHTML(w, http.StatusInternalServerError, errorPage(m, domain.ErrorMessage(err)))
		return
	}

	activity := h.insights.Activity(r.Context(), lead)
	m := newPage(w, r, lead.CompanyName, "leads")
	renderHTML(w, http.StatusOK, leadDetailPage(m, lead, activity))
}

// ExportCSV downloads the rows the leads page currently shows, in order.
func (h *LeadHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	st := parseLeadsState(r.URL.Query())
	ds := h.leads.Dataset(r.Context())
	rows := st.sortedRows(ds.Leads)

	attachment(w, report.FormatCSV.ContentType(), exportName("leads", ".csv"))
	if err := h.reports.ExportCSV(r.Context(), rows, w); err != nil {
		h.logger.Error("csv export failed", "error", err)
	}
}

// DownloadUpload streams an archived CSV back to the user.
func (h *LeadHandler) DownloadUpload(w http.ResponseWriter, r *http.Request) {
	rc, upload, err := h.leads.OpenUpload(r.Context(), r.PathValue("id"))
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	defer rc.Close()

	attachment(w, report.FormatCSV.ContentType(), upload.Filename)
	if _, err := io.Copy(w, rc); err != nil && !errors.Is(err, context.Canceled) {
		h.logger.Warn("upload download interrupted", "error", err, "upload_id", upload.ID)
	}
}

func exportName(prefix, ext string) string {
	return prefix + "-" + time.Now().UTC().Format("20060102-150405") + ext
}
