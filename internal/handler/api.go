package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/DukeRupert/leadshift/internal/domain"
	"github.com/DukeRupert/leadshift/internal/service"
)

// multipartOverhead is the allowance for multipart boundaries and headers
// on top of the file size limit.
const multipartOverhead = 64 << 10

const healthTimeout = 2 * time.Second

// APIHandler serves the JSON endpoints.
type APIHandler struct {
	leads    service.LeadService
	maxBytes int64
	logger   *slog.Logger
}

// NewAPIHandler creates a new APIHandler. maxBytes caps the uploaded file.
func NewAPIHandler(leads service.LeadService, maxBytes int64, logger *slog.Logger) *APIHandler {
	if maxBytes <= 0 {
		maxBytes = service.DefaultMaxUploadBytes
	}
	return &APIHandler{leads: leads, maxBytes: maxBytes, logger: logger}
}

// RegisterRoutes registers the API routes. uploadLimit wraps the upload
// endpoint when non-nil.
func (h *APIHandler) RegisterRoutes(mux *http.ServeMux, uploadLimit func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /_healthz", h.Healthz)
	mux.HandleFunc("GET /routes/api/leads", h.List)

	var upload http.Handler = http.HandlerFunc(h.Upload)
	if uploadLimit != nil {
		upload = uploadLimit(upload)
	}
	mux.Handle("POST /routes/api/leads/upload", upload)
}

type healthResponse struct {
	Status string `json:"status"`
}

// Healthz reports whether the database is reachable.
func (h *APIHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.leads.Ping(ctx); err != nil {
		h.logger.Warn("health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// Upload accepts a multipart form with a CSV in the "file" field.
func (h *APIHandler) Upload(w http.ResponseWriter, r *http.Request) {
	const op = "APIHandler.Upload"

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+multipartOverhead)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			ErrorResponse(w, r, h.logger, domain.TooLarge(op, service.MsgTooLarge))
			return
		}
		ValidationErrorResponse(w, r, h.logger, domain.MissingField(op, "file"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		ValidationErrorResponse(w, r, h.logger, domain.MissingField(op, "file"))
		return
	}
	defer file.Close()

	result, err := h.leads.Upload(r.Context(), header.Filename, file, header.Size)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type leadsResponse struct {
	Leads []domain.Lead `json:"leads"`
}

// List returns the stored leads. An empty store yields an empty array;
// substituting placeholder leads is left to the caller.
func (h *APIHandler) List(w http.ResponseWriter, r *http.Request) {
	leads, err := h.leads.List(r.Context())
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	if leads == nil {
		leads = []domain.Lead{}
	}
	writeJSON(w, http.StatusOK, leadsResponse{Leads: leads})
}
