package handler

import (
	"log/slog"
	"net/http"

	"github.com/DukeRupert/leadshift/internal/csrf"
	"github.com/DukeRupert/leadshift/internal/metrics"
	"github.com/DukeRupert/leadshift/internal/middleware"
	"github.com/DukeRupert/leadshift/internal/service"
)

// RouterConfig carries everything NewRouter wires together.
type RouterConfig struct {
	Leads    service.LeadService
	Insights service.InsightService
	Outreach service.OutreachService
	Reports  service.ReportService

	MaxUploadBytes int64

	// UploadLimit wraps both upload endpoints. Nil disables rate limiting.
	UploadLimit middleware.Middleware

	CORSOrigins []string
	Secure      bool

	// MetricsHandler serves /metrics when non-nil.
	MetricsHandler http.Handler

	Logger *slog.Logger
}

// NewRouter builds the application handler with its middleware stack.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	maxUpload := cfg.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = service.DefaultMaxUploadBytes
	}

	mux := http.NewServeMux()

	mux.Handle("GET /static/", http.StripPrefix("/static/", staticHandler()))
	if cfg.MetricsHandler != nil {
		mux.Handle("GET /metrics", cfg.MetricsHandler)
	}

	NewAPIHandler(cfg.Leads, maxUpload, logger).RegisterRoutes(mux, cfg.UploadLimit)
	NewDashboardHandler(cfg.Insights, logger).RegisterRoutes(mux)
	NewLeadHandler(cfg.Leads, cfg.Insights, cfg.Outreach, cfg.Reports, logger).RegisterRoutes(mux, cfg.UploadLimit)
	NewReportHandler(cfg.Leads, cfg.Reports, logger).RegisterRoutes(mux)
	NewOutreachHandler(cfg.Outreach, logger).RegisterRoutes(mux)
	NewSettingsHandler(logger).RegisterRoutes(mux)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if acceptsJSON(r) {
			NotFoundResponse(w, r, logger)
			return
		}
		m := newPage(w, r, "Page not found", "")
		renderHTML(w, http.StatusNotFound, errorPage(m, "The page you are looking for does not exist."))
	})

	protector := csrf.New(csrf.Config{
		Secure:       cfg.Secure,
		MaxFormBytes: maxUpload + 1<<20,
		ExemptPrefix: []string{middleware.APIPrefix, "/_healthz", "/metrics"},
	}, logger)

	return middleware.Stack(mux,
		middleware.Recover(logger),
		middleware.NewSecurityHeadersMiddleware(cfg.Secure).Handler,
		middleware.NewRequestLoggingMiddleware(logger).Handler,
		metrics.Middleware,
		middleware.APICORS(cfg.CORSOrigins),
		protector.Handler,
	)
}
