package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DukeRupert/leadshift/internal"
	"github.com/DukeRupert/leadshift/internal/csvimport"
	"github.com/DukeRupert/leadshift/internal/email"
	"github.com/DukeRupert/leadshift/internal/handler"
	"github.com/DukeRupert/leadshift/internal/middleware"
	"github.com/DukeRupert/leadshift/internal/queue"
	"github.com/DukeRupert/leadshift/internal/repository"
	"github.com/DukeRupert/leadshift/internal/service"
	"github.com/DukeRupert/leadshift/internal/storage"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database connection
	db, err := internal.OpenDatabase(ctx, cfg.DatabaseDriver, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer db.Close()

	// Run migrations
	if err := internal.RunMigrations(db, cfg.DatabaseDriver); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database ready", "driver", cfg.DatabaseDriver)

	repo := repository.New(db, cfg.DatabaseDriver)

	// Initialize archive storage
	store, err := storage.New(cfg.StorageConfig(), logger)
	if err != nil {
		return fmt.Errorf("storage initialization failed: %w", err)
	}

	mapping, err := csvimport.LoadMapping(cfg.CSVMappingFile)
	if err != nil {
		return fmt.Errorf("csv mapping: %w", err)
	}

	// Outreach backends fall back to logging when unconfigured
	mailer := email.New(email.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
		FromName: cfg.SMTPFromName,
	}, logger)

	calls, err := queue.New(cfg.AMQPURL, logger)
	if err != nil {
		return fmt.Errorf("call queue initialization failed: %w", err)
	}
	defer calls.Close()

	// Initialize services
	leadService := service.NewLeadService(repo, store, service.LeadConfig{
		MaxUploadBytes: cfg.UploadMaxBytes,
		FallbackCount:  cfg.FallbackLeadCount,
		FallbackSeed:   cfg.FallbackSeed,
		Mapping:        mapping,
	}, logger)
	insightService := service.NewInsightService(leadService, cfg.FallbackSeed, logger)
	outreachService := service.NewOutreachService(repo, mailer, calls, logger)
	reportService := service.NewReportService(logger)

	// Initialize middleware
	uploadLimiter := middleware.NewRateLimiter(cfg.UploadRateLimit, cfg.UploadRateWindow, logger)
	defer uploadLimiter.Stop()
	uploadLimit := middleware.NewRateLimitMiddleware(uploadLimiter, logger)

	metricsAuth := middleware.NewBasicAuthMiddleware("metrics", cfg.MetricsUsername, cfg.MetricsPassword)
	if !metricsAuth.Enabled() {
		logger.Warn("Metrics endpoint is unprotected; set METRICS_USERNAME and METRICS_PASSWORD")
	}

	router := handler.NewRouter(handler.RouterConfig{
		Leads:          leadService,
		Insights:       insightService,
		Outreach:       outreachService,
		Reports:        reportService,
		MaxUploadBytes: cfg.UploadMaxBytes,
		UploadLimit:    uploadLimit.Limit,
		CORSOrigins:    cfg.CORSAllowedOrigins,
		Secure:         !cfg.IsDevelopment(),
		MetricsHandler: metricsAuth.Handler(promhttp.Handler()),
		Logger:         logger,
	})

	// ==========================================================================
	// Start server
	// ==========================================================================

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		logger.Info("Server started",
			"address", server.Addr,
			"env", cfg.Env,
			"storage", cfg.StorageProvider,
			"mailer", mailer.Name(),
			"calls", calls.Name(),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
		}
	}()

	// Wait for interrupt signal
	<-sigChan
	logger.Info("Shutdown signal received, initiating graceful shutdown...")

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Graceful shutdown complete")
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
