package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/DukeRupert/leadshift/internal/domain"
	"github.com/DukeRupert/leadshift/internal/metrics"
	"github.com/DukeRupert/leadshift/internal/report"
)

// Report titles.
const (
	TitleAllLeads      = "Lead Report"
	TitleSelectedLeads = "Selected Leads"
)

// ReportService renders leads as downloadable reports.
type ReportService interface {
	// LeadsPDF writes a PDF summary of leads.
	LeadsPDF(ctx context.Context, title string, source domain.DataSource, leads []domain.Lead, w io.Writer) error

	// ExportCSV writes leads as CSV in the given order.
	ExportCSV(ctx context.Context, leads []domain.Lead, w io.Writer) error
}

type reportService struct {
	pdf    report.Generator
	csv    report.Generator
	now    func() time.Time
	logger *slog.Logger
}

// NewReportService creates a new ReportService.
func NewReportService(logger *slog.Logger) ReportService {
	return &reportService{
		pdf:    report.NewPDFGenerator(),
		csv:    report.NewCSVGenerator(),
		now:    time.Now,
		logger: logger,
	}
}

func (s *reportService) LeadsPDF(ctx context.Context, title string, source domain.DataSource, leads []domain.Lead, w io.Writer) error {
	const op = "ReportService.LeadsPDF"
	return s.generate(ctx, op, s.pdf, report.NewData(title, source, leads, s.now()), w)
}

func (s *reportService) ExportCSV(ctx context.Context, leads []domain.Lead, w io.Writer) error {
	const op = "ReportService.ExportCSV"
	return s.generate(ctx, op, s.csv, report.NewData("Leads", domain.DataSourceReal, leads, s.now()), w)
}

func (s *reportService) generate(ctx context.Context, op string, gen report.Generator, data *report.Data, w io.Writer) error {
	n, err := gen.Generate(ctx, data, w)
	if err != nil {
		s.logger.Error("failed to generate report", "error", err, "op", op, "format", gen.Format())
		return domain.Internal(err, op, "Failed to generate report")
	}

	metrics.ReportsGenerated.WithLabelValues(string(gen.Format())).Inc()
	s.logger.Info("report generated",
		"format", gen.Format(),
		"leads", len(data.Leads),
		"bytes", n,
	)
	return nil
}
