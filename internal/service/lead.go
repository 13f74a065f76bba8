// Package service contains the business logic layer.
//
// This file implements the lead service: CSV ingestion, the dataset shown
// on pages, and lead lookups.
package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/DukeRupert/leadshift/internal/csvimport"
	"github.com/DukeRupert/leadshift/internal/domain"
	"github.com/DukeRupert/leadshift/internal/fakedata"
	"github.com/DukeRupert/leadshift/internal/metrics"
	"github.com/DukeRupert/leadshift/internal/repository"
	"github.com/DukeRupert/leadshift/internal/storage"
)

// User-facing upload messages.
const (
	MsgNotCSV    = "File must be a CSV"
	MsgEmptyCSV  = "The CSV file is empty"
	MsgParseCSV  = "Unable to parse the CSV file"
	MsgTooLarge  = "The CSV file is too large"
	MsgSaveLeads = "Failed to save leads"
)

// Dataset notices.
const (
	NoticeDemoData  = "Using demo data"
	NoticeAPIFailed = "Using demo data - API connection failed"
)

// DefaultMaxUploadBytes is used when LeadConfig.MaxUploadBytes is zero.
const DefaultMaxUploadBytes = 5 << 20

// =============================================================================
// Interface Definition
// =============================================================================

// LeadService defines operations on leads.
type LeadService interface {
	// Upload validates, archives, parses and stores a CSV file. size is the
	// declared size, or -1 when unknown.
	Upload(ctx context.Context, filename string, body io.Reader, size int64) (*UploadResult, error)

	// Dataset returns the leads a page works on. It falls back to demo leads
	// when the store is empty or unreachable and never fails.
	Dataset(ctx context.Context) domain.Dataset

	// List returns every stored lead in insertion order.
	List(ctx context.Context) ([]domain.Lead, error)

	// Get returns a stored lead, or a demo lead with that id.
	Get(ctx context.Context, id string) (domain.Lead, error)

	// Uploads returns recent uploads, newest first.
	Uploads(ctx context.Context, limit int) ([]domain.Upload, error)

	// OpenUpload opens the archived CSV of an upload.
	OpenUpload(ctx context.Context, id string) (io.ReadCloser, domain.Upload, error)

	// Ping checks the lead store.
	Ping(ctx context.Context) error
}

// UploadResult is returned after a successful upload.
type UploadResult struct {
	UploadID string `json:"upload_id"`
	Count    int    `json:"count"`
	Message  string `json:"message"`
}

// LeadConfig tunes the lead service.
type LeadConfig struct {
	MaxUploadBytes int64
	FallbackCount  int
	FallbackSeed   uint64 // 0 picks a random seed at construction
	Mapping        csvimport.Mapping
}

// =============================================================================
// Implementation
// =============================================================================

type leadService struct {
	repo     *repository.Repository
	storage  storage.Storage
	parser   *csvimport.Parser
	maxBytes int64
	fallback []domain.Lead
	now      func() time.Time
	logger   *slog.Logger
}

// NewLeadService creates a new LeadService. The fallback leads are
// generated once so their ids stay valid for the life of the process.
func NewLeadService(
	repo *repository.Repository,
	store storage.Storage,
	cfg LeadConfig,
	logger *slog.Logger,
) LeadService {
	maxBytes := cfg.MaxUploadBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &leadService{
		repo:     repo,
		storage:  store,
		parser:   csvimport.NewParser(cfg.Mapping),
		maxBytes: maxBytes,
		fallback: fakedata.New(cfg.FallbackSeed).Leads(cfg.FallbackCount),
		now:      time.Now,
		logger:   logger,
	}
}

// =============================================================================
// Upload
// =============================================================================

func (s *leadService) Upload(ctx context.Context, filename string, body io.Reader, size int64) (*UploadResult, error) {
	const op = "LeadService.Upload"

	filename = strings.TrimSpace(filename)
	if !storage.IsCSVFilename(filename) {
		metrics.UploadFailures.WithLabelValues("not_csv").Inc()
		return nil, domain.Invalid(op, MsgNotCSV)
	}
	if size > s.maxBytes {
		metrics.UploadFailures.WithLabelValues("too_large").Inc()
		return nil, domain.TooLarge(op, MsgTooLarge)
	}

	data, err := io.ReadAll(io.LimitReader(body, s.maxBytes+1))
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to read the uploaded file")
	}
	if int64(len(data)) > s.maxBytes {
		metrics.UploadFailures.WithLabelValues("too_large").Inc()
		return nil, domain.TooLarge(op, MsgTooLarge)
	}

	leads, err := s.parser.Parse(bytes.NewReader(data))
	switch {
	case errors.Is(err, csvimport.ErrEmpty):
		metrics.UploadFailures.WithLabelValues("empty").Inc()
		return nil, domain.Wrap(err, domain.EINVALID, op, MsgEmptyCSV)
	case errors.Is(err, csvimport.ErrMalformed):
		metrics.UploadFailures.WithLabelValues("malformed").Inc()
		s.logger.Info("rejected malformed csv", "filename", filename, "error", err)
		return nil, domain.Wrap(err, domain.EINVALID, op, MsgParseCSV)
	case err != nil:
		return nil, domain.Internal(err, op, MsgParseCSV)
	}

	upload := domain.Upload{
		ID:        uuid.NewString(),
		Filename:  filename,
		RowCount:  len(leads),
		CreatedAt: s.now().UTC(),
	}
	upload.ObjectKey = storage.UploadKey(upload.ID, filename)

	err = s.storage.Put(ctx, upload.ObjectKey, bytes.NewReader(data), storage.PutOptions{
		ContentType: storage.ContentTypeCSV,
		MaxSize:     s.maxBytes,
	})
	if err != nil {
		metrics.UploadFailures.WithLabelValues("storage").Inc()
		s.logger.Error("failed to archive upload", "error", err, "op", op, "key", upload.ObjectKey)
		return nil, domain.Internal(err, op, MsgSaveLeads)
	}

	if err := s.repo.CreateUpload(ctx, upload, leads); err != nil {
		metrics.UploadFailures.WithLabelValues("database").Inc()
		s.logger.Error("failed to store leads", "error", err, "op", op, "upload_id", upload.ID)
		if delErr := s.storage.Delete(context.WithoutCancel(ctx), upload.ObjectKey); delErr != nil {
			s.logger.Warn("failed to remove orphaned upload", "key", upload.ObjectKey, "error", delErr)
		}
		return nil, domain.Internal(err, op, MsgSaveLeads)
	}

	metrics.UploadsTotal.Inc()
	metrics.LeadsUploaded.Add(float64(len(leads)))
	s.logger.Info("leads uploaded",
		"upload_id", upload.ID,
		"filename", filename,
		"count", len(leads),
		"bytes", len(data),
	)

	return &UploadResult{
		UploadID: upload.ID,
		Count:    len(leads),
		Message:  fmt.Sprintf("Successfully uploaded %d leads", len(leads)),
	}, nil
}

// =============================================================================
// Reads
// =============================================================================

func (s *leadService) Dataset(ctx context.Context) domain.Dataset {
	const op = "LeadService.Dataset"

	leads, err := s.repo.ListLeads(ctx)
	if err != nil {
		s.logger.Warn("lead store unavailable, serving demo data", "error", err, "op", op)
		metrics.DatasetsServed.WithLabelValues(string(domain.DataSourceFallback)).Inc()
		return domain.Dataset{Leads: s.fallbackLeads(), Source: domain.DataSourceFallback, Notice: NoticeAPIFailed}
	}
	if len(leads) == 0 {
		s.logger.Debug("fallback dataset served", "count", len(s.fallback))
		metrics.DatasetsServed.WithLabelValues(string(domain.DataSourceFallback)).Inc()
		return domain.Dataset{Leads: s.fallbackLeads(), Source: domain.DataSourceFallback, Notice: NoticeDemoData}
	}

	metrics.DatasetsServed.WithLabelValues(string(domain.DataSourceReal)).Inc()
	return domain.Dataset{Leads: leads, Source: domain.DataSourceReal}
}

func (s *leadService) fallbackLeads() []domain.Lead {
	return slices.Clone(s.fallback)
}

func (s *leadService) List(ctx context.Context) ([]domain.Lead, error) {
	const op = "LeadService.List"

	leads, err := s.repo.ListLeads(ctx)
	if err != nil {
		s.logger.Error("failed to list leads", "error", err, "op", op)
		return nil, domain.Internal(err, op, "Failed to list leads")
	}
	return leads, nil
}

func (s *leadService) Get(ctx context.Context, id string) (domain.Lead, error) {
	const op = "LeadService.Get"

	lead, err := s.repo.GetLead(ctx, id)
	if err == nil {
		return lead, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		s.logger.Warn("failed to get lead", "error", err, "op", op, "lead_id", id)
	}

	for _, l := range s.fallback {
		if l.ID == id {
			return l, nil
		}
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Lead{}, domain.NotFound(op, "lead", id)
	}
	return domain.Lead{}, domain.Internal(err, op, "Failed to retrieve lead")
}

func (s *leadService) Uploads(ctx context.Context, limit int) ([]domain.Upload, error) {
	const op = "LeadService.Uploads"

	uploads, err := s.repo.ListUploads(ctx, limit)
	if err != nil {
		s.logger.Error("failed to list uploads", "error", err, "op", op)
		return nil, domain.Internal(err, op, "Failed to list uploads")
	}
	return uploads, nil
}

func (s *leadService) OpenUpload(ctx context.Context, id string) (io.ReadCloser, domain.Upload, error) {
	const op = "LeadService.OpenUpload"

	upload, err := s.repo.GetUpload(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.Upload{}, domain.NotFound(op, "upload", id)
		}
		return nil, domain.Upload{}, domain.Internal(err, op, "Failed to retrieve upload")
	}

	rc, _, err := s.storage.Get(ctx, upload.ObjectKey)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, domain.Upload{}, domain.Errorf(domain.ENOTFOUND, op, "The archived file for upload %q is missing", id)
		}
		s.logger.Error("failed to open archived upload", "error", err, "op", op, "key", upload.ObjectKey)
		return nil, domain.Upload{}, domain.Internal(err, op, "Failed to open upload")
	}
	return rc, upload, nil
}

func (s *leadService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
