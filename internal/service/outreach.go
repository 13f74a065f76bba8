package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/DukeRupert/leadshift/internal/domain"
	"github.com/DukeRupert/leadshift/internal/email"
	"github.com/DukeRupert/leadshift/internal/metrics"
	"github.com/DukeRupert/leadshift/internal/queue"
	"github.com/DukeRupert/leadshift/internal/repository"
)

// OutreachService contacts leads by email or AI call and keeps a log of
// every attempt.
type OutreachService interface {
	// SendEmails emails each lead. Leads without an email are skipped.
	SendEmails(ctx context.Context, leads []domain.Lead) (domain.OutreachResult, error)

	// RequestCalls queues an AI call per lead. Leads without a phone are skipped.
	RequestCalls(ctx context.Context, leads []domain.Lead) (domain.OutreachResult, error)

	// Recent returns the newest log entries.
	Recent(ctx context.Context, limit int) ([]domain.OutreachEntry, error)

	// Backends names the configured mailer and call queue.
	Backends() (mailer, calls string)
}

type outreachService struct {
	repo   *repository.Repository
	mailer email.Mailer
	calls  queue.CallQueue
	now    func() time.Time
	logger *slog.Logger
}

// NewOutreachService creates a new OutreachService.
func NewOutreachService(
	repo *repository.Repository,
	mailer email.Mailer,
	calls queue.CallQueue,
	logger *slog.Logger,
) OutreachService {
	return &outreachService{
		repo:   repo,
		mailer: mailer,
		calls:  calls,
		now:    time.Now,
		logger: logger,
	}
}

func (s *outreachService) Backends() (string, string) {
	return s.mailer.Name(), s.calls.Name()
}

func (s *outreachService) SendEmails(ctx context.Context, leads []domain.Lead) (domain.OutreachResult, error) {
	const op = "OutreachService.SendEmails"

	return s.run(ctx, op, domain.OutreachChannelEmail, leads, func(l domain.Lead) (string, bool, error) {
		to := domain.StringValue(l.Email)
		if to == "" {
			return "no email address", false, nil
		}
		err := s.mailer.SendOutreach(ctx, email.Outreach{
			To:          to,
			CompanyName: l.CompanyName,
			Industry:    domain.StringValue(l.Industry),
			Location:    domain.StringValue(l.Location),
			Website:     domain.StringValue(l.Website),
		})
		return to, true, err
	})
}

func (s *outreachService) RequestCalls(ctx context.Context, leads []domain.Lead) (domain.OutreachResult, error) {
	const op = "OutreachService.RequestCalls"

	return s.run(ctx, op, domain.OutreachChannelCall, leads, func(l domain.Lead) (string, bool, error) {
		phone := domain.StringValue(l.Phone)
		if phone == "" {
			return "no phone number", false, nil
		}
		err := s.calls.Publish(ctx, queue.CallRequest{
			LeadID:      l.ID,
			CompanyName: l.CompanyName,
			Phone:       phone,
			Industry:    domain.StringValue(l.Industry),
			Location:    domain.StringValue(l.Location),
			RequestedAt: s.now().UTC(),
		})
		return phone, true, err
	})
}

// run applies send to each lead and records one log entry per lead. send
// reports the detail to log and whether the lead was attempted.
func (s *outreachService) run(
	ctx context.Context,
	op string,
	channel domain.OutreachChannel,
	leads []domain.Lead,
	send func(domain.Lead) (detail string, attempted bool, err error),
) (domain.OutreachResult, error) {
	if len(leads) == 0 {
		return domain.OutreachResult{}, domain.Invalid(op, "Select at least one lead")
	}

	var result domain.OutreachResult
	entries := make([]domain.OutreachEntry, 0, len(leads))
	for _, l := range leads {
		if err := ctx.Err(); err != nil {
			return result, domain.Internal(err, op, "Outreach was interrupted")
		}

		detail, attempted, err := send(l)
		status := domain.OutreachStatusSent
		switch {
		case !attempted:
			status = domain.OutreachStatusSkipped
			result.Skipped++
		case err != nil:
			status = domain.OutreachStatusFailed
			detail = err.Error()
			result.Failed++
			s.logger.Warn("outreach failed", "op", op, "lead_id", l.ID, "error", err)
		default:
			result.Sent++
		}
		metrics.OutreachTotal.WithLabelValues(string(channel), string(status)).Inc()

		entries = append(entries, domain.OutreachEntry{
			ID:          uuid.NewString(),
			LeadID:      l.ID,
			CompanyName: l.CompanyName,
			Channel:     channel,
			Status:      status,
			Detail:      detail,
			CreatedAt:   s.now().UTC(),
		})
	}

	if err := s.repo.RecordOutreach(ctx, entries...); err != nil {
		s.logger.Error("failed to record outreach", "error", err, "op", op)
		return result, domain.Internal(err, op, "Failed to record outreach")
	}

	s.logger.Info("outreach complete",
		"channel", channel,
		"sent", result.Sent,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)
	return result, nil
}

func (s *outreachService) Recent(ctx context.Context, limit int) ([]domain.OutreachEntry, error) {
	const op = "OutreachService.Recent"

	entries, err := s.repo.ListOutreach(ctx, limit)
	if err != nil {
		s.logger.Error("failed to list outreach", "error", err, "op", op)
		return nil, domain.Internal(err, op, "Failed to load the outreach log")
	}
	return entries, nil
}
