package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DukeRupert/leadshift/internal/domain"
	"github.com/DukeRupert/leadshift/internal/email"
	"github.com/DukeRupert/leadshift/internal/queue"
	"github.com/DukeRupert/leadshift/internal/repository"
	"github.com/DukeRupert/leadshift/internal/testutil"
)

type failingMailer struct{}

func (failingMailer) Name() string { return "failing" }

func (failingMailer) SendOutreach(ctx context.Context, msg email.Outreach) error {
	return errors.New("smtp: 554 rejected")
}

func outreachLeads() []domain.Lead {
	return []domain.Lead{
		{ID: "a", CompanyName: "Techlify", Email: domain.StringPtr("hi@techlify.com"), Phone: domain.StringPtr("555-0100")},
		{ID: "b", CompanyName: "CodeCraft", Phone: domain.StringPtr("555-0101")},
		{ID: "c", CompanyName: "DataZen", Email: domain.StringPtr("hello@datazen.io")},
	}
}

func newOutreach(t *testing.T, mailer email.Mailer) (OutreachService, *queue.LogQueue) {
	t.Helper()
	repo := repository.New(testutil.OpenDB(t), repository.DialectSQLite)
	calls := queue.NewLogQueue(discardLogger())
	return NewOutreachService(repo, mailer, calls, discardLogger()), calls
}

func TestOutreachService_SendEmails(t *testing.T) {
	ctx := context.Background()
	mailer := email.NewLogMailer("LeadShift", discardLogger())
	svc, _ := newOutreach(t, mailer)

	res, err := svc.SendEmails(ctx, outreachLeads())
	require.NoError(t, err)
	assert.Equal(t, domain.OutreachResult{Sent: 2, Skipped: 1}, res)
	assert.Equal(t, 3, res.Total())

	sent := mailer.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, "hi@techlify.com", sent[0].To)
	assert.Equal(t, "hello@datazen.io", sent[1].To)

	log, err := svc.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, log, 3)
	statuses := map[string]domain.OutreachStatus{}
	for _, e := range log {
		assert.Equal(t, domain.OutreachChannelEmail, e.Channel)
		statuses[e.LeadID] = e.Status
	}
	assert.Equal(t, map[string]domain.OutreachStatus{
		"a": domain.OutreachStatusSent,
		"b": domain.OutreachStatusSkipped,
		"c": domain.OutreachStatusSent,
	}, statuses)
}

func TestOutreachService_SendEmails_Failure(t *testing.T) {
	svc, _ := newOutreach(t, failingMailer{})

	res, err := svc.SendEmails(context.Background(), outreachLeads())
	require.NoError(t, err)
	assert.Equal(t, domain.OutreachResult{Skipped: 1, Failed: 2}, res)

	log, err := svc.Recent(context.Background(), 10)
	require.NoError(t, err)
	for _, e := range log {
		if e.Status == domain.OutreachStatusFailed {
			assert.Contains(t, e.Detail, "554")
		}
	}
}

func TestOutreachService_RequestCalls(t *testing.T) {
	svc, calls := newOutreach(t, email.NewLogMailer("", discardLogger()))

	res, err := svc.RequestCalls(context.Background(), outreachLeads())
	require.NoError(t, err)
	assert.Equal(t, domain.OutreachResult{Sent: 2, Skipped: 1}, res)

	published := calls.Published()
	require.Len(t, published, 2)
	assert.Equal(t, "a", published[0].LeadID)
	assert.Equal(t, "555-0101", published[1].Phone)
	assert.False(t, published[0].RequestedAt.IsZero())
}

func TestOutreachService_EmptySelection(t *testing.T) {
	svc, _ := newOutreach(t, email.NewLogMailer("", discardLogger()))

	_, err := svc.SendEmails(context.Background(), nil)
	assertCode(t, err, domain.EINVALID, "Select at least one lead")

	_, err = svc.RequestCalls(context.Background(), []domain.Lead{})
	assertCode(t, err, domain.EINVALID, "Select at least one lead")
}

func TestOutreachService_Backends(t *testing.T) {
	svc, _ := newOutreach(t, email.NewLogMailer("", discardLogger()))

	mailer, calls := svc.Backends()
	assert.Equal(t, "log", mailer)
	assert.Equal(t, "log", calls)
}
