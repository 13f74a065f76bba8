package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/DukeRupert/leadshift/internal/domain"
	"github.com/DukeRupert/leadshift/internal/fakedata"
	"github.com/DukeRupert/leadshift/internal/pipeline"
)

// TopLeadMinScore is the lowest score listed among top performing leads.
const TopLeadMinScore = 80

// InsightService assembles the dashboard, engagement and lead detail
// figures. Call, email and engagement figures are synthetic; lead counts
// and scores come from the dataset.
type InsightService interface {
	Overview(ctx context.Context) Overview
	Engagement(ctx context.Context) fakedata.Engagement
	Activity(ctx context.Context, lead domain.Lead) fakedata.LeadActivity
}

// Overview is the dashboard content.
type Overview struct {
	Source      domain.DataSource
	Notice      string
	Stats       domain.LeadStats
	TopLeads    []fakedata.TopLead
	CallHistory []fakedata.CallDay
	Email       fakedata.EmailAnalytics
}

type insightService struct {
	leads  LeadService
	seed   uint64
	now    func() time.Time
	logger *slog.Logger
}

// NewInsightService creates a new InsightService. seed 0 gives different
// synthetic figures on every call.
func NewInsightService(leads LeadService, seed uint64, logger *slog.Logger) InsightService {
	return &insightService{leads: leads, seed: seed, now: time.Now, logger: logger}
}

func (s *insightService) generator() *fakedata.Generator {
	return fakedata.NewWithClock(s.seed, s.now)
}

func (s *insightService) Overview(ctx context.Context) Overview {
	ds := s.leads.Dataset(ctx)
	g := s.generator()

	o := Overview{
		Source:      ds.Source,
		Notice:      ds.Notice,
		Stats:       domain.ComputeStats(ds.Leads),
		CallHistory: g.CallHistory(30),
		Email:       g.EmailAnalytics(),
	}

	if ds.IsFallback() {
		o.TopLeads = g.TopLeads(5)
		return o
	}

	ranked := pipeline.ApplySort(ds.Leads, pipeline.KeyScore, domain.SortDesc)
	for _, l := range ranked {
		if len(o.TopLeads) == 5 || l.Score == nil || *l.Score < TopLeadMinScore {
			break
		}
		o.TopLeads = append(o.TopLeads, fakedata.ForLead(l.ID, s.now).Promote(l))
	}
	return o
}

func (s *insightService) Engagement(ctx context.Context) fakedata.Engagement {
	return s.generator().Engagement()
}

// Activity is seeded by the lead id, so a lead always shows the same history.
func (s *insightService) Activity(ctx context.Context, lead domain.Lead) fakedata.LeadActivity {
	return fakedata.ForLead(lead.ID, s.now).LeadActivity(leadDomain(lead))
}

// leadDomain derives the company's mail domain from its website, email or
// name, in that order.
func leadDomain(l domain.Lead) string {
	if site := domain.StringValue(l.Website); site != "" {
		host := site
		if i := strings.Index(host, "://"); i >= 0 {
			host = host[i+3:]
		}
		host = strings.TrimPrefix(host, "www.")
		if i := strings.IndexAny(host, "/?#"); i >= 0 {
			host = host[:i]
		}
		if host != "" {
			return strings.ToLower(host)
		}
	}
	if email := domain.StringValue(l.Email); email != "" {
		if i := strings.LastIndex(email, "@"); i >= 0 && i < len(email)-1 {
			return strings.ToLower(email[i+1:])
		}
	}
	name := strings.ToLower(strings.Join(strings.Fields(l.CompanyName), ""))
	if name == "" {
		name = "example"
	}
	return name + ".com"
}
