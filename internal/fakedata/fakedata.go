// Package fakedata generates the demo leads and engagement figures shown
// when no real data is available. A Generator is deterministic for a given
// seed and clock, and is not safe for concurrent use.
package fakedata

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/DukeRupert/leadshift/internal/domain"
)

var (
	companies = []string{
		"Techlify", "CodeCraft", "DevStream", "DataZen", "CloudPeak",
		"ByteForge", "PixelPulse", "NetMatrix", "LogicLeap", "InnovateTech",
	}
	cities = []string{
		"New York", "San Francisco", "Chicago", "Los Angeles", "Seattle",
		"Boston", "Austin", "Denver", "Miami", "Portland",
	}
	countries = []string{
		"USA", "Canada", "UK", "Germany", "France",
		"Australia", "Japan", "Singapore", "India", "Brazil",
	}
	industries = []string{
		"Software", "Finance", "Healthcare", "Manufacturing",
		"Retail", "Education", "Marketing",
	}
	capitalBands = []string{"< $1M", "$1-10M", "$10-50M", "$50-100M", "> $100M"}
	firstNames   = []string{
		"John", "Jane", "Michael", "Emily", "David",
		"Sarah", "Robert", "Lisa", "William", "Jessica",
	}
	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones",
		"Miller", "Davis", "Garcia", "Rodriguez", "Wilson",
	}
	jobTitles = []string{
		"CEO", "CTO", "CFO", "COO", "Director", "VP of Engineering",
		"Product Manager", "HR Manager", "Marketing Director", "Sales Manager",
	}
	words = []string{
		"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipiscing",
		"elit", "sed", "do", "eiusmod", "tempor", "incididunt", "ut", "labore",
		"et", "dolore", "magna", "aliqua",
	}
)

// Generator produces fake data from a seeded ChaCha8 source.
type Generator struct {
	src *rand.ChaCha8
	rng *rand.Rand
	now func() time.Time
}

// New returns a generator for seed. Seed 0 picks a random seed.
func New(seed uint64) *Generator {
	return NewWithClock(seed, time.Now)
}

// NewWithClock is New with an explicit clock for relative dates.
func NewWithClock(seed uint64, now func() time.Time) *Generator {
	if seed == 0 {
		seed = rand.Uint64()
	}
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	src := rand.NewChaCha8(key)
	return &Generator{src: src, rng: rand.New(src), now: now}
}

// ForLead returns a generator seeded from a lead id, so a lead always gets
// the same synthetic history.
func ForLead(id string, now func() time.Time) *Generator {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	seed := h.Sum64()
	if seed == 0 {
		seed = 1
	}
	return NewWithClock(seed, now)
}

// =============================================================================
// Leads
// =============================================================================

// Leads returns n fake leads. About one in eleven has no score.
func (g *Generator) Leads(n int) []domain.Lead {
	leads := make([]domain.Lead, n)
	for i := range leads {
		leads[i] = g.lead()
	}
	return leads
}

func (g *Generator) lead() domain.Lead {
	company := g.pick(companies)
	domainName := strings.ToLower(company) + ".com"

	var score *int
	if g.rng.IntN(11) != 0 {
		score = domain.IntPtr(g.between(10, 95))
	}

	return domain.Lead{
		ID:          g.uuid(),
		CompanyName: company,
		Email:       domain.StringPtr("contact@" + domainName),
		Phone:       domain.StringPtr(g.phone()),
		Industry:    domain.StringPtr(g.pick(industries)),
		Location:    domain.StringPtr(g.pick(cities) + ", " + g.pick(countries)),
		Capital:     domain.StringPtr(g.pick(capitalBands)),
		Score:       score,
		Website:     domain.StringPtr("https://www." + domainName),
		Status:      domain.LeadStatuses[g.rng.IntN(len(domain.LeadStatuses))],
		CreatedAt:   g.recent(7),
	}
}

// TopLead is a high-scoring lead with engagement figures.
type TopLead struct {
	domain.Lead
	EngagementRate int // percent
	LastContact    time.Time
}

// TopLeads returns n leads scored 80 to 99.
func (g *Generator) TopLeads(n int) []TopLead {
	out := make([]TopLead, n)
	for i, l := range g.Leads(n) {
		l.Score = domain.IntPtr(g.between(80, 99))
		out[i] = g.Promote(l)
	}
	return out
}

// Promote attaches engagement figures to an existing lead.
func (g *Generator) Promote(l domain.Lead) TopLead {
	return TopLead{
		Lead:           l,
		EngagementRate: g.between(70, 99),
		LastContact:    g.recent(14),
	}
}

// =============================================================================
// Dashboard
// =============================================================================

// CallDay is one day of call outcomes.
type CallDay struct {
	Date         time.Time
	Successful   int
	Unsuccessful int
	Total        int
}

// CallHistory returns one entry per day, oldest first, ending today.
func (g *Generator) CallHistory(days int) []CallDay {
	today := truncateDay(g.now())
	out := make([]CallDay, days)
	for i := range out {
		ok := g.between(2, 9)
		failed := g.between(1, 5)
		out[i] = CallDay{
			Date:         today.AddDate(0, 0, i-days+1),
			Successful:   ok,
			Unsuccessful: failed,
			Total:        ok + failed,
		}
	}
	return out
}

// WeekdayVolume is the email volume of one weekday.
type WeekdayVolume struct {
	Name   string
	Sent   int
	Opened int
}

// EmailAnalytics summarises email engagement over a period.
type EmailAnalytics struct {
	TotalSent int
	Opened    int
	OpenRate  int
	Replied   int
	ReplyRate int
	Clicked   int
	ClickRate int
	Weekly    []WeekdayVolume
}

// EmailAnalytics returns a period summary with open rates of 60-90%.
func (g *Generator) EmailAnalytics() EmailAnalytics {
	a := EmailAnalytics{
		TotalSent: g.between(200, 499),
		OpenRate:  g.between(60, 90),
		ReplyRate: g.between(20, 40),
		ClickRate: g.between(35, 60),
	}
	a.Opened = a.TotalSent * a.OpenRate / 100
	a.Replied = a.TotalSent * a.ReplyRate / 100
	a.Clicked = a.TotalSent * a.ClickRate / 100

	base := []struct {
		name             string
		sent, sentSpread int
		open, openSpread int
	}{
		{"Mon", 20, 40, 15, 30},
		{"Tue", 30, 40, 20, 35},
		{"Wed", 40, 50, 30, 40},
		{"Thu", 35, 45, 25, 35},
		{"Fri", 25, 35, 15, 25},
		{"Sat", 10, 20, 5, 15},
		{"Sun", 5, 15, 3, 10},
	}
	for _, d := range base {
		sent := d.sent + g.rng.IntN(d.sentSpread)
		opened := min(sent, d.open+g.rng.IntN(d.openSpread))
		a.Weekly = append(a.Weekly, WeekdayVolume{Name: d.name, Sent: sent, Opened: opened})
	}
	return a
}

// =============================================================================
// Helpers
// =============================================================================

func (g *Generator) pick(pool []string) string {
	return pool[g.rng.IntN(len(pool))]
}

// between returns an int in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

func (g *Generator) phone() string {
	return fmt.Sprintf("+1-%03d-%03d-%04d", g.rng.IntN(999), g.rng.IntN(999), g.rng.IntN(9999))
}

// recent returns a time within the last days days.
func (g *Generator) recent(days int) time.Time {
	back := time.Duration(g.rng.Int64N(int64(days) * int64(24*time.Hour)))
	return g.now().Add(-back).UTC().Truncate(time.Second)
}

func (g *Generator) uuid() string {
	id, err := uuid.NewRandomFromReader(g.src)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (g *Generator) sentence(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = g.pick(words)
	}
	s := strings.Join(parts, " ")
	return strings.ToUpper(s[:1]) + s[1:] + "."
}

func (g *Generator) paragraph() string {
	n := g.between(3, 5)
	parts := make([]string, n)
	for i := range parts {
		parts[i] = g.sentence(5)
	}
	return strings.Join(parts, " ")
}

func (g *Generator) fullName() string {
	return g.pick(firstNames) + " " + g.pick(lastNames)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
