package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DukeRupert/leadshift/internal/domain"
)

func lead(id, name string, score *int) domain.Lead {
	return domain.Lead{ID: id, CompanyName: name, Score: score, Status: domain.LeadStatusNew}
}

func sampleLeads() []domain.Lead {
	return []domain.Lead{
		{
			ID: "1", CompanyName: "Techlify", Email: domain.StringPtr("contact@techlify.com"),
			Industry: domain.StringPtr("Software"), Location: domain.StringPtr("Austin, USA"),
			Score: domain.IntPtr(85), Status: domain.LeadStatusNew,
		},
		{
			ID: "2", CompanyName: "CodeCraft", Phone: domain.StringPtr("+1-555-010-2000"),
			Industry: domain.StringPtr("Finance"), Location: domain.StringPtr("Boston, USA"),
			Score: domain.IntPtr(42), Status: domain.LeadStatusContacted,
		},
		{
			ID: "3", CompanyName: "DataZen",
			Industry: domain.StringPtr("Software"), Location: domain.StringPtr("Boston, USA"),
			Status: domain.LeadStatusQualified,
		},
		{
			ID: "4", CompanyName: "ByteForge", Email: domain.StringPtr("hi@byteforge.io"),
			Industry: domain.StringPtr("Retail"),
			Score:    domain.IntPtr(15), Status: domain.LeadStatusDisqualified,
		},
		{
			ID: "5", CompanyName: "NetMatrix", Location: domain.StringPtr("Austin, USA"),
			Status: domain.LeadStatusNew,
		},
	}
}

func ids(leads []domain.Lead) []string {
	return domain.LeadIDs(leads)
}

// =============================================================================
// ComputeVisibleRows
// =============================================================================

func TestComputeVisibleRows_ExampleScenario(t *testing.T) {
	data := []domain.Lead{
		lead("a", "Zeta", domain.IntPtr(10)),
		lead("b", "Alpha", domain.IntPtr(90)),
	}
	filters := domain.DefaultFilterState()

	visible := ComputeVisibleRows(data, filters, "")
	assert.Equal(t, []string{"a", "b"}, ids(visible))

	sorted := ApplySort(visible, KeyCompanyName, domain.SortAsc)
	assert.Equal(t, []string{"Alpha", "Zeta"}, []string{sorted[0].CompanyName, sorted[1].CompanyName})

	filters.Status = domain.FilterPending
	pending := ComputeVisibleRows(data, filters, "")
	assert.NotNil(t, pending)
	assert.Empty(t, pending)

	assert.Equal(t, []string{"b"}, ids(ComputeVisibleRows(data, domain.DefaultFilterState(), "alp")))
}

func TestComputeVisibleRows_TextSearch(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty matches scored", "", []string{"1", "2", "4"}},
		{"company case-insensitive", "TECH", []string{"1"}},
		{"email", "byteforge.io", []string{"4"}},
		{"phone", "555-010", []string{"2"}},
		{"industry", "finance", []string{"2"}},
		{"location", "austin", []string{"1"}},
		{"no match", "zzz", []string{}},
		{"surrounding space is literal", "techlify ", []string{}},
		{"inner space matches", "boston, usa", []string{"2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeVisibleRows(sampleLeads(), domain.DefaultFilterState(), tt.query)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestComputeVisibleRows_Dimensions(t *testing.T) {
	tests := []struct {
		name   string
		modify func(f *domain.FilterState)
		want   []string
	}{
		{"industry", func(f *domain.FilterState) { f.Industry = "Software" }, []string{"1"}},
		{"location", func(f *domain.FilterState) { f.Location = "Boston, USA" }, []string{"2"}},
		{"status", func(f *domain.FilterState) { f.Status = "contacted" }, []string{"2"}},
		{"pending overrides status", func(f *domain.FilterState) { f.Status = domain.FilterPending }, []string{"3", "5"}},
		{"pending with location", func(f *domain.FilterState) {
			f.Status = domain.FilterPending
			f.Location = "Austin, USA"
		}, []string{"5"}},
		{"score range", func(f *domain.FilterState) { f.ScoreMin, f.ScoreMax = 40, 85 }, []string{"1", "2"}},
		{"inclusive bounds", func(f *domain.FilterState) { f.ScoreMin, f.ScoreMax = 42, 42 }, []string{"2"}},
		{"inverted range", func(f *domain.FilterState) { f.ScoreMin, f.ScoreMax = 90, 10 }, []string{}},
		{"unknown industry", func(f *domain.FilterState) { f.Industry = "Mining" }, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := domain.DefaultFilterState()
			tt.modify(&f)
			assert.Equal(t, tt.want, ids(ComputeVisibleRows(sampleLeads(), f, "")))
		})
	}
}

func TestComputeVisibleRows_ScoresWithinRange(t *testing.T) {
	all := sampleLeads()
	for min := 0; min <= 100; min += 10 {
		for max := min; max <= 100; max += 15 {
			f := domain.DefaultFilterState()
			f.ScoreMin, f.ScoreMax = min, max
			for _, l := range ComputeVisibleRows(all, f, "") {
				require.NotNil(t, l.Score)
				assert.GreaterOrEqual(t, *l.Score, min)
				assert.LessOrEqual(t, *l.Score, max)
			}
		}
	}
}

func TestComputeVisibleRows_PendingIgnoresScoreRange(t *testing.T) {
	f := domain.DefaultFilterState()
	f.Status = domain.FilterPending
	f.ScoreMin, f.ScoreMax = 99, 1

	got := ComputeVisibleRows(sampleLeads(), f, "")
	require.NotEmpty(t, got)
	for _, l := range got {
		assert.Nil(t, l.Score)
	}
}

func TestComputeVisibleRows_Idempotent(t *testing.T) {
	f := domain.DefaultFilterState()
	f.Location = "Austin, USA"

	once := ComputeVisibleRows(sampleLeads(), f, "tech")
	twice := ComputeVisibleRows(once, f, "tech")
	assert.Equal(t, once, twice)
}

func TestComputeVisibleRows_DoesNotMutateInput(t *testing.T) {
	all := sampleLeads()
	before := ids(all)

	_ = ComputeVisibleRows(all, domain.DefaultFilterState(), "a")
	_ = ApplySort(all, KeyScore, domain.SortDesc)

	assert.Equal(t, before, ids(all))
}

// =============================================================================
// ApplySort
// =============================================================================

func TestApplySort_Score(t *testing.T) {
	all := sampleLeads()

	asc := ApplySort(all, KeyScore, domain.SortAsc)
	assert.Equal(t, []string{"4", "2", "1", "3", "5"}, ids(asc))

	desc := ApplySort(all, KeyScore, domain.SortDesc)
	assert.Equal(t, []string{"1", "2", "4", "3", "5"}, ids(desc), "absent scores stay last")
}

func TestApplySort_Stable(t *testing.T) {
	rows := []domain.Lead{
		lead("a", "Same", domain.IntPtr(50)),
		lead("b", "Other", domain.IntPtr(10)),
		lead("c", "Same", domain.IntPtr(50)),
		lead("d", "Same", domain.IntPtr(50)),
	}

	asc := ApplySort(rows, KeyScore, domain.SortAsc)
	assert.Equal(t, []string{"b", "a", "c", "d"}, ids(asc))

	desc := ApplySort(rows, KeyScore, domain.SortDesc)
	assert.Equal(t, []string{"a", "c", "d", "b"}, ids(desc))
}

func TestApplySort_NoOpCases(t *testing.T) {
	all := sampleLeads()

	assert.Equal(t, ids(all), ids(ApplySort(all, "not_a_column", domain.SortAsc)))
	assert.Equal(t, ids(all), ids(ApplySort(all, KeyScore, domain.SortNone)))
}

func TestApplySort_CreatedAt(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []domain.Lead{
		{ID: "late", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "early", CreatedAt: base},
	}
	assert.Equal(t, []string{"early", "late"}, ids(ApplySort(rows, KeyCreatedAt, domain.SortAsc)))
}

func TestApplySort_OptionalStringsLast(t *testing.T) {
	all := sampleLeads()
	got := ApplySort(all, KeyEmail, domain.SortAsc)
	assert.Equal(t, []string{"1", "4", "2", "3", "5"}, ids(got))
}

// =============================================================================
// Facets
// =============================================================================

func TestFacets(t *testing.T) {
	f := Facets(sampleLeads())
	assert.Equal(t, []string{"Finance", "Retail", "Software"}, f.Industries)
	assert.Equal(t, []string{"Austin, USA", "Boston, USA"}, f.Locations)
}

func TestLeadKey_Injective(t *testing.T) {
	seen := map[string]bool{}
	for _, l := range sampleLeads() {
		key := domain.LeadKey(l)
		assert.False(t, seen[key], "duplicate key %s", key)
		seen[key] = true
	}
}
