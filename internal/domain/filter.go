package domain

import (
	"net/url"
	"strconv"
)

// Filter sentinels.
const (
	// FilterAll disables a filter dimension.
	FilterAll = "all"

	// FilterPending selects leads whose score is absent. Only meaningful
	// for the status dimension.
	FilterPending = "pending"
)

// FilterState is the user's current filter selection on the leads page.
// It is built from the request on every page load and never persisted.
type FilterState struct {
	Query    string
	ScoreMin int
	ScoreMax int
	Industry string // exact value or FilterAll
	Location string // exact value or FilterAll
	Status   string // LeadStatus value, FilterAll or FilterPending
}

// DefaultFilterState returns a filter that passes every scored lead.
func DefaultFilterState() FilterState {
	return FilterState{
		ScoreMin: MinScore,
		ScoreMax: MaxScore,
		Industry: FilterAll,
		Location: FilterAll,
		Status:   FilterAll,
	}
}

// IsDefault reports whether no filter dimension differs from the defaults.
// The query is ignored.
func (f FilterState) IsDefault() bool {
	d := DefaultFilterState()
	return f.ScoreMin == d.ScoreMin && f.ScoreMax == d.ScoreMax &&
		f.Industry == d.Industry && f.Location == d.Location && f.Status == d.Status
}

// ParseFilterState reads a FilterState from query values. Missing or
// unparseable values keep their defaults. Values are not clamped: a
// min above max is kept and simply matches nothing.
func ParseFilterState(v url.Values) FilterState {
	f := DefaultFilterState()
	f.Query = v.Get("q")

	if n, err := strconv.Atoi(v.Get("score_min")); err == nil {
		f.ScoreMin = n
	}
	if n, err := strconv.Atoi(v.Get("score_max")); err == nil {
		f.ScoreMax = n
	}
	if s := v.Get("industry"); s != "" {
		f.Industry = s
	}
	if s := v.Get("location"); s != "" {
		f.Location = s
	}
	if s := v.Get("status"); s != "" {
		f.Status = s
	}
	return f
}

// Encode writes the non-default dimensions into v.
func (f FilterState) Encode(v url.Values) {
	d := DefaultFilterState()
	if f.Query != "" {
		v.Set("q", f.Query)
	}
	if f.ScoreMin != d.ScoreMin {
		v.Set("score_min", strconv.Itoa(f.ScoreMin))
	}
	if f.ScoreMax != d.ScoreMax {
		v.Set("score_max", strconv.Itoa(f.ScoreMax))
	}
	if f.Industry != d.Industry {
		v.Set("industry", f.Industry)
	}
	if f.Location != d.Location {
		v.Set("location", f.Location)
	}
	if f.Status != d.Status {
		v.Set("status", f.Status)
	}
}

// Facets are the distinct values offered by the filter dropdowns.
type Facets struct {
	Industries []string
	Locations  []string
}
