// Package pipeline turns the full lead collection into the rows a page
// displays. Every function here is pure: inputs are never modified and the
// same inputs always give the same output.
package pipeline

import (
	"slices"
	"strings"

	"github.com/DukeRupert/leadshift/internal/domain"
)

// Sortable lead keys.
const (
	KeyCompanyName = "company_name"
	KeyEmail       = "email"
	KeyPhone       = "phone"
	KeyIndustry    = "industry"
	KeyLocation    = "location"
	KeyCapital     = "capital"
	KeyScore       = "score"
	KeyStatus      = "status"
	KeyCreatedAt   = "created_at"
)

var leadValues = map[string]func(domain.Lead) any{
	KeyCompanyName: func(l domain.Lead) any { return l.CompanyName },
	KeyEmail:       func(l domain.Lead) any { return l.Email },
	KeyPhone:       func(l domain.Lead) any { return l.Phone },
	KeyIndustry:    func(l domain.Lead) any { return l.Industry },
	KeyLocation:    func(l domain.Lead) any { return l.Location },
	KeyCapital:     func(l domain.Lead) any { return l.Capital },
	KeyScore:       func(l domain.Lead) any { return l.Score },
	KeyStatus:      func(l domain.Lead) any { return l.Status },
	KeyCreatedAt:   func(l domain.Lead) any { return l.CreatedAt },
}

// LeadValue returns the field accessor for a sortable key.
func LeadValue(key string) (func(domain.Lead) any, bool) {
	fn, ok := leadValues[key]
	return fn, ok
}

// IsSortableKey reports whether key names a sortable lead field.
func IsSortableKey(key string) bool {
	_, ok := leadValues[key]
	return ok
}

// ComputeVisibleRows returns the leads that pass every filter dimension,
// in input order.
//
// A lead without a score only passes the score range when the status
// filter is "pending"; under the default filters unscored leads are hidden.
func ComputeVisibleRows(all []domain.Lead, filters domain.FilterState, query string) []domain.Lead {
	q := strings.ToLower(query)
	out := make([]domain.Lead, 0, len(all))
	for _, lead := range all {
		if matchesQuery(lead, q) && matchesFilters(lead, filters) {
			out = append(out, lead)
		}
	}
	return out
}

// Visible applies filters using the query stored on the filter state.
func Visible(all []domain.Lead, filters domain.FilterState) []domain.Lead {
	return ComputeVisibleRows(all, filters, filters.Query)
}

// ApplySort returns a stably sorted copy of rows. An unknown key or
// SortNone leaves the order untouched. Unscored leads and missing fields
// sort last in both directions.
func ApplySort(rows []domain.Lead, key string, dir domain.SortDirection) []domain.Lead {
	value, ok := LeadValue(key)
	if !ok {
		return slices.Clone(rows)
	}
	return SortStable(rows, value, dir)
}

func matchesQuery(lead domain.Lead, q string) bool {
	if q == "" {
		return true
	}
	fields := []string{
		lead.CompanyName,
		domain.StringValue(lead.Email),
		domain.StringValue(lead.Phone),
		domain.StringValue(lead.Industry),
		domain.StringValue(lead.Location),
	}
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func matchesFilters(lead domain.Lead, f domain.FilterState) bool {
	// Score range
	if lead.Score != nil {
		if *lead.Score < f.ScoreMin || *lead.Score > f.ScoreMax {
			return false
		}
	} else if f.Status != domain.FilterPending {
		return false
	}

	if f.Industry != domain.FilterAll && domain.StringValue(lead.Industry) != f.Industry {
		return false
	}
	if f.Location != domain.FilterAll && domain.StringValue(lead.Location) != f.Location {
		return false
	}

	switch f.Status {
	case domain.FilterAll:
		return true
	case domain.FilterPending:
		return lead.Score == nil
	default:
		return string(lead.Status) == f.Status
	}
}

// Facets collects the distinct industries and locations, sorted.
func Facets(all []domain.Lead) domain.Facets {
	return domain.Facets{
		Industries: distinct(all, func(l domain.Lead) string { return domain.StringValue(l.Industry) }),
		Locations:  distinct(all, func(l domain.Lead) string { return domain.StringValue(l.Location) }),
	}
}

func distinct(all []domain.Lead, field func(domain.Lead) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, l := range all {
		v := field(l)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
