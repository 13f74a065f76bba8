// Package domain contains core business types and interfaces.
//
// This file defines the Lead domain type: a prospective company record
// imported from CSV and browsed on the leads page.
package domain

import (
	"time"
)

// =============================================================================
// Lead Status
// =============================================================================

// LeadStatus represents where a lead is in the sales funnel.
type LeadStatus string

const (
	// LeadStatusNew is the status of every freshly imported lead.
	LeadStatusNew LeadStatus = "new"

	// LeadStatusContacted indicates outreach has happened.
	LeadStatusContacted LeadStatus = "contacted"

	// LeadStatusQualified indicates the lead is worth pursuing.
	LeadStatusQualified LeadStatus = "qualified"

	// LeadStatusDisqualified indicates the lead was ruled out.
	LeadStatusDisqualified LeadStatus = "disqualified"
)

// LeadStatuses lists every status in display order.
var LeadStatuses = []LeadStatus{
	LeadStatusNew,
	LeadStatusContacted,
	LeadStatusQualified,
	LeadStatusDisqualified,
}

// String returns the string representation of the status.
func (s LeadStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is a recognized value.
func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted,
		LeadStatusQualified, LeadStatusDisqualified:
		return true
	}
	return false
}

// =============================================================================
// Lead
// =============================================================================

// MinScore and MaxScore bound a lead score.
const (
	MinScore = 0
	MaxScore = 100
)

// Lead is a flat prospect record. Optional fields are nil when the source
// CSV had no value for them. Score is nil while it is pending.
type Lead struct {
	ID          string     `json:"id"`
	CompanyName string     `json:"company_name"`
	Email       *string    `json:"email"`
	Phone       *string    `json:"phone"`
	Industry    *string    `json:"industry"`
	Location    *string    `json:"location"`
	Capital     *string    `json:"capital"`
	Score       *int       `json:"score"`
	Website     *string    `json:"website"`
	Status      LeadStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

// HasScore reports whether the lead has been scored.
func (l Lead) HasScore() bool {
	return l.Score != nil
}

// Band returns the score band of the lead.
func (l Lead) Band() ScoreBand {
	return BandFor(l.Score)
}

// StringValue dereferences an optional field, returning "" for nil.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// IntPtr returns a pointer to i.
func IntPtr(i int) *int {
	return &i
}

// LeadKey is the row identity used by tables and selections.
func LeadKey(l Lead) string {
	return l.ID
}

// LeadIDs returns the ids of leads in order.
func LeadIDs(leads []Lead) []string {
	ids := make([]string, len(leads))
	for i, l := range leads {
		ids[i] = l.ID
	}
	return ids
}

// =============================================================================
// Score Bands
// =============================================================================

// ScoreBand buckets a lead score into a quality label.
type ScoreBand string

const (
	ScoreBandHigh    ScoreBand = "high"    // 80 and above
	ScoreBandGood    ScoreBand = "good"    // 60-79
	ScoreBandMedium  ScoreBand = "medium"  // 40-59
	ScoreBandPoor    ScoreBand = "poor"    // 20-39
	ScoreBandLow     ScoreBand = "low"     // below 20
	ScoreBandPending ScoreBand = "pending" // no score yet
)

// ScoreBands lists bands from best to worst, followed by pending.
var ScoreBands = []ScoreBand{
	ScoreBandHigh,
	ScoreBandGood,
	ScoreBandMedium,
	ScoreBandPoor,
	ScoreBandLow,
	ScoreBandPending,
}

// BandFor returns the band for an optional score.
func BandFor(score *int) ScoreBand {
	if score == nil {
		return ScoreBandPending
	}
	switch s := *score; {
	case s >= 80:
		return ScoreBandHigh
	case s >= 60:
		return ScoreBandGood
	case s >= 40:
		return ScoreBandMedium
	case s >= 20:
		return ScoreBandPoor
	default:
		return ScoreBandLow
	}
}

// Label returns the human-readable band name.
func (b ScoreBand) Label() string {
	switch b {
	case ScoreBandHigh:
		return "High"
	case ScoreBandGood:
		return "Good"
	case ScoreBandMedium:
		return "Medium"
	case ScoreBandPoor:
		return "Poor"
	case ScoreBandLow:
		return "Low"
	default:
		return "Pending"
	}
}

// Color returns the hex colour used for the band in pages and reports.
func (b ScoreBand) Color() string {
	switch b {
	case ScoreBandHigh:
		return "#16A34A"
	case ScoreBandGood:
		return "#27B99C"
	case ScoreBandMedium:
		return "#EAB308"
	case ScoreBandPoor:
		return "#EB6810"
	case ScoreBandLow:
		return "#DC2626"
	default:
		return "#6B7280"
	}
}

// =============================================================================
// Upload
// =============================================================================

// Upload records one CSV ingestion.
type Upload struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	ObjectKey string    `json:"object_key"` // Archive location of the raw CSV
	RowCount  int       `json:"row_count"`
	CreatedAt time.Time `json:"created_at"`
}

// =============================================================================
// Stats
// =============================================================================

// LeadStats summarises a lead collection for the dashboard and reports.
type LeadStats struct {
	Total        int
	Scored       int
	AverageScore int
	ByBand       map[ScoreBand]int
	ByIndustry   map[string]int
	ByStatus     map[LeadStatus]int
}

// ComputeStats aggregates leads. Leads without an industry count under "Unknown".
func ComputeStats(leads []Lead) LeadStats {
	stats := LeadStats{
		Total:      len(leads),
		ByBand:     make(map[ScoreBand]int),
		ByIndustry: make(map[string]int),
		ByStatus:   make(map[LeadStatus]int),
	}

	sum := 0
	for _, l := range leads {
		if l.Score != nil {
			stats.Scored++
			sum += *l.Score
		}
		stats.ByBand[l.Band()]++
		industry := StringValue(l.Industry)
		if industry == "" {
			industry = "Unknown"
		}
		stats.ByIndustry[industry]++
		stats.ByStatus[l.Status]++
	}

	if stats.Scored > 0 {
		stats.AverageScore = sum / stats.Scored
	}
	return stats
}
