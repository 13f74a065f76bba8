// Package report provides PDF and CSV report generation for lead datasets.
//
// This package defines a Generator interface implemented by PDFGenerator and
// CSVGenerator, along with common helpers for formatting and styling reports
// in the LeadShift brand style.
package report

import (
	"context"
	"io"
	"sort"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/DukeRupert/leadshift/internal/domain"
)

// =============================================================================
// Generator Interface
// =============================================================================

// Format identifies a report output format.
type Format string

const (
	FormatPDF Format = "pdf"
	FormatCSV Format = "csv"
)

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

// Generator defines the interface for report generators.
type Generator interface {
	// Generate creates a report and writes it to the provided writer.
	// Returns the number of bytes written and any error.
	Generate(ctx context.Context, data *Data, w io.Writer) (int64, error)

	// Format returns the output format of this generator.
	Format() Format
}

// =============================================================================
// Report Data
// =============================================================================

// Data is everything a generator needs to describe a set of leads.
type Data struct {
	Title       string
	Source      domain.DataSource
	Leads       []domain.Lead
	Stats       domain.LeadStats
	GeneratedAt time.Time
}

// NewData computes the stats for leads.
func NewData(title string, source domain.DataSource, leads []domain.Lead, now time.Time) *Data {
	return &Data{
		Title:       title,
		Source:      source,
		Leads:       leads,
		Stats:       domain.ComputeStats(leads),
		GeneratedAt: now,
	}
}

// IndustryCount is one row of the industry breakdown.
type IndustryCount struct {
	Industry string
	Count    int
}

// Industries returns the industry breakdown, largest first, ties by name.
func (d *Data) Industries() []IndustryCount {
	out := make([]IndustryCount, 0, len(d.Stats.ByIndustry))
	for name, n := range d.Stats.ByIndustry {
		out = append(out, IndustryCount{Industry: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Industry < out[j].Industry
	})
	return out
}

// =============================================================================
// Brand Colors
// =============================================================================

// BrandColors defines the color palette for reports.
var BrandColors = struct {
	Primary    string
	Accent     string
	TextDark   string
	TextMuted  string
	Border     string
	Background string
}{
	Primary:    "#1E3A8A",
	Accent:     "#27B99C",
	TextDark:   "#1F2937",
	TextMuted:  "#6B7280",
	Border:     "#E5E7EB",
	Background: "#F9FAFB",
}

// =============================================================================
// Color Conversion Helpers
// =============================================================================

// HexToRGB converts a hex color string to RGB values.
// Input format: "#RRGGBB" or "RRGGBB"
func HexToRGB(hex string) (r, g, b int) {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return 0, 0, 0
	}

	r = hexToDec(hex[0:2])
	g = hexToDec(hex[2:4])
	b = hexToDec(hex[4:6])
	return
}

// hexToDec converts a 2-character hex string to decimal.
func hexToDec(hex string) int {
	val := 0
	for _, c := range hex {
		val *= 16
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'a' && c <= 'f':
			val += int(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += int(c - 'A' + 10)
		}
	}
	return val
}

// =============================================================================
// Text Formatting Helpers
// =============================================================================

// TruncateText truncates text to at most maxLen runes, adding an ellipsis
// when it was cut.
func TruncateText(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

var titleCaser = cases.Title(language.English)

// StatusLabel returns the display form of a lead status.
func StatusLabel(s domain.LeadStatus) string {
	return titleCaser.String(string(s))
}

// ScoreText renders an optional score, "Pending" when absent.
func ScoreText(score *int) string {
	if score == nil {
		return domain.ScoreBandPending.Label()
	}
	return itoa(*score)
}

// FormatDate formats a date for display in reports.
func FormatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

// FormatDateTime formats a datetime for display in reports.
func FormatDateTime(t time.Time) string {
	return t.Format("January 2, 2006 at 3:04 PM")
}
