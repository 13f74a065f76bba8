package report

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/DukeRupert/leadshift/internal/domain"
)

// =============================================================================
// PDF Generator
// =============================================================================

// PDFGenerator generates PDF summaries of lead datasets.
type PDFGenerator struct {
	// Page dimensions (A4 in mm)
	pageWidth  float64
	pageHeight float64
	margin     float64

	// Content area
	contentWidth float64
}

// NewPDFGenerator creates a new PDF generator with default settings.
func NewPDFGenerator() *PDFGenerator {
	margin := 15.0
	pageWidth := 210.0 // A4 width in mm
	return &PDFGenerator{
		pageWidth:    pageWidth,
		pageHeight:   297.0, // A4 height in mm
		margin:       margin,
		contentWidth: pageWidth - (2 * margin),
	}
}

// Format returns the output format of this generator.
func (g *PDFGenerator) Format() Format {
	return FormatPDF
}

// leadColumns are the lead table columns; widths add up to contentWidth.
var leadColumns = []struct {
	header string
	width  float64
	align  string
}{
	{"Company", 52, "L"},
	{"Industry", 30, "L"},
	{"Location", 40, "L"},
	{"Score", 16, "C"},
	{"Band", 20, "C"},
	{"Status", 22, "C"},
}

// Generate creates a PDF report and writes it to the provided writer.
func (g *PDFGenerator) Generate(ctx context.Context, data *Data, w io.Writer) (int64, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(data.Title, true)
	pdf.SetAuthor("LeadShift", true)
	pdf.SetCreator("LeadShift Lead Management", true)

	// Enable automatic page breaks with footer space
	pdf.SetAutoPageBreak(true, 20)

	pdf.SetFooterFunc(func() {
		g.addFooter(pdf, data)
	})

	g.addCover(pdf, tr, data)
	g.addSummary(pdf, tr, data)
	if err := g.addLeadTable(ctx, pdf, tr, data); err != nil {
		return 0, err
	}

	if err := pdf.Error(); err != nil {
		return 0, fmt.Errorf("pdf generation error: %w", err)
	}

	// Write to buffer to count bytes
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return 0, fmt.Errorf("pdf output error: %w", err)
	}

	n, err := w.Write(buf.Bytes())
	return int64(n), err
}

// =============================================================================
// Cover
// =============================================================================

func (g *PDFGenerator) addCover(pdf *fpdf.Fpdf, tr func(string) string, data *Data) {
	pdf.AddPage()

	// Header bar
	r, gr, b := HexToRGB(BrandColors.Primary)
	pdf.SetFillColor(r, gr, b)
	pdf.Rect(0, 0, g.pageWidth, 50, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 26)
	pdf.SetXY(g.margin, 16)
	pdf.Cell(0, 12, tr(data.Title))

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetXY(g.margin, 32)
	pdf.Cell(0, 8, "Generated "+FormatDate(data.GeneratedAt))

	r, gr, b = HexToRGB(BrandColors.TextDark)
	pdf.SetTextColor(r, gr, b)
	pdf.SetXY(g.margin, 62)

	if data.Source == domain.DataSourceFallback {
		r, gr, b = HexToRGB(BrandColors.TextMuted)
		pdf.SetTextColor(r, gr, b)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.Cell(0, 6, "This report was generated from demo data.")
		pdf.Ln(10)
		r, gr, b = HexToRGB(BrandColors.TextDark)
		pdf.SetTextColor(r, gr, b)
	}

	// Headline numbers
	stats := data.Stats
	boxes := []struct {
		label string
		value string
	}{
		{"LEADS", itoa(stats.Total)},
		{"SCORED", itoa(stats.Scored)},
		{"AVERAGE SCORE", averageText(stats)},
	}
	boxWidth := (g.contentWidth - 10) / 3
	y := pdf.GetY()
	for i, box := range boxes {
		x := g.margin + float64(i)*(boxWidth+5)
		r, gr, b = HexToRGB(BrandColors.Background)
		pdf.SetFillColor(r, gr, b)
		r, gr, b = HexToRGB(BrandColors.Border)
		pdf.SetDrawColor(r, gr, b)
		pdf.Rect(x, y, boxWidth, 24, "FD")

		pdf.SetXY(x+4, y+4)
		pdf.SetFont("Helvetica", "B", 8)
		r, gr, b = HexToRGB(BrandColors.TextMuted)
		pdf.SetTextColor(r, gr, b)
		pdf.Cell(boxWidth-8, 5, box.label)

		pdf.SetXY(x+4, y+11)
		pdf.SetFont("Helvetica", "B", 16)
		r, gr, b = HexToRGB(BrandColors.TextDark)
		pdf.SetTextColor(r, gr, b)
		pdf.Cell(boxWidth-8, 9, box.value)
	}
	pdf.SetXY(g.margin, y+34)
}

func averageText(stats domain.LeadStats) string {
	if stats.Scored == 0 {
		return "-"
	}
	return itoa(stats.AverageScore)
}

// =============================================================================
// Summary
// =============================================================================

func (g *PDFGenerator) addSummary(pdf *fpdf.Fpdf, tr func(string) string, data *Data) {
	g.addSectionHeader(pdf, "Score Distribution")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(245, 245, 245)
	pdf.CellFormat(80, 8, "Band", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 8, "Leads", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, band := range domain.ScoreBands {
		// Color indicator
		r, gr, b := HexToRGB(band.Color())
		pdf.SetFillColor(r, gr, b)
		pdf.CellFormat(5, 8, "", "1", 0, "C", true, 0, "")
		pdf.SetFillColor(255, 255, 255)
		pdf.CellFormat(75, 8, band.Label(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, itoa(data.Stats.ByBand[band]), "1", 1, "C", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(245, 245, 245)
	pdf.CellFormat(80, 8, "Total", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 8, itoa(data.Stats.Total), "1", 1, "C", true, 0, "")

	pdf.Ln(10)
	g.addSectionHeader(pdf, "Industries")

	industries := data.Industries()
	if len(industries) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.Cell(0, 8, "No leads in this report.")
		pdf.Ln(10)
		return
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(245, 245, 245)
	pdf.CellFormat(80, 8, "Industry", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 8, "Leads", "1", 1, "C", true, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, ic := range industries {
		pdf.CellFormat(80, 8, tr(TruncateText(ic.Industry, 40)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, itoa(ic.Count), "1", 1, "C", false, 0, "")
	}
}

// =============================================================================
// Lead Table
// =============================================================================

func (g *PDFGenerator) addLeadTable(ctx context.Context, pdf *fpdf.Fpdf, tr func(string) string, data *Data) error {
	pdf.AddPage()
	g.addSectionHeader(pdf, "Leads")

	if len(data.Leads) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.Cell(0, 10, "No leads to report.")
		return nil
	}

	g.addLeadHeader(pdf)

	pdf.SetFont("Helvetica", "", 9)
	for i, l := range data.Leads {
		if err := ctx.Err(); err != nil {
			return err
		}

		// Repeat the header after a page break
		if pdf.GetY() > g.pageHeight-30 {
			pdf.AddPage()
			g.addLeadHeader(pdf)
			pdf.SetFont("Helvetica", "", 9)
		}

		fill := i%2 == 1
		if fill {
			r, gr, b := HexToRGB(BrandColors.Background)
			pdf.SetFillColor(r, gr, b)
		}

		industry := domain.StringValue(l.Industry)
		if industry == "" {
			industry = "Unknown"
		}
		band := l.Band()
		cells := []string{
			TruncateText(l.CompanyName, 28),
			TruncateText(industry, 16),
			TruncateText(domain.StringValue(l.Location), 22),
			ScoreText(l.Score),
			band.Label(),
			StatusLabel(l.Status),
		}
		for j, col := range leadColumns {
			if col.header == "Band" {
				r, gr, b := HexToRGB(band.Color())
				pdf.SetTextColor(r, gr, b)
			}
			ln := 0
			if j == len(leadColumns)-1 {
				ln = 1
			}
			pdf.CellFormat(col.width, 7, tr(cells[j]), "B", ln, col.align, fill, 0, "")
			if col.header == "Band" {
				r, gr, b := HexToRGB(BrandColors.TextDark)
				pdf.SetTextColor(r, gr, b)
			}
		}
	}
	return nil
}

func (g *PDFGenerator) addLeadHeader(pdf *fpdf.Fpdf) {
	r, gr, b := HexToRGB(BrandColors.Primary)
	pdf.SetFillColor(r, gr, b)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 9)
	for i, col := range leadColumns {
		ln := 0
		if i == len(leadColumns)-1 {
			ln = 1
		}
		pdf.CellFormat(col.width, 8, col.header, "", ln, col.align, true, 0, "")
	}
	r, gr, b = HexToRGB(BrandColors.TextDark)
	pdf.SetTextColor(r, gr, b)
}

// =============================================================================
// Helper Methods
// =============================================================================

func (g *PDFGenerator) addSectionHeader(pdf *fpdf.Fpdf, title string) {
	r, gr, b := HexToRGB(BrandColors.Primary)
	pdf.SetDrawColor(r, gr, b)
	pdf.SetLineWidth(0.5)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(r, gr, b)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)

	pdf.Line(g.margin, pdf.GetY(), g.pageWidth-g.margin, pdf.GetY())
	pdf.Ln(6)

	// Reset text color
	r, gr, b = HexToRGB(BrandColors.TextDark)
	pdf.SetTextColor(r, gr, b)
	pdf.SetLineWidth(0.2)
}

func (g *PDFGenerator) addFooter(pdf *fpdf.Fpdf, data *Data) {
	pdf.SetY(-15)

	r, gr, b := HexToRGB(BrandColors.Border)
	pdf.SetDrawColor(r, gr, b)
	pdf.Line(g.margin, pdf.GetY()-3, g.pageWidth-g.margin, pdf.GetY()-3)

	r, gr, b = HexToRGB(BrandColors.TextMuted)
	pdf.SetTextColor(r, gr, b)
	pdf.SetFont("Helvetica", "", 8)

	// Left: generation date
	pdf.Cell(0, 10, "Generated: "+FormatDateTime(data.GeneratedAt))

	// Right: page number
	pdf.SetX(-g.margin - 30)
	pdf.CellFormat(30, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
}

var _ Generator = (*PDFGenerator)(nil)
