package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/DukeRupert/leadshift/internal/domain"
)

// CSVHeader is the column order of exported leads. The names match the
// import aliases so an export can be uploaded again.
var CSVHeader = []string{
	"company_name", "email", "phone", "industry", "location",
	"capital", "website", "score", "status", "created_at",
}

// CSVGenerator writes leads as CSV.
type CSVGenerator struct{}

func NewCSVGenerator() *CSVGenerator {
	return &CSVGenerator{}
}

func (g *CSVGenerator) Format() Format {
	return FormatCSV
}

// Generate writes one row per lead in the given order.
func (g *CSVGenerator) Generate(ctx context.Context, data *Data, w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	out := csv.NewWriter(cw)

	if err := out.Write(CSVHeader); err != nil {
		return cw.n, fmt.Errorf("write csv header: %w", err)
	}
	for _, l := range data.Leads {
		if err := ctx.Err(); err != nil {
			return cw.n, err
		}
		score := ""
		if l.Score != nil {
			score = strconv.Itoa(*l.Score)
		}
		record := []string{
			l.CompanyName,
			domain.StringValue(l.Email),
			domain.StringValue(l.Phone),
			domain.StringValue(l.Industry),
			domain.StringValue(l.Location),
			domain.StringValue(l.Capital),
			domain.StringValue(l.Website),
			score,
			string(l.Status),
			l.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := out.Write(record); err != nil {
			return cw.n, fmt.Errorf("write csv row: %w", err)
		}
	}

	out.Flush()
	if err := out.Error(); err != nil {
		return cw.n, fmt.Errorf("flush csv: %w", err)
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

func itoa(i int) string {
	return strconv.Itoa(i)
}

var _ Generator = (*CSVGenerator)(nil)
