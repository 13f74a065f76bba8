// Package csvimport turns uploaded CSV files into leads.
package csvimport

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/DukeRupert/leadshift/internal/domain"
)

var (
	// ErrEmpty is returned for a file with no header row.
	ErrEmpty = errors.New("csv file is empty")

	// ErrMalformed is returned when the file is not valid CSV or a row has
	// more fields than the header.
	ErrMalformed = errors.New("unable to parse csv file")
)

// DefaultCompanyName is used when a row has no company name.
const DefaultCompanyName = "Unknown"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parser converts CSV rows into new leads.
type Parser struct {
	Mapping Mapping
	Now     func() time.Time
	NewID   func() string
}

// NewParser returns a parser using m, the wall clock and random UUIDs.
// A nil mapping uses DefaultMapping.
func NewParser(m Mapping) *Parser {
	if m == nil {
		m = DefaultMapping()
	}
	return &Parser{
		Mapping: m,
		Now:     time.Now,
		NewID:   uuid.NewString,
	}
}

// Parse reads every data row of r. Each lead gets a fresh id, status
// "new" unless the file carries a valid status, no score unless the file
// carries one in range, and the same creation time.
//
// A header without data rows yields an empty, non-nil slice.
func (p *Parser) Parse(r io.Reader) ([]domain.Lead, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	if isBlank(header) {
		return nil, ErrEmpty
	}

	columns := p.Mapping.resolve(header)
	now := p.Now().UTC()

	leads := make([]domain.Lead, 0)
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if len(record) > len(header) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d: expected %d fields, saw %d",
				ErrMalformed, line, len(header), len(record))
		}
		leads = append(leads, p.lead(record, columns, now))
	}
	return leads, nil
}

func (p *Parser) lead(record []string, columns map[string]int, now time.Time) domain.Lead {
	cell := func(field string) *string {
		idx, ok := columns[field]
		if !ok || idx >= len(record) {
			return nil
		}
		return domain.StringPtr(strings.TrimSpace(record[idx]))
	}

	name := DefaultCompanyName
	if v := cell(FieldCompanyName); v != nil {
		name = *v
	}

	return domain.Lead{
		ID:          p.NewID(),
		CompanyName: name,
		Email:       cell(FieldEmail),
		Phone:       cell(FieldPhone),
		Industry:    cell(FieldIndustry),
		Location:    cell(FieldLocation),
		Capital:     cell(FieldCapital),
		Website:     cell(FieldWebsite),
		Score:       parseScore(cell(FieldScore)),
		Status:      parseStatus(cell(FieldStatus)),
		CreatedAt:   now,
	}
}

func parseScore(v *string) *int {
	if v == nil {
		return nil
	}
	n, err := strconv.Atoi(*v)
	if err != nil {
		f, ferr := strconv.ParseFloat(*v, 64)
		if ferr != nil || f != float64(int(f)) {
			return nil
		}
		n = int(f)
	}
	if n < domain.MinScore || n > domain.MaxScore {
		return nil
	}
	return &n
}

func parseStatus(v *string) domain.LeadStatus {
	if v == nil {
		return domain.LeadStatusNew
	}
	s := domain.LeadStatus(strings.ToLower(*v))
	if !s.IsValid() {
		return domain.LeadStatusNew
	}
	return s
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if f != "" {
			return false
		}
	}
	return true
}
