package csvimport

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DukeRupert/leadshift/internal/domain"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testParser(m Mapping) *Parser {
	p := NewParser(m)
	p.Now = func() time.Time { return fixedNow }
	n := 0
	p.NewID = func() string {
		n++
		return fmt.Sprintf("lead-%d", n)
	}
	return p
}

func TestParse_Aliases(t *testing.T) {
	input := "Company Name,Email,contact,Industry,address,Capital,Website\n" +
		"Techlify,hi@techlify.com,+1-555-0100,Software,\"Austin, USA\",$1-10M,https://techlify.com\n"

	leads, err := testParser(nil).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, leads, 1)

	l := leads[0]
	assert.Equal(t, "lead-1", l.ID)
	assert.Equal(t, "Techlify", l.CompanyName)
	assert.Equal(t, "hi@techlify.com", domain.StringValue(l.Email))
	assert.Equal(t, "+1-555-0100", domain.StringValue(l.Phone))
	assert.Equal(t, "Software", domain.StringValue(l.Industry))
	assert.Equal(t, "Austin, USA", domain.StringValue(l.Location))
	assert.Equal(t, "$1-10M", domain.StringValue(l.Capital))
	assert.Equal(t, "https://techlify.com", domain.StringValue(l.Website))
	assert.Nil(t, l.Score)
	assert.Equal(t, domain.LeadStatusNew, l.Status)
	assert.Equal(t, fixedNow, l.CreatedAt)
}

func TestParse_AliasPriority(t *testing.T) {
	input := "name,company_name\nLower,Preferred\n"

	leads, err := testParser(nil).Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "Preferred", leads[0].CompanyName)
}

func TestParse_MissingAndBlankCells(t *testing.T) {
	input := "email,phone\n,555\nx@y.z\n"

	leads, err := testParser(nil).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, leads, 2)

	assert.Equal(t, DefaultCompanyName, leads[0].CompanyName)
	assert.Nil(t, leads[0].Email)
	assert.Equal(t, "555", domain.StringValue(leads[0].Phone))
	assert.Nil(t, leads[1].Phone, "short rows pad with absent values")
	assert.Nil(t, leads[1].Industry)
}

func TestParse_ScoreAndStatus(t *testing.T) {
	input := "name,score,status\n" +
		"A,85,Qualified\n" +
		"B,101,bogus\n" +
		"C,abc,contacted\n" +
		"D,40.0,\n"

	leads, err := testParser(nil).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, leads, 4)

	require.NotNil(t, leads[0].Score)
	assert.Equal(t, 85, *leads[0].Score)
	assert.Equal(t, domain.LeadStatusQualified, leads[0].Status)

	assert.Nil(t, leads[1].Score)
	assert.Equal(t, domain.LeadStatusNew, leads[1].Status)

	assert.Nil(t, leads[2].Score)
	assert.Equal(t, domain.LeadStatusContacted, leads[2].Status)

	require.NotNil(t, leads[3].Score)
	assert.Equal(t, 40, *leads[3].Score)
}

func TestParse_BOMAndWhitespaceHeaders(t *testing.T) {
	input := "\xEF\xBB\xBF company_name , email \nAcme,a@acme.io\n"

	leads, err := testParser(nil).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "Acme", leads[0].CompanyName)
	assert.Equal(t, "a@acme.io", domain.StringValue(leads[0].Email))
}

func TestParse_HeaderOnly(t *testing.T) {
	leads, err := testParser(nil).Parse(strings.NewReader("company_name,email\n"))
	require.NoError(t, err)
	assert.NotNil(t, leads)
	assert.Empty(t, leads)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrEmpty},
		{"blank lines", "\n\n", ErrEmpty},
		{"blank header", ",,\n", ErrEmpty},
		{"too many fields", "name,email\nA,a@a.io,extra\n", ErrMalformed},
		{"bare quote", "name\n\"unterminated\n", ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testParser(nil).Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestParse_UniqueIDs(t *testing.T) {
	input := "name\nA\nB\nC\n"
	leads, err := NewParser(nil).Parse(strings.NewReader(input))
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, l := range leads {
		assert.NotEmpty(t, l.ID)
		assert.False(t, seen[l.ID])
		seen[l.ID] = true
	}
}

// =============================================================================
// Mapping
// =============================================================================

func TestParseMapping(t *testing.T) {
	m, err := ParseMapping([]byte("company_name: [Organisation, name]\nphone: [Telephone]\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Organisation", "name"}, m[FieldCompanyName])
	assert.Equal(t, []string{"Telephone"}, m[FieldPhone])
	assert.Equal(t, DefaultMapping()[FieldEmail], m[FieldEmail])

	leads, err := testParser(m).Parse(strings.NewReader("Organisation,Telephone\nAcme,555\n"))
	require.NoError(t, err)
	assert.Equal(t, "Acme", leads[0].CompanyName)
	assert.Equal(t, "555", domain.StringValue(leads[0].Phone))
}

func TestParseMapping_Errors(t *testing.T) {
	_, err := ParseMapping([]byte("revenue: [Revenue]\n"))
	assert.ErrorContains(t, err, "unknown field")

	_, err = ParseMapping([]byte("email: [\" \"]\n"))
	assert.ErrorContains(t, err, "no aliases")

	_, err = ParseMapping([]byte("email: {\n"))
	assert.Error(t, err)
}

func TestLoadMapping(t *testing.T) {
	m, err := LoadMapping("")
	require.NoError(t, err)
	assert.Equal(t, DefaultMapping(), m)

	path := filepath.Join(t.TempDir(), "mapping.yaml")
	require.NoError(t, os.WriteFile(path, []byte("website: [URL]\n"), 0o600))

	m, err = LoadMapping(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"URL"}, m[FieldWebsite])

	_, err = LoadMapping(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
