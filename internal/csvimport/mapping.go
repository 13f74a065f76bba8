package csvimport

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Lead fields a CSV column can map to.
const (
	FieldCompanyName = "company_name"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldIndustry    = "industry"
	FieldLocation    = "location"
	FieldCapital     = "capital"
	FieldWebsite     = "website"
	FieldScore       = "score"
	FieldStatus      = "status"
)

// Mapping lists, for each lead field, the CSV headers that may carry it.
// Earlier aliases win when a file has several of them.
type Mapping map[string][]string

// DefaultMapping returns the built-in header aliases.
func DefaultMapping() Mapping {
	return Mapping{
		FieldCompanyName: {"company_name", "Company Name", "name"},
		FieldEmail:       {"email", "Email"},
		FieldPhone:       {"phone", "Phone", "contact"},
		FieldIndustry:    {"industry", "Industry"},
		FieldLocation:    {"location", "Location", "address"},
		FieldCapital:     {"capital", "Capital"},
		FieldWebsite:     {"website", "Website"},
		FieldScore:       {"score", "Score"},
		FieldStatus:      {"status", "Status"},
	}
}

// ParseMapping decodes a YAML document of field -> aliases and merges it
// over the defaults. A field listed in the document replaces its default
// aliases entirely.
//
//	company_name: [company_name, Organisation]
//	phone: [phone, Telephone]
func ParseMapping(data []byte) (Mapping, error) {
	var overrides map[string][]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("decode csv mapping: %w", err)
	}

	m := DefaultMapping()
	for field, aliases := range overrides {
		if _, ok := m[field]; !ok {
			return nil, fmt.Errorf("csv mapping: unknown field %q", field)
		}
		var cleaned []string
		for _, a := range aliases {
			if a = strings.TrimSpace(a); a != "" {
				cleaned = append(cleaned, a)
			}
		}
		if len(cleaned) == 0 {
			return nil, fmt.Errorf("csv mapping: field %q has no aliases", field)
		}
		m[field] = cleaned
	}
	return m, nil
}

// LoadMapping reads a mapping file. An empty path returns the defaults.
func LoadMapping(path string) (Mapping, error) {
	if path == "" {
		return DefaultMapping(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read csv mapping: %w", err)
	}
	return ParseMapping(data)
}

// resolve maps each field to the index of the first matching header.
// Exact matches are preferred over case-insensitive ones.
func (m Mapping) resolve(header []string) map[string]int {
	exact := make(map[string]int, len(header))
	folded := make(map[string]int, len(header))
	for i, h := range header {
		if _, ok := exact[h]; !ok {
			exact[h] = i
		}
		lower := strings.ToLower(h)
		if _, ok := folded[lower]; !ok {
			folded[lower] = i
		}
	}

	columns := make(map[string]int, len(m))
	for field, aliases := range m {
		if idx, ok := lookup(aliases, exact, folded); ok {
			columns[field] = idx
		}
	}
	return columns
}

func lookup(aliases []string, exact, folded map[string]int) (int, bool) {
	for _, a := range aliases {
		if idx, ok := exact[a]; ok {
			return idx, true
		}
	}
	for _, a := range aliases {
		if idx, ok := folded[strings.ToLower(a)]; ok {
			return idx, true
		}
	}
	return 0, false
}
