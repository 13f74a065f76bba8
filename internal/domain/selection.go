package domain

import "strings"

// Selection is a set of row identifiers. It remembers insertion order so
// that forms and exports list ids deterministically. The zero value is an
// empty selection ready to use.
type Selection struct {
	ids   []string
	index map[string]int
}

// NewSelection builds a selection from ids, dropping duplicates and blanks.
func NewSelection(ids ...string) Selection {
	var s Selection
	for _, id := range ids {
		s = s.With(id)
	}
	return s
}

// ParseSelection builds a selection from repeated form values. Values may
// also be comma separated.
func ParseSelection(values []string) Selection {
	var s Selection
	for _, v := range values {
		for _, id := range strings.Split(v, ",") {
			s = s.With(strings.TrimSpace(id))
		}
	}
	return s
}

// Len returns the number of selected ids.
func (s Selection) Len() int {
	return len(s.ids)
}

// Has reports whether id is selected.
func (s Selection) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

// IDs returns a copy of the selected ids in insertion order.
func (s Selection) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// With returns a selection that also contains id.
func (s Selection) With(id string) Selection {
	if id == "" || s.Has(id) {
		return s
	}
	next := s.clone()
	next.index[id] = len(next.ids)
	next.ids = append(next.ids, id)
	return next
}

// Without returns a selection that no longer contains id.
func (s Selection) Without(id string) Selection {
	if !s.Has(id) {
		return s
	}
	var next Selection
	for _, existing := range s.ids {
		if existing != id {
			next = next.With(existing)
		}
	}
	return next
}

// Toggle adds id when absent and removes it when present.
func (s Selection) Toggle(id string) Selection {
	if s.Has(id) {
		return s.Without(id)
	}
	return s.With(id)
}

// Clear returns the empty selection.
func (s Selection) Clear() Selection {
	return Selection{}
}

// Retain keeps only ids that are also in known, preserving selection order.
func (s Selection) Retain(known []string) Selection {
	allowed := make(map[string]struct{}, len(known))
	for _, id := range known {
		allowed[id] = struct{}{}
	}
	var next Selection
	for _, id := range s.ids {
		if _, ok := allowed[id]; ok {
			next = next.With(id)
		}
	}
	return next
}

// SelectLeads returns the selected leads in the order they appear in leads.
// Selected ids with no matching lead are ignored.
func SelectLeads(leads []Lead, s Selection) []Lead {
	out := make([]Lead, 0, s.Len())
	for _, l := range leads {
		if s.Has(l.ID) {
			out = append(out, l)
		}
	}
	return out
}

func (s Selection) clone() Selection {
	next := Selection{
		ids:   make([]string, len(s.ids), len(s.ids)+1),
		index: make(map[string]int, len(s.ids)+1),
	}
	copy(next.ids, s.ids)
	for i, id := range next.ids {
		next.index[id] = i
	}
	return next
}
