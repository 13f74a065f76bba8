package handler

import (
	"net/url"

	"github.com/DukeRupert/leadshift/internal/domain"
	"github.com/DukeRupert/leadshift/internal/pipeline"
)

// leadsState is everything the leads page keeps in its URL: filters, the
// sort and the selection. Links on the page carry the next state.
type leadsState struct {
	Filters    domain.FilterState
	Sort       domain.SortState
	Selected   domain.Selection
	UploadOpen bool
}

func parseLeadsState(v url.Values) leadsState {
	st := leadsState{
		Filters:    domain.ParseFilterState(v),
		Sort:       domain.ParseSortState(v.Get("sort"), v.Get("dir")),
		Selected:   domain.ParseSelection(v["selected"]),
		UploadOpen: v.Get("upload") == "1",
	}
	if !isSortableColumn(st.Sort.Key) {
		st.Sort = domain.SortState{}
	}
	return st
}

// isSortableColumn reports whether key names a sortable column of the
// leads table.
func isSortableColumn(key string) bool {
	for _, c := range leadColumns() {
		if c.Key == key && c.Sortable {
			return true
		}
	}
	return false
}

func (s leadsState) values() url.Values {
	v := url.Values{}
	s.Filters.Encode(v)
	if s.Sort.Active() {
		v.Set("sort", s.Sort.Key)
		v.Set("dir", string(s.Sort.Direction))
	}
	for _, id := range s.Selected.IDs() {
		v.Add("selected", id)
	}
	if s.UploadOpen {
		v.Set("upload", "1")
	}
	return v
}

func (s leadsState) href(path string) string {
	if q := s.values().Encode(); q != "" {
		return path + "?" + q
	}
	return path
}

func (s leadsState) withSort(sort domain.SortState) leadsState {
	s.Sort = sort
	return s
}

func (s leadsState) withFilters(f domain.FilterState) leadsState {
	s.Filters = f
	return s
}

func (s leadsState) withSelection(sel domain.Selection) leadsState {
	s.Selected = sel
	return s
}

// rows applies the filters; the table applies the sort.
func (s leadsState) rows(all []domain.Lead) []domain.Lead {
	return pipeline.Visible(all, s.Filters)
}

// sortedRows is what an export of the current view contains.
func (s leadsState) sortedRows(all []domain.Lead) []domain.Lead {
	return pipeline.ApplySort(s.rows(all), s.Sort.Key, s.Sort.Direction)
}
