// Package table renders sortable, selectable HTML tables for any row type.
//
// A Table holds no business logic. The caller filters its rows, owns the
// selection, and supplies column descriptors; the table sorts a copy of the
// rows for display and renders header links that encode the next sort and
// selection state.
package table

import (
	"github.com/DukeRupert/leadshift/internal/domain"
	"github.com/DukeRupert/leadshift/internal/pipeline"

	. "maragu.dev/gomponents"
)

// Fixed body messages.
const (
	DefaultEmptyMessage = "No data available"
	LoadingMessage      = "Loading..."
)

// Column describes one table column. Descriptors are built once by the
// caller and treated as immutable.
type Column[T any] struct {
	Key      string       // unique within the table
	Header   string       // header label
	Cell     func(T) Node // renders the cell content
	Value    func(T) any  // value used for sorting; required when Sortable
	Sortable bool
	Class    string // extra classes for header and body cells
}

// SelectState is the state of the header select-all control.
type SelectState int

const (
	Unchecked SelectState = iota
	Indeterminate
	Checked
)

// AriaChecked returns the aria-checked value for the state.
func (s SelectState) AriaChecked() string {
	switch s {
	case Checked:
		return "true"
	case Indeterminate:
		return "mixed"
	default:
		return "false"
	}
}

// Table is a declarative table over rows of type T.
type Table[T any] struct {
	ID           string
	Columns      []Column[T]
	KeyFunc      func(T) string // row identity; must be injective
	Selectable   bool
	Selected     domain.Selection
	Loading      bool
	EmptyMessage string
	Sort         domain.SortState
	Class        string

	// SortHref builds the link for a header given the state a click
	// would produce. Headers are plain text when nil.
	SortHref func(domain.SortState) string

	// SelectHref builds the link for a checkbox given the selection a
	// click would produce. Checkboxes are inert when nil.
	SelectHref func(domain.Selection) string
}

// column looks up a column by key.
func (t Table[T]) column(key string) (Column[T], bool) {
	for _, c := range t.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column[T]{}, false
}

// ClickHeader returns the sort state after clicking the header of key.
// Unknown and non-sortable columns leave the state unchanged.
func (t Table[T]) ClickHeader(key string) domain.SortState {
	c, ok := t.column(key)
	if !ok || !c.Sortable {
		return t.Sort
	}
	return t.Sort.Click(key)
}

// Rows returns the rows in display order. data is never modified. A sort
// on an unknown or non-sortable column is ignored.
func (t Table[T]) Rows(data []T) []T {
	if !t.Sort.Active() {
		return pipeline.SortStable[T](data, nil, domain.SortNone)
	}
	c, ok := t.column(t.Sort.Key)
	if !ok || !c.Sortable || c.Value == nil {
		return pipeline.SortStable[T](data, nil, domain.SortNone)
	}
	return pipeline.SortStable(data, c.Value, t.Sort.Direction)
}

// SelectionState compares the selection size with len(data).
func (t Table[T]) SelectionState(data []T) SelectState {
	n := t.Selected.Len()
	switch {
	case len(data) > 0 && n == len(data):
		return Checked
	case n > 0:
		return Indeterminate
	default:
		return Unchecked
	}
}

// ToggleAll returns the selection after clicking select-all: empty when
// every row is already selected, otherwise every displayed row key.
func (t Table[T]) ToggleAll(data []T) domain.Selection {
	rows := t.Rows(data)
	if t.Selected.Len() == len(rows) {
		return domain.Selection{}
	}
	keys := make([]string, len(rows))
	for i, row := range rows {
		keys[i] = t.KeyFunc(row)
	}
	return domain.NewSelection(keys...)
}

// Toggle returns the selection after clicking the checkbox of row.
func (t Table[T]) Toggle(row T) domain.Selection {
	return t.Selected.Toggle(t.KeyFunc(row))
}

// IsSelected reports whether row is in the selection.
func (t Table[T]) IsSelected(row T) bool {
	return t.Selected.Has(t.KeyFunc(row))
}

// span is the number of body columns, including the selection column.
func (t Table[T]) span() int {
	n := len(t.Columns)
	if t.Selectable {
		n++
	}
	return n
}

func (t Table[T]) emptyMessage() string {
	if t.EmptyMessage == "" {
		return DefaultEmptyMessage
	}
	return t.EmptyMessage
}
