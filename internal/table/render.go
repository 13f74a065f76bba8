package table

import (
	"strconv"

	twmerge "github.com/Oudwins/tailwind-merge-go"

	"github.com/DukeRupert/leadshift/internal/domain"

	. "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

const (
	tableClass  = "data-table w-full text-sm text-left border-collapse"
	headClass   = "px-4 py-3 font-medium text-muted-foreground border-b border-border"
	cellClass   = "px-4 py-3 border-b border-border align-middle"
	selectClass = "w-10 px-3"
)

// Render draws the table. While loading, the body is a single row with
// the loading message; with no data it is a single row with the empty
// message. data is never modified.
func (t Table[T]) Render(data []T) Node {
	return h.Table(
		If(t.ID != "", h.ID(t.ID)),
		h.Class(twmerge.Merge(tableClass, t.Class)),
		Attr("aria-busy", strconv.FormatBool(t.Loading)),
		h.THead(t.renderHeader(data)),
		h.TBody(t.renderBody(data)),
	)
}

func (t Table[T]) renderHeader(data []T) Node {
	cells := make([]Node, 0, t.span())
	if t.Selectable {
		state := t.SelectionState(data)
		if t.Loading {
			state = Unchecked
		}
		cells = append(cells, h.Th(
			h.Class(twmerge.Merge(headClass, selectClass)),
			t.checkbox(state, "Select all", func() domain.Selection { return t.ToggleAll(data) }),
		))
	}

	for _, c := range t.Columns {
		cells = append(cells, t.renderHeaderCell(c))
	}
	return h.Tr(Group(cells))
}

func (t Table[T]) renderHeaderCell(c Column[T]) Node {
	class := twmerge.Merge(headClass, c.Class)
	if !c.Sortable {
		return h.Th(h.Class(class), Attr("data-key", c.Key), Text(c.Header))
	}

	dir := t.Sort.DirectionFor(c.Key)
	label := Group([]Node{Text(c.Header), sortIndicator(dir)})

	var content Node = label
	if t.SortHref != nil {
		content = h.A(
			h.Href(t.SortHref(t.ClickHeader(c.Key))),
			h.Class("inline-flex items-center gap-1 hover:text-foreground"),
			label,
		)
	}

	return h.Th(
		h.Class(twmerge.Merge(class, "cursor-pointer select-none")),
		Attr("data-key", c.Key),
		Attr("aria-sort", ariaSort(dir)),
		content,
	)
}

func (t Table[T]) renderBody(data []T) Node {
	if t.Loading {
		return t.messageRow(LoadingMessage, "loading-row")
	}
	if len(data) == 0 {
		return t.messageRow(t.emptyMessage(), "empty-row")
	}

	rows := t.Rows(data)
	out := make([]Node, 0, len(rows))
	for _, row := range rows {
		out = append(out, t.renderRow(row))
	}
	return Group(out)
}

func (t Table[T]) renderRow(row T) Node {
	key := t.KeyFunc(row)
	selected := t.Selected.Has(key)

	cells := make([]Node, 0, t.span())
	if t.Selectable {
		state := Unchecked
		if selected {
			state = Checked
		}
		cells = append(cells, h.Td(
			h.Class(twmerge.Merge(cellClass, selectClass)),
			t.checkbox(state, "Select row", func() domain.Selection { return t.Toggle(row) }),
		))
	}

	for _, c := range t.Columns {
		var content Node = Text("")
		if c.Cell != nil {
			content = c.Cell(row)
		}
		cells = append(cells, h.Td(h.Class(twmerge.Merge(cellClass, c.Class)), content))
	}

	rowClass := "hover:bg-muted/50"
	if selected {
		rowClass = twmerge.Merge(rowClass, "bg-muted")
	}
	return h.Tr(Attr("data-key", key), h.Class(rowClass), Group(cells))
}

func (t Table[T]) messageRow(message, class string) Node {
	return h.Tr(
		h.Class(class),
		h.Td(
			Attr("colspan", strconv.Itoa(t.span())),
			h.Class("px-4 py-8 text-center text-muted-foreground"),
			Text(message),
		),
	)
}

// checkbox renders a selection control. With SelectHref set it is a link
// to the next selection; next is only evaluated in that case.
func (t Table[T]) checkbox(state SelectState, label string, next func() domain.Selection) Node {
	glyph := h.Span(h.Class("checkbox-glyph"), Attr("aria-hidden", "true"), Text(checkboxGlyph(state)))
	attrs := []Node{
		h.Role("checkbox"),
		Attr("aria-checked", state.AriaChecked()),
		Attr("aria-label", label),
		h.Class("checkbox inline-flex h-4 w-4 items-center justify-center"),
	}
	if t.SelectHref == nil || t.Loading {
		return h.Span(Group(attrs), glyph)
	}
	return h.A(h.Href(t.SelectHref(next())), Group(attrs), glyph)
}

func checkboxGlyph(state SelectState) string {
	switch state {
	case Checked:
		return "☑"
	case Indeterminate:
		return "▣"
	default:
		return "☐"
	}
}

func sortIndicator(dir domain.SortDirection) Node {
	switch dir {
	case domain.SortAsc:
		return h.Span(h.Class("sort-indicator"), Text("▲"))
	case domain.SortDesc:
		return h.Span(h.Class("sort-indicator"), Text("▼"))
	default:
		return nil
	}
}

func ariaSort(dir domain.SortDirection) string {
	switch dir {
	case domain.SortAsc:
		return "ascending"
	case domain.SortDesc:
		return "descending"
	default:
		return "none"
	}
}
