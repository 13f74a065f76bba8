package table

import (
	"bytes"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DukeRupert/leadshift/internal/domain"

	. "maragu.dev/gomponents"
)

type item struct {
	id    string
	name  string
	score *int
}

func items() []item {
	return []item{
		{"1", "Charlie", domain.IntPtr(30)},
		{"2", "Alpha", domain.IntPtr(90)},
		{"3", "Bravo", nil},
		{"4", "Delta", domain.IntPtr(60)},
		{"5", "Echo", domain.IntPtr(10)},
	}
}

func newTable() Table[item] {
	return Table[item]{
		ID: "items",
		Columns: []Column[item]{
			{Key: "name", Header: "Name", Sortable: true,
				Value: func(i item) any { return i.name },
				Cell:  func(i item) Node { return Text(i.name) }},
			{Key: "score", Header: "Score", Sortable: true,
				Value: func(i item) any { return i.score },
				Cell:  func(i item) Node { return Text("score") }},
			{Key: "actions", Header: "Actions"},
		},
		KeyFunc:    func(i item) string { return i.id },
		Selectable: true,
		SortHref: func(s domain.SortState) string {
			return "/items?sort=" + s.Key + "&dir=" + string(s.Direction)
		},
		SelectHref: func(s domain.Selection) string {
			return "/items?" + url.Values{"selected": s.IDs()}.Encode()
		},
	}
}

func keys(rows []item) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.id
	}
	return out
}

func render(t *testing.T, n Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, n.Render(&buf))
	return buf.String()
}

// =============================================================================
// Sorting
// =============================================================================

func TestClickHeader_Cycle(t *testing.T) {
	tbl := newTable()

	var got []domain.SortState
	for range 4 {
		tbl.Sort = tbl.ClickHeader("score")
		got = append(got, tbl.Sort)
	}
	assert.Equal(t, []domain.SortState{
		{Key: "score", Direction: domain.SortAsc},
		{Key: "score", Direction: domain.SortDesc},
		{},
		{Key: "score", Direction: domain.SortAsc},
	}, got)
}

func TestClickHeader_SwitchColumn(t *testing.T) {
	tbl := newTable()
	tbl.Sort = domain.SortState{Key: "name", Direction: domain.SortDesc}

	next := tbl.ClickHeader("score")
	assert.Equal(t, domain.SortState{Key: "score", Direction: domain.SortAsc}, next)
}

func TestClickHeader_NotSortable(t *testing.T) {
	tbl := newTable()
	tbl.Sort = domain.SortState{Key: "name", Direction: domain.SortAsc}

	assert.Equal(t, tbl.Sort, tbl.ClickHeader("actions"))
	assert.Equal(t, tbl.Sort, tbl.ClickHeader("missing"))
}

func TestRows(t *testing.T) {
	data := items()
	tbl := newTable()

	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, keys(tbl.Rows(data)), "unsorted keeps input order")

	tbl.Sort = domain.SortState{Key: "name", Direction: domain.SortAsc}
	assert.Equal(t, []string{"2", "3", "1", "4", "5"}, keys(tbl.Rows(data)))

	tbl.Sort = domain.SortState{Key: "score", Direction: domain.SortDesc}
	assert.Equal(t, []string{"2", "4", "1", "5", "3"}, keys(tbl.Rows(data)))

	tbl.Sort = domain.SortState{Key: "actions", Direction: domain.SortAsc}
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, keys(tbl.Rows(data)))

	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, keys(data), "input untouched")
}

// =============================================================================
// Selection
// =============================================================================

func TestSelectionState(t *testing.T) {
	data := items()
	tbl := newTable()

	assert.Equal(t, Unchecked, tbl.SelectionState(data))

	tbl.Selected = domain.NewSelection("1", "2")
	assert.Equal(t, Indeterminate, tbl.SelectionState(data))

	tbl.Selected = domain.NewSelection("1", "2", "3", "4", "5")
	assert.Equal(t, Checked, tbl.SelectionState(data))

	tbl.Selected = domain.Selection{}
	assert.Equal(t, Unchecked, tbl.SelectionState(nil), "no rows is never checked")
}

func TestToggleAll(t *testing.T) {
	data := items()
	tbl := newTable()

	all := tbl.ToggleAll(data)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, all.IDs())

	tbl.Selected = domain.NewSelection("3")
	assert.Equal(t, 5, tbl.ToggleAll(data).Len(), "partial selection selects everything")

	tbl.Selected = all
	assert.Equal(t, 0, tbl.ToggleAll(data).Len())
}

func TestToggleAll_FollowsDisplayOrder(t *testing.T) {
	tbl := newTable()
	tbl.Sort = domain.SortState{Key: "name", Direction: domain.SortAsc}

	assert.Equal(t, []string{"2", "3", "1", "4", "5"}, tbl.ToggleAll(items()).IDs())
}

func TestToggle(t *testing.T) {
	tbl := newTable()
	row := items()[1]

	tbl.Selected = tbl.Toggle(row)
	assert.True(t, tbl.IsSelected(row))

	tbl.Selected = tbl.Toggle(row)
	assert.False(t, tbl.IsSelected(row))
}

// =============================================================================
// Render
// =============================================================================

func TestRender_Rows(t *testing.T) {
	tbl := newTable()
	tbl.Sort = domain.SortState{Key: "name", Direction: domain.SortAsc}
	tbl.Selected = domain.NewSelection("4")

	html := render(t, tbl.Render(items()))

	assert.Contains(t, html, `id="items"`)
	assert.Equal(t, 5, strings.Count(html, `<tr data-key=`))
	assert.Less(t, strings.Index(html, "Alpha"), strings.Index(html, "Charlie"))
	assert.Contains(t, html, `aria-sort="ascending"`)
	assert.Contains(t, html, `href="/items?sort=name&amp;dir=desc"`)
	assert.Contains(t, html, `aria-checked="mixed"`)
	assert.Contains(t, html, ">Actions</th>")
}

func TestRender_Loading(t *testing.T) {
	tbl := newTable()
	tbl.Loading = true

	html := render(t, tbl.Render(items()))

	assert.Contains(t, html, LoadingMessage)
	assert.Contains(t, html, `colspan="4"`)
	assert.NotContains(t, html, "Charlie")
	assert.NotContains(t, html, `href="/items?selected=`)
}

func TestRender_Empty(t *testing.T) {
	tbl := newTable()

	html := render(t, tbl.Render(nil))
	assert.Contains(t, html, DefaultEmptyMessage)
	assert.Contains(t, html, `colspan="4"`)

	tbl.EmptyMessage = "No leads match your filters"
	tbl.Selectable = false
	html = render(t, tbl.Render([]item{}))
	assert.Contains(t, html, "No leads match your filters")
	assert.Contains(t, html, `colspan="3"`)
}

func TestRender_PlainHeaders(t *testing.T) {
	tbl := newTable()
	tbl.SortHref = nil
	tbl.SelectHref = nil

	html := render(t, tbl.Render(items()))
	assert.NotContains(t, html, "<a ")
	assert.Contains(t, html, `role="checkbox"`)
}
