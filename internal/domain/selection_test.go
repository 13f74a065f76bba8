package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelection_ZeroValue(t *testing.T) {
	var s Selection
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Has("a"))
	assert.Empty(t, s.IDs())
}

func TestSelection_NewDedupes(t *testing.T) {
	s := NewSelection("a", "b", "a", "", "c")
	assert.Equal(t, []string{"a", "b", "c"}, s.IDs())
}

func TestSelection_Toggle(t *testing.T) {
	s := NewSelection("a")

	added := s.Toggle("b")
	assert.Equal(t, []string{"a", "b"}, added.IDs())

	removed := added.Toggle("a")
	assert.Equal(t, []string{"b"}, removed.IDs())

	// The original value is not modified.
	assert.Equal(t, []string{"a"}, s.IDs())
}

func TestSelection_Retain(t *testing.T) {
	s := NewSelection("c", "a", "zz")
	kept := s.Retain([]string{"a", "b", "c"})
	assert.Equal(t, []string{"c", "a"}, kept.IDs())
}

func TestSelection_Clear(t *testing.T) {
	s := NewSelection("a", "b").Clear()
	assert.Equal(t, 0, s.Len())
}

func TestTheme(t *testing.T) {
	assert.Equal(t, ThemeDark, ParseTheme("dark"))
	assert.Equal(t, ThemeLight, ParseTheme("light"))
	assert.Equal(t, ThemeLight, ParseTheme("purple"))
	assert.Equal(t, ThemeDark, ThemeLight.Toggle())
	assert.Equal(t, ThemeLight, ThemeDark.Toggle())
}

func TestParseSelection(t *testing.T) {
	s := ParseSelection([]string{"a", "b,c", " a ", ""})
	assert.Equal(t, []string{"a", "b", "c"}, s.IDs())
}

func TestSelectLeads(t *testing.T) {
	leads := []Lead{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	got := SelectLeads(leads, NewSelection("c", "a", "zz"))
	assert.Equal(t, []string{"a", "c"}, LeadIDs(got))

	assert.Empty(t, SelectLeads(leads, Selection{}))
}
