package domain

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortState_Click_CyclesOnSameColumn(t *testing.T) {
	var s SortState
	var got []SortDirection
	for i := 0; i < 4; i++ {
		s = s.Click("score")
		got = append(got, s.Direction)
	}

	assert.Equal(t, []SortDirection{SortAsc, SortDesc, SortNone, SortAsc}, got)
}

func TestSortState_Click_ClearsKeyAfterDescending(t *testing.T) {
	s := SortState{Key: "score", Direction: SortDesc}.Click("score")
	assert.Equal(t, SortState{}, s)
	assert.False(t, s.Active())
}

func TestSortState_Click_OtherColumnResetsToAscending(t *testing.T) {
	s := SortState{Key: "score", Direction: SortDesc}.Click("company_name")

	assert.Equal(t, "company_name", s.Key)
	assert.Equal(t, SortAsc, s.Direction)
	assert.Equal(t, SortNone, s.DirectionFor("score"))
}

func TestParseSortState(t *testing.T) {
	tests := []struct {
		name string
		key  string
		dir  string
		want SortState
	}{
		{"asc", "score", "asc", SortState{Key: "score", Direction: SortAsc}},
		{"desc", "email", "desc", SortState{Key: "email", Direction: SortDesc}},
		{"missing key", "", "asc", SortState{}},
		{"missing dir", "score", "", SortState{}},
		{"bad dir", "score", "sideways", SortState{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSortState(tt.key, tt.dir))
		})
	}
}

func TestParseFilterState(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		assert.Equal(t, DefaultFilterState(), ParseFilterState(url.Values{}))
		assert.True(t, DefaultFilterState().IsDefault())
	})

	t.Run("all dimensions", func(t *testing.T) {
		v := url.Values{
			"q":         {"  acme "},
			"score_min": {"40"},
			"score_max": {"80"},
			"industry":  {"Finance"},
			"location":  {"Austin, USA"},
			"status":    {"pending"},
		}
		f := ParseFilterState(v)

		assert.Equal(t, "  acme ", f.Query, "query is kept verbatim")
		assert.Equal(t, 40, f.ScoreMin)
		assert.Equal(t, 80, f.ScoreMax)
		assert.Equal(t, "Finance", f.Industry)
		assert.Equal(t, "Austin, USA", f.Location)
		assert.Equal(t, FilterPending, f.Status)
		assert.False(t, f.IsDefault())
	})

	t.Run("unparseable numbers keep defaults", func(t *testing.T) {
		f := ParseFilterState(url.Values{"score_min": {"abc"}, "score_max": {""}})
		assert.Equal(t, 0, f.ScoreMin)
		assert.Equal(t, 100, f.ScoreMax)
	})

	t.Run("inverted range is kept", func(t *testing.T) {
		f := ParseFilterState(url.Values{"score_min": {"90"}, "score_max": {"10"}})
		assert.Equal(t, 90, f.ScoreMin)
		assert.Equal(t, 10, f.ScoreMax)
	})
}

func TestFilterState_EncodeRoundTrip(t *testing.T) {
	f := DefaultFilterState()
	f.Query = "tech"
	f.Status = string(LeadStatusQualified)

	v := url.Values{}
	f.Encode(v)

	assert.Equal(t, "tech", v.Get("q"))
	assert.Equal(t, "qualified", v.Get("status"))
	assert.Empty(t, v.Get("industry"))
	assert.Equal(t, f, ParseFilterState(v))
}

func TestSortDirection_Next(t *testing.T) {
	assert.Equal(t, SortAsc, SortNone.Next())
	assert.Equal(t, SortDesc, SortAsc.Next())
	assert.Equal(t, SortNone, SortDesc.Next())
}
