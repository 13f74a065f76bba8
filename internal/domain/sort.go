package domain

// SortDirection is the direction of the active sort.
type SortDirection string

const (
	SortNone SortDirection = ""
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// IsValid returns true for the three known directions.
func (d SortDirection) IsValid() bool {
	switch d {
	case SortNone, SortAsc, SortDesc:
		return true
	}
	return false
}

// Next returns the direction that follows d in the none -> asc -> desc
// cycle.
func (d SortDirection) Next() SortDirection {
	switch d {
	case SortAsc:
		return SortDesc
	case SortDesc:
		return SortNone
	default:
		return SortAsc
	}
}

// SortState holds at most one active sort key. The zero value is unsorted.
type SortState struct {
	Key       string
	Direction SortDirection
}

// ParseSortState builds a SortState from raw request values. An unknown
// direction or an empty key yields the unsorted state.
func ParseSortState(key, dir string) SortState {
	d := SortDirection(dir)
	if key == "" || d == SortNone || !d.IsValid() {
		return SortState{}
	}
	return SortState{Key: key, Direction: d}
}

// Active reports whether a sort is applied.
func (s SortState) Active() bool {
	return s.Key != "" && s.Direction != SortNone
}

// DirectionFor returns the direction shown on the header of key.
func (s SortState) DirectionFor(key string) SortDirection {
	if s.Key != key {
		return SortNone
	}
	return s.Direction
}

// Click returns the state after a header click on key.
//
// Repeated clicks on the same column cycle none -> asc -> desc -> none.
// Clicking another column starts it at asc and drops the old one.
// Callers must filter non-sortable keys before calling Click.
func (s SortState) Click(key string) SortState {
	if s.Key != key {
		return SortState{Key: key, Direction: SortAsc}
	}
	next := s.Direction.Next()
	if next == SortNone {
		return SortState{}
	}
	return SortState{Key: key, Direction: next}
}
