package pipeline

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/DukeRupert/leadshift/internal/domain"
)

// Compare orders two field values. Numbers compare numerically, strings
// lexicographically and times chronologically. Pointers are dereferenced.
// Absent values are not ordered here; see SortStable.
//
// Values of different kinds fall back to comparing their printed form so
// that the result is always deterministic.
func Compare(a, b any) int {
	a, b = deref(a), deref(b)

	if x, ok := toFloat(a); ok {
		if y, ok := toFloat(b); ok {
			return cmp.Compare(x, y)
		}
	}

	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return cmp.Compare(x, y)
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	case domain.LeadStatus:
		if y, ok := b.(domain.LeadStatus); ok {
			return cmp.Compare(x, y)
		}
	}

	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// IsAbsent reports whether v carries no value: nil or a nil pointer.
func IsAbsent(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case *int:
		return x == nil
	case *string:
		return x == nil
	case *float64:
		return x == nil
	case *time.Time:
		return x == nil
	}
	return false
}

// SortStable returns a sorted copy of rows. value extracts the sort field.
// Rows whose value is absent always go last, whatever the direction.
// SortNone or a nil value func returns an unsorted copy.
func SortStable[T any](rows []T, value func(T) any, dir domain.SortDirection) []T {
	out := slices.Clone(rows)
	if value == nil || (dir != domain.SortAsc && dir != domain.SortDesc) {
		return out
	}

	slices.SortStableFunc(out, func(a, b T) int {
		va, vb := value(a), value(b)
		aAbsent, bAbsent := IsAbsent(va), IsAbsent(vb)
		switch {
		case aAbsent && bAbsent:
			return 0
		case aAbsent:
			return 1
		case bAbsent:
			return -1
		}

		c := Compare(va, vb)
		if dir == domain.SortDesc {
			c = -c
		}
		return c
	})
	return out
}

func deref(v any) any {
	switch x := v.(type) {
	case *int:
		if x != nil {
			return *x
		}
	case *string:
		if x != nil {
			return *x
		}
	case *float64:
		if x != nil {
			return *x
		}
	case *time.Time:
		if x != nil {
			return *x
		}
	}
	return v
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}
