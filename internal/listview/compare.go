package listview

import (
	"cmp"
	"time"
)

// Comparator returns the ordering function for dir. Descending is the
// negated ascending comparison, so ties resolve the same in both directions.
func Comparator(dir Direction) func(a, b any) int {
	if dir == Desc {
		return func(a, b any) int { return -compareValues(a, b) }
	}
	return compareValues
}

// compareValues orders two field values of the same primitive kind. Values
// of different or unknown kinds compare equal, leaving input order intact.
func compareValues(a, b any) int {
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return cmp.Compare(x, y)
		}
	case bool:
		if y, ok := b.(bool); ok {
			return compareBool(x, y)
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	default:
		fx, okx := toFloat(a)
		fy, oky := toFloat(b)
		if okx && oky {
			return cmp.Compare(fx, fy)
		}
	}
	return 0
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
