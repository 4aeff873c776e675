package analyzer

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

// IsPresent reports whether a field value counts as supplied: not nil, not the empty string and not false.
// Numbers, zero included, are present.
func IsPresent(v any) bool {
	switch s := v.(type) {
	case nil:
		return false
	case string:
		return s != ""
	case bool:
		return s
	default:
		return true
	}
}

// Truthy applies loose truthiness to a questionnaire answer: false, zero, NaN, "" and nil are false.
func Truthy(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	case string:
		return b != ""
	}
	if f, err := cast.ToFloat64E(v); err == nil {
		return f != 0 && !math.IsNaN(f)
	}
	return true
}

// toNumber coerces numeric values and numeric strings. Booleans, blanks and non-finite values are not numbers.
func toNumber(v any) (float64, bool) {
	switch s := v.(type) {
	case nil, bool:
		return 0, false
	case string:
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, false
		}
		v = s
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
