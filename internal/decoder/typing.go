package decoder

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numberPattern accepts plain decimal numbers with an optional exponent and surrounding whitespace.
var numberPattern = regexp.MustCompile(`^\s*-?(\d+\.?|\.\d+|\d+\.\d+)([eE][-+]?\d+)?\s*$`)

// maxSafeFloat is the largest magnitude at which every integer is exactly representable.
const maxSafeFloat = 1 << 53

// typeCell converts a text cell to a typed value: the empty string becomes nil, true and false literals
// become booleans, numbers within the exact-integer range become float64. Anything else stays a string.
func typeCell(s string) any {
	switch s {
	case "":
		return nil
	case "true", "TRUE":
		return true
	case "false", "FALSE":
		return false
	}
	if numberPattern.MatchString(s) {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err == nil && math.Abs(f) <= maxSafeFloat {
			return f
		}
	}
	return s
}
