package analyzer

import (
	"strings"
	"unicode"
)

// NormalizeHeader maps a header to its comparison key: lowercased, with all whitespace and underscores removed.
// Non-string input yields the empty key.
func NormalizeHeader(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, strings.ToLower(s))
}
