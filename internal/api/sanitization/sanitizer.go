package sanitization

import (
	"regexp"
	"strings"
	"unicode"
)

// MaxSearchTermRunes bounds catalog search terms.
const MaxSearchTermRunes = 100

var spaces = regexp.MustCompile(`\s+`)

// SanitizeSearchTerm prepares a catalog search term: control characters
// are dropped, runs of whitespace collapse to one space, and the result is
// trimmed and cut to MaxSearchTermRunes.
func SanitizeSearchTerm(input string) string {
	safe := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, input)

	// Remove multiple spaces
	safe = spaces.ReplaceAllString(safe, " ")

	// Trim whitespace
	safe = strings.TrimSpace(safe)

	if r := []rune(safe); len(r) > MaxSearchTermRunes {
		safe = strings.TrimSpace(string(r[:MaxSearchTermRunes]))
	}
	return safe
}
