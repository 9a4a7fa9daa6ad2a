// Package phone normalizes free-form phone numbers entered in the contact form.
package phone

import (
	"strings"
)

// Normalize maps a raw phone string to a "+"-prefixed digit string.
// It returns "" when the input has no digits.
//
// Russian numbers written with the domestic trunk prefix (8XXXXXXXXXX) are
// rewritten to +7XXXXXXXXXX.
func Normalize(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}

	digits := Digits(trimmed)
	if digits == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "+") {
		return "+" + digits
	}

	if len(digits) == 11 && digits[0] == '8' {
		return "+7" + digits[1:]
	}

	return "+" + digits
}

// Digits returns only the ASCII digits of s.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}
