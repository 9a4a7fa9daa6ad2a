package utils

import (
	"regexp"
	"strings"
)

// BrowserEmailRegex is the loose pattern the contact page checks before
// posting the form. The server applies a stricter check.
var BrowserEmailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsBrowserValidEmail reports whether email passes the page's pre-check.
func IsBrowserValidEmail(email string) bool {
	return BrowserEmailRegex.MatchString(email)
}

// HasLineBreak reports whether s contains CR or LF. Such values must not
// reach mail headers.
func HasLineBreak(s string) bool {
	return strings.ContainsAny(s, "\r\n")
}
