package utils

import "strings"

// MaskEmail hides the local part of an address except its first and last
// character: "user@example.com" -> "u**r@example.com".
func MaskEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.IndexByte(email, '@')
	if at <= 0 {
		return maskKeepLast(email, 1)
	}

	local := []rune(email[:at])
	domain := email[at:]
	switch len(local) {
	case 1:
		return string(local) + domain
	case 2:
		return string(local[0]) + "*" + domain
	}
	return string(local[0]) + strings.Repeat("*", len(local)-2) + string(local[len(local)-1]) + domain
}

// MaskPhone replaces all digits but the last four (or the last one for
// short numbers) with '*', keeping formatting characters.
func MaskPhone(phone string) string {
	phone = strings.TrimSpace(phone)
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	keep := 4
	if digits <= 4 {
		keep = 1
	}

	runes := []rune(phone)
	seen := 0
	for i, r := range runes {
		if r < '0' || r > '9' {
			continue
		}
		seen++
		if seen <= digits-keep {
			runes[i] = '*'
		}
	}
	return string(runes)
}

func maskKeepLast(s string, keep int) string {
	runes := []rune(s)
	if len(runes) <= keep {
		return s
	}
	return strings.Repeat("*", len(runes)-keep) + string(runes[len(runes)-keep:])
}
