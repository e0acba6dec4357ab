// Package postalcode folds user-typed Japanese postal codes into their 7-digit form.
package postalcode

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

var sevenDigits = regexp.MustCompile(`^\d{7}$`)

// Sanitize folds full-width characters to ASCII, trims surrounding space and
// strips hyphens and dash variants, so "150-0002" and "１５０－０００２" both
// become "1500002".
func Sanitize(code string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '‐', '‑', '‒', '–', '—', '−',
			'ー', '－', 'ｰ':
			return -1
		}
		return r
	}, width.Narrow.String(strings.TrimSpace(code)))
}

// Extract is Sanitize with inner whitespace removed as well. It reports false
// unless exactly seven ASCII digits remain.
func Extract(value string) (string, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, Sanitize(value))

	if !sevenDigits.MatchString(cleaned) {
		return "", false
	}
	return cleaned, true
}
