package client

import "jusho-client/internal/postalcode"

// SanitizePostalCode folds full-width characters to ASCII and strips hyphens and
// dash variants, so "150-0002" and "１５０－０００２" both become "1500002".
func SanitizePostalCode(code string) string {
	return postalcode.Sanitize(code)
}
