package pricing

import "strings"

// promoCodes is the fixed allow-list of accepted promo codes.
var promoCodes = map[string]struct{}{
	"welcome5": {},
	"health5":  {},
}

// ValidPromoCode reports whether the submitted code is accepted. Matching is
// case-insensitive; an unknown code is a silent no-op for the caller, never
// an error.
func ValidPromoCode(code string) bool {
	_, ok := promoCodes[strings.ToLower(strings.TrimSpace(code))]
	return ok
}
