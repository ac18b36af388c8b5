// Package identity validates and normalizes personal identifiers:
// the Brazilian CPF tax id and phone numbers.
package identity

import "strings"

// NormalizeTaxID strips every non-digit character from raw.
func NormalizeTaxID(raw string) string {
	return digitsOnly(raw)
}

// IsValidTaxID reports whether digits is a valid 11-digit CPF.
// CPFs made of a single repeated digit pass the checksum but are rejected.
func IsValidTaxID(digits string) bool {
	if len(digits) != 11 || digits != digitsOnly(digits) {
		return false
	}
	if strings.Count(digits, digits[:1]) == len(digits) {
		return false
	}
	return checkDigit(digits[:9], 10) == int(digits[9]-'0') &&
		checkDigit(digits[:10], 11) == int(digits[10]-'0')
}

// checkDigit computes one CPF verification digit over prefix using weights
// starting at firstWeight and decreasing to 2.
func checkDigit(prefix string, firstWeight int) int {
	sum := 0
	for i := 0; i < len(prefix); i++ {
		sum += int(prefix[i]-'0') * (firstWeight - i)
	}
	rem := sum % 11
	if rem < 2 {
		return 0
	}
	return 11 - rem
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
