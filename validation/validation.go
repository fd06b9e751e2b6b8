// Package validation holds the pure identifier checks shared by the book and
// employee registration paths and by the loan desk's barcode resolution.
package validation

import (
	"regexp"
	"strings"
	"unicode"
)

// Matches the local@domain.tld shape; deliberately not full RFC 5322.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var (
	isbn10Re = regexp.MustCompile(`^\d{9}[\dX]$`)
	isbn13Re = regexp.MustCompile(`^\d{13}$`)
)

// NormalizeIdentifier converts full-width digits (U+FF10..U+FF19) to ASCII
// and strips whitespace and hyphens. Barcode scanners behind a Japanese IME
// regularly deliver full-width digits.
func NormalizeIdentifier(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '０' && r <= '９':
			b.WriteRune('0' + (r - '０'))
		case r == '-' || unicode.IsSpace(r):
			// dropped
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateISBN reports whether s is a checksum-valid ISBN-10 or ISBN-13
// after normalization. Any other length is invalid.
func ValidateISBN(s string) bool {
	isbn := NormalizeIdentifier(s)
	switch len(isbn) {
	case 10:
		return validISBN10(isbn)
	case 13:
		return validISBN13(isbn)
	default:
		return false
	}
}

// ISBN-10: weighted sum with weights 10..1, check digit 'X' counts as 10,
// total must be divisible by 11.
func validISBN10(isbn string) bool {
	if !isbn10Re.MatchString(isbn) {
		return false
	}
	sum := 0
	for i := 0; i < 9; i++ {
		sum += int(isbn[i]-'0') * (10 - i)
	}
	if isbn[9] == 'X' {
		sum += 10
	} else {
		sum += int(isbn[9] - '0')
	}
	return sum%11 == 0
}

// ISBN-13: alternating 1/3 weights over the first 12 digits, check digit is
// (10 - sum mod 10) mod 10.
func validISBN13(isbn string) bool {
	if !isbn13Re.MatchString(isbn) {
		return false
	}
	sum := 0
	for i := 0; i < 12; i++ {
		d := int(isbn[i] - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	check := (10 - sum%10) % 10
	return int(isbn[12]-'0') == check
}

// ValidateEmail reports whether s looks like a deliverable address.
func ValidateEmail(s string) bool {
	return emailRe.MatchString(strings.TrimSpace(s))
}
