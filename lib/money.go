package lib

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ParseMoney takes a currency-formatted string such as "$ 123.45" and returns
// the number of cents it represents, 12345. Anything before the first digit
// (the currency marker and its trailing space) is skipped. Only the first two
// fractional digits are read; a single fractional digit counts as tens of
// cents, so "12.5" is 1250. Input that holds no number returns 0.
func ParseMoney(input string) int64 {
	s := strings.TrimLeftFunc(input, func(r rune) bool {
		return !unicode.IsDigit(r)
	})
	if s == "" {
		return 0
	}

	whole, fraction, hasFraction := strings.Cut(s, ".")
	cents := leadingInt(whole) * 100

	if !hasFraction {
		return cents
	}

	return cents + fractionDigit(fraction, 0)*10 + fractionDigit(fraction, 1)
}

// leadingInt parses the run of digits at the start of s.
func leadingInt(s string) int64 {
	end := strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r)
	})
	if end >= 0 {
		s = s[:end]
	}

	if s == "" {
		return 0
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}

	return n
}

func fractionDigit(fraction string, i int) int64 {
	if i >= len(fraction) {
		return 0
	}

	c := fraction[i]
	if c < '0' || c > '9' {
		return 0
	}

	return int64(c - '0')
}

// FormatMoney converts a number of cents to a printable decimal string. The
// fractional part is printed without zero padding, and a zero fraction prints
// as a single "0": 12345 is "123.45", 10000 is "100.0" and 10005 is "100.5".
// This matches the format of every invoice issued so far.
func FormatMoney(cents int64) string {
	base := cents / 100
	fraction := cents % 100

	if fraction == 0 {
		return fmt.Sprintf("%d.0", base)
	}

	return fmt.Sprintf("%d.%d", base, fraction)
}

// FormatCurrency prefixes a formatted amount with the currency marker, e.g.
// "$ 123.45".
func FormatCurrency(marker string, cents int64) string {
	return WithMarker(marker, FormatMoney(cents))
}

// WithMarker joins a currency marker and an amount with a single space.
func WithMarker(marker, amount string) string {
	return marker + " " + amount
}
