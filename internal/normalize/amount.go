// Package normalize converts Swedish-formatted monetary and date strings found in bank
// exports into exact decimals and calendar dates.
package normalize

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

var (
	// Trailing currency marker: "kr", "kr.", "SEK" or a single currency symbol. \s is
	// ASCII-only in RE2, so \p{Zs} covers no-break spaces before the marker.
	currencySuffix = regexp.MustCompile(`(?i)[\s\p{Zs}]*(?:kr\.?|sek|\p{Sc})$`)

	// Either plain digits or digits grouped in threes by single spaces, followed by an
	// optional fraction introduced by one comma or one point.
	numberPattern = regexp.MustCompile(`^(?:\d+|\d{1,3}(?: \d{3})+)(?:[.,]\d+)?$`)
)

// ParseAmount normalizes a monetary string such as "8 800,00 kr" or "-256,70 kr".
// It returns the magnitude and whether the value carried a non-negative sign. Whether a
// row is income is decided by the bank parser, which may override the sign.
func ParseAmount(raw string) (decimal.Decimal, bool, error) {
	magnitude, negative, err := parseNumber("amount", raw)
	if err != nil {
		return decimal.Zero, false, err
	}
	return magnitude, !negative, nil
}

// ParseOptionalAmount parses a signed value such as a running balance. Empty cells and
// the "-" placeholder yield an invalid NullDecimal.
func ParseOptionalAmount(raw string) (decimal.NullDecimal, error) {
	s := strings.TrimFunc(raw, unicode.IsSpace)
	if s == "" || s == "-" {
		return decimal.NullDecimal{}, nil
	}
	magnitude, negative, err := parseNumber("balance", raw)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	if negative {
		magnitude = magnitude.Neg()
	}
	return decimal.NewNullDecimal(magnitude), nil
}

func parseNumber(field, raw string) (decimal.Decimal, bool, error) {
	fail := func(reason string) (decimal.Decimal, bool, error) {
		return decimal.Zero, false, &ValueError{Field: field, Raw: raw, Reason: reason}
	}

	s := strings.TrimFunc(raw, unicode.IsSpace)
	s = currencySuffix.ReplaceAllString(s, "")
	s = strings.TrimRightFunc(s, unicode.IsSpace)
	if s == "" {
		return fail("empty")
	}

	negative := false
	switch r, size := utf8.DecodeRuneInString(s); r {
	case '-', '\u2212':
		negative = true
		s = s[size:]
	case '+':
		s = s[size:]
	}
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	if s == "" {
		return fail("sign without digits")
	}

	// No-break and narrow no-break spaces are common group separators in exports.
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, s)
	if !numberPattern.MatchString(s) {
		return fail("not a decimal number")
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.Replace(s, ",", ".", 1)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return fail(err.Error())
	}
	return d, negative, nil
}
