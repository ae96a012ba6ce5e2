package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ExtractPrice reads a numeric price out of free text ("$199.99" → 199.99).
// Everything except digits and dots is discarded, then the longest leading
// number is read ("12.50." → 12.50, "19.9924.99" → 19.9924). Text with no
// leading number yields zero.
func ExtractPrice(text *string) decimal.Decimal {
	if text == nil {
		return decimal.Zero
	}

	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, *text)

	d, err := decimal.NewFromString(leadingNumber(cleaned))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// leadingNumber returns the longest prefix of s matching \d*(\.\d+)? or \d+\.,
// normalised to "<int>[.<frac>]". It returns "0" when there is none.
func leadingNumber(s string) string {
	isDigit := func(b byte) bool { return b >= '0' && b <= '9' }

	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	intPart := s[:i]

	frac := ""
	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		frac = s[i+1 : j]
	}

	switch {
	case intPart == "" && frac == "":
		return "0"
	case intPart == "":
		intPart = "0"
	}
	if frac == "" {
		return intPart
	}
	return intPart + "." + frac
}
