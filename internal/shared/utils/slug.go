package utils

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9-]+`)
	multiHyphen  = regexp.MustCompile(`-+`)
)

// Letters that NFD does not decompose into base + mark.
var foldLetters = map[rune]string{
	'ı': "i", 'İ': "i",
	'ß': "ss",
	'ø': "o", 'Ø': "o",
	'đ': "d", 'Đ': "d",
	'ł': "l", 'Ł': "l",
	'æ': "ae", 'Æ': "ae",
	'œ': "oe", 'Œ': "oe",
}

// GenerateSlug lowercases input, strips diacritics and joins words with hyphens.
// "Doğum Günü Listesi" → "dogum-gunu-listesi"
func GenerateSlug(input string) string {
	ascii := RemoveDiacritics(input)
	lower := strings.ToLower(ascii)
	hyphenated := strings.Join(strings.Fields(lower), "-")
	cleaned := nonSlugChars.ReplaceAllString(hyphenated, "")
	normalized := multiHyphen.ReplaceAllString(cleaned, "-")
	return strings.Trim(normalized, "-")
}

// UniqueSlug appends a millisecond timestamp so two lists with the same name
// get different public URLs. Empty names fall back to "wishlist".
func UniqueSlug(name string, now time.Time) string {
	base := GenerateSlug(name)
	if base == "" {
		base = "wishlist"
	}
	return base + "-" + strconv.FormatInt(now.UnixMilli(), 10)
}

// RemoveDiacritics decomposes input (NFD), drops combining marks and maps the
// few letters that have no decomposition.
func RemoveDiacritics(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if repl, ok := foldLetters[r]; ok {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, b.String())
	if err != nil {
		return b.String()
	}
	return out
}
