package conjparse

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeForm canonicalizes a surface form for use as a lookup key:
// lowercased and NFC-composed. Diacritics are kept; they distinguish real
// forms (parla vs parlà).
func NormalizeForm(s string) string {
	return norm.NFC.String(strings.ToLower(strings.TrimSpace(s)))
}

var foldTransform = transform.Chain(
	norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldDiacritics strips combining marks from a normalized form. The forms
// table is not keyed this way; this is for callers that want an
// accent-insensitive second try after an exact lookup misses.
func FoldDiacritics(s string) string {
	folded, _, err := transform.String(foldTransform, s)
	if err != nil {
		return s
	}
	return folded
}
