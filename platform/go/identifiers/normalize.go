package identifiers

import (
	"strings"
	"unicode"
)

// maxInputLength bounds the raw input accepted for any kind before normalization.
const maxInputLength = 320

// Normalize folds raw to upper case and removes the cosmetic separators allowed for kind.
// Normalize(k, Normalize(k, s)) == Normalize(k, s) for every kind and input.
func Normalize(kind Kind, raw string) string {
	switch kind.mustKnow() {
	case KindEmail:
		return strings.ToUpper(strings.TrimSpace(raw))
	default:
		return strings.ToUpper(stripRunes(raw, isCodeSeparator))
	}
}

func stripRunes(s string, drop func(rune) bool) string {
	return strings.Map(func(r rune) rune {
		if drop(r) {
			return -1
		}
		return r
	}, s)
}

// isCodeSeparator keeps '+' so phone numbers retain their international prefix.
func isCodeSeparator(r rune) bool {
	switch r {
	case '-', '/', '.', '(', ')':
		return true
	}
	return unicode.IsSpace(r)
}
