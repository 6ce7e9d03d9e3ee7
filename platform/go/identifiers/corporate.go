package identifiers

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// legalForms are the company-type abbreviations dropped from organization names
// before deriving a domain fragment.
var legalForms = map[string]struct{}{
	"sl": {}, "sa": {}, "slu": {}, "sau": {}, "sll": {}, "slp": {},
	"scoop": {}, "coop": {}, "cb": {}, "sc": {},
}

const maxLegalFormLen = len("scoop")

// DomainFragment folds an organization name into the fragment its email domain is
// expected to contain: accents removed, lower case, legal forms dropped and the
// remaining alphanumerics concatenated. "Clínica Salud Norte, S.L." becomes
// "clinicasaludnorte". Single-letter words are kept unless a run of them spells a
// legal form ("S L", "S. Coop."), so "Clínica A Coruña" keeps its "a".
func DomainFragment(organizationName string) string {
	folded := foldAccents(organizationName)

	fields := strings.FieldsFunc(strings.ToLower(folded), func(r rune) bool {
		return r != '.' && !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if compact := strings.ReplaceAll(field, ".", ""); compact != "" {
			tokens = append(tokens, compact)
		}
	}

	var b strings.Builder
	for i := 0; i < len(tokens); {
		if n := legalFormSpan(tokens[i:]); n > 0 {
			i += n
			continue
		}
		b.WriteString(tokens[i])
		i++
	}
	return b.String()
}

// legalFormSpan returns how many leading tokens spell a legal form, preferring the
// longest match, or 0. Every token of a multi-token span but the last must be a
// single letter.
func legalFormSpan(tokens []string) int {
	var joined strings.Builder
	span := 0
	for n, token := range tokens {
		joined.WriteString(token)
		if joined.Len() > maxLegalFormLen {
			break
		}
		if _, ok := legalForms[joined.String()]; ok {
			span = n + 1
		}
		if len(token) > 1 {
			break
		}
	}
	return span
}

// IsCorporateEmail reports whether email is valid and its domain contains the
// fragment derived from organizationName.
func IsCorporateEmail(email, organizationName string) bool {
	result := Check(KindEmail, email)
	if !result.Valid() {
		return false
	}

	fragment := DomainFragment(organizationName)
	if fragment == "" {
		return false
	}

	at := strings.LastIndexByte(result.Normalized, '@')
	domain := strings.ToLower(result.Normalized[at+1:])
	return strings.Contains(strings.ReplaceAll(domain, "-", ""), fragment)
}

func foldAccents(s string) string {
	// Transformers keep state, so each call builds its own chain.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}
