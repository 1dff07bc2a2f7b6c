// Package country resolves free-form country references (codes, names,
// colloquial spellings) to canonical ISO 3166-1 alpha-2 codes.
//
// Resolution is a pure linguistic step: it never consults the map catalog.
// Callers that need validity against the actual country universe must check
// the returned candidate against their catalog themselves.
package country

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD and drops combining marks, so "Curaçao" and
// "Curacao" normalize identically.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Normalize canonicalizes a country reference for table lookups:
// diacritics are stripped, everything is lowercased, and every run of
// non-alphanumeric characters collapses to a single space.
//
//	Normalize("Côte d'Ivoire")  == "cote d ivoire"
//	Normalize("  U.S.A. ")      == "u s a"
func Normalize(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		// Transform only fails on malformed UTF-8; fall back to the raw
		// input so lookups still get a deterministic key.
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingSpace := false
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		} else {
			pendingSpace = true
		}
	}
	return b.String()
}

// isAlpha reports whether s is non-empty ASCII letters only.
func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z') {
			return false
		}
	}
	return true
}
