package country

import "strings"

// Resolve maps a free-form reference to an ISO alpha-2 or alpha-3 code
// candidate. It returns ok=false when the reference is unresolvable.
//
// The steps, in order:
//
//  1. A reference that normalizes to exactly two letters is checked against
//     the alias index first ("UK" is an alias of GB, not a code); with no
//     alias hit the two letters are accepted literally.
//  2. The normalized reference is looked up in the name index (official
//     names, alpha-3 codes, aliases).
//  3. A literal three-letter reference with no name match is returned
//     uppercased as an alpha-3 candidate.
//
// Alpha-3 candidates and literal two-letter candidates are guesses: the
// caller must validate them against its catalog before trusting them.
func Resolve(ref string) (code string, ok bool) {
	literal := strings.TrimSpace(ref)
	normalized := Normalize(ref)

	if len(normalized) == 2 && isAlpha(normalized) {
		if code, ok := nameIndex[normalized]; ok {
			return code, true
		}
		return strings.ToUpper(normalized), true
	}

	if code, ok := nameIndex[normalized]; ok {
		return code, true
	}

	if len(literal) == 3 && isAlpha(literal) {
		return strings.ToUpper(literal), true
	}

	return "", false
}
