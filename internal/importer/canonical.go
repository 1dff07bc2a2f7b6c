package importer

import (
	"github.com/mapknit/mapknit/internal/catalog"
	"github.com/mapknit/mapknit/internal/country"
)

// Canonicalize resolves a raw country reference and validates the candidate
// against the catalog. It is the one entry point for turning user-supplied
// text into a trusted country ID.
//
// Candidates from the linguistic resolver are handled by shape:
//
//   - two-letter candidates are accepted as-is
//   - three-letter candidates collapse to their first two letters when the
//     catalog knows that ID (ISO-3 and sub-region drift); with no catalog
//     the three-letter form passes through, but with a catalog an unknown
//     candidate is rejected — catalog membership is the final authority
//
// When the resolver fails entirely, the catalog's own label index gets the
// last word: map documents sometimes label a territory differently from any
// table name, and the catalog's labels are authoritative for its universe.
func Canonicalize(ref string, cat *catalog.Catalog) (string, bool) {
	if code, ok := country.Resolve(ref); ok {
		if len(code) == 2 {
			return code, true
		}
		// Three-letter candidate.
		if cat == nil {
			return code, true
		}
		if cat.ContainsId(code[:2]) {
			return code[:2], true
		}
		return "", false
	}

	if cat != nil {
		if id, ok := cat.TryResolveIdFromName(ref); ok {
			return id, true
		}
	}
	return "", false
}
