// Package importer turns an untrusted YAML document into a validated set of
// country groups and assignments.
//
// The pipeline is defensive by construction: hard structural problems
// (oversized input, anchor/alias syntax, wrong document shape, ceiling
// violations) reject the whole document with a single reason, while soft
// problems (blank group names, oversized fields, unresolvable country
// references) become warnings on a still-usable partial result. A document
// that fails validation never reaches the state store.
package importer

import (
	"fmt"
	"strings"
)

// Limits are the structural ceilings enforced on an import document.
type Limits struct {
	// MaxDocumentBytes is the whole-document size ceiling (hard reject).
	MaxDocumentBytes int

	// MaxSets is the maximum number of named groups (hard reject).
	MaxSets int

	// MaxCountryRefs is the total country-reference ceiling across all
	// groups (hard reject).
	MaxCountryRefs int

	// MaxNameLen caps the map name and group names (truncate + warning).
	MaxNameLen int

	// MaxColorLen caps color values (truncate + warning).
	MaxColorLen int
}

// DefaultLimits returns the standard ceilings.
func DefaultLimits() Limits {
	return Limits{
		MaxDocumentBytes: 256 * 1024,
		MaxSets:          100,
		MaxCountryRefs:   5000,
		MaxNameLen:       60,
		MaxColorLen:      32,
	}
}

// Rejection codes carried by ParseError.
const (
	CodeEmpty        = "IMP001"
	CodeTooLarge     = "IMP002"
	CodeUnsafeSyntax = "IMP003"
	CodeMalformed    = "IMP004"
	CodeBadShape     = "IMP005"
	CodeTooManySets  = "IMP006"
	CodeTooManyRefs  = "IMP007"
	CodeMultipleDocs = "IMP008"
)

// ParseError is a whole-document rejection. Nothing from a rejected
// document is ever applied.
type ParseError struct {
	Code   string
	Reason string
}

func (e *ParseError) Error() string {
	return e.Reason
}

func rejectf(code, format string, args ...any) *ParseError {
	return &ParseError{Code: code, Reason: fmt.Sprintf(format, args...)}
}

// truncate caps s at max runes, reporting whether it was cut.
func truncate(s string, max int) (string, bool) {
	r := []rune(s)
	if len(r) <= max {
		return s, false
	}
	return string(r[:max]), true
}

// sanitizeColor strips characters that would let a color value escape into
// inline styling (semicolons, newlines) before length capping.
func sanitizeColor(c string) string {
	c = strings.NewReplacer(";", "", "\n", "", "\r", "").Replace(c)
	return strings.TrimSpace(c)
}
