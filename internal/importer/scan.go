package importer

// scan.go is the pre-decode guard against YAML reference expansion. Anchors
// (&name), aliases (*name) and merge keys (<<:) allow a small document to
// expand into an enormous in-memory structure, so their mere presence
// rejects the document before the structural decoder ever runs. Quoted
// string contents are masked first: a legitimate value like "Fish & Chips"
// inside quotes must not trigger the guard.

// findUnsafeSyntax scans raw for anchor/alias/merge-key syntax outside
// quoted strings. It returns the offending token and true when found.
func findUnsafeSyntax(raw string) (string, bool) {
	masked := maskQuoted(raw)

	for i := 0; i < len(masked); i++ {
		switch masked[i] {
		case '&', '*':
			// An anchor or alias name must follow immediately; a bare
			// ampersand or asterisk followed by space/EOL is plain text.
			if i+1 < len(masked) && isAnchorChar(masked[i+1]) {
				return masked[i : i+2], true
			}
		case '<':
			if i+2 < len(masked) && masked[i+1] == '<' && masked[i+2] == ':' {
				return "<<:", true
			}
		}
	}
	return "", false
}

// maskQuoted replaces the contents of single- and double-quoted strings
// with spaces, preserving length and all unquoted text.
//
// A quote only opens a string at a value-start position (line start or
// right after a block/flow indicator). YAML treats a quote in the middle
// of a plain scalar as literal text, so an apostrophe in a value like
// "don't panic" must not swallow the rest of the document and hide a real
// anchor on a later line from the scan.
func maskQuoted(raw string) string {
	out := []byte(raw)
	const (
		plain = iota
		single
		double
	)
	state := plain

	// prev is the last significant byte of the current line while in plain
	// state; zero at line start.
	var prev byte

	for i := 0; i < len(out); i++ {
		c := out[i]
		switch state {
		case plain:
			switch {
			case c == '\n':
				prev = 0
			case c == ' ' || c == '\t':
				// insignificant, keep prev
			case c == '\'' && opensQuote(prev):
				state = single
				prev = c
			case c == '"' && opensQuote(prev):
				state = double
				prev = c
			default:
				prev = c
			}
		case single:
			if c == '\'' {
				// '' is an escaped quote inside a single-quoted string.
				if i+1 < len(out) && out[i+1] == '\'' {
					out[i+1] = ' '
					i++
				} else {
					state = plain
				}
			} else if c != '\n' {
				out[i] = ' '
			}
		case double:
			if c == '\\' && i+1 < len(out) {
				out[i] = ' '
				out[i+1] = ' '
				i++
			} else if c == '"' {
				state = plain
			} else if c != '\n' {
				out[i] = ' '
			}
		}
	}
	return string(out)
}

// opensQuote reports whether a quote following prev starts a quoted
// scalar: at line start or after a mapping/sequence/flow indicator. A
// quote after any other byte sits inside a plain scalar and is literal.
func opensQuote(prev byte) bool {
	switch prev {
	case 0, ':', '-', '?', '[', '{', ',':
		return true
	}
	return false
}

func isAnchorChar(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '_' || c == '-':
		return true
	}
	return false
}
