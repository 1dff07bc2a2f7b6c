package store

import "strings"

// NeutralGray is the fallback color: the default set's initial color and
// the substitute for blank or invalid hex values.
const NeutralGray = "#c8c8c8"

// NormalizeColor applies the shared color policy:
//
//   - blank → neutral gray
//   - bare 3- or 6-digit hex is prefixed with "#"
//   - "#xxx" / "#xxxxxx" is validated per character, invalid → neutral gray
//   - anything else (named colors, rgb()/hsl() syntax) passes through;
//     validity is deferred to the rendering side
func NormalizeColor(c string) string {
	c = strings.TrimSpace(c)
	if c == "" {
		return NeutralGray
	}

	if !strings.HasPrefix(c, "#") {
		if (len(c) == 3 || len(c) == 6) && isHex(c) {
			return "#" + c
		}
		return c
	}

	if len(c) == 4 || len(c) == 7 {
		if isHex(c[1:]) {
			return c
		}
		return NeutralGray
	}
	return c
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case '0' <= r && r <= '9':
		case 'a' <= r && r <= 'f':
		case 'A' <= r && r <= 'F':
		default:
			return false
		}
	}
	return true
}
