// Package catalog builds the closed universe of valid country IDs from an
// SVG map document. The catalog is built once at startup and is immutable;
// concurrent reads need no locking.
//
// An element in the document counts as a country only when its id attribute
// is exactly two letters AND the element (or one of its descendants) carries
// a human-readable label. Elements with two-letter ids but no label anywhere
// below them are decorative and excluded.
package catalog

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mapknit/mapknit/internal/country"
)

// Catalog holds the valid country ID set and a normalized-label index
// scraped from the document's own labels.
type Catalog struct {
	ids   map[string]struct{}
	names map[string]string // country.Normalize(label) -> ID
}

// labelAttrs are the attributes accepted as a direct human-readable label.
var labelAttrs = []string{"title", "name", "aria-label"}

// element tracks one open element while walking the token stream.
type element struct {
	local       string
	id          string // uppercased two-letter id, or "" if not a candidate
	directLabel string
	descLabels  []string
	text        strings.Builder // chardata, used for <title> children
}

// LoadFromDocument parses the SVG map text and extracts the country ID
// universe plus the label index. A document with no qualifying elements
// yields an empty catalog, not an error; only unparseable markup fails.
func LoadFromDocument(doc []byte) (*Catalog, error) {
	c := &Catalog{
		ids:   make(map[string]struct{}),
		names: make(map[string]string),
	}

	dec := xml.NewDecoder(bytes.NewReader(doc))
	// SVG in the wild references external entities and HTML-ish charrefs;
	// parse leniently, the content is treated strictly as data.
	dec.Strict = false
	dec.AutoClose = xml.HTMLAutoClose
	dec.Entity = xml.HTMLEntity

	var stack []*element
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse map document: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &element{local: strings.ToLower(t.Name.Local)}
			if id, ok := countryID(t); ok {
				el.id = id
			}
			if label := directLabel(t); label != "" {
				el.directLabel = label
			}
			stack = append(stack, el)

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}

		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			el := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			// A <title> child labels its parent element.
			if el.local == "title" && len(stack) > 0 {
				if text := strings.TrimSpace(el.text.String()); text != "" {
					parent := stack[len(stack)-1]
					if parent.directLabel == "" {
						parent.directLabel = text
					} else {
						parent.descLabels = append(parent.descLabels, text)
					}
				}
			}

			c.closeElement(el)

			// Labels propagate upward so a parent with the country id can
			// claim labels carried by its sub-paths.
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				if el.directLabel != "" {
					parent.descLabels = append(parent.descLabels, el.directLabel)
				}
				parent.descLabels = append(parent.descLabels, el.descLabels...)
			}
		}
	}

	return c, nil
}

// closeElement registers el if it qualifies as a country.
func (c *Catalog) closeElement(el *element) {
	if el.id == "" {
		return
	}
	if el.directLabel == "" && len(el.descLabels) == 0 {
		// Two-letter id but no label anywhere below: not a country.
		return
	}

	c.ids[el.id] = struct{}{}

	if el.directLabel != "" {
		c.registerName(el.directLabel, el.id)
		return
	}
	// Composite territory: sub-paths carry the labels, the parent carries
	// the id. Every descendant label points at the parent's id.
	for _, label := range el.descLabels {
		c.registerName(label, el.id)
	}
}

// registerName indexes a normalized label. First registration wins.
func (c *Catalog) registerName(label, id string) {
	key := country.Normalize(label)
	if key == "" {
		return
	}
	if _, taken := c.names[key]; !taken {
		c.names[key] = id
	}
}

// countryID extracts a valid two-letter id attribute, uppercased.
func countryID(t xml.StartElement) (string, bool) {
	for _, attr := range t.Attr {
		if strings.ToLower(attr.Name.Local) != "id" {
			continue
		}
		id := strings.TrimSpace(attr.Value)
		if len(id) == 2 && isLetters(id) {
			return strings.ToUpper(id), true
		}
		return "", false
	}
	return "", false
}

// directLabel extracts a human-readable label attribute, if any.
func directLabel(t xml.StartElement) string {
	for _, want := range labelAttrs {
		for _, attr := range t.Attr {
			if strings.ToLower(attr.Name.Local) == want {
				if v := strings.TrimSpace(attr.Value); v != "" {
					return v
				}
			}
		}
	}
	return ""
}

func isLetters(s string) bool {
	for _, r := range s {
		if !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z') {
			return false
		}
	}
	return true
}

// ContainsId reports whether code is a valid country ID. The check is
// case-insensitive and tolerates surrounding whitespace.
func (c *Catalog) ContainsId(code string) bool {
	_, ok := c.ids[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// TryResolveIdFromName looks text up in the normalized-label index.
func (c *Catalog) TryResolveIdFromName(text string) (string, bool) {
	id, ok := c.names[country.Normalize(text)]
	return id, ok
}

// IDs returns every valid country ID in sorted order.
func (c *Catalog) IDs() []string {
	out := make([]string, 0, len(c.ids))
	for id := range c.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of countries in the catalog.
func (c *Catalog) Len() int {
	return len(c.ids)
}
