package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/mapknit/mapknit/internal/catalog"
	"github.com/mapknit/mapknit/internal/store"
)

// Result is a fully validated import document, the only thing ever handed
// to the state store. Warnings describe soft problems that were skipped or
// repaired; they never block the import.
type Result struct {
	MapName     string
	Sets        []store.CountrySet
	Assignments map[string]string // country ID -> set ID
	Warnings    []string
}

// Parser validates raw import documents against a catalog and a set of
// structural ceilings. A Parser is cheap and safe for concurrent use.
type Parser struct {
	limits  Limits
	catalog *catalog.Catalog
}

// NewParser creates a parser. cat may be nil, in which case resolver
// candidates are trusted without catalog validation.
func NewParser(cat *catalog.Catalog, limits Limits) *Parser {
	return &Parser{limits: limits, catalog: cat}
}

// groupDef is one group definition pulled out of the document before
// ceilings and canonicalization are applied.
type groupDef struct {
	name  string
	color string
	refs  []string
}

// Parse validates raw and extracts the map name, group definitions and
// country assignments. It returns a *ParseError rejection for structural
// problems; soft problems surface as Result.Warnings.
func (p *Parser) Parse(raw []byte) (*Result, error) {
	text := string(raw)
	if strings.TrimSpace(text) == "" {
		return nil, rejectf(CodeEmpty, "document is empty")
	}
	if len(text) > p.limits.MaxDocumentBytes {
		return nil, rejectf(CodeTooLarge, "document is %d bytes, limit is %d", len(text), p.limits.MaxDocumentBytes)
	}
	if tok, found := findUnsafeSyntax(text); found {
		return nil, rejectf(CodeUnsafeSyntax, "document contains YAML reference syntax (%q), which is not allowed", tok)
	}

	root, err := decodeSingleDocument(text)
	if err != nil {
		return nil, err
	}

	res := &Result{Assignments: make(map[string]string)}

	p.extractMapName(root, res)

	setsNode := findKey(root, "sets", "groups")
	if setsNode == nil {
		return nil, rejectf(CodeBadShape, "document has no %q key", "sets")
	}
	groups, err := p.collectGroups(setsNode, res)
	if err != nil {
		return nil, err
	}
	if err := p.buildSets(groups, res); err != nil {
		return nil, err
	}

	// An explicit noDataColor recolors the default set. Appended last so it
	// wins over any folded "No data" group during replacement.
	if n := findKey(root, "noDataColor"); n != nil && n.Kind == yaml.ScalarNode {
		color, _ := truncate(sanitizeColor(n.Value), p.limits.MaxColorLen)
		res.Sets = append(res.Sets, store.CountrySet{
			ID:    store.DefaultSetID,
			Name:  store.DefaultSetName,
			Color: store.NormalizeColor(color),
		})
	}

	return res, nil
}

// decodeSingleDocument decodes text into exactly one top-level mapping.
func decodeSingleDocument(text string) (*yaml.Node, error) {
	dec := yaml.NewDecoder(strings.NewReader(text))

	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, rejectf(CodeEmpty, "document is empty")
		}
		return nil, rejectf(CodeMalformed, "invalid YAML: %v", err)
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, rejectf(CodeMultipleDocs, "expected exactly one document")
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) == 1 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, rejectf(CodeBadShape, "top level must be a mapping")
	}
	return root, nil
}

// extractMapName pulls the first present map-name key from the root.
func (p *Parser) extractMapName(root *yaml.Node, res *Result) {
	n := findKey(root, "mapName", "map", "title", "name")
	if n == nil || n.Kind != yaml.ScalarNode {
		return
	}
	name, cut := truncate(strings.TrimSpace(n.Value), p.limits.MaxNameLen)
	if cut {
		res.Warnings = append(res.Warnings, fmt.Sprintf("map name truncated to %d characters", p.limits.MaxNameLen))
	}
	res.MapName = name
}

// collectGroups classifies the sets node shape (sequence of group objects
// vs. name→body mapping) and dispatches to the matching extraction. Any
// other shape rejects the document.
func (p *Parser) collectGroups(setsNode *yaml.Node, res *Result) ([]groupDef, error) {
	var groups []groupDef

	addGroup := func(g groupDef) error {
		if strings.TrimSpace(g.name) == "" {
			res.Warnings = append(res.Warnings, "skipped a set with no name")
			return nil
		}
		groups = append(groups, g)
		if len(groups) > p.limits.MaxSets {
			return rejectf(CodeTooManySets, "document defines more than %d sets", p.limits.MaxSets)
		}
		return nil
	}

	switch setsNode.Kind {
	case yaml.SequenceNode:
		for _, item := range setsNode.Content {
			if item.Kind != yaml.MappingNode {
				res.Warnings = append(res.Warnings, "skipped a set entry that is not an object")
				continue
			}
			g := groupDef{
				name:  scalarValue(findKey(item, "name", "group")),
				color: scalarValue(findKey(item, "color", "colour")),
			}
			g.refs = p.refList(findKey(item, "countries", "country"), g.name, res)
			if err := addGroup(g); err != nil {
				return nil, err
			}
		}

	case yaml.MappingNode:
		for i := 0; i+1 < len(setsNode.Content); i += 2 {
			key, body := setsNode.Content[i], setsNode.Content[i+1]
			g := groupDef{name: scalarValue(key)}
			switch body.Kind {
			case yaml.MappingNode:
				g.color = scalarValue(findKey(body, "color", "colour"))
				g.refs = p.refList(findKey(body, "countries", "country"), g.name, res)
			default:
				// Shorthand: the body is the country list itself.
				g.refs = p.refList(body, g.name, res)
			}
			if err := addGroup(g); err != nil {
				return nil, err
			}
		}

	default:
		return nil, rejectf(CodeBadShape, "%q must be a list or a mapping of set definitions", "sets")
	}

	return groups, nil
}

// buildSets applies field ceilings and canonicalization, producing the
// final sets and assignments. Iteration follows document order, so a
// country referenced by several groups ends up in the last one.
func (p *Parser) buildSets(groups []groupDef, res *Result) error {
	totalRefs := 0
	for _, g := range groups {
		name, cut := truncate(strings.TrimSpace(g.name), p.limits.MaxNameLen)
		if cut {
			res.Warnings = append(res.Warnings, fmt.Sprintf("set name %q truncated to %d characters", name, p.limits.MaxNameLen))
		}
		color, cut := truncate(sanitizeColor(g.color), p.limits.MaxColorLen)
		if cut {
			res.Warnings = append(res.Warnings, fmt.Sprintf("color of set %q truncated to %d characters", name, p.limits.MaxColorLen))
		}

		set := store.CountrySet{
			ID:    uuid.NewString(),
			Name:  name,
			Color: store.NormalizeColor(color),
		}
		res.Sets = append(res.Sets, set)

		for _, ref := range g.refs {
			totalRefs++
			if totalRefs > p.limits.MaxCountryRefs {
				return rejectf(CodeTooManyRefs, "document references more than %d countries", p.limits.MaxCountryRefs)
			}
			code, ok := Canonicalize(ref, p.catalog)
			if !ok {
				res.Warnings = append(res.Warnings, fmt.Sprintf("unknown country %q in set %q", ref, name))
				continue
			}
			res.Assignments[code] = set.ID
		}
	}
	return nil
}

// refList extracts raw country references from a countries node: either a
// sequence of scalars or a single comma-separated scalar.
func (p *Parser) refList(node *yaml.Node, setName string, res *Result) []string {
	if node == nil {
		return nil
	}
	var refs []string
	appendRef := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			refs = append(refs, s)
		}
	}

	switch node.Kind {
	case yaml.SequenceNode:
		for _, item := range node.Content {
			if item.Kind == yaml.ScalarNode {
				appendRef(item.Value)
			}
		}
	case yaml.ScalarNode:
		for _, part := range strings.Split(node.Value, ",") {
			appendRef(part)
		}
	default:
		res.Warnings = append(res.Warnings, fmt.Sprintf("set %q: countries must be a list or a string", setName))
	}
	return refs
}

// findKey returns the value node for the first matching key of a mapping.
// Key comparison is case-insensitive.
func findKey(m *yaml.Node, keys ...string) *yaml.Node {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for _, want := range keys {
		for i := 0; i+1 < len(m.Content); i += 2 {
			k := m.Content[i]
			if k.Kind == yaml.ScalarNode && strings.EqualFold(k.Value, want) {
				return m.Content[i+1]
			}
		}
	}
	return nil
}

// scalarValue returns a scalar node's value, or "" for anything else.
func scalarValue(n *yaml.Node) string {
	if n == nil || n.Kind != yaml.ScalarNode {
		return ""
	}
	return n.Value
}
