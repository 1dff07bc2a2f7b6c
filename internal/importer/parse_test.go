package importer

import (
	"errors"
	"strings"
	"testing"

	"github.com/mapknit/mapknit/internal/catalog"
	"github.com/mapknit/mapknit/internal/store"
)

const parserMap = `<svg>
  <path id="fr" title="France"/>
  <path id="de" title="Germany"/>
  <path id="it" title="Italy"/>
  <path id="es" title="Spain"/>
  <path id="jp" title="Japan"/>
  <path id="cn" title="China"/>
</svg>`

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	cat, err := catalog.LoadFromDocument([]byte(parserMap))
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return NewParser(cat, DefaultLimits())
}

func mustParse(t *testing.T, p *Parser, doc string) *Result {
	t.Helper()
	res, err := p.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return res
}

func rejectionCode(t *testing.T, p *Parser, doc string) string {
	t.Helper()
	_, err := p.Parse([]byte(doc))
	if err == nil {
		t.Fatal("Parse succeeded, want rejection")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error is %T, want *ParseError", err)
	}
	return pe.Code
}

func TestParse_SequenceForm(t *testing.T) {
	p := newTestParser(t)
	res := mustParse(t, p, `
mapName: World Domination
sets:
  - name: Europe
    color: "#ff0000"
    countries: [France, de, Italy]
  - name: Asia
    colour: 00ff00
    countries: "Japan, China"
`)

	if res.MapName != "World Domination" {
		t.Errorf("MapName = %q", res.MapName)
	}
	if len(res.Sets) != 2 {
		t.Fatalf("got %d sets, want 2", len(res.Sets))
	}
	if res.Sets[0].Name != "Europe" || res.Sets[0].Color != "#ff0000" {
		t.Errorf("set 0 = %+v", res.Sets[0])
	}
	if res.Sets[1].Color != "#00ff00" {
		t.Errorf("bare hex not normalized: %q", res.Sets[1].Color)
	}

	wantAssignments := map[string]string{
		"FR": res.Sets[0].ID,
		"DE": res.Sets[0].ID,
		"IT": res.Sets[0].ID,
		"JP": res.Sets[1].ID,
		"CN": res.Sets[1].ID,
	}
	for c, want := range wantAssignments {
		if got := res.Assignments[c]; got != want {
			t.Errorf("Assignments[%s] = %q, want %q", c, got, want)
		}
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
}

func TestParse_MappingForm(t *testing.T) {
	p := newTestParser(t)
	res := mustParse(t, p, `
title: Regions
groups:
  Europe:
    color: blue
    countries:
      - France
      - Germany
  Asia: [Japan, China]
  Solo: Italy
`)

	if res.MapName != "Regions" {
		t.Errorf("MapName = %q", res.MapName)
	}
	if len(res.Sets) != 3 {
		t.Fatalf("got %d sets, want 3: %+v", len(res.Sets), res.Sets)
	}
	if res.Sets[0].Color != "blue" {
		t.Errorf("named color did not pass through: %q", res.Sets[0].Color)
	}
	if res.Assignments["IT"] != res.Sets[2].ID {
		t.Errorf("shorthand scalar body not parsed: %v", res.Assignments)
	}
}

func TestParse_LastOccurrenceWins(t *testing.T) {
	p := newTestParser(t)
	res := mustParse(t, p, `
sets:
  - name: Europe
    countries: [France, Japan]
  - name: Asia
    countries: [Japan]
`)

	// Japan appears under Europe first and Asia later: Asia wins.
	asia := res.Sets[1]
	if asia.Name != "Asia" {
		t.Fatalf("set order unexpected: %+v", res.Sets)
	}
	if got := res.Assignments["JP"]; got != asia.ID {
		t.Errorf("Assignments[JP] = %q, want Asia (%q)", got, asia.ID)
	}
}

func TestParse_UnresolvableIsWarning(t *testing.T) {
	p := newTestParser(t)
	res := mustParse(t, p, `
sets:
  - name: Europe
    countries: [France, Atlantis]
`)

	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "Atlantis") {
		t.Errorf("Warnings = %v, want one mentioning Atlantis", res.Warnings)
	}
	if _, ok := res.Assignments["FR"]; !ok {
		t.Error("valid reference was dropped alongside the bad one")
	}
}

func TestParse_BlankNameSkippedWithWarning(t *testing.T) {
	p := newTestParser(t)
	res := mustParse(t, p, `
sets:
  - name: "  "
    countries: [France]
  - name: Europe
    countries: [Germany]
`)

	if len(res.Sets) != 1 || res.Sets[0].Name != "Europe" {
		t.Errorf("Sets = %+v, want only Europe", res.Sets)
	}
	if len(res.Warnings) == 0 {
		t.Error("no warning for skipped nameless set")
	}
}

func TestParse_NameTruncation(t *testing.T) {
	p := newTestParser(t)
	long := strings.Repeat("x", 100)
	res := mustParse(t, p, "sets:\n  - name: "+long+"\n    countries: [France]\n")

	if got := len(res.Sets[0].Name); got != DefaultLimits().MaxNameLen {
		t.Errorf("set name length = %d, want %d", got, DefaultLimits().MaxNameLen)
	}
	if len(res.Warnings) == 0 {
		t.Error("truncation emitted no warning")
	}
}

func TestParse_ColorSanitized(t *testing.T) {
	p := newTestParser(t)
	res := mustParse(t, p, `
sets:
  - name: Europe
    color: "red;background:url(evil)"
    countries: [France]
`)

	if strings.Contains(res.Sets[0].Color, ";") {
		t.Errorf("semicolon survived sanitization: %q", res.Sets[0].Color)
	}
}

func TestParse_NoDataColor(t *testing.T) {
	p := newTestParser(t)
	res := mustParse(t, p, `
noDataColor: "#101010"
sets:
  - name: Europe
    countries: [France]
`)

	last := res.Sets[len(res.Sets)-1]
	if last.ID != store.DefaultSetID || last.Color != "#101010" {
		t.Errorf("noDataColor set = %+v", last)
	}
}

func TestParse_Rejections(t *testing.T) {
	p := newTestParser(t)

	tests := []struct {
		name string
		doc  string
		code string
	}{
		{"empty", "", CodeEmpty},
		{"whitespace", "   \n\t  ", CodeEmpty},
		{"comment only", "# nothing here\n", CodeEmpty},
		{"anchor", "sets: &a\n  - name: X\n    countries: [fr]\n", CodeUnsafeSyntax},
		{"anchor after plain-scalar apostrophe", "mapName: don't panic\nbig: &x [fr, fr]\nsets:\n  Europe: *x\n", CodeUnsafeSyntax},
		{"malformed", "sets: [unclosed\n", CodeMalformed},
		{"scalar root", "just a string\n", CodeBadShape},
		{"sequence root", "- a\n- b\n", CodeBadShape},
		{"missing sets", "mapName: X\n", CodeBadShape},
		{"sets is scalar", "sets: nope\n", CodeBadShape},
		{"multiple documents", "sets:\n  - name: A\n    countries: [fr]\n---\nsets: {}\n", CodeMultipleDocs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rejectionCode(t, p, tt.doc); got != tt.code {
				t.Errorf("rejection code = %s, want %s", got, tt.code)
			}
		})
	}
}

func TestParse_TooLarge(t *testing.T) {
	cat, _ := catalog.LoadFromDocument([]byte(parserMap))
	limits := DefaultLimits()
	limits.MaxDocumentBytes = 64
	p := NewParser(cat, limits)

	doc := "sets:\n  - name: " + strings.Repeat("x", 100) + "\n"
	if got := rejectionCode(t, p, doc); got != CodeTooLarge {
		t.Errorf("rejection code = %s, want %s", got, CodeTooLarge)
	}
}

func TestParse_TooManySets(t *testing.T) {
	cat, _ := catalog.LoadFromDocument([]byte(parserMap))
	limits := DefaultLimits()
	limits.MaxSets = 2
	p := NewParser(cat, limits)

	doc := `
sets:
  - name: A
  - name: B
  - name: C
`
	if got := rejectionCode(t, p, doc); got != CodeTooManySets {
		t.Errorf("rejection code = %s, want %s", got, CodeTooManySets)
	}
}

func TestParse_TooManyCountryRefs(t *testing.T) {
	cat, _ := catalog.LoadFromDocument([]byte(parserMap))
	limits := DefaultLimits()
	limits.MaxCountryRefs = 3
	p := NewParser(cat, limits)

	doc := `
sets:
  - name: A
    countries: [fr, de]
  - name: B
    countries: [it, es]
`
	if got := rejectionCode(t, p, doc); got != CodeTooManyRefs {
		t.Errorf("rejection code = %s, want %s", got, CodeTooManyRefs)
	}
}

func TestParse_Idempotent(t *testing.T) {
	p := newTestParser(t)
	doc := `
sets:
  - name: Europe
    countries: [France, Germany]
  - name: Asia
    countries: [Japan]
`
	first := mustParse(t, p, doc)
	second := mustParse(t, p, doc)

	if len(first.Assignments) != len(second.Assignments) {
		t.Fatalf("assignment counts differ: %d vs %d", len(first.Assignments), len(second.Assignments))
	}
	// Set identities are freshly minted per parse; compare by set name.
	nameOf := func(res *Result, id string) string {
		for _, s := range res.Sets {
			if s.ID == id {
				return s.Name
			}
		}
		return ""
	}
	for c, id := range first.Assignments {
		if nameOf(first, id) != nameOf(second, second.Assignments[c]) {
			t.Errorf("country %s landed in different sets across parses", c)
		}
	}
}
