package export

import (
	"testing"

	"github.com/mapknit/mapknit/internal/catalog"
	"github.com/mapknit/mapknit/internal/importer"
	"github.com/mapknit/mapknit/internal/store"
)

const testMap = `<svg>
  <path id="fr" title="France"/>
  <path id="de" title="Germany"/>
  <path id="it" title="Italy"/>
  <path id="jp" title="Japan"/>
</svg>`

func newCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.LoadFromDocument([]byte(testMap))
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return cat
}

func TestBuild(t *testing.T) {
	cat := newCatalog(t)
	s := store.New(cat)
	s.SetMapName("Test Map")
	s.UpdateSet(store.DefaultSetID, "", "#050505")

	europe, _ := s.AddSet("Europe", "#ff0000")
	s.AssignCountryToSet("FR", europe.ID)
	s.AssignCountryToSet("DE", europe.ID)

	doc := Build(s)

	if doc.MapName != "Test Map" {
		t.Errorf("MapName = %q", doc.MapName)
	}
	if doc.NoDataColor != "#050505" {
		t.Errorf("NoDataColor = %q, want #050505", doc.NoDataColor)
	}
	if len(doc.Sets) != 1 {
		t.Fatalf("exported %d sets, want 1 (default excluded)", len(doc.Sets))
	}
	got := doc.Sets[0]
	if got.Name != "Europe" || got.Color != "#ff0000" {
		t.Errorf("set = %+v", got)
	}
	if len(got.Countries) != 2 || got.Countries[0] != "DE" || got.Countries[1] != "FR" {
		t.Errorf("Countries = %v, want sorted [DE FR]", got.Countries)
	}
}

func TestRoundTrip(t *testing.T) {
	cat := newCatalog(t)

	src := store.New(cat)
	src.SetMapName("Round Trip")
	europe, _ := src.AddSet("Europe", "#ff0000")
	asia, _ := src.AddSet("Asia", "#00ff00")
	src.AssignCountryToSet("FR", europe.ID)
	src.AssignCountryToSet("DE", europe.ID)
	src.AssignCountryToSet("JP", asia.ID)

	raw, err := Marshal(Build(src))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	res, err := importer.NewParser(cat, importer.DefaultLimits()).Parse(raw)
	if err != nil {
		t.Fatalf("re-import failed: %v\ndocument:\n%s", err, raw)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("re-import warnings: %v", res.Warnings)
	}

	dst := store.New(cat)
	dst.ReplaceAll(res.Sets, res.Assignments)
	dst.SetMapName(res.MapName)

	// Set identities differ across the trip; compare country -> set-name.
	nameByID := func(s *store.Store) map[string]string {
		out := make(map[string]string)
		for _, set := range s.GetSets() {
			out[set.ID] = set.Name
		}
		return out
	}
	srcNames, dstNames := nameByID(src), nameByID(dst)

	srcAssign := src.GetCountryAssignments()
	dstAssign := dst.GetCountryAssignments()
	if len(srcAssign) != len(dstAssign) {
		t.Fatalf("assignment snapshot sizes differ: %d vs %d", len(srcAssign), len(dstAssign))
	}
	for c, setID := range srcAssign {
		if srcNames[setID] != dstNames[dstAssign[c]] {
			t.Errorf("%s: %q before export, %q after re-import", c, srcNames[setID], dstNames[dstAssign[c]])
		}
	}

	if dst.MapName() != "Round Trip" {
		t.Errorf("map name after round trip = %q", dst.MapName())
	}
}
