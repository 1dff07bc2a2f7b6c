package store

import (
	"testing"

	"github.com/mapknit/mapknit/internal/catalog"
)

const testMap = `<svg>
  <path id="fr" title="France"/>
  <path id="de" title="Germany"/>
  <path id="it" title="Italy"/>
  <path id="es" title="Spain"/>
</svg>`

func newTestStore(t *testing.T) *Store {
	t.Helper()
	cat, err := catalog.LoadFromDocument([]byte(testMap))
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return New(cat)
}

func TestNew_DefaultSetOnly(t *testing.T) {
	s := newTestStore(t)

	sets := s.GetSets()
	if len(sets) != 1 {
		t.Fatalf("GetSets() returned %d sets, want 1", len(sets))
	}
	if sets[0].ID != DefaultSetID || sets[0].Name != DefaultSetName || sets[0].Color != NeutralGray {
		t.Errorf("default set = %+v", sets[0])
	}
}

func TestAddSet(t *testing.T) {
	s := newTestStore(t)

	set, err := s.AddSet("Europe", "f00")
	if err != nil {
		t.Fatalf("AddSet: %v", err)
	}
	if set.ID == "" || set.ID == DefaultSetID {
		t.Errorf("AddSet minted bad id %q", set.ID)
	}
	if set.Color != "#f00" {
		t.Errorf("AddSet color = %q, want #f00", set.Color)
	}

	if _, err := s.AddSet("   ", "#fff"); err != ErrNameRequired {
		t.Errorf("AddSet(blank) err = %v, want ErrNameRequired", err)
	}
}

func TestUpdateSet_DefaultNameImmutable(t *testing.T) {
	s := newTestStore(t)

	def, ok := s.UpdateSet(DefaultSetID, "Renamed", "#123456")
	if !ok {
		t.Fatal("UpdateSet(default) reported not found")
	}
	if def.Name != DefaultSetName {
		t.Errorf("default set name = %q, want %q", def.Name, DefaultSetName)
	}
	if def.Color != "#123456" {
		t.Errorf("default set color = %q, want #123456", def.Color)
	}
}

func TestUpdateSet_ReturnsUpdatedSet(t *testing.T) {
	s := newTestStore(t)
	set, _ := s.AddSet("Europe", "#ff0000")

	got, ok := s.UpdateSet(set.ID, "Asia", "00f")
	if !ok {
		t.Fatal("UpdateSet reported not found for a live set")
	}
	if got.Name != "Asia" || got.Color != "#00f" {
		t.Errorf("UpdateSet returned %+v, want name Asia, color #00f", got)
	}
}

func TestUpdateSet_UnknownIsNoOp(t *testing.T) {
	s := newTestStore(t)
	fired := 0
	defer s.Subscribe(func() { fired++ })()

	if _, ok := s.UpdateSet("no-such-id", "X", "#fff"); ok {
		t.Error("UpdateSet(unknown) reported success")
	}
	if fired != 0 {
		t.Errorf("notification fired %d times for unknown id, want 0", fired)
	}
}

func TestUpdateSet_RemovedSetReportsNotFound(t *testing.T) {
	s := newTestStore(t)
	set, _ := s.AddSet("Europe", "#ff0000")
	s.RemoveSet(set.ID)

	got, ok := s.UpdateSet(set.ID, "Asia", "#00f")
	if ok {
		t.Error("UpdateSet on a removed set reported success")
	}
	if got != (CountrySet{}) {
		t.Errorf("UpdateSet on a removed set returned %+v, want zero value", got)
	}
}

func TestRemoveSet_CascadesToDefault(t *testing.T) {
	s := newTestStore(t)
	set, _ := s.AddSet("Europe", "#ff0000")
	s.AssignCountryToSet("FR", set.ID)
	s.AssignCountryToSet("DE", set.ID)

	s.RemoveSet(set.ID)

	if _, ok := s.GetSet(set.ID); ok {
		t.Fatal("removed set still present")
	}
	for _, c := range []string{"FR", "DE"} {
		if got := s.GetAssignedSetID(c); got != DefaultSetID {
			t.Errorf("GetAssignedSetID(%s) = %q, want default", c, got)
		}
	}
}

func TestRemoveSet_DefaultProtected(t *testing.T) {
	s := newTestStore(t)

	s.RemoveSet(DefaultSetID)

	if _, ok := s.GetSet(DefaultSetID); !ok {
		t.Fatal("default set was removed")
	}
}

func TestAssignCountryToSet(t *testing.T) {
	s := newTestStore(t)
	set, _ := s.AddSet("Europe", "#ff0000")

	s.AssignCountryToSet(" fr ", set.ID)
	if got := s.GetAssignedSetID("FR"); got != set.ID {
		t.Errorf("GetAssignedSetID(FR) = %q, want %q", got, set.ID)
	}

	// Assigning to the default id removes the explicit assignment.
	s.AssignCountryToSet("FR", DefaultSetID)
	if got := s.GetAssignedSetID("FR"); got != DefaultSetID {
		t.Errorf("after default assign, GetAssignedSetID(FR) = %q", got)
	}

	// Empty set id behaves the same.
	s.AssignCountryToSet("DE", set.ID)
	s.AssignCountryToSet("DE", "")
	if got := s.GetAssignedSetID("DE"); got != DefaultSetID {
		t.Errorf("after empty assign, GetAssignedSetID(DE) = %q", got)
	}
}

func TestAssignCountryToSet_UnknownSetSilent(t *testing.T) {
	s := newTestStore(t)
	set, _ := s.AddSet("Europe", "#ff0000")
	s.AssignCountryToSet("FR", set.ID)

	fired := 0
	defer s.Subscribe(func() { fired++ })()

	s.AssignCountryToSet("FR", "no-such-set")

	if fired != 0 {
		t.Errorf("unknown set id fired %d notifications, want 0", fired)
	}
	if got := s.GetAssignedSetID("FR"); got != set.ID {
		t.Errorf("unknown set id changed assignment to %q", got)
	}
}

func TestGetCountryAssignments_SynthesizesDefault(t *testing.T) {
	s := newTestStore(t)
	set, _ := s.AddSet("Europe", "#ff0000")
	s.AssignCountryToSet("FR", set.ID)

	got := s.GetCountryAssignments()
	if len(got) != 4 {
		t.Fatalf("snapshot has %d entries, want 4 (one per catalog id)", len(got))
	}
	if got["FR"] != set.ID {
		t.Errorf("FR = %q, want %q", got["FR"], set.ID)
	}
	for _, c := range []string{"DE", "IT", "ES"} {
		if got[c] != DefaultSetID {
			t.Errorf("%s = %q, want default", c, got[c])
		}
	}
}

func TestGetCountryColorsById(t *testing.T) {
	s := newTestStore(t)
	set, _ := s.AddSet("Europe", "#ff0000")
	s.AssignCountryToSet("FR", set.ID)

	colors := s.GetCountryColorsById()
	if colors["FR"] != "#ff0000" {
		t.Errorf("FR color = %q, want #ff0000", colors["FR"])
	}
	if colors["DE"] != NeutralGray {
		t.Errorf("DE color = %q, want default gray", colors["DE"])
	}
}

func TestReplaceAll(t *testing.T) {
	s := newTestStore(t)
	old, _ := s.AddSet("Old", "#111111")
	s.AssignCountryToSet("ES", old.ID)

	sets := []CountrySet{
		{ID: "s1", Name: "Europe", Color: "00ff00"},
		{ID: "s2", Name: "Asia", Color: "#0000ff"},
	}
	assignments := map[string]string{
		"FR": "s1",
		"DE": "s1",
		"IT": "s2",
		"ES": "ghost", // not in the new set list: dropped
	}

	s.ReplaceAll(sets, assignments)

	got := s.GetSets()
	if len(got) != 3 {
		t.Fatalf("GetSets() = %d sets, want 3 (default + 2)", len(got))
	}
	if got[0].ID != DefaultSetID {
		t.Errorf("first set = %q, want default", got[0].ID)
	}
	if got[1].Color != "#00ff00" {
		t.Errorf("imported color not re-normalized: %q", got[1].Color)
	}

	snap := s.GetCountryAssignments()
	if snap["FR"] != "s1" || snap["IT"] != "s2" {
		t.Errorf("assignments not installed: %v", snap)
	}
	if snap["ES"] != DefaultSetID {
		t.Errorf("dangling assignment survived: ES = %q", snap["ES"])
	}
}

func TestReplaceAll_FoldsNoDataGroups(t *testing.T) {
	s := newTestStore(t)

	sets := []CountrySet{
		{ID: "a", Name: "no data", Color: "#222222"},
		{ID: "b", Name: "Europe", Color: "#ff0000"},
		{ID: "c", Name: "NO DATA", Color: "#333333"},
	}
	assignments := map[string]string{
		"FR": "a", // folded id: drops to implicit default
		"DE": "b",
		"IT": "c", // folded id
	}

	s.ReplaceAll(sets, assignments)

	got := s.GetSets()
	if len(got) != 2 {
		t.Fatalf("GetSets() = %d sets, want 2", len(got))
	}
	// Last "No data" color wins.
	if got[0].ID != DefaultSetID || got[0].Color != "#333333" {
		t.Errorf("default after fold = %+v, want color #333333", got[0])
	}
	if got[0].Name != DefaultSetName {
		t.Errorf("default name = %q, want %q", got[0].Name, DefaultSetName)
	}

	snap := s.GetCountryAssignments()
	if snap["FR"] != DefaultSetID || snap["IT"] != DefaultSetID {
		t.Errorf("folded assignments not dropped: %v", snap)
	}
	if snap["DE"] != "b" {
		t.Errorf("DE = %q, want b", snap["DE"])
	}
}

func TestReset(t *testing.T) {
	s := newTestStore(t)
	set, _ := s.AddSet("Europe", "#ff0000")
	s.AssignCountryToSet("FR", set.ID)
	s.SetMapName("My Map")

	s.Reset()

	if len(s.GetSets()) != 1 {
		t.Error("Reset did not drop custom sets")
	}
	if got := s.GetAssignedSetID("FR"); got != DefaultSetID {
		t.Errorf("Reset left FR assigned to %q", got)
	}
	if s.MapName() != "" {
		t.Errorf("Reset left map name %q", s.MapName())
	}
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	s := newTestStore(t)

	fired := 0
	cancel := s.Subscribe(func() { fired++ })

	s.AddSet("A", "")
	if fired != 1 {
		t.Fatalf("fired = %d after AddSet, want 1", fired)
	}

	cancel()
	s.AddSet("B", "")
	if fired != 1 {
		t.Errorf("fired = %d after unsubscribe, want 1", fired)
	}
}

func TestMembers(t *testing.T) {
	s := newTestStore(t)
	set, _ := s.AddSet("Europe", "#ff0000")
	s.AssignCountryToSet("DE", set.ID)
	s.AssignCountryToSet("FR", set.ID)

	members := s.Members()
	got := members[set.ID]
	if len(got) != 2 || got[0] != "DE" || got[1] != "FR" {
		t.Errorf("Members() = %v, want [DE FR]", got)
	}
}

func TestNormalizeColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", NeutralGray},
		{"   ", NeutralGray},
		{"f00", "#f00"},
		{"ff0000", "#ff0000"},
		{"#f00", "#f00"},
		{"#ff0000", "#ff0000"},
		{"#ggg", NeutralGray},
		{"#zzzzzz", NeutralGray},
		{"red", "red"},
		{"rgb(1,2,3)", "rgb(1,2,3)"},
		{"not-hex", "not-hex"},
	}
	for _, tt := range tests {
		if got := NormalizeColor(tt.in); got != tt.want {
			t.Errorf("NormalizeColor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
