// Package store is the single source of truth for country sets and
// country→set assignments during a session. It owns all mutation, enforces
// the referential invariants (the reserved default set always exists and
// cannot be removed; every explicit assignment points at a live set), and
// fans out synchronous change notifications to subscribers.
//
// Concurrency model: one exclusive critical section guards the set list and
// subscriber registry. The assignment map is a sync.Map, so UI-driven reads
// and writes stay lock-free; its contract with the set list is eventually
// consistent, with removal's cascade cleanup (run under the set lock) as the
// correcting step. Nothing here blocks on I/O and every method returns
// synchronously.
package store

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/mapknit/mapknit/internal/catalog"
)

const (
	// DefaultSetID is the reserved identity of the "No data" set. Absence
	// from the assignment map means membership in this set; the sentinel is
	// explicit so the invariant is checkable, the map never stores it.
	DefaultSetID = "default"

	// DefaultSetName is the immutable display name of the default set.
	DefaultSetName = "No data"
)

// ErrNameRequired is returned by AddSet when the name is blank.
var ErrNameRequired = errors.New("set name is required")

// CountrySet is a named, colored group of countries.
type CountrySet struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Store holds the session state. Create with New.
type Store struct {
	catalog *catalog.Catalog

	mu      sync.Mutex
	sets    []CountrySet // default set always at index 0
	mapName string
	subs    map[int]func()
	nextSub int

	// country ID -> set ID; never holds DefaultSetID values.
	assignments sync.Map
}

// New creates a store over the given immutable catalog, containing only the
// default set.
func New(cat *catalog.Catalog) *Store {
	return &Store{
		catalog: cat,
		sets:    []CountrySet{{ID: DefaultSetID, Name: DefaultSetName, Color: NeutralGray}},
		subs:    make(map[int]func()),
	}
}

// Subscribe registers a change-notification callback and returns its
// unsubscribe function. Notification is a synchronous fan-out after each
// successful mutation; callbacks must not re-enter the store.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// subscribersLocked snapshots the callback list; callers invoke it after
// releasing the lock so handlers never run inside the critical section.
func (s *Store) subscribersLocked() []func() {
	out := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}

func notify(subs []func()) {
	for _, fn := range subs {
		fn()
	}
}

// AddSet creates a new set with a fresh identity. A blank name is rejected
// with ErrNameRequired; everything else succeeds.
func (s *Store) AddSet(name, color string) (CountrySet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return CountrySet{}, ErrNameRequired
	}

	set := CountrySet{
		ID:    uuid.NewString(),
		Name:  name,
		Color: NormalizeColor(color),
	}

	s.mu.Lock()
	s.sets = append(s.sets, set)
	subs := s.subscribersLocked()
	s.mu.Unlock()

	notify(subs)
	return set, nil
}

// UpdateSet changes a set's name and color, returning the updated set.
// Unknown ids are a no-op reporting false. The default set's name is
// immutable: only its color updates.
func (s *Store) UpdateSet(id, name, color string) (CountrySet, bool) {
	name = strings.TrimSpace(name)

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return CountrySet{}, false
	}
	if id != DefaultSetID && name != "" {
		s.sets[idx].Name = name
	}
	s.sets[idx].Color = NormalizeColor(color)
	set := s.sets[idx]
	subs := s.subscribersLocked()
	s.mu.Unlock()

	notify(subs)
	return set, true
}

// RemoveSet deletes a set and cascades: every assignment pointing at it is
// dropped in the same critical section, reverting those countries to the
// default. Unknown ids and the default id are silent no-ops.
func (s *Store) RemoveSet(id string) {
	if id == DefaultSetID {
		return
	}

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.sets = append(s.sets[:idx], s.sets[idx+1:]...)
	s.assignments.Range(func(country, setID any) bool {
		if setID == id {
			s.assignments.Delete(country)
		}
		return true
	})
	subs := s.subscribersLocked()
	s.mu.Unlock()

	notify(subs)
}

// AssignCountryToSet assigns a country to a set. An empty setID or the
// default id removes the explicit assignment (absence is the default).
// A setID that matches no live set is a silent no-op without notification.
func (s *Store) AssignCountryToSet(countryID, setID string) {
	countryID = strings.ToUpper(strings.TrimSpace(countryID))
	if countryID == "" {
		return
	}

	s.mu.Lock()
	if setID != "" && setID != DefaultSetID && s.indexLocked(setID) < 0 {
		s.mu.Unlock()
		return
	}
	if setID == "" || setID == DefaultSetID {
		s.assignments.Delete(countryID)
	} else {
		s.assignments.Store(countryID, setID)
	}
	subs := s.subscribersLocked()
	s.mu.Unlock()

	notify(subs)
}

// GetSets returns a copy of the current sets, default set first.
func (s *Store) GetSets() []CountrySet {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CountrySet, len(s.sets))
	copy(out, s.sets)
	return out
}

// GetSet returns the set with the given id.
func (s *Store) GetSet(id string) (CountrySet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexLocked(id); idx >= 0 {
		return s.sets[idx], true
	}
	return CountrySet{}, false
}

// GetAssignedSetID returns the set a country belongs to, synthesizing the
// default for countries with no explicit assignment or whose assigned set
// no longer exists.
func (s *Store) GetAssignedSetID(countryID string) string {
	countryID = strings.ToUpper(strings.TrimSpace(countryID))
	v, ok := s.assignments.Load(countryID)
	if !ok {
		return DefaultSetID
	}
	setID := v.(string)
	if _, live := s.GetSet(setID); !live {
		return DefaultSetID
	}
	return setID
}

// GetCountryAssignments returns a complete snapshot covering every catalog
// ID; countries without an explicit live assignment map to the default id.
func (s *Store) GetCountryAssignments() map[string]string {
	live := s.liveSetIDs()
	out := make(map[string]string, s.catalog.Len())
	for _, id := range s.catalog.IDs() {
		out[id] = DefaultSetID
		if v, ok := s.assignments.Load(id); ok {
			if setID := v.(string); live[setID] {
				out[id] = setID
			}
		}
	}
	return out
}

// GetCountryColorsById returns the rendering map: every catalog ID gets the
// default set's color, overridden by explicit assignments whose set exists.
func (s *Store) GetCountryColorsById() map[string]string {
	s.mu.Lock()
	colors := make(map[string]string, len(s.sets))
	for _, set := range s.sets {
		colors[set.ID] = set.Color
	}
	defaultColor := s.sets[0].Color
	s.mu.Unlock()

	out := make(map[string]string, s.catalog.Len())
	for _, id := range s.catalog.IDs() {
		out[id] = defaultColor
		if v, ok := s.assignments.Load(id); ok {
			if c, live := colors[v.(string)]; live {
				out[id] = c
			}
		}
	}
	return out
}

// MapName returns the current map title.
func (s *Store) MapName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mapName
}

// SetMapName updates the map title.
func (s *Store) SetMapName(name string) {
	s.mu.Lock()
	s.mapName = strings.TrimSpace(name)
	subs := s.subscribersLocked()
	s.mu.Unlock()

	notify(subs)
}

// ReplaceAll atomically installs an imported session: the set list and the
// assignment map are replaced inside one critical section so no observer
// sees sets without their assignments.
//
// Any incoming set literally named "No data" (case-insensitive), or whose
// id coincides with the reserved default id, is folded into the permanent
// default set: its color becomes the default's color (last one wins) and
// its identity disappears. This intentionally merges a user set that merely
// happens to be called "No data" into the default; surprising, but it is
// the established behavior and changing it needs product guidance.
//
// All other incoming sets keep their identities (minting one only when
// blank) with their colors re-normalized. Assignments naming a folded id
// are rewritten to the default and therefore dropped (the default is
// implicit); assignments naming an id not in the new set list are dropped
// silently.
func (s *Store) ReplaceAll(sets []CountrySet, assignments map[string]string) {
	s.mu.Lock()

	defaultColor := s.sets[0].Color
	folded := map[string]bool{DefaultSetID: true}
	next := make([]CountrySet, 0, len(sets)+1)
	live := make(map[string]bool, len(sets))

	for _, in := range sets {
		if strings.EqualFold(strings.TrimSpace(in.Name), DefaultSetName) || in.ID == DefaultSetID {
			defaultColor = NormalizeColor(in.Color)
			if in.ID != "" {
				folded[in.ID] = true
			}
			continue
		}
		id := in.ID
		if id == "" {
			id = uuid.NewString()
		}
		set := CountrySet{ID: id, Name: in.Name, Color: NormalizeColor(in.Color)}
		next = append(next, set)
		live[id] = true
	}

	s.sets = append([]CountrySet{{ID: DefaultSetID, Name: DefaultSetName, Color: defaultColor}}, next...)

	s.assignments.Range(func(country, _ any) bool {
		s.assignments.Delete(country)
		return true
	})
	for country, setID := range assignments {
		if folded[setID] || !live[setID] {
			continue
		}
		s.assignments.Store(strings.ToUpper(strings.TrimSpace(country)), setID)
	}

	subs := s.subscribersLocked()
	s.mu.Unlock()

	notify(subs)
}

// Reset restores the initial session state: only the default set, no
// explicit assignments, no map name.
func (s *Store) Reset() {
	s.mu.Lock()
	s.sets = []CountrySet{{ID: DefaultSetID, Name: DefaultSetName, Color: NeutralGray}}
	s.mapName = ""
	s.assignments.Range(func(country, _ any) bool {
		s.assignments.Delete(country)
		return true
	})
	subs := s.subscribersLocked()
	s.mu.Unlock()

	notify(subs)
}

// indexLocked returns the index of a set by id, or -1. Caller holds mu.
func (s *Store) indexLocked(id string) int {
	for i := range s.sets {
		if s.sets[i].ID == id {
			return i
		}
	}
	return -1
}

// liveSetIDs snapshots the current set identities.
func (s *Store) liveSetIDs() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]bool, len(s.sets))
	for _, set := range s.sets {
		out[set.ID] = true
	}
	return out
}

// Members returns the explicitly assigned countries of each non-default
// set, sorted, keyed by set ID. Used by the export flow; default membership
// is implicit and never listed.
func (s *Store) Members() map[string][]string {
	live := s.liveSetIDs()
	out := make(map[string][]string)
	s.assignments.Range(func(country, setID any) bool {
		id := setID.(string)
		if live[id] {
			out[id] = append(out[id], country.(string))
		}
		return true
	})
	for id := range out {
		sort.Strings(out[id])
	}
	return out
}
