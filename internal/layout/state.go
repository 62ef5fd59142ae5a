package layout

import (
	"github.com/google/uuid"

	"github.com/jask/moneyboard/internal/catalog"
)

// Instance is one placed widget: a catalog kind plus the unique id that
// joins geometry entries to rendered content. Ids are never reused and
// never derived from the kind; several instances may share a kind.
type Instance struct {
	ID   string
	Kind string
}

// Entry is one instance's geometry within a single breakpoint.
type Entry struct {
	InstanceID string
	X          int
	Y          int
	W          int
	H          int
	MinW       int
	MinH       int
}

// State is the persisted structural unit: the instance set plus geometry
// per breakpoint name.
type State struct {
	Widgets []Instance
	Layouts map[string][]Entry
}

// NewInstanceID returns a fresh unique instance id.
func NewInstanceID() string {
	return uuid.NewString()
}

// HasInstance reports whether id is a live instance.
func (s *State) HasInstance(id string) bool {
	for _, w := range s.Widgets {
		if w.ID == id {
			return true
		}
	}
	return false
}

// HasKind reports whether any live instance has the given kind.
func (s *State) HasKind(kind string) bool {
	for _, w := range s.Widgets {
		if w.Kind == kind {
			return true
		}
	}
	return false
}

// KindOf returns the kind for an instance id.
func (s *State) KindOf(id string) (string, bool) {
	for _, w := range s.Widgets {
		if w.ID == id {
			return w.Kind, true
		}
	}
	return "", false
}

// SetBreakpointGeometry replaces one breakpoint's entries with the
// reported set, dropping any entry whose id does not resolve to a live
// instance. Other breakpoints are untouched. Idempotent.
func (s *State) SetBreakpointGeometry(breakpoint string, entries []Entry) {
	if s.Layouts == nil {
		s.Layouts = make(map[string][]Entry)
	}
	kept := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if s.HasInstance(e.InstanceID) {
			kept = append(kept, e)
		}
	}
	s.Layouts[breakpoint] = kept
}

// BottomY returns the lowest occupied row edge (max y+h) of a breakpoint's
// entries; new widgets append below it so no placed widget is overlapped.
func BottomY(entries []Entry) int {
	bottom := 0
	for _, e := range entries {
		if edge := e.Y + e.H; edge > bottom {
			bottom = edge
		}
	}
	return bottom
}

// EntryFor builds the geometry entry placing def's default footprint at
// the bottom of a column-count-constrained breakpoint.
func EntryFor(id string, def catalog.Definition, cols, y int) Entry {
	w := def.Geometry.W
	if w > cols {
		w = cols
	}
	minW := def.Geometry.MinW
	if minW > cols {
		minW = cols
	}
	return Entry{
		InstanceID: id,
		X:          0,
		Y:          y,
		W:          w,
		H:          def.Geometry.H,
		MinW:       minW,
		MinH:       def.Geometry.MinH,
	}
}

// DefaultState generates the starter dashboard: the fixed starter kinds
// stacked in a single column per breakpoint.
func DefaultState(cat *catalog.Catalog) State {
	st := State{Layouts: make(map[string][]Entry)}
	for _, kind := range catalog.StarterKinds() {
		def, ok := cat.Lookup(kind)
		if !ok {
			continue
		}
		inst := Instance{ID: NewInstanceID(), Kind: def.Kind}
		st.Widgets = append(st.Widgets, inst)
		for _, bp := range Breakpoints {
			st.Layouts[bp.Name] = append(st.Layouts[bp.Name], EntryFor(inst.ID, def, bp.Cols, BottomY(st.Layouts[bp.Name])))
		}
	}
	return st
}

// sanitize discards the invalid parts of a loaded state: instances whose
// kind is not in the catalog, geometry referencing dead instances, and
// stale breakpoint names. Tiers the saving client never knew about are
// backfilled with default geometry so every live instance has an entry
// in every known breakpoint. The surviving state always satisfies the
// referential-integrity invariant.
func sanitize(st State, cat *catalog.Catalog) State {
	out := State{Layouts: make(map[string][]Entry)}
	for _, w := range st.Widgets {
		if _, ok := cat.Lookup(w.Kind); ok {
			out.Widgets = append(out.Widgets, w)
		}
	}
	for name, entries := range st.Layouts {
		if !KnownBreakpoint(name) {
			continue
		}
		kept := make([]Entry, 0, len(entries))
		for _, e := range entries {
			if out.HasInstance(e.InstanceID) {
				kept = append(kept, e)
			}
		}
		out.Layouts[name] = kept
	}
	for _, bp := range Breakpoints {
		entries := out.Layouts[bp.Name]
		for _, w := range out.Widgets {
			if hasEntry(entries, w.ID) {
				continue
			}
			def, ok := cat.Lookup(w.Kind)
			if !ok {
				continue
			}
			entries = append(entries, EntryFor(w.ID, def, bp.Cols, BottomY(entries)))
		}
		out.Layouts[bp.Name] = entries
	}
	return out
}

func hasEntry(entries []Entry, id string) bool {
	for _, e := range entries {
		if e.InstanceID == id {
			return true
		}
	}
	return false
}
