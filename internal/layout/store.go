package layout

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jask/moneyboard/internal/catalog"
	"github.com/jask/moneyboard/internal/kv"
)

// StorageKey is the versioned key the dashboard state persists under.
const StorageKey = "dynamicDashboardLayout_v2"

// Store loads and saves DashboardState through the injected key-value
// capability, repairing whatever it can on the way in. Load never fails:
// corrupt or missing state falls back to the generated default dashboard.
type Store struct {
	kv  kv.Store
	cat *catalog.Catalog
}

// NewStore builds a layout store over the given kv backend and catalog.
func NewStore(store kv.Store, cat *catalog.Catalog) *Store {
	return &Store{kv: store, cat: cat}
}

// persisted wire shape. Geometry entries use the grid surface's key names
// so a saved record is portable across clients.
type persistedInstance struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

type persistedEntry struct {
	I    string `json:"i"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	W    int    `json:"w"`
	H    int    `json:"h"`
	MinW int    `json:"minW,omitempty"`
	MinH int    `json:"minH,omitempty"`
}

type persistedState struct {
	Widgets []persistedInstance         `json:"widgets"`
	Layouts map[string][]persistedEntry `json:"layouts"`
}

// Load hydrates the dashboard state. Malformed JSON, unknown widget
// kinds, and dangling geometry are discarded rather than surfaced; if
// nothing valid survives the result is the default starter state.
func (s *Store) Load(ctx context.Context) State {
	raw, found, err := s.kv.Get(ctx, StorageKey)
	if err != nil || !found {
		return DefaultState(s.cat)
	}

	var ps persistedState
	if err := json.Unmarshal(raw, &ps); err != nil {
		return DefaultState(s.cat)
	}

	st := State{Layouts: make(map[string][]Entry, len(ps.Layouts))}
	for _, w := range ps.Widgets {
		st.Widgets = append(st.Widgets, Instance{ID: w.ID, Kind: w.Type})
	}
	for name, entries := range ps.Layouts {
		out := make([]Entry, 0, len(entries))
		for _, e := range entries {
			out = append(out, Entry{InstanceID: e.I, X: e.X, Y: e.Y, W: e.W, H: e.H, MinW: e.MinW, MinH: e.MinH})
		}
		st.Layouts[name] = out
	}

	st = sanitize(st, s.cat)
	if len(st.Widgets) == 0 {
		return DefaultState(s.cat)
	}
	return st
}

// Save writes the full current state. An empty widget set removes the
// persisted record entirely instead of storing an empty shell, so the
// next Load falls back to the default dashboard.
func (s *Store) Save(ctx context.Context, st State) error {
	if len(st.Widgets) == 0 {
		if err := s.kv.Delete(ctx, StorageKey); err != nil {
			return fmt.Errorf("remove dashboard state: %w", err)
		}
		return nil
	}

	ps := persistedState{Layouts: make(map[string][]persistedEntry, len(st.Layouts))}
	for _, w := range st.Widgets {
		ps.Widgets = append(ps.Widgets, persistedInstance{ID: w.ID, Type: w.Kind})
	}
	for name, entries := range st.Layouts {
		out := make([]persistedEntry, 0, len(entries))
		for _, e := range entries {
			if !st.HasInstance(e.InstanceID) {
				continue
			}
			out = append(out, persistedEntry{I: e.InstanceID, X: e.X, Y: e.Y, W: e.W, H: e.H, MinW: e.MinW, MinH: e.MinH})
		}
		ps.Layouts[name] = out
	}

	raw, err := json.Marshal(ps)
	if err != nil {
		return fmt.Errorf("encode dashboard state: %w", err)
	}
	if err := s.kv.Set(ctx, StorageKey, raw); err != nil {
		return fmt.Errorf("persist dashboard state: %w", err)
	}
	return nil
}
