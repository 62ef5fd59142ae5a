package layout

import (
	"context"
	"testing"

	"github.com/jask/moneyboard/internal/catalog"
	"github.com/jask/moneyboard/internal/kv"
)

func newTestStore() (*Store, *kv.Memory) {
	mem := kv.NewMemory()
	return NewStore(mem, catalog.Default()), mem
}

func checkIntegrity(t *testing.T, st State) {
	t.Helper()
	for name, entries := range st.Layouts {
		for _, e := range entries {
			if !st.HasInstance(e.InstanceID) {
				t.Fatalf("breakpoint %s: entry %s has no live instance", name, e.InstanceID)
			}
		}
	}
}

func TestLoadEmptyStoreYieldsDefaultStarterState(t *testing.T) {
	store, _ := newTestStore()
	st := store.Load(context.Background())

	if len(st.Widgets) != len(catalog.StarterKinds()) {
		t.Fatalf("widget count = %d, want %d", len(st.Widgets), len(catalog.StarterKinds()))
	}
	checkIntegrity(t, st)

	// every breakpoint populated, non-overlapping placements in "large"
	for _, bp := range Breakpoints {
		if len(st.Layouts[bp.Name]) != len(st.Widgets) {
			t.Fatalf("breakpoint %s has %d entries, want %d", bp.Name, len(st.Layouts[bp.Name]), len(st.Widgets))
		}
	}
	large := st.Layouts["large"]
	for i := 1; i < len(large); i++ {
		if large[i].Y < large[i-1].Y+large[i-1].H {
			t.Fatalf("default large layout overlaps: entry %d y=%d, previous bottom=%d",
				i, large[i].Y, large[i-1].Y+large[i-1].H)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	st := store.Load(ctx)
	if err := store.Save(ctx, st); err != nil {
		t.Fatalf("save: %v", err)
	}
	got := store.Load(ctx)

	if len(got.Widgets) != len(st.Widgets) {
		t.Fatalf("widgets = %d, want %d", len(got.Widgets), len(st.Widgets))
	}
	for i := range st.Widgets {
		if got.Widgets[i] != st.Widgets[i] {
			t.Fatalf("widget %d = %+v, want %+v", i, got.Widgets[i], st.Widgets[i])
		}
	}
	for _, bp := range Breakpoints {
		want := st.Layouts[bp.Name]
		have := got.Layouts[bp.Name]
		if len(have) != len(want) {
			t.Fatalf("%s entries = %d, want %d", bp.Name, len(have), len(want))
		}
		for i := range want {
			if have[i] != want[i] {
				t.Fatalf("%s entry %d = %+v, want %+v", bp.Name, i, have[i], want[i])
			}
		}
	}
}

func TestLoadDropsUnknownKindsAndDanglingGeometry(t *testing.T) {
	store, mem := newTestStore()
	ctx := context.Background()

	blob := `{
		"widgets": [
			{"id": "a", "type": "overview"},
			{"id": "b", "type": "vintageSparkline"}
		],
		"layouts": {
			"large": [
				{"i": "a", "x": 0, "y": 0, "w": 6, "h": 4},
				{"i": "b", "x": 6, "y": 0, "w": 6, "h": 4},
				{"i": "ghost", "x": 0, "y": 4, "w": 2, "h": 2}
			],
			"mystery": [{"i": "a", "x": 0, "y": 0, "w": 1, "h": 1}]
		}
	}`
	if err := mem.Set(ctx, StorageKey, []byte(blob)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	st := store.Load(ctx)
	if len(st.Widgets) != 1 || st.Widgets[0].ID != "a" {
		t.Fatalf("widgets = %+v, want only instance a", st.Widgets)
	}
	if len(st.Layouts["large"]) != 1 || st.Layouts["large"][0].InstanceID != "a" {
		t.Fatalf("large = %+v, want only entry a", st.Layouts["large"])
	}
	if _, ok := st.Layouts["mystery"]; ok {
		t.Fatal("stale breakpoint survived load")
	}
	checkIntegrity(t, st)
}

func TestLoadBackfillsMissingBreakpoints(t *testing.T) {
	store, mem := newTestStore()
	ctx := context.Background()

	// a state saved by a client that only knew the "large" tier
	blob := `{
		"widgets": [{"id": "a", "type": "overview"}],
		"layouts": {"large": [{"i": "a", "x": 0, "y": 0, "w": 6, "h": 4}]}
	}`
	if err := mem.Set(ctx, StorageKey, []byte(blob)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	st := store.Load(ctx)
	for _, bp := range Breakpoints {
		entries := st.Layouts[bp.Name]
		if len(entries) != 1 || entries[0].InstanceID != "a" {
			t.Fatalf("breakpoint %s = %+v, want backfilled entry for a", bp.Name, entries)
		}
		if entries[0].W > bp.Cols {
			t.Fatalf("breakpoint %s: backfilled width %d exceeds %d columns", bp.Name, entries[0].W, bp.Cols)
		}
	}
	// the saved tier keeps its saved geometry rather than the default
	if got := st.Layouts["large"][0]; got.X != 0 || got.Y != 0 || got.W != 6 || got.H != 4 {
		t.Fatalf("large entry rewritten by backfill: %+v", got)
	}
	checkIntegrity(t, st)
}

func TestLoadMalformedJSONFallsBackToDefault(t *testing.T) {
	store, mem := newTestStore()
	ctx := context.Background()

	if err := mem.Set(ctx, StorageKey, []byte(`{"widgets": [`)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	st := store.Load(ctx)
	if len(st.Widgets) != len(catalog.StarterKinds()) {
		t.Fatalf("fallback widgets = %d, want starter set", len(st.Widgets))
	}
}

func TestLoadAllInvalidWidgetsFallsBackToDefault(t *testing.T) {
	store, mem := newTestStore()
	ctx := context.Background()

	blob := `{"widgets": [{"id": "x", "type": "gone"}], "layouts": {"large": [{"i": "x", "x": 0, "y": 0, "w": 2, "h": 2}]}}`
	if err := mem.Set(ctx, StorageKey, []byte(blob)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	st := store.Load(ctx)
	if len(st.Widgets) != len(catalog.StarterKinds()) {
		t.Fatalf("fallback widgets = %d, want starter set", len(st.Widgets))
	}
	checkIntegrity(t, st)
}

func TestSaveEmptyStateRemovesPersistedRecord(t *testing.T) {
	store, mem := newTestStore()
	ctx := context.Background()

	st := store.Load(ctx)
	if err := store.Save(ctx, st); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(ctx, State{}); err != nil {
		t.Fatalf("save empty: %v", err)
	}
	if _, found, _ := mem.Get(ctx, StorageKey); found {
		t.Fatal("empty state should remove the persisted record")
	}
}

func TestSetBreakpointGeometryUpsertsOneBreakpoint(t *testing.T) {
	st := State{
		Widgets: []Instance{{ID: "a", Kind: "overview"}},
		Layouts: map[string][]Entry{
			"large":  {{InstanceID: "a", X: 0, Y: 0, W: 6, H: 4}},
			"medium": {{InstanceID: "a", X: 0, Y: 0, W: 6, H: 4}},
		},
	}

	moved := []Entry{
		{InstanceID: "a", X: 3, Y: 2, W: 6, H: 4},
		{InstanceID: "dangling", X: 0, Y: 0, W: 1, H: 1},
	}
	st.SetBreakpointGeometry("large", moved)

	if got := st.Layouts["large"]; len(got) != 1 || got[0].X != 3 || got[0].Y != 2 {
		t.Fatalf("large after upsert = %+v", got)
	}
	if got := st.Layouts["medium"]; len(got) != 1 || got[0].X != 0 {
		t.Fatalf("medium was touched: %+v", got)
	}

	// idempotent
	st.SetBreakpointGeometry("large", st.Layouts["large"])
	if got := st.Layouts["large"]; len(got) != 1 || got[0].X != 3 {
		t.Fatalf("large after repeat upsert = %+v", got)
	}
}

func TestBreakpointFor(t *testing.T) {
	cases := []struct {
		width int
		want  string
	}{
		{1500, "large"},
		{1200, "large"},
		{1100, "medium"},
		{800, "small"},
		{500, "xsmall"},
		{200, "xxsmall"},
		{0, "xxsmall"},
	}
	for _, tc := range cases {
		if got := BreakpointFor(tc.width); got.Name != tc.want {
			t.Fatalf("BreakpointFor(%d) = %s, want %s", tc.width, got.Name, tc.want)
		}
	}
}
