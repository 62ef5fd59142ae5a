package dashboard

import (
	"context"
	"testing"

	"github.com/jask/moneyboard/internal/catalog"
	"github.com/jask/moneyboard/internal/kv"
	"github.com/jask/moneyboard/internal/layout"
)

func newTestController(t *testing.T, onFilterRemoved func()) (*Controller, *kv.Memory) {
	t.Helper()
	mem := kv.NewMemory()
	store := layout.NewStore(mem, catalog.Default())
	return NewController(context.Background(), catalog.Default(), store, onFilterRemoved), mem
}

func checkIntegrity(t *testing.T, st *layout.State) {
	t.Helper()
	for name, entries := range st.Layouts {
		for _, e := range entries {
			if !st.HasInstance(e.InstanceID) {
				t.Fatalf("breakpoint %s: geometry %s references no live instance", name, e.InstanceID)
			}
		}
	}
}

func TestAddAppendsBelowEveryBreakpoint(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t, nil)

	bottoms := make(map[string]int)
	for name, entries := range c.State().Layouts {
		bottoms[name] = layout.BottomY(entries)
	}

	inst, ok := c.Add(ctx, "topExpenses")
	if !ok {
		t.Fatal("add known kind failed")
	}

	for name, entries := range c.State().Layouts {
		var added *layout.Entry
		for i := range entries {
			if entries[i].InstanceID == inst.ID {
				added = &entries[i]
			}
		}
		if added == nil {
			t.Fatalf("breakpoint %s missing geometry for new instance", name)
		}
		if added.X != 0 {
			t.Fatalf("breakpoint %s: new entry x = %d, want 0", name, added.X)
		}
		if added.Y < bottoms[name] {
			t.Fatalf("breakpoint %s: new entry y = %d, above previous bottom %d", name, added.Y, bottoms[name])
		}
		for _, e := range entries {
			if e.InstanceID != inst.ID && added.Y < e.Y+e.H {
				t.Fatalf("breakpoint %s: new entry y=%d overlaps entry %+v", name, added.Y, e)
			}
		}
		if cols := layout.ColsFor(name); added.W > cols {
			t.Fatalf("breakpoint %s: width %d exceeds %d columns", name, added.W, cols)
		}
	}
	checkIntegrity(t, c.State())
}

func TestAddUnknownKindIsNoOp(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t, nil)
	before := len(c.State().Widgets)

	if _, ok := c.Add(ctx, "notAWidget"); ok {
		t.Fatal("unknown kind should not add")
	}
	if len(c.State().Widgets) != before {
		t.Fatalf("widget count changed: %d -> %d", before, len(c.State().Widgets))
	}
}

func TestAddCoversBreakpointsMissingFromSavedState(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()

	// saved by a client that only knew the "large" tier
	blob := `{
		"widgets": [{"id": "a", "type": "overview"}],
		"layouts": {"large": [{"i": "a", "x": 0, "y": 0, "w": 6, "h": 4}]}
	}`
	if err := mem.Set(ctx, layout.StorageKey, []byte(blob)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	store := layout.NewStore(mem, catalog.Default())
	c := NewController(ctx, catalog.Default(), store, nil)

	inst, ok := c.Add(ctx, "topExpenses")
	if !ok {
		t.Fatal("add failed")
	}

	for _, bp := range layout.Breakpoints {
		entries := c.State().Layouts[bp.Name]
		found := map[string]bool{}
		for _, e := range entries {
			found[e.InstanceID] = true
		}
		if !found[inst.ID] {
			t.Fatalf("breakpoint %s has no geometry for the new instance", bp.Name)
		}
		if !found["a"] {
			t.Fatalf("breakpoint %s has no geometry for the pre-existing instance", bp.Name)
		}
	}
	checkIntegrity(t, c.State())
}

func TestDuplicateAddsCreateIndependentInstances(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t, nil)

	a, _ := c.Add(ctx, "topExpenses")
	b, _ := c.Add(ctx, "topExpenses")
	if a.ID == b.ID {
		t.Fatal("duplicate adds must generate distinct ids")
	}
	count := 0
	for _, w := range c.State().Widgets {
		if w.Kind == "topExpenses" {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("topExpenses instances = %d, want 2", count)
	}
	checkIntegrity(t, c.State())
}

func TestAddThenRemoveRestoresCounts(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t, nil)

	widgetsBefore := len(c.State().Widgets)
	entriesBefore := make(map[string]int)
	for name, entries := range c.State().Layouts {
		entriesBefore[name] = len(entries)
	}

	// categoryBreakdown is already in the starter set; add a second one
	inst, ok := c.Add(ctx, "categoryBreakdown")
	if !ok {
		t.Fatal("add failed")
	}
	if !c.Remove(ctx, inst.ID) {
		t.Fatal("remove failed")
	}

	if len(c.State().Widgets) != widgetsBefore {
		t.Fatalf("widgets = %d, want %d", len(c.State().Widgets), widgetsBefore)
	}
	for name, entries := range c.State().Layouts {
		if len(entries) != entriesBefore[name] {
			t.Fatalf("breakpoint %s entries = %d, want %d", name, len(entries), entriesBefore[name])
		}
	}
	checkIntegrity(t, c.State())
}

func TestRemoveFilterWidgetResetsFilters(t *testing.T) {
	ctx := context.Background()
	resets := 0
	c, _ := newTestController(t, func() { resets++ })

	var filterID string
	for _, w := range c.State().Widgets {
		if w.Kind == catalog.KindFilterPanel {
			filterID = w.ID
		}
	}
	if filterID == "" {
		t.Fatal("starter state missing filter panel")
	}

	if !c.Remove(ctx, filterID) {
		t.Fatal("remove failed")
	}
	if resets != 1 {
		t.Fatalf("filter reset hook fired %d times, want 1", resets)
	}

	// removing a non-filter widget must not reset
	inst, _ := c.Add(ctx, "topExpenses")
	c.Remove(ctx, inst.ID)
	if resets != 1 {
		t.Fatalf("filter reset hook fired %d times after unrelated removal, want 1", resets)
	}
}

func TestApplyMembershipDiffsAndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t, nil)

	desired := map[string]bool{
		"overview":          true,  // already present
		"topExpenses":       true,  // to add
		"spendingTrend":     false, // to remove
		"categoryBreakdown": false, // to remove
	}
	c.ApplyMembership(ctx, desired)

	st := c.State()
	if !st.HasKind("topExpenses") {
		t.Fatal("topExpenses not added")
	}
	if st.HasKind("spendingTrend") || st.HasKind("categoryBreakdown") {
		t.Fatal("de-selected kinds survived")
	}
	checkIntegrity(t, st)

	widgets := len(st.Widgets)
	c.ApplyMembership(ctx, desired)
	if len(c.State().Widgets) != widgets {
		t.Fatalf("second apply changed widget count: %d -> %d", widgets, len(c.State().Widgets))
	}
}

func TestApplyMembershipRemovesAllInstancesOfKind(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t, nil)

	c.Add(ctx, "topExpenses")
	c.Add(ctx, "topExpenses")
	c.ApplyMembership(ctx, map[string]bool{"topExpenses": false})
	if c.State().HasKind("topExpenses") {
		t.Fatal("instances of de-selected kind survived")
	}
	checkIntegrity(t, c.State())
}

func TestMutationsPersistThroughStore(t *testing.T) {
	ctx := context.Background()
	c, mem := newTestController(t, nil)

	inst, _ := c.Add(ctx, "topExpenses")

	reloaded := layout.NewStore(mem, catalog.Default()).Load(ctx)
	if !reloaded.HasInstance(inst.ID) {
		t.Fatal("added instance not persisted")
	}

	// removing every widget deletes the persisted record
	var ids []string
	for _, w := range c.State().Widgets {
		ids = append(ids, w.ID)
	}
	for _, id := range ids {
		c.Remove(ctx, id)
	}
	if _, found, _ := mem.Get(ctx, layout.StorageKey); found {
		t.Fatal("emptied dashboard should remove the persisted record")
	}
}

func TestCommitGeometryPersistsOneBreakpoint(t *testing.T) {
	ctx := context.Background()
	c, mem := newTestController(t, nil)

	entries := append([]layout.Entry(nil), c.State().Layouts["large"]...)
	entries[0].X = 4
	entries[0].Y = 7
	c.CommitGeometry(ctx, "large", entries)

	reloaded := layout.NewStore(mem, catalog.Default()).Load(ctx)
	if got := reloaded.Layouts["large"][0]; got.X != 4 || got.Y != 7 {
		t.Fatalf("persisted large[0] = %+v, want moved entry", got)
	}
	if got := reloaded.Layouts["medium"][0]; got.X != 0 {
		t.Fatalf("medium[0] moved unexpectedly: %+v", got)
	}
}
