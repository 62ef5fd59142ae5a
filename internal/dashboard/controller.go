// Package dashboard mutates the dashboard's structural state in response
// to user intent: add a widget, remove one, or apply a batch of
// membership toggles from the manage-widgets dialog. Every committed
// mutation is written back through the layout store.
package dashboard

import (
	"context"
	"sort"

	"github.com/jask/moneyboard/internal/catalog"
	"github.com/jask/moneyboard/internal/layout"
)

// Controller owns the live DashboardState and the rules for changing it.
type Controller struct {
	cat   *catalog.Catalog
	store *layout.Store
	state layout.State

	// Invoked when the filter-configuring widget is removed, so stale
	// filters cannot keep narrowing other widgets' data unseen.
	onFilterWidgetRemoved func()
}

// NewController hydrates the controller from the layout store.
func NewController(ctx context.Context, cat *catalog.Catalog, store *layout.Store, onFilterWidgetRemoved func()) *Controller {
	return &Controller{
		cat:                   cat,
		store:                 store,
		state:                 store.Load(ctx),
		onFilterWidgetRemoved: onFilterWidgetRemoved,
	}
}

// State returns the live state. Callers treat it as read-only and route
// mutations through the controller.
func (c *Controller) State() *layout.State {
	return &c.state
}

// Add places a new instance of kind. Unknown kinds are a no-op (ok is
// false). The new entry lands at x=0 below the lowest occupied row of
// every known breakpoint, so it can never overlap an existing widget.
func (c *Controller) Add(ctx context.Context, kind string) (layout.Instance, bool) {
	def, ok := c.cat.Lookup(kind)
	if !ok {
		return layout.Instance{}, false
	}

	inst := layout.Instance{ID: layout.NewInstanceID(), Kind: def.Kind}
	c.state.Widgets = append(c.state.Widgets, inst)

	if c.state.Layouts == nil {
		c.state.Layouts = make(map[string][]layout.Entry)
	}
	// Walk the breakpoint table, not the map: a state saved by a client
	// that knew fewer tiers must still gain geometry in every tier.
	for _, bp := range layout.Breakpoints {
		entries := c.state.Layouts[bp.Name]
		c.state.Layouts[bp.Name] = append(entries, layout.EntryFor(inst.ID, def, bp.Cols, layout.BottomY(entries)))
	}

	c.save(ctx)
	return inst, true
}

// Remove deletes an instance and all of its geometry across breakpoints.
// Removing the filter-configuring widget also resets the active filters.
func (c *Controller) Remove(ctx context.Context, id string) bool {
	kind, ok := c.state.KindOf(id)
	if !ok {
		return false
	}

	widgets := c.state.Widgets[:0]
	for _, w := range c.state.Widgets {
		if w.ID != id {
			widgets = append(widgets, w)
		}
	}
	c.state.Widgets = widgets

	for name, entries := range c.state.Layouts {
		kept := entries[:0]
		for _, e := range entries {
			if e.InstanceID != id {
				kept = append(kept, e)
			}
		}
		c.state.Layouts[name] = kept
	}

	if kind == catalog.KindFilterPanel && c.onFilterWidgetRemoved != nil {
		c.onFilterWidgetRemoved()
	}

	c.save(ctx)
	return true
}

// ApplyMembership diffs a desired kind->present map against current
// membership (a kind is present iff some live instance has it) and adds
// or removes accordingly. Applying the same map twice is a no-op the
// second time. De-selecting a kind removes every instance of it.
func (c *Controller) ApplyMembership(ctx context.Context, desired map[string]bool) {
	kinds := make([]string, 0, len(desired))
	for k := range desired {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	for _, kind := range kinds {
		want := desired[kind]
		have := c.state.HasKind(kind)
		switch {
		case want && !have:
			c.Add(ctx, kind)
		case !want && have:
			var ids []string
			for _, w := range c.state.Widgets {
				if w.Kind == kind {
					ids = append(ids, w.ID)
				}
			}
			for _, id := range ids {
				c.Remove(ctx, id)
			}
		}
	}
}

// CommitGeometry records one breakpoint's geometry as reported by the
// grid surface and persists it. Entries for other breakpoints are left
// alone.
func (c *Controller) CommitGeometry(ctx context.Context, breakpoint string, entries []layout.Entry) {
	c.state.SetBreakpointGeometry(breakpoint, entries)
	c.save(ctx)
}

// save writes the full current state. Persistence is fire-and-forget: a
// failed write loses at most this edit, never previously saved state.
func (c *Controller) save(ctx context.Context) {
	_ = c.store.Save(ctx, c.state)
}
