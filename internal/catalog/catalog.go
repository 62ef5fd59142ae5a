// Package catalog defines the static table of widget kinds the dashboard
// can place: display titles, default grid geometry, and the starter set
// used when no saved dashboard exists. The table is read-only after New.
package catalog

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Geometry is a widget's grid footprint: position-independent size plus
// minimum bounds, in grid columns/rows.
type Geometry struct {
	W    int
	H    int
	MinW int
	MinH int
}

// Definition describes one widget kind.
type Definition struct {
	Kind     string
	Title    string
	Geometry Geometry
}

// The filter-configuring widget gets special treatment on removal: its
// active filters are reset so they cannot silently keep narrowing other
// widgets' data with no visible control left.
const KindFilterPanel = "filterPanel"

// Catalog is the immutable kind table.
type Catalog struct {
	defs  map[string]Definition
	kinds []string
}

// New builds a catalog from the given definitions. Later duplicates of a
// kind override earlier ones.
func New(defs []Definition) *Catalog {
	c := &Catalog{defs: make(map[string]Definition, len(defs))}
	for _, d := range defs {
		if _, seen := c.defs[d.Kind]; !seen {
			c.kinds = append(c.kinds, d.Kind)
		}
		c.defs[d.Kind] = d
	}
	sort.Strings(c.kinds)
	return c
}

// Default returns the built-in widget catalog.
func Default() *Catalog {
	return New([]Definition{
		{Kind: "overview", Title: "Overview", Geometry: Geometry{W: 6, H: 4, MinW: 3, MinH: 3}},
		{Kind: "spendingTrend", Title: "Spending Trend", Geometry: Geometry{W: 6, H: 6, MinW: 4, MinH: 4}},
		{Kind: "categoryBreakdown", Title: "Category Breakdown", Geometry: Geometry{W: 6, H: 6, MinW: 3, MinH: 4}},
		{Kind: "incomeVsExpense", Title: "Income vs Expense", Geometry: Geometry{W: 6, H: 5, MinW: 4, MinH: 4}},
		{Kind: "recentTransactions", Title: "Recent Transactions", Geometry: Geometry{W: 6, H: 6, MinW: 3, MinH: 4}},
		{Kind: "topExpenses", Title: "Top Expenses", Geometry: Geometry{W: 4, H: 5, MinW: 3, MinH: 3}},
		{Kind: "budgetProgress", Title: "Budget Progress", Geometry: Geometry{W: 4, H: 4, MinW: 3, MinH: 3}},
		{Kind: "savingsGoal", Title: "Savings Goal", Geometry: Geometry{W: 4, H: 4, MinW: 3, MinH: 3}},
		{Kind: "monthlySummary", Title: "Monthly Summary", Geometry: Geometry{W: 6, H: 5, MinW: 4, MinH: 3}},
		{Kind: "accountBalance", Title: "Account Balance", Geometry: Geometry{W: 4, H: 4, MinW: 3, MinH: 3}},
		{Kind: "calendarHeatmap", Title: "Calendar Heatmap", Geometry: Geometry{W: 8, H: 5, MinW: 6, MinH: 4}},
		{Kind: KindFilterPanel, Title: "Filters", Geometry: Geometry{W: 4, H: 6, MinW: 3, MinH: 4}},
	})
}

// StarterKinds is the fixed set placed when no saved dashboard exists.
func StarterKinds() []string {
	return []string{"overview", "spendingTrend", "categoryBreakdown", "recentTransactions", KindFilterPanel}
}

// Lookup returns the definition for kind.
func (c *Catalog) Lookup(kind string) (Definition, bool) {
	d, ok := c.defs[kind]
	return d, ok
}

// Kinds returns all kinds in sorted order.
func (c *Catalog) Kinds() []string {
	out := make([]string, len(c.kinds))
	copy(out, c.kinds)
	return out
}

// Search ranks catalog entries against a query for the manage-widgets
// dialog. Substring matches on title or kind come first, then close
// fuzzy matches by edit distance. An empty query returns everything.
func (c *Catalog) Search(query string) []Definition {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		out := make([]Definition, 0, len(c.kinds))
		for _, k := range c.kinds {
			out = append(out, c.defs[k])
		}
		return out
	}

	type scored struct {
		def  Definition
		rank int
	}
	var matches []scored
	for _, k := range c.kinds {
		d := c.defs[k]
		title := strings.ToLower(d.Title)
		kind := strings.ToLower(d.Kind)
		switch {
		case strings.HasPrefix(title, q) || strings.HasPrefix(kind, q):
			matches = append(matches, scored{d, 0})
		case strings.Contains(title, q) || strings.Contains(kind, q):
			matches = append(matches, scored{d, 1})
		default:
			dist := levenshtein.ComputeDistance(q, title)
			if kd := levenshtein.ComputeDistance(q, kind); kd < dist {
				dist = kd
			}
			if dist <= len(q)/2 {
				matches = append(matches, scored{d, 2 + dist})
			}
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].rank < matches[j].rank })
	out := make([]Definition, len(matches))
	for i, m := range matches {
		out[i] = m.def
	}
	return out
}
