package layout

// Breakpoint is one responsive tier of the grid: everything at least
// MinWidth wide (and narrower than the next tier up) renders with Cols
// columns and keeps its own geometry set.
type Breakpoint struct {
	Name     string
	MinWidth int
	Cols     int
}

// Breakpoints is the fixed tier table, widest first. It is shared between
// the grid surface and the per-breakpoint geometry map, so both always
// agree on which names exist.
var Breakpoints = []Breakpoint{
	{Name: "large", MinWidth: 1200, Cols: 12},
	{Name: "medium", MinWidth: 996, Cols: 10},
	{Name: "small", MinWidth: 768, Cols: 6},
	{Name: "xsmall", MinWidth: 480, Cols: 4},
	{Name: "xxsmall", MinWidth: 0, Cols: 2},
}

// BreakpointFor resolves the tier for a surface width.
func BreakpointFor(width int) Breakpoint {
	for _, bp := range Breakpoints {
		if width >= bp.MinWidth {
			return bp
		}
	}
	return Breakpoints[len(Breakpoints)-1]
}

// KnownBreakpoint reports whether name is in the tier table.
func KnownBreakpoint(name string) bool {
	for _, bp := range Breakpoints {
		if bp.Name == name {
			return true
		}
	}
	return false
}

// ColsFor returns the column count for a tier name, defaulting to the
// narrowest tier for unknown names.
func ColsFor(name string) int {
	for _, bp := range Breakpoints {
		if bp.Name == name {
			return bp.Cols
		}
	}
	return Breakpoints[len(Breakpoints)-1].Cols
}
