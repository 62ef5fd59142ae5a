package tui

import (
	"sort"

	"github.com/jask/moneyboard/internal/layout"
	"github.com/jask/moneyboard/internal/widgets"
)

// Terminal cells are much coarser than the pixel thresholds the
// breakpoint table is written in; treat one column as roughly 8px so a
// 150-column terminal lands in the "large" tier like a desktop browser.
const pxPerCell = 8

// One grid row drawn as this many terminal lines.
const rowLines = 2

func breakpointForCells(cols int) layout.Breakpoint {
	return layout.BreakpointFor(cols * pxPerCell)
}

// renderGrid places every geometry entry of one breakpoint onto a canvas,
// scaled from grid units to terminal cells. draw produces the finished
// pane for an entry at its cell size.
func renderGrid(entries []layout.Entry, width, cols int, draw func(layout.Entry, int, int) string) string {
	if len(entries) == 0 || width <= 0 || cols <= 0 {
		return ""
	}
	colW := width / cols
	if colW < 4 {
		colW = 4
	}

	sorted := append([]layout.Entry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y < sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	canvas := widgets.NewCanvas(width, layout.BottomY(sorted)*rowLines)
	for _, e := range sorted {
		canvas.Paste(draw(e, e.W*colW, e.H*rowLines), e.X*colW, e.Y*rowLines)
	}
	return canvas.String()
}

// clampEntry keeps a moved or resized entry inside the column bounds and
// above its minimum size.
func clampEntry(e layout.Entry, cols int) layout.Entry {
	minW := e.MinW
	if minW < 1 {
		minW = 1
	}
	minH := e.MinH
	if minH < 1 {
		minH = 1
	}
	if e.W < minW {
		e.W = minW
	}
	if e.W > cols {
		e.W = cols
	}
	if e.H < minH {
		e.H = minH
	}
	if e.X < 0 {
		e.X = 0
	}
	if e.X > cols-e.W {
		e.X = cols - e.W
	}
	if e.Y < 0 {
		e.Y = 0
	}
	return e
}
