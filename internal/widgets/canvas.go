package widgets

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Widget is anything that can draw itself into a box.
type Widget interface {
	Render(width, height int) string
}

// Canvas is a fixed-size line buffer blocks are pasted onto. Used by the
// grid surface to place panes at absolute positions.
type Canvas struct {
	width int
	lines []string
}

// NewCanvas returns a blank canvas of the given size.
func NewCanvas(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	lines := make([]string, height)
	blank := strings.Repeat(" ", width)
	for i := range lines {
		lines[i] = blank
	}
	return &Canvas{width: width, lines: lines}
}

// Paste splices a block onto the canvas with its top-left corner at
// (x, y). Content past the canvas edge is clipped.
func (c *Canvas) Paste(block string, x, y int) {
	if x < 0 {
		x = 0
	}
	for i, line := range strings.Split(block, "\n") {
		row := y + i
		if row < 0 || row >= len(c.lines) {
			continue
		}
		c.lines[row] = spliceLine(c.lines[row], line, x, c.width)
	}
}

// String renders the canvas.
func (c *Canvas) String() string {
	return strings.Join(c.lines, "\n")
}

// spliceLine overlays segment onto base starting at column x, preserving
// ANSI sequences, and re-pads to width.
func spliceLine(base, segment string, x, width int) string {
	if x >= width {
		return base
	}
	segment = ansi.Truncate(segment, width-x, "")
	segW := ansi.StringWidth(segment)
	left := ansi.Truncate(base, x, "")
	left = PadRight(left, x)
	right := dropColumns(base, x+segW)
	return PadRight(left+segment+right, width)
}

func dropColumns(s string, cols int) string {
	if cols <= 0 {
		return s
	}
	truncated := ansi.Truncate(s, cols, "")
	return strings.TrimPrefix(s, truncated)
}

// PadRight pads (or truncates) s to exactly width display columns.
func PadRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
