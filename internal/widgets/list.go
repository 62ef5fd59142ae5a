package widgets

import "strings"

// List draws bulleted items, clipped to the box height.
type List struct {
	Items []string
}

func (l List) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(l.Items) == 0 {
		return "(no data)"
	}
	rows := make([]string, 0, len(l.Items))
	for _, item := range l.Items {
		rows = append(rows, "• "+item)
		if len(rows) >= height {
			break
		}
	}
	return strings.Join(rows, "\n")
}

// Table draws a header row plus data rows joined with separators.
type Table struct {
	Headers []string
	Rows    [][]string
}

func (t Table) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(t.Headers) == 0 {
		return "(no data)"
	}
	lines := []string{strings.Join(t.Headers, " │ ")}
	for _, row := range t.Rows {
		lines = append(lines, strings.Join(row, " │ "))
		if len(lines) >= height {
			break
		}
	}
	return strings.Join(lines, "\n")
}
