package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Pane draws widget chrome: a rounded border with the title embedded in
// the top edge, a state marker, and the content clipped inside.
type Pane struct {
	Title   string
	Content string
	Focused bool
	Grabbed bool
}

func (p Pane) Render(width, height int) string {
	if width < 4 {
		width = 4
	}
	if height < 3 {
		height = 3
	}

	border := lipgloss.Color("#6c7086")
	if p.Focused {
		border = lipgloss.Color("#89b4fa")
	}
	if p.Grabbed {
		border = lipgloss.Color("#a6e3a1")
	}
	borderStyle := lipgloss.NewStyle().Foreground(border)
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4")).Bold(true)

	marker := ""
	if p.Focused {
		marker = "● "
	}
	if p.Grabbed {
		marker = "✥ "
	}

	innerWidth := width - 2
	contentWidth := innerWidth - 2
	if contentWidth < 1 {
		contentWidth = 1
		innerWidth = contentWidth + 2
	}

	titleText := " " + strings.TrimSpace(marker+p.Title) + " "
	if ansi.StringWidth(titleText) > innerWidth {
		titleText = " " + ansi.Truncate(strings.TrimSpace(marker+p.Title), maxInt(1, innerWidth-2), "") + " "
	}
	dashes := innerWidth - ansi.StringWidth(titleText)
	if dashes < 0 {
		dashes = 0
	}
	leftDash := minInt(1, dashes)
	rightDash := dashes - leftDash

	v := borderStyle.Render("│")
	top := borderStyle.Render("╭") +
		borderStyle.Render(strings.Repeat("─", leftDash)) +
		titleStyle.Render(titleText) +
		borderStyle.Render(strings.Repeat("─", rightDash)) +
		borderStyle.Render("╮")

	contentLines := strings.Split(p.Content, "\n")
	rows := make([]string, 0, height)
	rows = append(rows, top)
	for i := 0; i < height-2; i++ {
		line := ""
		if i < len(contentLines) {
			line = contentLines[i]
		}
		line = ansi.Truncate(line, contentWidth, "")
		rows = append(rows, v+" "+PadRight(line, contentWidth)+" "+v)
	}
	rows = append(rows, borderStyle.Render("╰")+borderStyle.Render(strings.Repeat("─", innerWidth))+borderStyle.Render("╯"))

	return strings.Join(rows, "\n")
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
