package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Popup centers a bordered card over a base view.
func Popup(base, content string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 2).
		Render(content)

	cardLines := strings.Split(card, "\n")
	cardW := 0
	for _, l := range cardLines {
		if w := lipgloss.Width(l); w > cardW {
			cardW = w
		}
	}
	x := (width - cardW) / 2
	if x < 0 {
		x = 0
	}
	y := (height - len(cardLines)) / 2
	if y < 0 {
		y = 0
	}

	canvas := NewCanvas(width, height)
	canvas.Paste(base, 0, 0)
	canvas.Paste(card, x, y)
	return canvas.String()
}
