package widgets

import (
	"fmt"
	"strings"
)

// BarPoint is one labelled value in a bar chart.
type BarPoint struct {
	Label string
	Value float64
}

// BarChart draws horizontal labelled bars scaled to the widest value.
type BarChart struct {
	Data []BarPoint
}

func (c BarChart) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(c.Data) == 0 {
		return "(no data)"
	}
	maxV := 0.0
	for _, p := range c.Data {
		if p.Value > maxV {
			maxV = p.Value
		}
	}
	if maxV <= 0 {
		maxV = 1
	}
	labelW := 10
	barW := maxInt(1, width-labelW-10)
	lines := make([]string, 0, len(c.Data))
	for _, p := range c.Data {
		w := int((p.Value / maxV) * float64(barW))
		if w < 1 {
			w = 1
		}
		label := p.Label
		if len(label) > labelW {
			label = label[:labelW]
		}
		lines = append(lines, fmt.Sprintf("%-*s %s %.2f", labelW, label, strings.Repeat("█", w), p.Value))
		if len(lines) >= height {
			break
		}
	}
	return strings.Join(lines, "\n")
}

// Sparkline draws one row of values as block glyphs.
type Sparkline struct {
	Values []float64
}

var sparkGlyphs = []rune("▁▂▃▄▅▆▇█")

func (s Sparkline) Render(width, height int) string {
	if width <= 0 || height <= 0 || len(s.Values) == 0 {
		return ""
	}
	vals := s.Values
	if len(vals) > width {
		vals = vals[len(vals)-width:]
	}
	maxV := 0.0
	for _, v := range vals {
		if v > maxV {
			maxV = v
		}
	}
	if maxV <= 0 {
		maxV = 1
	}
	var b strings.Builder
	for _, v := range vals {
		idx := int((v / maxV) * float64(len(sparkGlyphs)-1))
		if idx < 0 {
			idx = 0
		}
		b.WriteRune(sparkGlyphs[idx])
	}
	return b.String()
}

// Gauge draws a single progress bar with a ratio in [0,1].
type Gauge struct {
	Ratio float64
}

func (g Gauge) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	r := g.Ratio
	if r < 0 {
		r = 0
	}
	if r > 1 {
		r = 1
	}
	barW := maxInt(1, width-7)
	filled := int(r * float64(barW))
	return fmt.Sprintf("%s%s %3.0f%%", strings.Repeat("█", filled), strings.Repeat("░", barW-filled), r*100)
}
