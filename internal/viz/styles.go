package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/battleputt/internal/tunables"
)

const barWidth = 10

type styles struct {
	canvas   lipgloss.Style
	panel    lipgloss.Style
	title    lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	selected lipgloss.Style
	chart    lipgloss.Style
	help     lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		canvas:   lipgloss.NewStyle().Padding(0, 1),
		panel:    lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(t.Muted).Padding(0, 2).Width(44),
		title:    lipgloss.NewStyle().Foreground(t.Title).Bold(true).MarginBottom(1),
		label:    lipgloss.NewStyle().Foreground(t.Label).Width(12),
		value:    lipgloss.NewStyle().Foreground(t.Value),
		selected: lipgloss.NewStyle().Foreground(t.Selected).Bold(true),
		chart:    lipgloss.NewStyle().Foreground(t.Chart),
		help:     lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
	}
}

// ParamBar shows where v sits in the field's range.
func ParamBar(f tunables.Field, v float64) string {
	if f.Kind() == tunables.Bool {
		if v != 0 {
			return "[on]"
		}
		return "[off]"
	}
	r := f.Range()
	ratio := 0.0
	if r.Max > r.Min {
		ratio = (v - r.Min) / (r.Max - r.Min)
	}
	filled := int(ratio*barWidth + 0.5)
	filled = max(0, min(barWidth, filled))
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", barWidth-filled) + "]"
}

// SparklineChart renders the last width values as block characters.
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int((v - lo) / rng * float64(len(chars)-1))
		b.WriteRune(chars[max(0, min(len(chars)-1, idx))])
	}
	return b.String()
}

func formatVec(x, y float64) string {
	return fmt.Sprintf("(%.0f, %.0f)", x, y)
}
