package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/emacsway/ganttproject/internal/domain"
)

var (
	colorDim    = lipgloss.Color("#928374")
	colorHeader = lipgloss.Color("#fe8019")
	colorGreen  = lipgloss.Color("#8ec07c")
	colorYellow = lipgloss.Color("#fabd2f")
	colorRed    = lipgloss.Color("#fb4934")
)

var (
	StyleDim    = lipgloss.NewStyle().Foreground(colorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
	styleGreen  = lipgloss.NewStyle().Foreground(colorGreen)
	styleYellow = lipgloss.NewStyle().Foreground(colorYellow)
	styleRed    = lipgloss.NewStyle().Foreground(colorRed)
)

// PriorityLabel renders a priority with a color hinting at its weight.
func PriorityLabel(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh, domain.PriorityHighest:
		return styleRed.Render(p.String())
	case domain.PriorityLow, domain.PriorityLowest:
		return StyleDim.Render(p.String())
	default:
		return styleYellow.Render(p.String())
	}
}

// Flag renders a boolean as a green check or a dim dash.
func Flag(b bool) string {
	if b {
		return styleGreen.Render("✓")
	}
	return StyleDim.Render("-")
}

// RenderTable renders an aligned table with a header separator line.
// Column widths are measured with lipgloss.Width so styled cells line up.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	const colGap = 2

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(widths) && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string, style func(string) string) {
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			rendered := cell
			if style != nil {
				rendered = style(cell)
			}
			b.WriteString(rendered)
			if i < len(widths)-1 {
				b.WriteString(strings.Repeat(" ", w-lipgloss.Width(cell)+colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(s string) string { return StyleHeader.Render(s) })
	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = StyleDim.Render(strings.Repeat("─", w))
	}
	for i, s := range sep {
		b.WriteString(s)
		if i < len(widths)-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		writeRow(row, nil)
	}
	return b.String()
}
