package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors (Flexoki Dark)
var (
	ColorBg        = lipgloss.Color("#100F0F")
	ColorSurface   = lipgloss.Color("#1C1B1A")
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
	ColorBlue      = lipgloss.Color("#4385BE")
	ColorPurple    = lipgloss.Color("#8B7EC8")
	ColorYellow    = lipgloss.Color("#D0A215")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	// GoodStyle marks healthy values (under budget, favorable trends).
	GoodStyle = lipgloss.NewStyle().Foreground(ColorGreen)
	// WarnStyle marks values approaching a limit.
	WarnStyle = lipgloss.NewStyle().Foreground(ColorOrange)
	// BadStyle marks exceeded limits and anomalies.
	BadStyle = lipgloss.NewStyle().Foreground(ColorRed)
	// MoneyStyle marks monetary values.
	MoneyStyle = lipgloss.NewStyle().Foreground(ColorYellow)
)

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	width := 55
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table. The first column is left-aligned,
// the rest right-aligned so amounts and counts line up.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 {
		numCols = len(t.Rows[0])
	}
	widths := tableWidths(t, numCols)

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	b.WriteString(tableRule("╭", "┬", "╮", widths))

	if len(t.Headers) > 0 {
		b.WriteString(tableCells(t.Headers, widths, headerStyle, false))
		b.WriteString(tableRule("├", "┼", "┤", widths))
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			b.WriteString(tableRule("├", "┼", "┤", widths))
			continue
		}
		b.WriteString(tableCells(row, widths, valueStyle, true))
	}

	b.WriteString(tableRule("╰", "┴", "╯", widths))
	return b.String()
}

// tableWidths returns per-column widths, from t.Widths or the widest cell.
func tableWidths(t Table, numCols int) []int {
	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
		return widths
	}
	for i, h := range t.Headers {
		if len(h) > widths[i] {
			widths[i] = len(h)
		}
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < numCols && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	return widths
}

// tableRule draws one horizontal border line.
func tableRule(left, mid, right string, widths []int) string {
	segs := make([]string, len(widths))
	for i, w := range widths {
		segs[i] = strings.Repeat("─", w+2)
	}
	return dimStyle.Render(left+strings.Join(segs, mid)+right) + "\n"
}

// tableCells draws one content line. rightAlign applies from column 1 on.
func tableCells(cells []string, widths []int, style lipgloss.Style, rightAlign bool) string {
	var b strings.Builder
	sep := dimStyle.Render("│")
	b.WriteString(sep)
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if rightAlign && i > 0 {
			b.WriteString(style.Render(fmt.Sprintf(" %*s ", w, cell)))
		} else {
			b.WriteString(style.Render(fmt.Sprintf(" %-*s ", w, cell)))
		}
		b.WriteString(sep)
	}
	b.WriteString("\n")
	return b.String()
}

// RenderUtilizationBar renders a budget utilization bar colored by how
// close spend is to the limit. pct is 0-100 and may exceed 100.
func RenderUtilizationBar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}

	fill := pct / 100
	if fill > 1 {
		fill = 1
	}
	if fill < 0 {
		fill = 0
	}

	filled := int(fill * float64(width))
	if filled > width {
		filled = width
	}

	style := GoodStyle
	switch {
	case pct > 100:
		style = BadStyle
	case pct >= 80:
		style = WarnStyle
	}

	bar := style.Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("[%s] %s", bar, FormatPercent(pct))
}

// RenderSparkline generates a unicode block sparkline from a series of values.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		max = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int(v / max * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		b.WriteRune(blocks[idx])
	}

	return b.String()
}

// RenderHorizontalBar renders one labeled bar of a horizontal bar chart.
func RenderHorizontalBar(label string, value, maxValue float64, maxWidth int) string {
	if maxValue <= 0 {
		return fmt.Sprintf("  %s", label)
	}
	barLen := int(value / maxValue * float64(maxWidth))
	if barLen < 0 {
		barLen = 0
	}
	bar := strings.Repeat("█", barLen)
	return fmt.Sprintf("  %-14s %s", label, mutedStyle.Render(bar))
}
