package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/spendy-ai/spendy/internal/cli"
	"github.com/spendy-ai/spendy/internal/tui/components"
	"github.com/spendy-ai/spendy/internal/tui/theme"
)

func (a App) renderForecastTab(cw int) string {
	t := theme.Active
	fc := a.snap.forecast

	if len(fc.Points) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextMuted).Render(
			"\n  Nothing to forecast yet.")
	}

	var total float64
	for _, p := range fc.Points {
		total += p
	}

	method := string(fc.Method)
	if fc.Degraded {
		method += " (degraded)"
	}

	cards := components.MetricCardRow([]struct{ Label, Value, Hint string }{
		{fmt.Sprintf("Next %d days", len(fc.Points)), cli.FormatMoney(a.currency, int64(total)), "projected spend"},
		{"Daily average", cli.FormatMoney(a.currency, int64(total/float64(len(fc.Points)))), ""},
		{"Method", method, ""},
	}, cw)

	chart := components.BarChart(fc.Points, t.Blue, components.CardInnerWidth(cw), 8)

	var b strings.Builder
	b.WriteString(cards)
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Projected daily spend", chart, cw))

	if len(fc.SeasonalPattern) > 0 {
		dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
		body := components.Sparkline(fc.SeasonalPattern, t.Cyan) + "\n" +
			dimStyle.Render("recurring 7-day spending rhythm")
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Weekly rhythm", body, cw))
	}

	return b.String()
}
