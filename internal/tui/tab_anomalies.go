package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/spendy-ai/spendy/internal/cli"
	"github.com/spendy-ai/spendy/internal/tui/components"
	"github.com/spendy-ai/spendy/internal/tui/theme"
)

func (a App) renderAnomaliesTab(cw int) string {
	t := theme.Active
	report := a.snap.report

	if report.Empty() || len(report.Flagged) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextMuted).Render(
			"\n  Nothing unusual in recent spending.")
	}

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	moneyStyle := lipgloss.NewStyle().Foreground(t.Yellow)
	scoreStyle := lipgloss.NewStyle().Foreground(t.Red).Bold(true)

	var rows strings.Builder
	for i, txn := range report.Flagged {
		hour := "     "
		if h := txn.Hour(); h >= 0 {
			hour = fmt.Sprintf("%-5s", cli.FormatHour(h))
		}
		fmt.Fprintf(&rows, "%s  %s %s %s %s  %s\n",
			dimStyle.Render(txn.Date.Format("Jan 02")),
			rowStyle.Render(fmt.Sprintf("%-*s", 22, truncStr(txn.Item, 22))),
			dimStyle.Render(fmt.Sprintf("%-*s", 14, truncStr(txn.Category, 14))),
			moneyStyle.Render(fmt.Sprintf("%10s", cli.FormatMoney(a.currency, txn.Amount))),
			dimStyle.Render(hour),
			scoreStyle.Render(fmt.Sprintf("%.3f", report.Scores[report.FlaggedIndices[i]])),
		)
	}

	var b strings.Builder
	b.WriteString(components.ContentCard("Unusual expenses", strings.TrimRight(rows.String(), "\n"), cw))
	b.WriteString("\n ")
	b.WriteString(lipgloss.NewStyle().Foreground(t.Orange).Render(fmt.Sprintf(
		"%d of your recent expenses stand out from your usual pattern.", len(report.Flagged))))
	b.WriteString("\n ")
	b.WriteString(dimStyle.Render("Scores rank how far each expense sits from your routine; higher is stranger."))

	return b.String()
}
