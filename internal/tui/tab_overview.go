package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/spendy-ai/spendy/internal/cli"
	"github.com/spendy-ai/spendy/internal/model"
	"github.com/spendy-ai/spendy/internal/tui/components"
	"github.com/spendy-ai/spendy/internal/tui/theme"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	snap := a.snap

	if snap.count == 0 {
		return lipgloss.NewStyle().Foreground(t.TextMuted).Render(
			"\n  No transactions yet.\n  Log one with 'spendy add' or load demo data with 'spendy seed'.")
	}

	topCategory := "-"
	if len(snap.profile.TopCategories) > 0 {
		topCategory = snap.profile.TopCategories[0].Category
	}

	lastMonthHint := ""
	if !snap.overall.LastMonthSpent.IsZero() {
		lastMonthHint = "last month " + cli.FormatDecimal(a.currency, snap.overall.LastMonthSpent)
	}

	cards := components.MetricCardRow([]struct{ Label, Value, Hint string }{
		{"This month", cli.FormatDecimal(a.currency, snap.overall.Spent), lastMonthHint},
		{"Transactions", cli.FormatNumber(int64(snap.count)), ""},
		{"Top category", topCategory, ""},
		{"Flagged", fmt.Sprintf("%d", len(snap.report.Flagged)), "unusual expenses"},
	}, cw)

	var b strings.Builder
	b.WriteString(cards)
	b.WriteString("\n")

	// Recent transactions
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	moneyStyle := lipgloss.NewStyle().Foreground(t.Yellow)
	incomeStyle := lipgloss.NewStyle().Foreground(t.Green)

	var rows strings.Builder
	for _, txn := range snap.recent {
		amount := moneyStyle.Render(cli.FormatMoney(a.currency, txn.Amount))
		if txn.Kind == model.Income {
			amount = incomeStyle.Render("+" + cli.FormatMoney(a.currency, txn.Amount))
		}
		fmt.Fprintf(&rows, "%s  %s %s %s\n",
			dimStyle.Render(txn.Date.Format("Jan 02")),
			rowStyle.Render(fmt.Sprintf("%-*s", 24, truncStr(txn.Item, 24))),
			dimStyle.Render(fmt.Sprintf("%-*s", 14, truncStr(txn.Category, 14))),
			amount,
		)
	}
	b.WriteString(components.ContentCard("Recent", strings.TrimRight(rows.String(), "\n"), cw))

	for _, s := range snap.suggestions {
		b.WriteString("\n ")
		b.WriteString(lipgloss.NewStyle().Foreground(t.Orange).Render(s.Message))
	}

	return b.String()
}
