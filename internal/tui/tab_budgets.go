package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/spendy-ai/spendy/internal/cli"
	"github.com/spendy-ai/spendy/internal/model"
	"github.com/spendy-ai/spendy/internal/tui/components"
	"github.com/spendy-ai/spendy/internal/tui/theme"
)

func (a App) renderBudgetsTab(cw int) string {
	t := theme.Active
	snap := a.snap

	if len(snap.statuses) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextMuted).Render(
			"\n  No budgets configured.\n  Set one with 'spendy limits set'.")
	}

	labelW := 0
	for _, s := range snap.statuses {
		if len(s.Category) > labelW {
			labelW = len(s.Category)
		}
	}

	barW := cw - labelW - 12
	if barW > 40 {
		barW = 40
	}
	if barW < 10 {
		barW = 10
	}

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	var bars strings.Builder
	for i, s := range snap.statuses {
		if i > 0 {
			bars.WriteString("\n")
		}
		bars.WriteString(components.UtilizationBar(s.Category, s.UtilizationPct, labelW, barW))
		bars.WriteString("\n")
		bars.WriteString(dimStyle.Render(fmt.Sprintf("%-*s %s of %s spent, %s left",
			labelW, "",
			cli.FormatDecimal(a.currency, s.Spent),
			cli.FormatDecimal(a.currency, s.Limit),
			cli.FormatDecimal(a.currency, s.Remaining),
		)))
		bars.WriteString("\n")
	}

	var b strings.Builder
	b.WriteString(components.ContentCard("Monthly budgets", strings.TrimRight(bars.String(), "\n"), cw))

	// Month-over-month comparison for categories with history.
	var cmp strings.Builder
	for _, s := range snap.statuses {
		if s.LastMonthSpent.IsZero() {
			continue
		}
		delta := deltaPct(s.Spent, s.LastMonthSpent)
		style := lipgloss.NewStyle().Foreground(t.Green)
		if delta > 0 {
			style = lipgloss.NewStyle().Foreground(t.Orange)
		}
		fmt.Fprintf(&cmp, "%-*s %s vs last month\n",
			labelW+2, s.Category, style.Render(cli.FormatSignedPercent(delta)))
	}
	if cmp.Len() > 0 {
		b.WriteString("\n")
		b.WriteString(components.ContentCard("vs last month", strings.TrimRight(cmp.String(), "\n"), cw))
	}

	exceeded := 0
	for _, s := range snap.statuses {
		if s.Status == model.StatusExceeded {
			exceeded++
		}
	}
	if exceeded > 0 {
		b.WriteString("\n ")
		b.WriteString(lipgloss.NewStyle().Foreground(t.Red).Render(
			fmt.Sprintf("%d budget(s) exceeded this month.", exceeded)))
	}

	return b.String()
}

// deltaPct is the percent change of current spend vs the prior month.
func deltaPct(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		return 0
	}
	pct, _ := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}
