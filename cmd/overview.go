package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spendy-ai/spendy/internal/cli"
	"github.com/spendy-ai/spendy/internal/model"
)

const overviewRecent = 10

func runOverview(_ *cobra.Command, _ []string) error {
	e, cfg, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	user := currentUser(cfg)
	currency := cfg.General.Currency

	recent, err := e.RecentTransactions(user, overviewRecent)
	if err != nil {
		return err
	}
	if len(recent) == 0 {
		fmt.Println("\n  No transactions yet. Log one with 'spendy add' or load demo data with 'spendy seed'.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("SPENDING OVERVIEW"))
	fmt.Println()

	rows := make([][]string, 0, len(recent))
	for _, t := range recent {
		amount := cli.FormatMoney(currency, t.Amount)
		if t.Kind == model.Income {
			amount = "+" + amount
		}
		rows = append(rows, []string{
			t.Date.Format("2006-01-02"),
			t.Item,
			t.Category,
			amount,
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Recent",
		Headers: []string{"Date", "Item", "Category", "Amount"},
		Rows:    rows,
	}))

	statuses, err := e.BudgetStatuses(user)
	if err != nil {
		return err
	}
	if len(statuses) > 0 {
		fmt.Println()
		for _, s := range statuses {
			fmt.Printf("  %-14s %s %s / %s\n",
				s.Category,
				cli.RenderUtilizationBar(s.UtilizationPct, 20),
				cli.FormatDecimal(currency, s.Spent),
				cli.FormatDecimal(currency, s.Limit),
			)
		}
	}

	suggestions, err := e.Suggestions(user)
	if err != nil {
		return err
	}
	for _, s := range suggestions {
		fmt.Println()
		fmt.Println("  " + cli.WarnStyle.Render(s.Message))
	}

	return nil
}
