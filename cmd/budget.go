package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spendy-ai/spendy/internal/cli"
	"github.com/spendy-ai/spendy/internal/model"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Month-to-date budget status per category",
	RunE:  runBudget,
}

func init() {
	rootCmd.AddCommand(budgetCmd)
}

func runBudget(_ *cobra.Command, _ []string) error {
	e, cfg, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	user := currentUser(cfg)
	currency := cfg.General.Currency

	statuses, err := e.BudgetStatuses(user)
	if err != nil {
		return err
	}
	if len(statuses) == 0 {
		fmt.Println("\n  No budgets configured. Set one with 'spendy limits set'.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("MONTHLY BUDGETS"))
	fmt.Println()

	rows := make([][]string, 0, len(statuses))
	for _, s := range statuses {
		rows = append(rows, []string{
			s.Category,
			cli.FormatDecimal(currency, s.Limit),
			cli.FormatDecimal(currency, s.Spent),
			cli.FormatDecimal(currency, s.LastMonthSpent),
			cli.FormatDecimal(currency, s.Remaining),
			statusLabel(s.Status),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Category", "Limit", "Spent", "Last month", "Remaining", "Status"},
		Rows:    rows,
	}))

	fmt.Println()
	for _, s := range statuses {
		fmt.Printf("  %-14s %s\n", s.Category, cli.RenderUtilizationBar(s.UtilizationPct, 24))
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

func statusLabel(s model.UtilizationStatus) string {
	switch s {
	case model.StatusExceeded:
		return cli.BadStyle.Render("exceeded")
	case model.StatusApproaching:
		return cli.WarnStyle.Render("approaching")
	default:
		return cli.GoodStyle.Render("under")
	}
}
