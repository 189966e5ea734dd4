package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spendy-ai/spendy/internal/cli"
)

var anomaliesCmd = &cobra.Command{
	Use:   "anomalies",
	Short: "Flag unusual expenses in recent history",
	RunE:  runAnomalies,
}

func init() {
	rootCmd.AddCommand(anomaliesCmd)
}

func runAnomalies(_ *cobra.Command, _ []string) error {
	e, cfg, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	user := currentUser(cfg)
	currency := cfg.General.Currency

	report, err := e.DetectAnomalies(user)
	if err != nil {
		return err
	}
	if report.Empty() {
		fmt.Println("\n  Nothing unusual in recent spending.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("UNUSUAL EXPENSES"))
	fmt.Println()

	rows := make([][]string, 0, len(report.Flagged))
	for i, t := range report.Flagged {
		hour := "-"
		if h := t.Hour(); h >= 0 {
			hour = cli.FormatHour(h)
		}
		rows = append(rows, []string{
			t.Date.Format("2006-01-02"),
			t.Item,
			t.Category,
			cli.FormatMoney(currency, t.Amount),
			hour,
			fmt.Sprintf("%.3f", report.Scores[report.FlaggedIndices[i]]),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Item", "Category", "Amount", "Time", "Score"},
		Rows:    rows,
	}))

	fmt.Println()
	fmt.Println("  " + cli.WarnStyle.Render(fmt.Sprintf(
		"%d of your recent expenses stand out from your usual pattern.", len(report.Flagged))))
	return nil
}
