package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/spendy-ai/spendy/internal/cli"
	"github.com/spendy-ai/spendy/internal/model"
)

var (
	flagInsCategory string
	flagInsAmount   int64
	flagInsTime     string
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Evaluate a prospective expense without logging it",
	Long: "Shows the insights and budget alert a transaction would trigger,\n" +
		"without recording anything.",
	RunE: runInsights,
}

func init() {
	insightsCmd.Flags().StringVarP(&flagInsCategory, "category", "c", "", "Spending category")
	insightsCmd.Flags().Int64VarP(&flagInsAmount, "amount", "a", 0, "Amount in whole currency units")
	insightsCmd.Flags().StringVar(&flagInsTime, "time", "", "Time of day (HH:MM, default now)")
	_ = insightsCmd.MarkFlagRequired("category")
	_ = insightsCmd.MarkFlagRequired("amount")
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(_ *cobra.Command, _ []string) error {
	if flagInsAmount < 0 {
		return fmt.Errorf("amount must not be negative")
	}

	e, cfg, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	user := currentUser(cfg)
	currency := cfg.General.Currency

	now := time.Now()
	tod := now
	if flagInsTime != "" {
		tod, err = time.Parse("15:04", flagInsTime)
		if err != nil {
			return fmt.Errorf("bad time %q (want HH:MM)", flagInsTime)
		}
	}

	candidate := model.Transaction{
		UserID:    user,
		Category:  flagInsCategory,
		Kind:      model.Expense,
		Amount:    flagInsAmount,
		Date:      now,
		TimeOfDay: &tod,
	}

	alert, err := e.CheckBudgetAlert(user, candidate.Category, candidate.Amount)
	if err != nil {
		return err
	}
	if alert != nil {
		fmt.Println()
		fmt.Println("  " + cli.BadStyle.Render(fmt.Sprintf(
			"Budget alert: this would exceed the remaining %s budget by %s",
			alert.Category,
			cli.FormatDecimal(currency, alert.Excess),
		)))
	}

	bundle, err := e.Insights(user, candidate)
	if err != nil {
		return err
	}
	printInsights(bundle, currency)

	if alert == nil && bundle.Empty() {
		fmt.Println("\n  Nothing notable about this expense.")
	}
	return nil
}

// printInsights renders whatever legs of the bundle are present.
func printInsights(bundle model.InsightsBundle, currency string) {
	if bundle.Empty() {
		return
	}
	fmt.Println()

	if t := bundle.Trend; t != nil {
		line := fmt.Sprintf("%s vs your category average of %s",
			cli.FormatSignedPercent(t.DeltaPct),
			cli.FormatMoney(currency, int64(t.Average)),
		)
		if t.Direction == model.TrendHigh {
			fmt.Println("  " + cli.WarnStyle.Render("Higher than usual: "+line))
		} else {
			fmt.Println("  " + cli.GoodStyle.Render("Below your usual: "+line))
		}
	}

	if r := bundle.Rank; r != nil {
		fmt.Printf("  #%d most frequent category (%d recent transactions)\n", r.Rank, r.Count)
	}

	if b := bundle.BudgetImpact; b != nil {
		line := fmt.Sprintf("Budget: %s of %s spent this month (%s)",
			cli.FormatDecimal(currency, b.Spent),
			cli.FormatDecimal(currency, b.Limit),
			cli.FormatPercent(b.UtilizationPct),
		)
		switch b.Status {
		case model.StatusExceeded:
			fmt.Println("  " + cli.BadStyle.Render(line))
		case model.StatusApproaching:
			fmt.Println("  " + cli.WarnStyle.Render(line))
		default:
			fmt.Println("  " + line)
		}
	}

	if u := bundle.UnusualTime; u != nil {
		peaks := make([]string, 0, len(u.PeakHours))
		for _, p := range u.PeakHours {
			peaks = append(peaks, cli.FormatHour(p.Hour))
		}
		fmt.Printf("  Unusual time: you rarely spend at %s (usually %s)\n",
			cli.FormatHour(u.Hour), strings.Join(peaks, ", "))
	}
}
