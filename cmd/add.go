package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/spendy-ai/spendy/internal/cli"
	"github.com/spendy-ai/spendy/internal/model"
)

var (
	flagAddItem     string
	flagAddCategory string
	flagAddAmount   int64
	flagAddIncome   bool
	flagAddDate     string
	flagAddTime     string
	flagAddLocation string
	flagAddLat      float64
	flagAddLon      float64
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a transaction and show its insights",
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&flagAddItem, "item", "i", "", "What the money was spent on")
	addCmd.Flags().StringVarP(&flagAddCategory, "category", "c", "", "Spending category")
	addCmd.Flags().Int64VarP(&flagAddAmount, "amount", "a", 0, "Amount in whole currency units")
	addCmd.Flags().BoolVar(&flagAddIncome, "income", false, "Log income instead of an expense")
	addCmd.Flags().StringVar(&flagAddDate, "date", "", "Date (YYYY-MM-DD, default today)")
	addCmd.Flags().StringVar(&flagAddTime, "time", "", "Time of day (HH:MM)")
	addCmd.Flags().StringVar(&flagAddLocation, "location", "", "Where the transaction happened")
	addCmd.Flags().Float64Var(&flagAddLat, "lat", 0, "Latitude")
	addCmd.Flags().Float64Var(&flagAddLon, "lon", 0, "Longitude")
	_ = addCmd.MarkFlagRequired("item")
	_ = addCmd.MarkFlagRequired("category")
	_ = addCmd.MarkFlagRequired("amount")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, _ []string) error {
	if flagAddAmount < 0 {
		return fmt.Errorf("amount must not be negative")
	}

	e, cfg, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	user := currentUser(cfg)
	currency := cfg.General.Currency

	txn := model.Transaction{
		UserID:   user,
		Item:     flagAddItem,
		Category: flagAddCategory,
		Kind:     model.Expense,
		Amount:   flagAddAmount,
		Date:     time.Now(),
		Location: flagAddLocation,
	}
	if flagAddIncome {
		txn.Kind = model.Income
	}

	if flagAddDate != "" {
		txn.Date, err = time.Parse("2006-01-02", flagAddDate)
		if err != nil {
			return fmt.Errorf("bad date %q (want YYYY-MM-DD)", flagAddDate)
		}
	}
	if flagAddTime != "" {
		tod, err := time.Parse("15:04", flagAddTime)
		if err != nil {
			return fmt.Errorf("bad time %q (want HH:MM)", flagAddTime)
		}
		txn.TimeOfDay = &tod
	}
	if cmd.Flags().Changed("lat") {
		txn.Latitude = &flagAddLat
	}
	if cmd.Flags().Changed("lon") {
		txn.Longitude = &flagAddLon
	}

	// Evaluate the budget position before the transaction lands so the
	// alert reflects what this entry does to the remaining budget.
	var alert *model.BudgetAlert
	if txn.Kind == model.Expense {
		alert, err = e.CheckBudgetAlert(user, txn.Category, txn.Amount)
		if err != nil {
			return err
		}
	}

	saved, err := e.RecordTransaction(txn)
	if err != nil {
		return err
	}

	if !flagQuiet {
		fmt.Printf("\n  Logged %s for %s (%s)\n",
			cli.FormatMoney(currency, saved.Amount), saved.Item, saved.Category)
	}

	if alert != nil {
		fmt.Println()
		fmt.Println("  " + cli.BadStyle.Render(fmt.Sprintf(
			"Budget alert: %s exceeds the remaining %s budget by %s",
			cli.FormatDecimal(currency, alert.Amount),
			alert.Category,
			cli.FormatDecimal(currency, alert.Excess),
		)))
	}

	if txn.Kind == model.Expense {
		bundle, err := e.Insights(user, saved)
		if err != nil {
			return err
		}
		printInsights(bundle, currency)
	}

	return nil
}
