package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/spendy-ai/spendy/internal/cli"
	"github.com/spendy-ai/spendy/internal/model"
)

var limitsCmd = &cobra.Command{
	Use:   "limits",
	Short: "Manage monthly category limits",
	RunE:  runLimitsList,
}

var limitsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured limits",
	RunE:  runLimitsList,
}

var limitsSetCmd = &cobra.Command{
	Use:   "set [category] [amount]",
	Short: "Set a monthly limit",
	Long: "Sets a monthly spending limit for a category. With no arguments an\n" +
		"interactive form is shown. The reserved category \"all\" limits total\n" +
		"monthly spending.",
	Args: cobra.MaximumNArgs(2),
	RunE: runLimitsSet,
}

var limitsRemoveCmd = &cobra.Command{
	Use:   "remove <category>",
	Short: "Remove a category limit",
	Args:  cobra.ExactArgs(1),
	RunE:  runLimitsRemove,
}

func init() {
	limitsCmd.AddCommand(limitsListCmd)
	limitsCmd.AddCommand(limitsSetCmd)
	limitsCmd.AddCommand(limitsRemoveCmd)
	rootCmd.AddCommand(limitsCmd)
}

func runLimitsList(_ *cobra.Command, _ []string) error {
	e, cfg, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	user := currentUser(cfg)

	limits, err := e.Limits(user)
	if err != nil {
		return err
	}
	if len(limits) == 0 {
		fmt.Println("\n  No limits configured. Set one with 'spendy limits set'.")
		return nil
	}

	rows := make([][]string, 0, len(limits))
	for _, l := range limits {
		rows = append(rows, []string{l.Category, cli.FormatDecimal(cfg.General.Currency, l.MonthlyLimit)})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Monthly limits",
		Headers: []string{"Category", "Limit"},
		Rows:    rows,
	}))
	return nil
}

func runLimitsSet(_ *cobra.Command, args []string) error {
	e, cfg, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	user := currentUser(cfg)

	var category, amount string
	if len(args) > 0 {
		category = args[0]
	}
	if len(args) > 1 {
		amount = args[1]
	}

	if category == "" || amount == "" {
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Category").
				Description("Use \"all\" for a total monthly limit").
				Value(&category).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("category is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Monthly limit").
				Value(&amount).
				Validate(validateLimit),
		))
		if err := form.Run(); err != nil {
			return err
		}
	}

	limit, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("bad limit %q", amount)
	}

	err = e.SetLimit(model.CategoryLimit{UserID: user, Category: category, MonthlyLimit: limit})
	if err != nil {
		return err
	}

	fmt.Printf("\n  Monthly limit for %s set to %s\n",
		category, cli.FormatDecimal(cfg.General.Currency, limit))
	return nil
}

func runLimitsRemove(_ *cobra.Command, args []string) error {
	e, cfg, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	user := currentUser(cfg)
	if err := e.RemoveLimit(user, args[0]); err != nil {
		return err
	}
	fmt.Printf("\n  Removed limit for %s\n", args[0])
	return nil
}

func validateLimit(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if d.IsNegative() {
		return fmt.Errorf("limit must not be negative")
	}
	return nil
}
