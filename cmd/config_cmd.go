// Package cmd implements the spendy CLI commands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spendy-ai/spendy/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the current settings",
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Default user: %s\n", cfg.General.DefaultUser)
	fmt.Printf("    Currency:     %s\n", cfg.General.Currency)
	fmt.Printf("    Ledger:       %s\n", cfg.DBPath())
	fmt.Println()

	fmt.Println("  [Analytics]")
	fmt.Printf("    Profile window:     %d transactions\n", cfg.Analytics.ProfileWindow)
	fmt.Printf("    Min anomaly sample: %d\n", cfg.Analytics.MinAnomalySample)
	fmt.Printf("    Contamination:      %.2f\n", cfg.Analytics.Contamination)
	fmt.Printf("    Forecast horizon:   %d days\n", cfg.Analytics.Horizon)
	fmt.Printf("    Confidence z:       %.2f\n", cfg.Analytics.ConfidenceZ)
	fmt.Printf("    Approaching at:     %.0f%%\n", cfg.Analytics.ApproachingPct)
	fmt.Printf("    Trend ratios:       %.2fx high / %.2fx favorable\n",
		cfg.Analytics.TrendHighRatio, cfg.Analytics.TrendLowRatio)
	fmt.Printf("    Daily spend alert:  %d\n", cfg.Analytics.DailySpendAlert)
	fmt.Printf("    Max fit points:     %d\n", cfg.Analytics.MaxFitPoints)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `spendy config init` to write the file, then edit it.")
	return nil
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Printf("  Wrote %s\n", config.Path())
	return nil
}
