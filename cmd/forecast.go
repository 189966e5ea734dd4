package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spendy-ai/spendy/internal/cli"
	"github.com/spendy-ai/spendy/internal/model"
)

var (
	flagFcHorizon  int
	flagFcCategory string
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Project future daily spending",
	RunE:  runForecast,
}

func init() {
	forecastCmd.Flags().IntVarP(&flagFcHorizon, "horizon", "n", 0, "Days to project (default from config)")
	forecastCmd.Flags().StringVarP(&flagFcCategory, "category", "c", "", "Forecast a single category")
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(_ *cobra.Command, _ []string) error {
	e, cfg, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	user := currentUser(cfg)
	currency := cfg.General.Currency

	if flagFcCategory != "" {
		cf, err := e.CategoryForecast(user, flagFcCategory, flagFcHorizon)
		if err != nil {
			return err
		}
		printCategoryForecast(cf, currency)
		return nil
	}

	r, err := e.Forecast(user, flagFcHorizon)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SPENDING FORECAST  Next %dd", len(r.Points))))
	fmt.Println()
	fmt.Printf("  %s\n", cli.RenderSparkline(r.Points))
	fmt.Printf("  Projected total: %s   %s\n",
		cli.MoneyStyle.Render(cli.FormatMoney(currency, int64(sumPoints(r.Points)))),
		methodLabel(r),
	)
	if len(r.SeasonalPattern) > 0 {
		fmt.Printf("  Weekly pattern:  %s\n", cli.RenderSparkline(r.SeasonalPattern))
	}
	return nil
}

func printCategoryForecast(cf model.CategoryForecast, currency string) {
	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s FORECAST  Next %dd", cf.Category, len(cf.Points))))
	fmt.Println()
	fmt.Printf("  %s\n", cli.RenderSparkline(cf.Points))
	fmt.Printf("  Projected total: %s   %s\n",
		cli.MoneyStyle.Render(cli.FormatMoney(currency, int64(sumPoints(cf.Points)))),
		methodLabel(cf.ForecastResult),
	)
	fmt.Printf("  Historical avg:  %s/day (volatility %s)\n",
		cli.FormatMoney(currency, int64(cf.HistoricalAvg)),
		cli.FormatMoney(currency, int64(cf.Volatility)),
	)
	fmt.Printf("  Confidence band: %s - %s total\n",
		cli.FormatMoney(currency, int64(sumPoints(cf.ConfidenceLower))),
		cli.FormatMoney(currency, int64(sumPoints(cf.ConfidenceUpper))),
	)
}

func methodLabel(r model.ForecastResult) string {
	label := string(r.Method)
	if r.Degraded {
		label += ", degraded"
	}
	return "(" + label + ")"
}

func sumPoints(points []float64) float64 {
	var s float64
	for _, p := range points {
		s += p
	}
	return s
}
