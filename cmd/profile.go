package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spendy-ai/spendy/internal/cli"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your spending profile",
	Long:  "Shows spending habits derived from recent history: top categories,\npreferred days, peak hours, and frequent locations.",
	RunE:  runProfile,
}

func init() {
	rootCmd.AddCommand(profileCmd)
}

func runProfile(_ *cobra.Command, _ []string) error {
	e, cfg, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	user := currentUser(cfg)
	currency := cfg.General.Currency

	p, err := e.Profile(user)
	if err != nil {
		return err
	}
	if p.Empty() {
		fmt.Println("\n  Not enough history for a profile yet.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SPENDING PROFILE  %s", user)))
	fmt.Println()

	if len(p.TopCategories) > 0 {
		rows := make([][]string, 0, len(p.TopCategories))
		for i, c := range p.TopCategories {
			avg := "-"
			if a, ok := p.AvgAmountByCategory[c.Category]; ok {
				avg = cli.FormatMoney(currency, int64(a))
			}
			rows = append(rows, []string{
				fmt.Sprintf("#%d %s", i+1, c.Category),
				cli.FormatNumber(int64(c.Count)),
				avg,
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Top categories",
			Headers: []string{"Category", "Transactions", "Avg amount"},
			Rows:    rows,
		}))
		fmt.Println()

		// TopCategories is ordered by count, so the first sets the scale.
		top := float64(p.TopCategories[0].Count)
		for _, c := range p.TopCategories {
			fmt.Println(cli.RenderHorizontalBar(c.Category, float64(c.Count), top, 30))
		}
		fmt.Println()
	}

	if len(p.PreferredWeekdays) > 0 {
		parts := make([]string, 0, len(p.PreferredWeekdays))
		for _, w := range p.PreferredWeekdays {
			parts = append(parts, fmt.Sprintf("%s (%d)", cli.FormatDayOfWeek(w.Weekday), w.Count))
		}
		fmt.Printf("  Preferred days:  %s\n", strings.Join(parts, ", "))
	}

	if len(p.PeakHours) > 0 {
		parts := make([]string, 0, len(p.PeakHours))
		for _, h := range p.PeakHours {
			parts = append(parts, fmt.Sprintf("%s (%d)", cli.FormatHour(h.Hour), h.Count))
		}
		fmt.Printf("  Peak hours:      %s\n", strings.Join(parts, ", "))
	}

	if len(p.TopLocations) > 0 {
		parts := make([]string, 0, len(p.TopLocations))
		for _, l := range p.TopLocations {
			parts = append(parts, fmt.Sprintf("%s (%d)", l.Location, l.Count))
		}
		fmt.Printf("  Frequent places: %s\n", strings.Join(parts, ", "))
	}

	return nil
}
