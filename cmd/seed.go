package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/spendy-ai/spendy/internal/model"
)

var flagSeedDays int

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load deterministic demo data",
	Long:  "Generates a realistic transaction history so every feature has\nsomething to show. The data is deterministic across runs.",
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().IntVar(&flagSeedDays, "days", 90, "Days of history to generate")
	rootCmd.AddCommand(seedCmd)
}

// demoPattern describes one recurring spending habit.
type demoPattern struct {
	item     string
	category string
	location string
	base     int64
	jitter   int64
	hour     int
	// chance the habit fires on a given day, in percent
	chance int
}

var demoPatterns = []demoPattern{
	{"Lunch", "Food", "Corner Deli", 14, 6, 12, 85},
	{"Coffee", "Food", "Drip House", 5, 2, 9, 70},
	{"Dinner out", "Food", "Trattoria", 38, 15, 19, 30},
	{"Bus fare", "Transport", "", 3, 0, 8, 60},
	{"Rideshare", "Transport", "", 18, 9, 22, 15},
	{"Groceries", "Groceries", "Greenmart", 62, 20, 17, 35},
	{"Streaming", "Entertainment", "", 12, 0, 20, 4},
	{"Movie night", "Entertainment", "Cinema 7", 25, 8, 20, 8},
}

func runSeed(_ *cobra.Command, _ []string) error {
	e, cfg, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	user := currentUser(cfg)
	rng := rand.New(rand.NewSource(42))

	var batch []model.Transaction
	start := time.Now().AddDate(0, 0, -flagSeedDays+1)

	for day := 0; day < flagSeedDays; day++ {
		date := start.AddDate(0, 0, day)

		// Monthly fixtures on the 1st.
		if date.Day() == 1 {
			batch = append(batch,
				demoTxn(user, "Salary", "Work", "", model.Income, 4200, date, 9),
				demoTxn(user, "Rent", "Housing", "", model.Expense, 1450, date, 10),
				demoTxn(user, "Utilities", "Housing", "", model.Expense, 120+rng.Int63n(40), date, 11),
			)
		}

		for _, p := range demoPatterns {
			if rng.Intn(100) >= p.chance {
				continue
			}
			amount := p.base
			if p.jitter > 0 {
				amount += rng.Int63n(2*p.jitter+1) - p.jitter
			}
			if amount < 1 {
				amount = 1
			}
			batch = append(batch, demoTxn(user, p.item, p.category, p.location, model.Expense, amount, date, p.hour))
		}
	}

	// A couple of entries that should stand out as anomalies.
	batch = append(batch,
		demoTxn(user, "Emergency repair", "Housing", "", model.Expense, 900, start.AddDate(0, 0, flagSeedDays/2), 3),
		demoTxn(user, "Concert tickets", "Entertainment", "", model.Expense, 350, start.AddDate(0, 0, flagSeedDays-10), 23),
	)

	n, err := e.ImportTransactions(batch)
	if err != nil {
		return err
	}

	demoLimits := map[string]int64{
		"Food":          450,
		"Groceries":     400,
		"Entertainment": 120,
		"Transport":     150,
	}
	for category, limit := range demoLimits {
		err := e.SetLimit(model.CategoryLimit{
			UserID: user, Category: category, MonthlyLimit: decimal.NewFromInt(limit),
		})
		if err != nil {
			return err
		}
	}

	fmt.Printf("\n  Seeded %d transactions and %d limits for %s\n", n, len(demoLimits), user)
	return nil
}

func demoTxn(user, item, category, location string, kind model.Kind, amount int64, date time.Time, hour int) model.Transaction {
	tod := time.Date(0, 1, 1, hour, 0, 0, 0, time.UTC)
	return model.Transaction{
		UserID:    user,
		Item:      item,
		Category:  category,
		Kind:      kind,
		Amount:    amount,
		Date:      date,
		TimeOfDay: &tod,
		Location:  location,
	}
}
