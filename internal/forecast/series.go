// Package forecast produces short-horizon spending forecasts with a tiered
// fallback policy based on data sufficiency.
package forecast

import (
	"time"

	"github.com/spendy-ai/spendy/internal/model"
)

// DailyExpenseSeries buckets expense amounts into a chronologically ordered
// daily series from the earliest transaction through until, zero-filling
// days with no spend. Income transactions are ignored. Returns the series
// and its start date; an input with no expenses yields a nil series.
func DailyExpenseSeries(txns []model.Transaction, until time.Time) ([]float64, time.Time) {
	var start time.Time
	for _, t := range txns {
		if t.Kind != model.Expense {
			continue
		}
		if start.IsZero() || t.Date.Before(start) {
			start = t.Date
		}
	}
	if start.IsZero() {
		return nil, time.Time{}
	}

	start = truncateDay(start)
	end := truncateDay(until)
	if end.Before(start) {
		end = start
	}

	days := int(end.Sub(start).Hours()/24) + 1
	series := make([]float64, days)
	for _, t := range txns {
		if t.Kind != model.Expense {
			continue
		}
		idx := int(truncateDay(t.Date).Sub(start).Hours() / 24)
		if idx >= 0 && idx < days {
			series[idx] += float64(t.Amount)
		}
	}
	return series, start
}

// FilterCategory returns the transactions in the given category, or all
// transactions for the reserved overall category.
func FilterCategory(txns []model.Transaction, category string) []model.Transaction {
	if category == "" || category == model.OverallCategory {
		return txns
	}
	var out []model.Transaction
	for _, t := range txns {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
