// Package analyzer derives a behavioral spending profile from recent
// transaction history.
package analyzer

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/spendy-ai/spendy/internal/model"
)

const (
	// DefaultWindow is the number of most recent transactions a profile
	// is derived from.
	DefaultWindow = 100

	topCategories = 5
	topWeekdays   = 3
	topLocations  = 3
	topHours      = 3
)

// counter tracks frequency plus insertion order for a string key. Ordering
// of ties follows first appearance in the input; the tie-break carries no
// meaning beyond determinism.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(key string) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// top returns up to n keys ranked by descending count, ties by first seen.
func (c *counter) top(n int) []string {
	keys := make([]string, len(c.order))
	copy(keys, c.order)
	sort.SliceStable(keys, func(i, j int) bool {
		return c.counts[keys[i]] > c.counts[keys[j]]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

// ComputeProfile builds a spending profile from the given transactions,
// which should be the user's most recent window ordered newest first.
// An empty input yields an empty profile, not an error. O(n).
func ComputeProfile(txns []model.Transaction) model.SpendingProfile {
	if len(txns) == 0 {
		return model.SpendingProfile{}
	}

	categories := newCounter()
	locations := newCounter()
	weekdays := make(map[int]int)
	hours := make(map[int]int)
	var weekdayOrder, hourOrder []int
	amounts := make(map[string][]float64)

	for _, t := range txns {
		if t.Category != "" {
			categories.add(t.Category)
			amounts[t.Category] = append(amounts[t.Category], float64(t.Amount))
		}

		wd := t.Weekday()
		if _, seen := weekdays[wd]; !seen {
			weekdayOrder = append(weekdayOrder, wd)
		}
		weekdays[wd]++

		if h := t.Hour(); h >= 0 {
			if _, seen := hours[h]; !seen {
				hourOrder = append(hourOrder, h)
			}
			hours[h]++
		}

		if t.Location != "" {
			locations.add(t.Location)
		}
	}

	p := model.SpendingProfile{}

	for _, cat := range categories.top(topCategories) {
		p.TopCategories = append(p.TopCategories, model.CategoryCount{
			Category: cat,
			Count:    categories.counts[cat],
		})
	}

	if len(amounts) > 0 {
		p.AvgAmountByCategory = make(map[string]float64, len(amounts))
		for cat, vals := range amounts {
			p.AvgAmountByCategory[cat] = stat.Mean(vals, nil)
		}
	}

	for _, wd := range topInts(weekdayOrder, weekdays, topWeekdays) {
		p.PreferredWeekdays = append(p.PreferredWeekdays, model.WeekdayCount{Weekday: wd, Count: weekdays[wd]})
	}

	for _, loc := range locations.top(topLocations) {
		p.TopLocations = append(p.TopLocations, model.LocationCount{Location: loc, Count: locations.counts[loc]})
	}

	for _, h := range topInts(hourOrder, hours, topHours) {
		p.PeakHours = append(p.PeakHours, model.HourCount{Hour: h, Count: hours[h]})
	}

	return p
}

func topInts(order []int, counts map[int]int, n int) []int {
	keys := make([]int, len(order))
	copy(keys, order)
	sort.SliceStable(keys, func(i, j int) bool {
		return counts[keys[i]] > counts[keys[j]]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}
