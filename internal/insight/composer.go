// Package insight composes per-transaction insights from the profile,
// budget, and anomaly components.
package insight

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/spendy-ai/spendy/internal/budget"
	"github.com/spendy-ai/spendy/internal/model"
)

const (
	// DefaultHighRatio marks a transaction "high" versus the category
	// average.
	DefaultHighRatio = 1.5
	// DefaultLowRatio marks a transaction "favorable" versus the
	// category average.
	DefaultLowRatio = 0.7
)

// Composer merges the independent sub-insights for one transaction. Each
// leg is evaluated in isolation: a missing category, absent limit, or
// empty profile omits that field, and a panic in one leg never takes out
// the others.
type Composer struct {
	tracker   *budget.Tracker
	highRatio float64
	lowRatio  float64
	log       zerolog.Logger
}

// Option configures a Composer.
type Option func(*Composer)

// WithTrendRatios overrides the high/favorable comparison bands.
func WithTrendRatios(high, low float64) Option {
	return func(c *Composer) {
		c.highRatio = high
		c.lowRatio = low
	}
}

// WithLogger attaches a logger for contained-failure diagnostics.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Composer) { c.log = log }
}

// NewComposer builds a composer over the given budget tracker.
func NewComposer(tracker *budget.Tracker, opts ...Option) *Composer {
	c := &Composer{
		tracker:   tracker,
		highRatio: DefaultHighRatio,
		lowRatio:  DefaultLowRatio,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose builds the insight bundle for one actual or candidate
// transaction. txns is the user's transaction snapshot used for budget
// computation; the profile legs need only the precomputed profile. The
// budget leg runs concurrently with the profile legs and Compose joins
// both before returning.
func (c *Composer) Compose(userID string, txn model.Transaction, profile model.SpendingProfile, txns []model.Transaction, anchor time.Time) model.InsightsBundle {
	var bundle model.InsightsBundle

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.contain("budget-impact", func() {
			bundle.BudgetImpact = c.budgetImpact(userID, txn, txns, anchor)
		})
	}()

	c.contain("spending-trend", func() {
		bundle.Trend = c.spendingTrend(txn, profile)
	})
	c.contain("category-rank", func() {
		bundle.Rank = c.categoryRank(txn, profile)
	})
	c.contain("unusual-time", func() {
		bundle.UnusualTime = c.unusualTime(txn, profile)
	})

	wg.Wait()
	return bundle
}

// spendingTrend compares the amount to the category's historical average.
func (c *Composer) spendingTrend(txn model.Transaction, profile model.SpendingProfile) *model.SpendingTrend {
	if txn.Category == "" {
		return nil
	}
	avg, ok := profile.AvgAmountByCategory[txn.Category]
	if !ok || avg <= 0 {
		return nil
	}

	amount := float64(txn.Amount)
	deltaPct := (amount - avg) / avg * 100

	switch {
	case amount > avg*c.highRatio:
		return &model.SpendingTrend{Direction: model.TrendHigh, Average: avg, DeltaPct: deltaPct}
	case amount < avg*c.lowRatio:
		return &model.SpendingTrend{Direction: model.TrendFavorable, Average: avg, DeltaPct: deltaPct}
	default:
		return nil
	}
}

// categoryRank reports the category's position among the user's most
// frequent categories.
func (c *Composer) categoryRank(txn model.Transaction, profile model.SpendingProfile) *model.CategoryRank {
	if txn.Category == "" {
		return nil
	}
	rank, count := profile.CategoryRank(txn.Category)
	if rank == 0 {
		return nil
	}
	return &model.CategoryRank{Rank: rank, Count: count}
}

// budgetImpact reports the month-to-date budget position for the
// transaction's category, omitted when no limit is configured.
func (c *Composer) budgetImpact(userID string, txn model.Transaction, txns []model.Transaction, anchor time.Time) *model.BudgetStatus {
	if txn.Category == "" {
		return nil
	}
	status := c.tracker.Status(userID, txn.Category, txns, anchor)
	if !status.HasLimit {
		return nil
	}
	return &status
}

// unusualTime flags transactions logged outside the user's peak hours.
func (c *Composer) unusualTime(txn model.Transaction, profile model.SpendingProfile) *model.UnusualTime {
	hour := txn.Hour()
	if hour < 0 || len(profile.PeakHours) == 0 {
		return nil
	}
	if profile.IsPeakHour(hour) {
		return nil
	}
	return &model.UnusualTime{Hour: hour, PeakHours: profile.PeakHours}
}

// contain runs one insight leg, swallowing any panic so the remaining
// legs still compute.
func (c *Composer) contain(leg string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Warn().Str("leg", leg).Interface("panic", r).Msg("insight leg failed, omitting")
		}
	}()
	fn()
}
