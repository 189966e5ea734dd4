// Package engine wires the ledger store to the analytics components and
// exposes the operations the commands and TUI consume.
package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/spendy-ai/spendy/internal/analyzer"
	"github.com/spendy-ai/spendy/internal/anomaly"
	"github.com/spendy-ai/spendy/internal/budget"
	"github.com/spendy-ai/spendy/internal/config"
	"github.com/spendy-ai/spendy/internal/forecast"
	"github.com/spendy-ai/spendy/internal/insight"
	"github.com/spendy-ai/spendy/internal/model"
	"github.com/spendy-ai/spendy/internal/profilecache"
	"github.com/spendy-ai/spendy/internal/store"
)

// Engine is the facade over the intelligence components. Construct with
// New; the zero value is not usable.
type Engine struct {
	store      *store.Store
	cache      *profilecache.Cache
	tracker    *budget.Tracker
	detector   *anomaly.Detector
	forecaster *forecast.Forecaster
	composer   *insight.Composer

	profileWindow int
	horizon       int
	log           zerolog.Logger
	now           func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger attaches a logger, propagated to every component.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithClock overrides the time source. Tests use this to pin the anchor
// date.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New builds an engine over the ledger store, tuned by the analytics
// config.
func New(st *store.Store, cfg config.AnalyticsConfig, opts ...Option) (*Engine, error) {
	e := &Engine{
		store:         st,
		profileWindow: cfg.ProfileWindow,
		horizon:       cfg.Horizon,
		log:           zerolog.Nop(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	cache, err := profilecache.New()
	if err != nil {
		return nil, fmt.Errorf("creating profile cache: %w", err)
	}
	e.cache = cache

	e.tracker = budget.NewTracker(st,
		budget.WithApproachingPct(cfg.ApproachingPct),
		budget.WithDailySpendAlert(cfg.DailySpendAlert),
		budget.WithLogger(e.log),
	)
	e.detector = anomaly.NewDetector(
		anomaly.WithMinSample(cfg.MinAnomalySample),
		anomaly.WithContamination(cfg.Contamination),
		anomaly.WithLogger(e.log),
	)
	e.forecaster = forecast.New(
		forecast.WithMaxFitPoints(cfg.MaxFitPoints),
		forecast.WithConfidenceZ(cfg.ConfidenceZ),
		forecast.WithLogger(e.log),
	)
	e.composer = insight.NewComposer(e.tracker,
		insight.WithTrendRatios(cfg.TrendHighRatio, cfg.TrendLowRatio),
		insight.WithLogger(e.log),
	)

	return e, nil
}

// Close releases the engine's cache. The store is owned by the caller.
func (e *Engine) Close() {
	e.cache.Close()
}

// RecordTransaction persists one transaction and invalidates the user's
// cached profile. A missing ID is assigned.
func (e *Engine) RecordTransaction(t model.Transaction) (model.Transaction, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if err := e.store.AddTransaction(t); err != nil {
		return t, err
	}
	e.cache.Invalidate(t.UserID)
	return t, nil
}

// ImportTransactions persists a batch, assigning missing IDs, and
// invalidates the cached profile of every user in the batch.
func (e *Engine) ImportTransactions(batch []model.Transaction) (int, error) {
	users := make(map[string]struct{})
	for i := range batch {
		if batch[i].ID == "" {
			batch[i].ID = uuid.NewString()
		}
		users[batch[i].UserID] = struct{}{}
	}
	if err := e.store.InsertTransactions(batch); err != nil {
		return 0, err
	}
	for u := range users {
		e.cache.Invalidate(u)
	}
	return len(batch), nil
}

// Profile returns the user's spending profile, computed over the most
// recent transaction window and cached for the calendar day.
func (e *Engine) Profile(userID string) (model.SpendingProfile, error) {
	now := e.now()
	if p, ok := e.cache.Get(userID, now); ok {
		return p, nil
	}

	txns, err := e.store.RecentTransactions(userID, e.profileWindow)
	if err != nil {
		return model.SpendingProfile{}, fmt.Errorf("loading recent transactions: %w", err)
	}

	p := analyzer.ComputeProfile(txns)
	e.cache.Put(userID, now, p)
	return p, nil
}

// DetectAnomalies scores the user's recent expense window and returns the
// flagged transactions. Small histories yield an empty report.
func (e *Engine) DetectAnomalies(userID string) (model.AnomalyReport, error) {
	txns, err := e.store.RecentTransactions(userID, e.profileWindow)
	if err != nil {
		return model.AnomalyReport{}, fmt.Errorf("loading recent transactions: %w", err)
	}

	expenses := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		if t.Kind == model.Expense {
			expenses = append(expenses, t)
		}
	}
	return e.detector.Detect(expenses), nil
}

// Forecast projects the user's total daily spend. A non-positive horizon
// uses the configured default.
func (e *Engine) Forecast(userID string, horizon int) (model.ForecastResult, error) {
	if horizon <= 0 {
		horizon = e.horizon
	}
	txns, err := e.store.ListTransactions(userID, time.Time{}, time.Time{})
	if err != nil {
		return model.ForecastResult{}, fmt.Errorf("loading transactions: %w", err)
	}
	series, _ := forecast.DailyExpenseSeries(txns, e.now())
	return e.forecaster.Forecast(series, horizon), nil
}

// CategoryForecast projects one category's daily spend with confidence
// bands. The reserved overall category covers all spend.
func (e *Engine) CategoryForecast(userID, category string, horizon int) (model.CategoryForecast, error) {
	if horizon <= 0 {
		horizon = e.horizon
	}
	txns, err := e.store.ListTransactions(userID, time.Time{}, time.Time{})
	if err != nil {
		return model.CategoryForecast{}, fmt.Errorf("loading transactions: %w", err)
	}
	return e.forecaster.CategoryForecast(txns, category, horizon, e.now()), nil
}

// BudgetStatus reports the month-to-date position for one category.
func (e *Engine) BudgetStatus(userID, category string) (model.BudgetStatus, error) {
	txns, err := e.budgetWindow(userID)
	if err != nil {
		return model.BudgetStatus{}, err
	}
	return e.tracker.Status(userID, category, txns, e.now()), nil
}

// BudgetStatuses reports the month-to-date position for every configured
// limit of the user.
func (e *Engine) BudgetStatuses(userID string) ([]model.BudgetStatus, error) {
	txns, err := e.budgetWindow(userID)
	if err != nil {
		return nil, err
	}
	return e.tracker.AllStatuses(userID, txns, e.now()), nil
}

// CheckBudgetAlert evaluates a prospective expense amount against the
// category's remaining monthly budget.
func (e *Engine) CheckBudgetAlert(userID, category string, amount int64) (*model.BudgetAlert, error) {
	txns, err := e.budgetWindow(userID)
	if err != nil {
		return nil, err
	}
	return e.tracker.CheckAlert(userID, category, amount, txns, e.now()), nil
}

// Suggestions returns spending suggestions derived from the current
// month's activity.
func (e *Engine) Suggestions(userID string) ([]model.Suggestion, error) {
	txns, err := e.budgetWindow(userID)
	if err != nil {
		return nil, err
	}
	var out []model.Suggestion
	if s := e.tracker.DailySuggestion(txns, e.now()); s != nil {
		out = append(out, *s)
	}
	return out, nil
}

// Insights composes the per-transaction insight bundle for an actual or
// candidate transaction.
func (e *Engine) Insights(userID string, txn model.Transaction) (model.InsightsBundle, error) {
	profile, err := e.Profile(userID)
	if err != nil {
		return model.InsightsBundle{}, err
	}
	txns, err := e.budgetWindow(userID)
	if err != nil {
		return model.InsightsBundle{}, err
	}
	return e.composer.Compose(userID, txn, profile, txns, e.now()), nil
}

// SetLimit upserts a monthly category limit.
func (e *Engine) SetLimit(l model.CategoryLimit) error {
	if l.MonthlyLimit.IsNegative() {
		return fmt.Errorf("limit for %q must not be negative", l.Category)
	}
	return e.store.SetCategoryLimit(l)
}

// Limits returns the user's configured limits.
func (e *Engine) Limits(userID string) ([]model.CategoryLimit, error) {
	return e.store.ListCategoryLimits(userID)
}

// RemoveLimit deletes the limit for (user, category).
func (e *Engine) RemoveLimit(userID, category string) error {
	return e.store.DeleteCategoryLimit(userID, category)
}

// RecentTransactions returns up to k most recent transactions, newest
// first.
func (e *Engine) RecentTransactions(userID string, k int) ([]model.Transaction, error) {
	return e.store.RecentTransactions(userID, k)
}

// TransactionCount reports how many transactions the user has recorded.
func (e *Engine) TransactionCount(userID string) (int, error) {
	return e.store.TransactionCount(userID)
}

// budgetWindow loads the transactions the budget tracker needs: the
// current month plus the prior one for last-month comparison.
func (e *Engine) budgetWindow(userID string) ([]model.Transaction, error) {
	now := e.now()
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
	txns, err := e.store.ListTransactions(userID, since, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}
	return txns, nil
}
