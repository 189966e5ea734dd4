// Package budget tracks monthly category spend against configured limits.
package budget

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/spendy-ai/spendy/internal/model"
)

const (
	// DefaultApproachingPct is the utilization above which a budget is
	// "approaching" its limit.
	DefaultApproachingPct = 80
	// DefaultDailySpendAlert is the average daily spend above which the
	// high-daily-spending suggestion fires.
	DefaultDailySpendAlert int64 = 1000
)

// LimitSource looks up configured monthly limits. *store.Store satisfies it.
type LimitSource interface {
	GetCategoryLimit(userID, category string) (model.CategoryLimit, bool, error)
	ListCategoryLimits(userID string) ([]model.CategoryLimit, error)
}

// Tracker computes month-to-date budget positions. Its methods are total:
// lookup failures and misconfigured limits degrade to "no budget
// configured" rather than erroring.
type Tracker struct {
	limits          LimitSource
	approachingPct  float64
	dailySpendAlert int64
	log             zerolog.Logger
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithApproachingPct overrides the "approaching" utilization threshold.
func WithApproachingPct(pct float64) Option {
	return func(t *Tracker) { t.approachingPct = pct }
}

// WithDailySpendAlert overrides the daily-spend suggestion threshold.
func WithDailySpendAlert(v int64) Option {
	return func(t *Tracker) { t.dailySpendAlert = v }
}

// WithLogger attaches a logger for degraded-path diagnostics.
func WithLogger(log zerolog.Logger) Option {
	return func(t *Tracker) { t.log = log }
}

// NewTracker builds a tracker over the given limit source.
func NewTracker(limits LimitSource, opts ...Option) *Tracker {
	t := &Tracker{
		limits:          limits,
		approachingPct:  DefaultApproachingPct,
		dailySpendAlert: DefaultDailySpendAlert,
		log:             zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Status computes the month-to-date position for one category (or the
// reserved overall category) at the given anchor date. The spend window is
// the calendar month through the anchor, not a rolling window.
func (t *Tracker) Status(userID, category string, txns []model.Transaction, anchor time.Time) model.BudgetStatus {
	s := model.BudgetStatus{Category: category}

	from := monthStart(anchor)
	s.Spent = spentBetween(txns, category, from, anchor)

	prevFrom, prevTo := priorMonthWindow(anchor)
	s.LastMonthSpent = spentBetween(txns, category, prevFrom, prevTo)

	limit, ok := t.lookupLimit(userID, category)
	if !ok {
		s.Status = model.StatusUnder
		return s
	}

	s.HasLimit = true
	s.Limit = limit
	s.Remaining = limit.Sub(s.Spent)

	// Utilization is defined as 0 for a non-positive limit, not NaN.
	if limit.IsPositive() {
		s.UtilizationPct, _ = s.Spent.Div(limit).Mul(decimal.NewFromInt(100)).Float64()
	}

	switch {
	case s.UtilizationPct > 100:
		s.Status = model.StatusExceeded
	case s.UtilizationPct >= t.approachingPct:
		s.Status = model.StatusApproaching
	default:
		s.Status = model.StatusUnder
	}
	return s
}

// AllStatuses computes a status for every configured limit of the user,
// ordered as the store returns them.
func (t *Tracker) AllStatuses(userID string, txns []model.Transaction, anchor time.Time) []model.BudgetStatus {
	limits, err := t.limits.ListCategoryLimits(userID)
	if err != nil {
		t.log.Warn().Err(err).Str("user", userID).Msg("listing limits failed")
		return nil
	}

	statuses := make([]model.BudgetStatus, 0, len(limits))
	for _, l := range limits {
		statuses = append(statuses, t.Status(userID, l.Category, txns, anchor))
	}
	return statuses
}

// CheckAlert evaluates a prospective expense against the category's
// remaining budget. It returns nil when the category has no configured
// limit, or when the amount still fits. The alert fires exactly when
// amount > limit - current spend, carrying the excess.
func (t *Tracker) CheckAlert(userID, category string, amount int64, txns []model.Transaction, anchor time.Time) *model.BudgetAlert {
	limit, ok := t.lookupLimit(userID, category)
	if !ok {
		return nil
	}

	spent := spentBetween(txns, category, monthStart(anchor), anchor)
	remaining := limit.Sub(spent)
	amt := decimal.NewFromInt(amount)
	if amt.LessThanOrEqual(remaining) {
		return nil
	}

	return &model.BudgetAlert{
		Category:  category,
		Limit:     limit,
		Spent:     spent,
		Remaining: remaining,
		Amount:    amt,
		Excess:    amt.Sub(remaining),
	}
}

// DailySuggestion emits the high-daily-spending suggestion when average
// daily expense across the observed window exceeds the threshold. It is
// independent of per-category limits.
func (t *Tracker) DailySuggestion(txns []model.Transaction, anchor time.Time) *model.Suggestion {
	var total int64
	var first time.Time
	for _, txn := range txns {
		if txn.Kind != model.Expense {
			continue
		}
		total += txn.Amount
		if first.IsZero() || txn.Date.Before(first) {
			first = txn.Date
		}
	}
	if first.IsZero() {
		return nil
	}

	days := int64(dayOf(anchor).Sub(dayOf(first)).Hours()/24) + 1
	if days < 1 {
		days = 1
	}

	if total/days <= t.dailySpendAlert {
		return nil
	}
	return &model.Suggestion{
		Code:    "high-daily-spending",
		Message: "Average daily spending is unusually high; consider reviewing recurring expenses.",
	}
}

// lookupLimit resolves a usable positive-or-zero limit, treating lookup
// errors and negative configured values as "no budget configured".
func (t *Tracker) lookupLimit(userID, category string) (decimal.Decimal, bool) {
	l, ok, err := t.limits.GetCategoryLimit(userID, category)
	if err != nil {
		t.log.Warn().Err(err).Str("user", userID).Str("category", category).Msg("limit lookup failed")
		return decimal.Zero, false
	}
	if !ok {
		return decimal.Zero, false
	}
	if l.MonthlyLimit.IsNegative() {
		t.log.Warn().Str("category", category).Str("limit", l.MonthlyLimit.String()).Msg("negative limit treated as unconfigured")
		return decimal.Zero, false
	}
	return l.MonthlyLimit, true
}

// spentBetween sums expense amounts for the category (or every category
// for the reserved overall name) dated within [from, to].
func spentBetween(txns []model.Transaction, category string, from, to time.Time) decimal.Decimal {
	from, to = dayOf(from), dayOf(to)
	var total int64
	for _, t := range txns {
		if t.Kind != model.Expense {
			continue
		}
		if category != model.OverallCategory && t.Category != category {
			continue
		}
		d := dayOf(t.Date)
		if d.Before(from) || d.After(to) {
			continue
		}
		total += t.Amount
	}
	return decimal.NewFromInt(total)
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// priorMonthWindow returns the equivalent month-to-date window one
// calendar month back, clamping the anchor day to the month's length.
func priorMonthWindow(anchor time.Time) (from, to time.Time) {
	from = monthStart(anchor).AddDate(0, -1, 0)
	prevMonthEnd := monthStart(anchor).AddDate(0, 0, -1)
	day := anchor.Day()
	if day > prevMonthEnd.Day() {
		day = prevMonthEnd.Day()
	}
	to = time.Date(from.Year(), from.Month(), day, 0, 0, 0, 0, anchor.Location())
	return from, to
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
