package budget

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendy-ai/spendy/internal/model"
)

// fakeLimits is an in-memory LimitSource.
type fakeLimits struct {
	limits map[string]decimal.Decimal // category -> limit
	err    error
}

func (f *fakeLimits) GetCategoryLimit(userID, category string) (model.CategoryLimit, bool, error) {
	if f.err != nil {
		return model.CategoryLimit{}, false, f.err
	}
	l, ok := f.limits[category]
	if !ok {
		return model.CategoryLimit{}, false, nil
	}
	return model.CategoryLimit{UserID: userID, Category: category, MonthlyLimit: l}, true, nil
}

func (f *fakeLimits) ListCategoryLimits(userID string) ([]model.CategoryLimit, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.CategoryLimit
	for cat, l := range f.limits {
		out = append(out, model.CategoryLimit{UserID: userID, Category: cat, MonthlyLimit: l})
	}
	return out, nil
}

func limits(pairs map[string]string) *fakeLimits {
	m := make(map[string]decimal.Decimal, len(pairs))
	for k, v := range pairs {
		m[k] = decimal.RequireFromString(v)
	}
	return &fakeLimits{limits: m}
}

func d(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return parsed
}

func exp(t *testing.T, category string, amount int64, date string) model.Transaction {
	t.Helper()
	return model.Transaction{
		UserID: "u1", Category: category, Kind: model.Expense,
		Amount: amount, Date: d(t, date),
	}
}

func TestStatus_CalendarMonthWindow(t *testing.T) {
	tr := NewTracker(limits(map[string]string{"Food": "1000"}))
	txns := []model.Transaction{
		exp(t, "Food", 300, "2026-08-05"),
		exp(t, "Food", 200, "2026-08-14"),
		exp(t, "Food", 999, "2026-08-20"), // after anchor, excluded
		exp(t, "Food", 400, "2026-07-10"), // prior month
		{UserID: "u1", Category: "Food", Kind: model.Income, Amount: 5000, Date: d(t, "2026-08-10")},
	}

	s := tr.Status("u1", "Food", txns, d(t, "2026-08-15"))

	if !s.Spent.Equal(decimal.NewFromInt(500)) {
		t.Errorf("Spent = %s, want 500", s.Spent)
	}
	if !s.LastMonthSpent.Equal(decimal.NewFromInt(400)) {
		t.Errorf("LastMonthSpent = %s, want 400", s.LastMonthSpent)
	}
	if !s.Remaining.Equal(decimal.NewFromInt(500)) {
		t.Errorf("Remaining = %s, want 500", s.Remaining)
	}
	if s.UtilizationPct != 50 {
		t.Errorf("UtilizationPct = %v, want 50", s.UtilizationPct)
	}
	if s.Status != model.StatusUnder {
		t.Errorf("Status = %q, want under", s.Status)
	}
}

func TestStatus_Classification(t *testing.T) {
	cases := []struct {
		spent int64
		want  model.UtilizationStatus
	}{
		{100, model.StatusUnder},
		{799, model.StatusUnder},
		{800, model.StatusApproaching},
		{1000, model.StatusApproaching},
		{1001, model.StatusExceeded},
	}

	tr := NewTracker(limits(map[string]string{"Food": "1000"}))
	for _, tc := range cases {
		txns := []model.Transaction{exp(t, "Food", tc.spent, "2026-08-05")}
		s := tr.Status("u1", "Food", txns, d(t, "2026-08-15"))
		if s.Status != tc.want {
			t.Errorf("spent %d: Status = %q, want %q", tc.spent, s.Status, tc.want)
		}
	}
}

func TestStatus_UtilizationMonotonicInSpend(t *testing.T) {
	tr := NewTracker(limits(map[string]string{"Food": "1000"}))

	prev := -1.0
	for _, spent := range []int64{0, 100, 500, 900, 1500, 3000} {
		var txns []model.Transaction
		if spent > 0 {
			txns = append(txns, exp(t, "Food", spent, "2026-08-05"))
		}
		s := tr.Status("u1", "Food", txns, d(t, "2026-08-15"))
		if s.UtilizationPct < prev {
			t.Fatalf("utilization decreased: %v after %v", s.UtilizationPct, prev)
		}
		prev = s.UtilizationPct
	}
}

func TestStatus_NoLimitConfigured(t *testing.T) {
	tr := NewTracker(limits(nil))
	txns := []model.Transaction{exp(t, "Food", 99999, "2026-08-05")}

	s := tr.Status("u1", "Food", txns, d(t, "2026-08-15"))
	if s.HasLimit {
		t.Error("HasLimit = true for unconfigured category")
	}
	if s.UtilizationPct != 0 {
		t.Errorf("UtilizationPct = %v, want 0 without a limit", s.UtilizationPct)
	}
}

func TestStatus_NegativeLimitTreatedAsUnconfigured(t *testing.T) {
	tr := NewTracker(limits(map[string]string{"Food": "-5"}))

	s := tr.Status("u1", "Food", nil, d(t, "2026-08-15"))
	if s.HasLimit {
		t.Error("negative limit should degrade to no budget configured")
	}
}

func TestStatus_LimitLookupErrorDegrades(t *testing.T) {
	tr := NewTracker(&fakeLimits{err: errors.New("db locked")})

	s := tr.Status("u1", "Food", nil, d(t, "2026-08-15"))
	if s.HasLimit || s.Status != model.StatusUnder {
		t.Errorf("lookup error should degrade gracefully, got %+v", s)
	}
}

func TestStatus_PriorMonthDayClamped(t *testing.T) {
	// Anchor March 31: prior window must end Feb 28, not normalize into
	// March.
	tr := NewTracker(limits(map[string]string{"Food": "1000"}))
	txns := []model.Transaction{
		exp(t, "Food", 100, "2026-02-28"),
		exp(t, "Food", 999, "2026-03-01"),
	}

	s := tr.Status("u1", "Food", txns, d(t, "2026-03-31"))
	if !s.LastMonthSpent.Equal(decimal.NewFromInt(100)) {
		t.Errorf("LastMonthSpent = %s, want 100", s.LastMonthSpent)
	}
}

func TestCheckAlert_FiresWithExcess(t *testing.T) {
	// Scenario: limit 1000, current spend 950, candidate amount 100.
	tr := NewTracker(limits(map[string]string{"Food": "1000"}))
	txns := []model.Transaction{exp(t, "Food", 950, "2026-08-05")}

	alert := tr.CheckAlert("u1", "Food", 100, txns, d(t, "2026-08-15"))
	if alert == nil {
		t.Fatal("expected alert")
	}
	if !alert.Excess.Equal(decimal.NewFromInt(50)) {
		t.Errorf("Excess = %s, want 50", alert.Excess)
	}
	if !alert.Remaining.Equal(decimal.NewFromInt(50)) {
		t.Errorf("Remaining = %s, want 50", alert.Remaining)
	}
}

func TestCheckAlert_ExactFitDoesNotFire(t *testing.T) {
	tr := NewTracker(limits(map[string]string{"Food": "1000"}))
	txns := []model.Transaction{exp(t, "Food", 950, "2026-08-05")}

	if alert := tr.CheckAlert("u1", "Food", 50, txns, d(t, "2026-08-15")); alert != nil {
		t.Errorf("amount equal to remaining should not alert, got %+v", alert)
	}
	if alert := tr.CheckAlert("u1", "Food", 51, txns, d(t, "2026-08-15")); alert == nil {
		t.Error("amount one over remaining should alert")
	}
}

func TestCheckAlert_NoLimitNeverFires(t *testing.T) {
	tr := NewTracker(limits(nil))
	txns := []model.Transaction{exp(t, "Food", 1_000_000, "2026-08-05")}

	if alert := tr.CheckAlert("u1", "Food", 1_000_000, txns, d(t, "2026-08-15")); alert != nil {
		t.Errorf("no configured limit must never alert, got %+v", alert)
	}
}

func TestCheckAlert_OverspentBudget(t *testing.T) {
	tr := NewTracker(limits(map[string]string{"Food": "100"}))
	txns := []model.Transaction{exp(t, "Food", 150, "2026-08-05")}

	alert := tr.CheckAlert("u1", "Food", 10, txns, d(t, "2026-08-15"))
	if alert == nil {
		t.Fatal("expected alert when already over budget")
	}
	// remaining = -50, excess = 10 - (-50) = 60
	if !alert.Excess.Equal(decimal.NewFromInt(60)) {
		t.Errorf("Excess = %s, want 60", alert.Excess)
	}
}

func TestDailySuggestion(t *testing.T) {
	tr := NewTracker(limits(nil))

	// 10 days observed, 15000 spent: 1500/day > 1000 threshold.
	txns := []model.Transaction{
		exp(t, "Food", 7000, "2026-08-01"),
		exp(t, "Rent", 8000, "2026-08-06"),
	}
	if s := tr.DailySuggestion(txns, d(t, "2026-08-10")); s == nil {
		t.Error("expected high-daily-spending suggestion")
	}

	// 20 days observed: 750/day, under threshold.
	if s := tr.DailySuggestion(txns, d(t, "2026-08-20")); s != nil {
		t.Errorf("unexpected suggestion: %+v", s)
	}

	if s := tr.DailySuggestion(nil, d(t, "2026-08-20")); s != nil {
		t.Errorf("no expenses should yield no suggestion, got %+v", s)
	}
}
