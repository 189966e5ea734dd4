package engine

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendy-ai/spendy/internal/config"
	"github.com/spendy-ai/spendy/internal/model"
	"github.com/spendy-ai/spendy/internal/store"
)

func testClock() time.Time {
	return time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	e, err := New(st, config.Default().Analytics, WithClock(testClock))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func expense(t *testing.T, category string, amount int64, date string) model.Transaction {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("parse date %q: %v", date, err)
	}
	return model.Transaction{
		UserID: "u1", Item: "item", Category: category,
		Kind: model.Expense, Amount: amount, Date: d,
	}
}

func TestRecordTransaction_AssignsIDAndPersists(t *testing.T) {
	e := newTestEngine(t)

	saved, err := e.RecordTransaction(expense(t, "Food", 120, "2026-08-10"))
	if err != nil {
		t.Fatalf("RecordTransaction: %v", err)
	}
	if saved.ID == "" {
		t.Error("expected an assigned ID")
	}

	n, err := e.TransactionCount("u1")
	if err != nil {
		t.Fatalf("TransactionCount: %v", err)
	}
	if n != 1 {
		t.Errorf("TransactionCount = %d, want 1", n)
	}
}

func TestImportTransactions(t *testing.T) {
	e := newTestEngine(t)

	batch := []model.Transaction{
		expense(t, "Food", 100, "2026-08-01"),
		expense(t, "Transport", 50, "2026-08-02"),
	}
	n, err := e.ImportTransactions(batch)
	if err != nil {
		t.Fatalf("ImportTransactions: %v", err)
	}
	if n != 2 {
		t.Errorf("imported = %d, want 2", n)
	}
}

func TestProfile_ReflectsHistory(t *testing.T) {
	e := newTestEngine(t)

	for i := 0; i < 3; i++ {
		if _, err := e.RecordTransaction(expense(t, "Food", 100, "2026-08-10")); err != nil {
			t.Fatalf("RecordTransaction: %v", err)
		}
	}
	if _, err := e.RecordTransaction(expense(t, "Transport", 60, "2026-08-11")); err != nil {
		t.Fatalf("RecordTransaction: %v", err)
	}

	p, err := e.Profile("u1")
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if len(p.TopCategories) == 0 || p.TopCategories[0].Category != "Food" {
		t.Errorf("TopCategories = %+v, want Food first", p.TopCategories)
	}
	if got := p.AvgAmountByCategory["Food"]; got != 100 {
		t.Errorf("AvgAmountByCategory[Food] = %v, want 100", got)
	}
}

func TestProfile_InvalidatedByNewTransaction(t *testing.T) {
	e := newTestEngine(t)

	if _, err := e.RecordTransaction(expense(t, "Food", 100, "2026-08-10")); err != nil {
		t.Fatalf("RecordTransaction: %v", err)
	}
	if _, err := e.Profile("u1"); err != nil {
		t.Fatalf("Profile: %v", err)
	}
	e.cache.Wait()

	if _, err := e.RecordTransaction(expense(t, "Rent", 9000, "2026-08-12")); err != nil {
		t.Fatalf("RecordTransaction: %v", err)
	}

	p, err := e.Profile("u1")
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if _, ok := p.AvgAmountByCategory["Rent"]; !ok {
		t.Error("profile should include the transaction recorded after caching")
	}
}

func TestBudgetStatusAndAlert(t *testing.T) {
	e := newTestEngine(t)

	err := e.SetLimit(model.CategoryLimit{
		UserID: "u1", Category: "Food", MonthlyLimit: decimal.NewFromInt(1000),
	})
	if err != nil {
		t.Fatalf("SetLimit: %v", err)
	}
	if _, err := e.RecordTransaction(expense(t, "Food", 950, "2026-08-05")); err != nil {
		t.Fatalf("RecordTransaction: %v", err)
	}

	s, err := e.BudgetStatus("u1", "Food")
	if err != nil {
		t.Fatalf("BudgetStatus: %v", err)
	}
	if !s.HasLimit || !s.Spent.Equal(decimal.NewFromInt(950)) {
		t.Errorf("status = %+v, want limit with spent 950", s)
	}
	if s.Status != model.StatusApproaching {
		t.Errorf("Status = %q, want approaching at 95%%", s.Status)
	}

	alert, err := e.CheckBudgetAlert("u1", "Food", 100)
	if err != nil {
		t.Fatalf("CheckBudgetAlert: %v", err)
	}
	if alert == nil {
		t.Fatal("expected alert for 100 against remaining 50")
	}
	if !alert.Excess.Equal(decimal.NewFromInt(50)) {
		t.Errorf("Excess = %s, want 50", alert.Excess)
	}

	if alert, err := e.CheckBudgetAlert("u1", "Transport", 1_000_000); err != nil || alert != nil {
		t.Errorf("unconfigured category: alert = %+v, err = %v, want nil, nil", alert, err)
	}
}

func TestSetLimit_RejectsNegative(t *testing.T) {
	e := newTestEngine(t)

	err := e.SetLimit(model.CategoryLimit{
		UserID: "u1", Category: "Food", MonthlyLimit: decimal.NewFromInt(-1),
	})
	if err == nil {
		t.Error("expected error for negative limit")
	}
}

func TestForecast_HorizonAndDefaults(t *testing.T) {
	e := newTestEngine(t)

	if _, err := e.RecordTransaction(expense(t, "Food", 100, "2026-08-01")); err != nil {
		t.Fatalf("RecordTransaction: %v", err)
	}

	r, err := e.Forecast("u1", 7)
	if err != nil {
		t.Fatalf("Forecast: %v", err)
	}
	if len(r.Points) != 7 {
		t.Errorf("len(Points) = %d, want 7", len(r.Points))
	}

	// Horizon 0 falls back to the configured default.
	r, err = e.Forecast("u1", 0)
	if err != nil {
		t.Fatalf("Forecast: %v", err)
	}
	if len(r.Points) != config.Default().Analytics.Horizon {
		t.Errorf("len(Points) = %d, want default horizon", len(r.Points))
	}
}

func TestCategoryForecast_NoHistory(t *testing.T) {
	e := newTestEngine(t)

	cf, err := e.CategoryForecast("u1", "Food", 5)
	if err != nil {
		t.Fatalf("CategoryForecast: %v", err)
	}
	if cf.Method != model.MethodZero {
		t.Errorf("Method = %q, want zero for empty history", cf.Method)
	}
	for i, p := range cf.Points {
		if p != 0 {
			t.Errorf("Points[%d] = %v, want 0", i, p)
		}
	}
}

func TestDetectAnomalies_SmallHistoryEmpty(t *testing.T) {
	e := newTestEngine(t)

	for i := 0; i < 5; i++ {
		if _, err := e.RecordTransaction(expense(t, "Food", 100, "2026-08-10")); err != nil {
			t.Fatalf("RecordTransaction: %v", err)
		}
	}

	report, err := e.DetectAnomalies("u1")
	if err != nil {
		t.Fatalf("DetectAnomalies: %v", err)
	}
	if !report.Empty() {
		t.Errorf("expected empty report below the minimum sample, got %+v", report)
	}
}

func TestInsights_BudgetLegFromStore(t *testing.T) {
	e := newTestEngine(t)

	err := e.SetLimit(model.CategoryLimit{
		UserID: "u1", Category: "Food", MonthlyLimit: decimal.NewFromInt(1000),
	})
	if err != nil {
		t.Fatalf("SetLimit: %v", err)
	}
	if _, err := e.RecordTransaction(expense(t, "Food", 300, "2026-08-05")); err != nil {
		t.Fatalf("RecordTransaction: %v", err)
	}

	bundle, err := e.Insights("u1", expense(t, "Food", 100, "2026-08-15"))
	if err != nil {
		t.Fatalf("Insights: %v", err)
	}
	if bundle.BudgetImpact == nil {
		t.Fatal("expected budget impact with configured limit")
	}
	if !bundle.BudgetImpact.Spent.Equal(decimal.NewFromInt(300)) {
		t.Errorf("Spent = %s, want 300", bundle.BudgetImpact.Spent)
	}
}

func TestSuggestions_HighDailySpend(t *testing.T) {
	e := newTestEngine(t)

	// 15000 over 15 observed days: 1000/day is at the threshold, add more.
	if _, err := e.RecordTransaction(expense(t, "Rent", 20000, "2026-08-01")); err != nil {
		t.Fatalf("RecordTransaction: %v", err)
	}

	got, err := e.Suggestions("u1")
	if err != nil {
		t.Fatalf("Suggestions: %v", err)
	}
	if len(got) != 1 || got[0].Code != "high-daily-spending" {
		t.Errorf("Suggestions = %+v, want high-daily-spending", got)
	}
}
