package analyzer

import (
	"testing"
	"time"

	"github.com/spendy-ai/spendy/internal/model"
)

func txn(category string, amount int64, date string, hour int, location string) model.Transaction {
	d, _ := time.Parse("2006-01-02", date)
	t := model.Transaction{
		UserID:   "u1",
		Category: category,
		Kind:     model.Expense,
		Amount:   amount,
		Date:     d,
		Location: location,
	}
	if hour >= 0 {
		tod := time.Date(0, 1, 1, hour, 0, 0, 0, time.UTC)
		t.TimeOfDay = &tod
	}
	return t
}

func TestComputeProfile_Empty(t *testing.T) {
	p := ComputeProfile(nil)
	if !p.Empty() {
		t.Errorf("profile from no transactions should be empty, got %+v", p)
	}
}

func TestComputeProfile_TopCategoriesAndAverages(t *testing.T) {
	txns := []model.Transaction{
		txn("Food", 100, "2026-08-10", 12, ""),
		txn("Food", 300, "2026-08-11", 12, ""),
		txn("Transport", 50, "2026-08-12", 8, ""),
		txn("Food", 200, "2026-08-13", 13, ""),
		txn("Transport", 70, "2026-08-14", 8, ""),
		txn("Rent", 9000, "2026-08-01", -1, ""),
	}

	p := ComputeProfile(txns)

	if len(p.TopCategories) != 3 {
		t.Fatalf("TopCategories len = %d, want 3", len(p.TopCategories))
	}
	if p.TopCategories[0].Category != "Food" || p.TopCategories[0].Count != 3 {
		t.Errorf("top category = %+v, want Food x3", p.TopCategories[0])
	}
	if p.TopCategories[1].Category != "Transport" {
		t.Errorf("second category = %+v, want Transport", p.TopCategories[1])
	}

	if avg := p.AvgAmountByCategory["Food"]; avg != 200 {
		t.Errorf("Food average = %v, want 200", avg)
	}
	if avg := p.AvgAmountByCategory["Rent"]; avg != 9000 {
		t.Errorf("Rent average = %v, want 9000", avg)
	}
}

func TestComputeProfile_TiesBrokenByFirstSeen(t *testing.T) {
	txns := []model.Transaction{
		txn("B", 10, "2026-08-10", -1, ""),
		txn("A", 10, "2026-08-11", -1, ""),
	}

	p := ComputeProfile(txns)
	if p.TopCategories[0].Category != "B" {
		t.Errorf("tie should keep first-seen order, got %q first", p.TopCategories[0].Category)
	}
}

func TestComputeProfile_PeakHoursAndLocations(t *testing.T) {
	txns := []model.Transaction{
		txn("Food", 100, "2026-08-10", 9, "Cafe"),
		txn("Food", 100, "2026-08-11", 9, "Cafe"),
		txn("Food", 100, "2026-08-12", 13, "Market"),
		txn("Food", 100, "2026-08-13", 19, ""),
		txn("Food", 100, "2026-08-14", 9, "Cafe"),
		txn("Food", 100, "2026-08-15", 21, "Bar"),
	}

	p := ComputeProfile(txns)

	if len(p.PeakHours) != 3 {
		t.Fatalf("PeakHours len = %d, want 3", len(p.PeakHours))
	}
	if p.PeakHours[0].Hour != 9 || p.PeakHours[0].Count != 3 {
		t.Errorf("peak hour = %+v, want hour 9 x3", p.PeakHours[0])
	}
	if !p.IsPeakHour(9) || p.IsPeakHour(23) {
		t.Error("IsPeakHour misclassified")
	}

	if len(p.TopLocations) != 3 || p.TopLocations[0].Location != "Cafe" {
		t.Errorf("TopLocations = %+v, want Cafe first of 3", p.TopLocations)
	}
}

func TestComputeProfile_MissingTimeOfDayIgnored(t *testing.T) {
	txns := []model.Transaction{
		txn("Food", 100, "2026-08-10", -1, ""),
		txn("Food", 100, "2026-08-11", -1, ""),
	}

	p := ComputeProfile(txns)
	if len(p.PeakHours) != 0 {
		t.Errorf("PeakHours = %+v, want empty when no times recorded", p.PeakHours)
	}
	if len(p.PreferredWeekdays) == 0 {
		t.Error("PreferredWeekdays should still be derived from dates")
	}
}
