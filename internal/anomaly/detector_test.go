package anomaly

import (
	"fmt"
	"testing"
	"time"

	"github.com/spendy-ai/spendy/internal/model"
)

func expense(amount int64, day, hour int) model.Transaction {
	date := time.Date(2026, 8, day, 0, 0, 0, 0, time.UTC)
	tod := time.Date(0, 1, 1, hour, 0, 0, 0, time.UTC)
	return model.Transaction{
		ID:        fmt.Sprintf("t-%d-%d", day, amount),
		UserID:    "u1",
		Category:  "Food",
		Kind:      model.Expense,
		Amount:    amount,
		Date:      date,
		TimeOfDay: &tod,
	}
}

func normalBatch(n int) []model.Transaction {
	txns := make([]model.Transaction, 0, n)
	for i := 0; i < n; i++ {
		txns = append(txns, expense(400+int64(i%5)*20, 1+i%28, 12))
	}
	return txns
}

func TestDetect_BelowMinSample(t *testing.T) {
	d := NewDetector()
	report := d.Detect(normalBatch(9))
	if !report.Empty() {
		t.Errorf("batch of 9 should produce empty report, got %+v", report)
	}
}

func TestDetect_FlagsPlantedOutlier(t *testing.T) {
	txns := normalBatch(19)
	txns = append(txns, expense(50000, 15, 3)) // huge amount at an odd hour
	outlierIdx := len(txns) - 1

	d := NewDetector()
	report := d.Detect(txns)

	if len(report.Scores) != len(txns) {
		t.Fatalf("Scores len = %d, want %d", len(report.Scores), len(txns))
	}
	if len(report.FlaggedIndices) == 0 {
		t.Fatal("no transactions flagged")
	}
	if report.FlaggedIndices[0] != outlierIdx {
		t.Errorf("most anomalous index = %d, want %d", report.FlaggedIndices[0], outlierIdx)
	}
	if report.Flagged[0].Amount != 50000 {
		t.Errorf("flagged record amount = %d, want 50000", report.Flagged[0].Amount)
	}

	// Higher score = more anomalous: the outlier must beat every inlier.
	for i, s := range report.Scores {
		if i != outlierIdx && s >= report.Scores[outlierIdx] {
			t.Errorf("inlier %d score %v >= outlier score %v", i, s, report.Scores[outlierIdx])
		}
	}
}

func TestDetect_Deterministic(t *testing.T) {
	txns := normalBatch(30)
	txns = append(txns, expense(90000, 10, 2))

	a := NewDetector().Detect(txns)
	b := NewDetector().Detect(txns)

	if len(a.Scores) != len(b.Scores) {
		t.Fatal("score lengths differ between runs")
	}
	for i := range a.Scores {
		if a.Scores[i] != b.Scores[i] {
			t.Fatalf("score %d differs between runs: %v vs %v", i, a.Scores[i], b.Scores[i])
		}
	}
}

func TestDetect_ContaminationControlsFlagCount(t *testing.T) {
	// Fractional budgets round up: 10% of 15 flags 2, not 1.
	cases := []struct {
		n             int
		contamination float64
		want          int
	}{
		{40, 0.25, 10},
		{10, 0.10, 1},
		{15, 0.10, 2},
		{19, 0.10, 2},
		{20, 0.10, 2},
	}
	for _, tc := range cases {
		d := NewDetector(WithContamination(tc.contamination))
		report := d.Detect(normalBatch(tc.n))
		if len(report.FlaggedIndices) != tc.want {
			t.Errorf("flagged %d of %d at contamination %v, want %d",
				len(report.FlaggedIndices), tc.n, tc.contamination, tc.want)
		}
	}
}

func TestDetect_BadContaminationSkips(t *testing.T) {
	d := NewDetector(WithContamination(-1))
	if report := d.Detect(normalBatch(20)); !report.Empty() {
		t.Errorf("negative contamination should skip detection, got %+v", report)
	}
}

type panicScorer struct{}

func (panicScorer) Score([][]float64) []float64 { panic("singular matrix") }

func TestDetect_ScorerPanicContained(t *testing.T) {
	d := NewDetector(WithScorer(panicScorer{}))
	report := d.Detect(normalBatch(20))
	if !report.Empty() {
		t.Errorf("scorer panic should degrade to empty report, got %+v", report)
	}
}

func TestDetect_IdenticalRowsDegenerate(t *testing.T) {
	// All-identical batch: every feature column is constant. Must not
	// panic and must return a full, finite score vector or nothing.
	txns := make([]model.Transaction, 12)
	for i := range txns {
		txns[i] = expense(500, 10, 12)
	}

	report := NewDetector().Detect(txns)
	if len(report.Scores) != 0 && len(report.Scores) != len(txns) {
		t.Errorf("Scores len = %d, want 0 or %d", len(report.Scores), len(txns))
	}
}
