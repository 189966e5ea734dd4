package model

// TrendDirection says how a transaction amount compares to the user's
// historical average for its category.
type TrendDirection string

const (
	TrendHigh      TrendDirection = "high"
	TrendFavorable TrendDirection = "favorable"
)

// SpendingTrend compares one transaction to the category's historical
// average.
type SpendingTrend struct {
	Direction TrendDirection
	Average   float64
	DeltaPct  float64 // percentage above (positive) or below (negative) average
}

// CategoryRank reports how frequent the transaction's category is for the
// user.
type CategoryRank struct {
	Rank  int // 1-indexed
	Count int
}

// UnusualTime flags a transaction logged outside the user's peak hours.
type UnusualTime struct {
	Hour      int
	PeakHours []HourCount
}

// InsightsBundle is the composed insight set for one transaction. Every
// field is optional; a nil field means "not enough context", never an error.
type InsightsBundle struct {
	Trend        *SpendingTrend
	Rank         *CategoryRank
	BudgetImpact *BudgetStatus
	UnusualTime  *UnusualTime
}

// Empty reports whether no sub-insight could be computed.
func (b InsightsBundle) Empty() bool {
	return b.Trend == nil && b.Rank == nil && b.BudgetImpact == nil && b.UnusualTime == nil
}
