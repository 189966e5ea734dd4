// Package anomaly flags statistically unusual expense transactions.
package anomaly

// OutlierScorer assigns each row of a feature matrix a continuous anomaly
// score. Implementations must use the convention that a HIGHER score means
// MORE anomalous; scores are only comparable within a single Score call.
type OutlierScorer interface {
	// Score returns one score per row. rows is row-major with a fixed
	// column count. Implementations may panic on degenerate input; the
	// detector contains such failures.
	Score(rows [][]float64) []float64
}
