package model

// AnomalyReport holds the outcome of one anomaly detection batch.
//
// Scores are comparable only within the batch that produced them, never
// across batches or users. Higher score means more anomalous.
type AnomalyReport struct {
	// FlaggedIndices are positions into the input batch, most anomalous
	// first.
	FlaggedIndices []int
	// Flagged are the full records for FlaggedIndices, same order.
	Flagged []Transaction
	// Scores has one entry per input transaction, or is empty when the
	// batch was too small or the fit degraded.
	Scores []float64
}

// Empty reports whether the batch produced no signal.
func (r AnomalyReport) Empty() bool {
	return len(r.FlaggedIndices) == 0 && len(r.Scores) == 0
}
