package anomaly

import (
	"math"
	"sort"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/spendy-ai/spendy/internal/model"
)

const (
	// DefaultMinSample is the smallest batch worth fitting. Below this the
	// detector reports no signal rather than fitting noise.
	DefaultMinSample = 10
	// DefaultContamination is the assumed fraction of outliers in a batch.
	DefaultContamination = 0.10
)

// Detector scores expense batches for outlierness. The zero value is not
// usable; construct with NewDetector.
type Detector struct {
	scorer        OutlierScorer
	minSample     int
	contamination float64
	log           zerolog.Logger
}

// Option configures a Detector.
type Option func(*Detector)

// WithScorer substitutes the outlier scorer.
func WithScorer(s OutlierScorer) Option {
	return func(d *Detector) { d.scorer = s }
}

// WithMinSample overrides the minimum batch size.
func WithMinSample(n int) Option {
	return func(d *Detector) { d.minSample = n }
}

// WithContamination overrides the assumed outlier fraction.
func WithContamination(c float64) Option {
	return func(d *Detector) { d.contamination = c }
}

// WithLogger attaches a logger for degraded-path diagnostics.
func WithLogger(log zerolog.Logger) Option {
	return func(d *Detector) { d.log = log }
}

// NewDetector builds a detector with the default isolation forest scorer.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{
		scorer:        NewIsolationForest(1),
		minSample:     DefaultMinSample,
		contamination: DefaultContamination,
		log:           zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect scores a batch of expense transactions on {amount, weekday, hour}
// and flags the most anomalous contamination-fraction of them.
//
// Batches smaller than the minimum sample, a non-sensical contamination
// setting, and any numerical failure inside the scorer all yield the same
// empty report; Detect never returns an error and never panics.
func (d *Detector) Detect(txns []model.Transaction) (report model.AnomalyReport) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Warn().Interface("panic", r).Msg("anomaly fit failed, returning empty report")
			report = model.AnomalyReport{}
		}
	}()

	if len(txns) < d.minSample {
		return model.AnomalyReport{}
	}
	if d.contamination <= 0 || d.contamination >= 1 {
		d.log.Debug().Float64("contamination", d.contamination).Msg("contamination out of range, skipping detection")
		return model.AnomalyReport{}
	}

	rows := featureMatrix(txns)
	standardize(rows)

	scores := d.scorer.Score(rows)
	if len(scores) != len(txns) {
		d.log.Warn().Int("scores", len(scores)).Int("batch", len(txns)).Msg("scorer returned short vector")
		return model.AnomalyReport{}
	}
	for _, s := range scores {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			d.log.Warn().Msg("non-finite anomaly score, returning empty report")
			return model.AnomalyReport{}
		}
	}

	// Round the flag budget up so fractional batches still surface the
	// extra record: 15 transactions at 0.10 flag 2, not 1.
	k := int(math.Ceil(d.contamination * float64(len(txns))))
	if k < 1 {
		k = 1
	}

	// Rank indices by score, most anomalous first.
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return scores[idx[a]] > scores[idx[b]] })

	report = model.AnomalyReport{Scores: scores}
	for _, i := range idx[:k] {
		report.FlaggedIndices = append(report.FlaggedIndices, i)
		report.Flagged = append(report.Flagged, txns[i])
	}
	return report
}

// featureMatrix derives {amount, weekday, hour} rows. A missing time-of-day
// contributes hour 0; with standardization this is indistinguishable from a
// genuine midnight entry, which is acceptable noise for this feature.
func featureMatrix(txns []model.Transaction) [][]float64 {
	rows := make([][]float64, len(txns))
	for i, t := range txns {
		hour := t.Hour()
		if hour < 0 {
			hour = 0
		}
		rows[i] = []float64{float64(t.Amount), float64(t.Weekday()), float64(hour)}
	}
	return rows
}

// standardize rescales each column to zero mean and unit variance in place.
// Constant columns become all zeros.
func standardize(rows [][]float64) {
	if len(rows) == 0 {
		return
	}
	dims := len(rows[0])
	col := make([]float64, len(rows))
	for d := 0; d < dims; d++ {
		for i, r := range rows {
			col[i] = r[d]
		}
		mean, std := stat.MeanStdDev(col, nil)
		for i := range rows {
			if std == 0 || math.IsNaN(std) {
				rows[i][d] = 0
				continue
			}
			rows[i][d] = (rows[i][d] - mean) / std
		}
	}
}
