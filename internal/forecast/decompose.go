package forecast

import (
	"errors"
	"math"
)

// ErrDecompose marks a series that cannot be decomposed (too short for the
// period, or degenerate after trend extraction).
var ErrDecompose = errors.New("forecast: decomposition failed")

// decomposition holds the additive split of a series. Trend and residual
// are NaN at the half-window edges where the centered moving average is
// undefined.
type decomposition struct {
	trend    []float64
	seasonal []float64
	residual []float64
}

// decompose performs a classical additive decomposition with the given
// period: centered moving-average trend, phase-mean seasonality centered to
// sum to zero, residual as what remains.
func decompose(series []float64, period int) (decomposition, error) {
	n := len(series)
	if period < 2 || n < 2*period {
		return decomposition{}, ErrDecompose
	}

	half := period / 2
	trend := make([]float64, n)
	for i := range trend {
		trend[i] = math.NaN()
	}
	for i := half; i < n-half; i++ {
		var sum float64
		for j := i - half; j <= i+half; j++ {
			sum += series[j]
		}
		trend[i] = sum / float64(period)
	}

	// Phase means of the detrended series.
	phaseSum := make([]float64, period)
	phaseCount := make([]int, period)
	for i := half; i < n-half; i++ {
		phase := i % period
		phaseSum[phase] += series[i] - trend[i]
		phaseCount[phase]++
	}

	means := make([]float64, period)
	var total float64
	for p := 0; p < period; p++ {
		if phaseCount[p] == 0 {
			return decomposition{}, ErrDecompose
		}
		means[p] = phaseSum[p] / float64(phaseCount[p])
		total += means[p]
	}
	// Center so the seasonal component carries no level.
	center := total / float64(period)
	for p := range means {
		means[p] -= center
	}

	seasonal := make([]float64, n)
	residual := make([]float64, n)
	for i := 0; i < n; i++ {
		seasonal[i] = means[i%period]
		residual[i] = series[i] - trend[i] - seasonal[i]
	}

	return decomposition{trend: trend, seasonal: seasonal, residual: residual}, nil
}

// trendValues returns the defined (non-NaN) portion of the trend, which is
// contiguous for an odd period.
func (d decomposition) trendValues() []float64 {
	var out []float64
	for _, v := range d.trend {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// residualValues returns the defined portion of the residual.
func (d decomposition) residualValues() []float64 {
	var out []float64
	for _, v := range d.residual {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
