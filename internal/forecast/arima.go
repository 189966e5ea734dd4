package forecast

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
)

// ErrFitFailed marks a model fit that did not converge to finite,
// stationary parameters. Callers fall back per the tier policy.
var ErrFitFailed = errors.New("forecast: model fit failed")

// ARIMA fits an ARIMA(1,1,1) model by conditional sum of squares and
// forecasts by iterating the fitted recurrence. It implements
// SeriesForecaster.
type ARIMA struct{}

// Forecast returns horizon steps ahead of series, or ErrFitFailed when the
// series is too short or the optimizer does not converge.
func (ARIMA) Forecast(series []float64, horizon int) ([]float64, error) {
	n := len(series)
	if n < 3 {
		return nil, ErrFitFailed
	}

	// First difference; the ARMA(1,1) fit runs on w.
	w := make([]float64, n-1)
	for i := 1; i < n; i++ {
		w[i-1] = series[i] - series[i-1]
	}
	m := len(w)
	if m < 2 {
		return nil, ErrFitFailed
	}

	obj := func(x []float64) float64 {
		c, phi, theta := x[0], x[1], x[2]
		// Keep the search inside the stationary/invertible region.
		if penalty := regionPenalty(phi) + regionPenalty(theta); penalty > 0 {
			return 1e12 * (1 + penalty)
		}
		_, sse := cssResiduals(w, c, phi, theta)
		return sse
	}

	x0 := []float64{stat.Mean(w, nil), 0.1, 0.1}
	result, err := optimize.Minimize(optimize.Problem{Func: obj}, x0, nil, &optimize.NelderMead{})
	if err != nil {
		return nil, ErrFitFailed
	}
	if result == nil || !isFinite(result.F) {
		return nil, ErrFitFailed
	}

	c, phi, theta := result.X[0], result.X[1], result.X[2]
	if !isFinite(c) || math.Abs(phi) >= 1 || math.Abs(theta) >= 1 {
		return nil, ErrFitFailed
	}

	eps, _ := cssResiduals(w, c, phi, theta)

	// Iterate the recurrence; future shocks are zero, so the MA term only
	// contributes to the first step.
	out := make([]float64, horizon)
	level := series[n-1]
	wPrev := w[m-1]
	epsPrev := eps[m-1]
	for k := 0; k < horizon; k++ {
		wNext := c + phi*wPrev + theta*epsPrev
		if !isFinite(wNext) {
			return nil, ErrFitFailed
		}
		level += wNext
		out[k] = level
		wPrev = wNext
		epsPrev = 0
	}
	return out, nil
}

// cssResiduals computes one-step-ahead residuals conditioned on the first
// observation, plus their sum of squares.
func cssResiduals(w []float64, c, phi, theta float64) ([]float64, float64) {
	eps := make([]float64, len(w))
	var sse float64
	for t := 1; t < len(w); t++ {
		pred := c + phi*w[t-1] + theta*eps[t-1]
		eps[t] = w[t] - pred
		sse += eps[t] * eps[t]
	}
	if !isFinite(sse) {
		sse = math.MaxFloat64
	}
	return eps, sse
}

func regionPenalty(p float64) float64 {
	const bound = 0.999
	if math.Abs(p) < bound {
		return 0
	}
	return math.Abs(p) - bound
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
