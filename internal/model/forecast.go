package model

// ForecastMethod records which tier of the fallback ladder produced a
// forecast.
type ForecastMethod string

const (
	// MethodZero is the tier-1 result for empty or degenerate series.
	MethodZero ForecastMethod = "zero"
	// MethodNaive repeats the last observed value after a failed model fit.
	MethodNaive ForecastMethod = "naive"
	// MethodARIMA is a converged ARIMA(1,1,1) fit.
	MethodARIMA ForecastMethod = "arima"
	// MethodDecomposition is trend forecast plus tiled weekly seasonality.
	MethodDecomposition ForecastMethod = "decomposition"
)

// ForecastResult holds an N-step-ahead forecast. Points always has exactly
// the requested horizon length regardless of which tier produced it.
type ForecastResult struct {
	Points []float64
	Method ForecastMethod
	// Degraded is set when a fallback tier ran instead of the preferred
	// model for the available data.
	Degraded bool

	// Present only when the decomposition tier ran.
	SeasonalPattern []float64 // one full cycle, length 7
	TrendTail       []float64 // up to the last 30 days of trend
	ResidualTail    []float64 // up to the last 30 days of residual
}

// CategoryForecast is a per-category forecast with a confidence band and
// historical context for display.
type CategoryForecast struct {
	ForecastResult

	Category        string
	ConfidenceLower []float64 // length = horizon, non-negative
	ConfidenceUpper []float64 // length = horizon
	Volatility      float64   // sample std dev of the daily series
	HistoricalAvg   float64
	HistoricalStd   float64
}
