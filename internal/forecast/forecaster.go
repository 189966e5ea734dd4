package forecast

import (
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/spendy-ai/spendy/internal/model"
)

const (
	// DefaultHorizon is the forecast length when the caller doesn't choose.
	DefaultHorizon = 30
	// DefaultMaxFitPoints caps the series length fed to the model fit so a
	// pathological history cannot stall a request. The cap is part of the
	// contract, not an optimization: anything beyond it is simply not
	// modeled.
	DefaultMaxFitPoints = 365

	seasonalPeriod = 7
	decomposeMin   = 30
	tailLen        = 30
)

// SeriesForecaster fits a model to a series and forecasts ahead. An error
// signals fit failure; the Forecaster resolves it via the fallback ladder.
type SeriesForecaster interface {
	Forecast(series []float64, horizon int) ([]float64, error)
}

// Forecaster applies the tiered fallback policy around a pluggable model.
// All of its methods are total: every data-sufficiency or fit condition
// resolves to a deterministic fallback, never an error.
type Forecaster struct {
	model        SeriesForecaster
	maxFitPoints int
	confidenceZ  float64
	log          zerolog.Logger
}

// Option configures a Forecaster.
type Option func(*Forecaster)

// WithModel substitutes the series model (default ARIMA(1,1,1)).
func WithModel(m SeriesForecaster) Option {
	return func(f *Forecaster) { f.model = m }
}

// WithMaxFitPoints overrides the fit input cap.
func WithMaxFitPoints(n int) Option {
	return func(f *Forecaster) { f.maxFitPoints = n }
}

// WithConfidenceZ overrides the confidence band width in standard
// deviations.
func WithConfidenceZ(z float64) Option {
	return func(f *Forecaster) { f.confidenceZ = z }
}

// WithLogger attaches a logger for degraded-path diagnostics.
func WithLogger(log zerolog.Logger) Option {
	return func(f *Forecaster) { f.log = log }
}

// New builds a Forecaster with the default ARIMA model.
func New(opts ...Option) *Forecaster {
	f := &Forecaster{
		model:        ARIMA{},
		maxFitPoints: DefaultMaxFitPoints,
		confidenceZ:  1.96,
		log:          zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Forecast produces a horizon-length forecast of the daily series.
//
// Tier 1: a series that sums to zero or has fewer than 3 points forecasts
// as zeros. Tier 2: fewer than 30 points fits the model, falling back to
// repeating the last value on fit failure. Tier 3: 30 or more points
// decomposes into trend + weekly seasonality, forecasts the trend through
// tiers 1-2, and tiles the last seasonal cycle across the horizon; any
// decomposition failure falls back to tier 2 on the raw series.
func (f *Forecaster) Forecast(series []float64, horizon int) model.ForecastResult {
	if horizon < 0 {
		horizon = 0
	}
	if len(series) > f.maxFitPoints {
		series = series[len(series)-f.maxFitPoints:]
	}

	if len(series) < decomposeMin {
		points, method, degraded := f.lowTiers(series, horizon)
		return model.ForecastResult{Points: points, Method: method, Degraded: degraded}
	}

	dec, err := decompose(series, seasonalPeriod)
	if err != nil {
		f.log.Debug().Err(err).Int("points", len(series)).Msg("decomposition failed, falling back to raw-series fit")
		points, method, _ := f.lowTiers(series, horizon)
		return model.ForecastResult{Points: points, Method: method, Degraded: true}
	}

	trendPoints, _, trendDegraded := f.lowTiers(dec.trendValues(), horizon)

	// Tile the last full seasonal cycle across the horizon.
	pattern := make([]float64, seasonalPeriod)
	copy(pattern, dec.seasonal[len(dec.seasonal)-seasonalPeriod:])

	points := make([]float64, horizon)
	for i := range points {
		points[i] = trendPoints[i] + pattern[i%seasonalPeriod]
	}

	return model.ForecastResult{
		Points:          points,
		Method:          model.MethodDecomposition,
		Degraded:        trendDegraded,
		SeasonalPattern: pattern,
		TrendTail:       tail(dec.trendValues(), tailLen),
		ResidualTail:    tail(dec.residualValues(), tailLen),
	}
}

// lowTiers applies tiers 1-2: zeros for degenerate series, model fit with
// repeat-last-value fallback otherwise.
func (f *Forecaster) lowTiers(series []float64, horizon int) (points []float64, method model.ForecastMethod, degraded bool) {
	if len(series) < 3 || sum(series) == 0 {
		return make([]float64, horizon), model.MethodZero, true
	}

	points, err := f.model.Forecast(series, horizon)
	if err == nil && len(points) == horizon {
		return points, model.MethodARIMA, false
	}

	f.log.Debug().Err(err).Int("points", len(series)).Msg("model fit failed, repeating last value")
	last := series[len(series)-1]
	points = make([]float64, horizon)
	for i := range points {
		points[i] = last
	}
	return points, model.MethodNaive, true
}

// CategoryForecast forecasts one category's daily spend with a confidence
// band derived from the category's historical volatility. The anchor fixes
// the end of the observed window. Point forecasts are clamped at zero
// (spend cannot be negative), which keeps lower <= point <= upper with a
// non-negative lower bound at every step.
func (f *Forecaster) CategoryForecast(txns []model.Transaction, category string, horizon int, anchor time.Time) model.CategoryForecast {
	if horizon < 0 {
		horizon = 0
	}

	series, _ := DailyExpenseSeries(FilterCategory(txns, category), anchor)
	result := f.Forecast(series, horizon)

	cf := model.CategoryForecast{
		ForecastResult:  result,
		Category:        category,
		ConfidenceLower: make([]float64, horizon),
		ConfidenceUpper: make([]float64, horizon),
	}

	if len(series) > 1 {
		cf.HistoricalAvg, cf.HistoricalStd = stat.MeanStdDev(series, nil)
		cf.Volatility = cf.HistoricalStd
	} else if len(series) == 1 {
		cf.HistoricalAvg = series[0]
	}

	band := cf.Volatility * f.confidenceZ
	for i, p := range cf.Points {
		if p < 0 {
			p = 0
			cf.Points[i] = 0
		}
		lower := p - band
		if lower < 0 {
			lower = 0
		}
		cf.ConfidenceLower[i] = lower
		cf.ConfidenceUpper[i] = p + band
	}

	return cf
}

func sum(vals []float64) float64 {
	var s float64
	for _, v := range vals {
		s += v
	}
	return s
}

func tail(vals []float64, n int) []float64 {
	if len(vals) <= n {
		out := make([]float64, len(vals))
		copy(out, vals)
		return out
	}
	out := make([]float64, n)
	copy(out, vals[len(vals)-n:])
	return out
}
