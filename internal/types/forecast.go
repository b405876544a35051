package types

import "math"

// NormalizationParams is the min-max scaling fitted on one return series.
// It must only be used with the series it was fit on.
type NormalizationParams struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
	// SeriesLength and SeriesSum fingerprint the series the params were fit on.
	SeriesLength int     `yaml:"series_length" json:"series_length"`
	SeriesSum    float64 `yaml:"series_sum" json:"series_sum"`
}

// Range returns Max - Min.
func (p NormalizationParams) Range() float64 {
	return p.Max - p.Min
}

// BoundTo reports whether the params were fit on a series with the same fingerprint.
func (p NormalizationParams) BoundTo(returns []float64) bool {
	if len(returns) != p.SeriesLength {
		return false
	}

	return math.Abs(FiniteSum(returns)-p.SeriesSum) < 1e-9
}

// FiniteSum adds the finite values of a series.
func FiniteSum(values []float64) float64 {
	sum := 0.0

	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}

		sum += v
	}

	return sum
}

// WindowedSample is one supervised example: a window of normalized returns and the
// horizon that follows it.
type WindowedSample struct {
	// Index is the position of the first input value in the normalized series.
	Index  int       `yaml:"index" json:"index"`
	Input  []float64 `yaml:"input" json:"input"`
	Target []float64 `yaml:"target" json:"target"`
}

// TargetStart is the series index of the first target value.
func (s WindowedSample) TargetStart() int {
	return s.Index + len(s.Input)
}

// ForecastResult is a sequence of predicted daily returns in return units.
type ForecastResult []float64

// PriceProjection is one day of a forecast compounded into prices.
type PriceProjection struct {
	Day    int     `yaml:"day" json:"day"`
	Return float64 `yaml:"return" json:"return"`
	Price  float64 `yaml:"price" json:"price"`
	// Change is the cumulative change from the last close, as a fraction.
	Change float64 `yaml:"change" json:"change"`
}

// Forecast is the output of one prediction run.
type Forecast struct {
	Returns     ForecastResult    `yaml:"returns" json:"returns"`
	Baseline    ForecastResult    `yaml:"baseline" json:"baseline"`
	LastPrice   float64           `yaml:"last_price" json:"last_price"`
	Projections []PriceProjection `yaml:"projections" json:"projections"`
}
