package normalize

import (
	"math"

	"github.com/rxtech-lab/argo-forecast/internal/returns"
	"github.com/rxtech-lab/argo-forecast/internal/types"
)

const (
	// MaxForecastReturn bounds a denormalized single-day return.
	MaxForecastReturn = 0.1

	degenerateRange = 1e-10
	widenBy         = 0.01
)

// FallbackParams are used when a series has no finite value.
var FallbackParams = types.NormalizationParams{
	Min:          -0.1,
	Max:          0.1,
	SeriesLength: 0,
	SeriesSum:    0,
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Fit computes min-max params over the finite values of series.
// A degenerate range is widened by 0.01 on both sides so Max > Min always holds.
func Fit(series []float64) types.NormalizationParams {
	params := FallbackParams
	found := false

	for _, v := range series {
		if !isFinite(v) {
			continue
		}

		if !found {
			params.Min, params.Max = v, v
			found = true

			continue
		}

		params.Min = math.Min(params.Min, v)
		params.Max = math.Max(params.Max, v)
	}

	if params.Max-params.Min < degenerateRange {
		params.Min -= widenBy
		params.Max += widenBy
	}

	params.SeriesLength = len(series)
	params.SeriesSum = types.FiniteSum(series)

	return params
}

// Normalize maps series into [0, 1] with params. Values outside the fitted range are clamped.
// NaN stays NaN so downstream windowing can discard it.
func Normalize(series []float64, params types.NormalizationParams) []float64 {
	result := make([]float64, len(series))
	for i, v := range series {
		result[i] = NormalizeValue(v, params)
	}

	return result
}

// NormalizeValue maps one value into [0, 1].
func NormalizeValue(v float64, params types.NormalizationParams) float64 {
	if math.IsNaN(v) {
		return v
	}

	return returns.Clamp((v-params.Min)/params.Range(), 0, 1)
}

// Denormalize is the inverse of Normalize, clamped to [-0.1, 0.1].
func Denormalize(v float64, params types.NormalizationParams) float64 {
	return returns.Clamp(v*params.Range()+params.Min, -MaxForecastReturn, MaxForecastReturn)
}

// DenormalizeAll applies Denormalize to every value.
func DenormalizeAll(values []float64, params types.NormalizationParams) []float64 {
	result := make([]float64, len(values))
	for i, v := range values {
		result[i] = Denormalize(v, params)
	}

	return result
}
