package returns

import (
	"github.com/rxtech-lab/argo-forecast/internal/types"
)

// MaxAbsReturn bounds a single daily return. Larger moves are treated as data glitches.
const MaxAbsReturn = 0.5

// Compute derives day-over-day returns from observations.
// Returns an empty series when fewer than two observations are given.
func Compute(observations []types.Observation) []float64 {
	if len(observations) < 2 {
		return []float64{}
	}

	result := make([]float64, len(observations)-1)

	for i := 1; i < len(observations); i++ {
		previous := observations[i-1].Price
		result[i-1] = Clamp((observations[i].Price-previous)/previous, -MaxAbsReturn, MaxAbsReturn)
	}

	return result
}

// Prices extracts the closing prices of observations.
func Prices(observations []types.Observation) []float64 {
	prices := make([]float64, len(observations))
	for i, o := range observations {
		prices[i] = o.Price
	}

	return prices
}

// Clamp limits value to [lower, upper].
func Clamp(value, lower, upper float64) float64 {
	if value < lower {
		return lower
	}

	if value > upper {
		return upper
	}

	return value
}
