package benchmark

import (
	"math"

	"github.com/rxtech-lab/argo-forecast/internal/types"
	"github.com/rxtech-lab/argo-forecast/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Evaluate scores predicted against actual.
// Direction agrees when both values are >= 0 or both are < 0.
// Empty input yields a zero report.
func Evaluate(actual, predicted []float64) (types.BenchmarkReport, error) {
	if len(actual) != len(predicted) {
		return types.BenchmarkReport{}, errors.NewLengthMismatchError(len(actual), len(predicted))
	}

	n := len(actual)
	if n == 0 {
		return types.BenchmarkReport{}, nil
	}

	correct := 0

	for i := range actual {
		if (actual[i] >= 0) == (predicted[i] >= 0) {
			correct++
		}
	}

	rmse := floats.Distance(actual, predicted, 2) / math.Sqrt(float64(n))

	return types.BenchmarkReport{
		RMSE:              rmse,
		MSE:               rmse * rmse,
		MAE:               floats.Distance(actual, predicted, 1) / float64(n),
		DirectionAccuracy: 100 * float64(correct) / float64(n),
		SampleSize:        n,
	}, nil
}

// Compare expresses the improvement of a over b. Error metrics use (b-a)/b*100, which is 0
// when b is 0. Accuracy uses the plain difference.
func Compare(a, b types.BenchmarkReport) types.Comparison {
	return types.Comparison{
		RMSEImprovementPct:     relativeImprovement(a.RMSE, b.RMSE),
		MAEImprovementPct:      relativeImprovement(a.MAE, b.MAE),
		AccuracyImprovementPct: a.DirectionAccuracy - b.DirectionAccuracy,
	}
}

func relativeImprovement(a, b float64) float64 {
	if b == 0 {
		return 0
	}

	return (b - a) / b * 100
}

// Flatten concatenates per-sample horizons into one series.
func Flatten(rows [][]float64) []float64 {
	size := 0
	for _, row := range rows {
		size += len(row)
	}

	result := make([]float64, 0, size)
	for _, row := range rows {
		result = append(result, row...)
	}

	return result
}
