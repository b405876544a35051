package normalize

import (
	"math"
	"testing"

	"github.com/rxtech-lab/argo-forecast/internal/types"
	"github.com/stretchr/testify/suite"
)

type NormalizeTestSuite struct {
	suite.Suite
}

func TestNormalizeSuite(t *testing.T) {
	suite.Run(t, new(NormalizeTestSuite))
}

func (suite *NormalizeTestSuite) TestFit() {
	tests := []struct {
		name   string
		series []float64
		min    float64
		max    float64
	}{
		{name: "regular", series: []float64{0.02, -0.03, 0.01}, min: -0.03, max: 0.02},
		{name: "skips non finite", series: []float64{math.NaN(), 0.04, math.Inf(1), -0.01, math.Inf(-1)}, min: -0.01, max: 0.04},
		{name: "constant is widened", series: []float64{0.01, 0.01}, min: 0.0, max: 0.02},
		{name: "no finite values", series: []float64{math.NaN(), math.Inf(1)}, min: -0.1, max: 0.1},
		{name: "empty", series: nil, min: -0.1, max: 0.1},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			params := Fit(tt.series)
			suite.InDelta(tt.min, params.Min, 1e-12)
			suite.InDelta(tt.max, params.Max, 1e-12)
			suite.Greater(params.Max, params.Min)
			suite.Equal(len(tt.series), params.SeriesLength)
			suite.True(params.BoundTo(tt.series))
		})
	}
}

func (suite *NormalizeTestSuite) TestNormalizeClampsToUnitInterval() {
	params := types.NormalizationParams{Min: -0.02, Max: 0.02}

	result := Normalize([]float64{-0.02, 0, 0.02, 0.5, -0.5, math.Inf(1), math.Inf(-1)}, params)

	suite.Equal([]float64{0, 0.5, 1, 1, 0, 1, 0}, result)
}

func (suite *NormalizeTestSuite) TestNormalizeKeepsNaN() {
	result := Normalize([]float64{math.NaN(), 0}, types.NormalizationParams{Min: -1, Max: 1})

	suite.True(math.IsNaN(result[0]))
	suite.InDelta(0.5, result[1], 1e-12)
}

func (suite *NormalizeTestSuite) TestRoundTrip() {
	series := []float64{-0.3, -0.08, -0.01, 0, 0.015, 0.09, 0.25}
	params := Fit(series)

	for _, x := range series {
		expected := math.Max(-0.1, math.Min(0.1, x))
		suite.InDelta(expected, Denormalize(NormalizeValue(x, params), params), 1e-12)
	}
}

func (suite *NormalizeTestSuite) TestDenormalize() {
	params := types.NormalizationParams{Min: -0.04, Max: 0.06}

	suite.InDelta(-0.04, Denormalize(0, params), 1e-12)
	suite.InDelta(0.01, Denormalize(0.5, params), 1e-12)
	suite.InDelta(0.06, Denormalize(1, params), 1e-12)

	wide := types.NormalizationParams{Min: -0.5, Max: 0.5}
	suite.Equal(0.1, Denormalize(1, wide))
	suite.Equal(-0.1, Denormalize(0, wide))

	suite.Equal([]float64{-0.1, 0.1}, DenormalizeAll([]float64{0, 1}, wide))
	suite.Empty(DenormalizeAll(nil, wide))
}
