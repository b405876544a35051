package statistics

import (
	"math"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-forecast/internal/returns"
	"github.com/rxtech-lab/argo-forecast/internal/types"
	"github.com/stretchr/testify/suite"
)

type StatisticsTestSuite struct {
	suite.Suite
}

func TestStatisticsSuite(t *testing.T) {
	suite.Run(t, new(StatisticsTestSuite))
}

var scenarioPrices = []float64{100, 102, 101, 105, 103}

func observationsFromPrices(prices []float64) []types.Observation {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	observations := make([]types.Observation, len(prices))

	for i, p := range prices {
		observations[i] = types.Observation{Date: start.AddDate(0, 0, i), Price: p}
	}

	return observations
}

func linearPrices(n int, start, step float64) []float64 {
	prices := make([]float64, n)
	for i := range prices {
		prices[i] = start + step*float64(i)
	}

	return prices
}

func (suite *StatisticsTestSuite) TestTotalReturnAndDrawdownScenario() {
	suite.InDelta(0.03, TotalReturn(scenarioPrices), 1e-12)
	suite.InDelta(2.0/105.0, MaxDrawdown(scenarioPrices), 1e-12)
}

func (suite *StatisticsTestSuite) TestMaxDrawdown() {
	tests := []struct {
		name     string
		prices   []float64
		expected float64
	}{
		{name: "empty", prices: nil, expected: 0},
		{name: "single", prices: []float64{100}, expected: 0},
		{name: "monotonic up", prices: []float64{1, 2, 3, 4}, expected: 0},
		{name: "deepest trough after later peak", prices: []float64{100, 80, 120, 60, 110}, expected: 0.5},
		{name: "first drop", prices: []float64{100, 90, 95}, expected: 0.1},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.InDelta(tt.expected, MaxDrawdown(tt.prices), 1e-12)
		})
	}
}

func (suite *StatisticsTestSuite) TestTotalReturnEmpty() {
	suite.Equal(0.0, TotalReturn(nil))
}

func (suite *StatisticsTestSuite) TestMeanAndStd() {
	daily := returns.Compute(observationsFromPrices(scenarioPrices))

	suite.InDelta(0.0076881, MeanReturn(daily), 1e-6)

	mean := MeanReturn(daily)
	variance := 0.0

	for _, r := range daily {
		variance += (r - mean) * (r - mean)
	}

	expectedStd := math.Sqrt(variance / float64(len(daily)))
	suite.InDelta(expectedStd, StdReturn(daily), 1e-12)
	suite.InDelta(expectedStd*math.Sqrt(252), AnnualizedVolatility(daily), 1e-12)
	suite.InDelta(mean/expectedStd*math.Sqrt(252), SharpeRatio(daily), 1e-9)
}

func (suite *StatisticsTestSuite) TestStdReturnDegenerate() {
	// constant series: variance floored at 1e-6
	suite.InDelta(0.001, StdReturn([]float64{0.01, 0.01, 0.01}), 1e-15)
	// no returns at all
	suite.InDelta(0.01, StdReturn(nil), 1e-15)
	suite.Equal(0.0, MeanReturn(nil))

	sharpe := SharpeRatio([]float64{0.01, 0.01})
	suite.False(math.IsNaN(sharpe))
	suite.InDelta(10*math.Sqrt(252), sharpe, 1e-9)
}

func (suite *StatisticsTestSuite) TestPositiveDayRatio() {
	suite.Equal(0.0, PositiveDayRatio(nil))
	suite.InDelta(0.5, PositiveDayRatio([]float64{0.01, -0.01, 0, 0.02}), 1e-12)
}

func (suite *StatisticsTestSuite) TestRollingVolatilityLength() {
	for n := 0; n <= 30; n++ {
		series := make([]float64, n)
		for i := range series {
			series[i] = math.Sin(float64(i)) / 100
		}

		expected := n - DefaultRollingWindow + 1
		if expected < 0 {
			expected = 0
		}

		suite.Len(RollingVolatility(series, DefaultRollingWindow), expected)
	}
}

func (suite *StatisticsTestSuite) TestRollingVolatilityValues() {
	result := RollingVolatility([]float64{0.01, -0.01, 0.01, -0.01}, 2)

	suite.Require().Len(result, 3)

	for _, v := range result {
		suite.InDelta(0.01*math.Sqrt(252), v, 1e-12)
	}

	suite.Empty(RollingVolatility([]float64{0.01}, 0))
	suite.Equal([]float64{0}, RollingVolatility([]float64{0.02, 0.02}, 2))
}

func (suite *StatisticsTestSuite) TestSMA() {
	suite.Equal([]float64{2, 3, 4}, SMA([]float64{1, 2, 3, 4, 5}, 3))
	suite.Equal([]float64{3}, SMA([]float64{1, 2, 3, 4, 5}, 5))
	suite.Empty(SMA([]float64{1, 2}, 3))
	suite.Empty(SMA([]float64{1, 2}, 0))
	suite.Len(SMA(linearPrices(250, 100, 1), LongSMAPeriod), 51)
}

func (suite *StatisticsTestSuite) TestTrend() {
	suite.Equal(types.TrendBullish, Trend([]float64{1, 12}, []float64{10}))
	suite.Equal(types.TrendBearish, Trend([]float64{1, 9}, []float64{10}))
	suite.Equal(types.TrendBearish, Trend([]float64{10}, []float64{10}))
	suite.Equal(types.TrendNeutral, Trend(nil, []float64{10}))
	suite.Equal(types.TrendNeutral, Trend([]float64{10}, nil))
}

func (suite *StatisticsTestSuite) TestBuildReportShortHistory() {
	observations := observationsFromPrices(scenarioPrices)
	report := BuildReport(observations, returns.Compute(observations), Options{RollingWindow: 0})

	suite.Equal(5, report.TotalDays)
	suite.Equal(DefaultRollingWindow, report.RollingWindow)
	suite.Equal(observations[0].Date, report.StartDate)
	suite.Equal(observations[4].Date, report.EndDate)
	suite.Equal(100.0, report.FirstPrice)
	suite.Equal(103.0, report.LastPrice)
	suite.Equal(100.0, report.MinPrice)
	suite.Equal(105.0, report.MaxPrice)
	suite.InDelta(0.03, report.TotalReturn, 1e-12)
	suite.InDelta(0.0190476, report.MaxDrawdown, 1e-6)
	suite.InDelta(0.5, report.PositiveDayRatio, 1e-12)

	suite.Empty(report.RollingVolatility)
	suite.True(report.CurrentRollingVolatility.IsNone())
	suite.True(report.AverageRollingVolatility.IsNone())
	suite.True(report.LatestSMA50.IsNone())
	suite.True(report.LatestSMA200.IsNone())
	suite.True(report.AboveSMA200.IsNone())
	suite.Equal(types.TrendNeutral, report.Trend)

	view := report.View()
	suite.Equal("3.00%", view.TotalReturn)
	suite.Equal("1.90%", view.MaxDrawdown)
	suite.Equal(types.NotAvailable, view.SMA200)
}

func (suite *StatisticsTestSuite) TestBuildReportLongHistory() {
	tests := []struct {
		name  string
		step  float64
		trend types.Trend
		above bool
	}{
		{name: "rising prices", step: 0.5, trend: types.TrendBullish, above: true},
		{name: "falling prices", step: -0.2, trend: types.TrendBearish, above: false},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			observations := observationsFromPrices(linearPrices(260, 200, tt.step))
			daily := returns.Compute(observations)
			report := BuildReport(observations, daily, Options{RollingWindow: 10})

			suite.Equal(10, report.RollingWindow)
			suite.Len(report.RollingVolatility, len(daily)-10+1)
			suite.True(report.CurrentRollingVolatility.IsSome())
			suite.True(report.AverageRollingVolatility.IsSome())
			suite.Len(report.SMA50, 211)
			suite.Len(report.SMA200, 61)
			suite.InDelta(report.SMA200[60], report.LatestSMA200.Unwrap(), 1e-12)
			suite.Equal(tt.above, report.AboveSMA200.Unwrap())
			suite.Equal(tt.trend, report.Trend)
		})
	}
}

func (suite *StatisticsTestSuite) TestBuildReportEmpty() {
	report := BuildReport(nil, nil, Options{RollingWindow: 20})

	suite.Equal(0, report.TotalDays)
	suite.Equal(types.TrendNeutral, report.Trend)
	suite.Equal(types.NotAvailable, report.View().CurrentTrend)
}
