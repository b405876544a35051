package statistics

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-forecast/internal/returns"
	"github.com/rxtech-lab/argo-forecast/internal/types"
	"gonum.org/v1/gonum/floats"
)

// Options configures BuildReport.
type Options struct {
	// RollingWindow is the rolling volatility window. Defaults to DefaultRollingWindow when <= 0.
	RollingWindow int
}

// BuildReport recomputes every statistic from scratch for one dataset.
// dailyReturns must be the series derived from observations.
func BuildReport(observations []types.Observation, dailyReturns []float64, opts Options) types.StatisticsReport {
	window := opts.RollingWindow
	if window <= 0 {
		window = DefaultRollingWindow
	}

	report := types.StatisticsReport{
		TotalDays:                len(observations),
		RollingWindow:            window,
		RollingVolatility:        []float64{},
		CurrentRollingVolatility: optional.None[float64](),
		AverageRollingVolatility: optional.None[float64](),
		SMA50:                    []float64{},
		SMA200:                   []float64{},
		LatestSMA50:              optional.None[float64](),
		LatestSMA200:             optional.None[float64](),
		AboveSMA200:              optional.None[bool](),
		Trend:                    types.TrendNeutral,
	}

	if len(observations) == 0 {
		return report
	}

	prices := returns.Prices(observations)

	report.StartDate = observations[0].Date
	report.EndDate = observations[len(observations)-1].Date
	report.FirstPrice = prices[0]
	report.LastPrice = prices[len(prices)-1]
	report.MinPrice = floats.Min(prices)
	report.MaxPrice = floats.Max(prices)
	report.TotalReturn = TotalReturn(prices)
	report.MaxDrawdown = MaxDrawdown(prices)

	report.MeanReturn = MeanReturn(dailyReturns)
	report.StdReturn = StdReturn(dailyReturns)
	report.AnnualizedVolatility = AnnualizedVolatility(dailyReturns)
	report.SharpeRatio = SharpeRatio(dailyReturns)
	report.PositiveDayRatio = PositiveDayRatio(dailyReturns)

	report.RollingVolatility = RollingVolatility(dailyReturns, window)
	if n := len(report.RollingVolatility); n > 0 {
		report.CurrentRollingVolatility = optional.Some(report.RollingVolatility[n-1])
		report.AverageRollingVolatility = optional.Some(floats.Sum(report.RollingVolatility) / float64(n))
	}

	report.SMA50 = SMA(prices, ShortSMAPeriod)
	report.SMA200 = SMA(prices, LongSMAPeriod)

	if n := len(report.SMA50); n > 0 {
		report.LatestSMA50 = optional.Some(report.SMA50[n-1])
	}

	if n := len(report.SMA200); n > 0 {
		latest := report.SMA200[n-1]
		report.LatestSMA200 = optional.Some(latest)
		report.AboveSMA200 = optional.Some(report.LastPrice > latest)
	}

	report.Trend = Trend(report.SMA50, report.SMA200)

	return report
}
