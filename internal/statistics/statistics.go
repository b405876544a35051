package statistics

import (
	"math"

	"github.com/rxtech-lab/argo-forecast/internal/types"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	// TradingDaysPerYear annualizes daily figures.
	TradingDaysPerYear = 252

	// DefaultRollingWindow is the rolling volatility window in days.
	DefaultRollingWindow = 20
	ShortSMAPeriod       = 50
	LongSMAPeriod        = 200

	varianceFloor = 1e-6
	// emptyVariance is used when there are no returns at all.
	emptyVariance = 1e-4
	sharpeStdFloor = 1e-4
)

var annualization = math.Sqrt(TradingDaysPerYear)

// TotalReturn is the change from the first to the last price as a fraction.
func TotalReturn(prices []float64) float64 {
	if len(prices) == 0 || prices[0] == 0 {
		return 0
	}

	return (prices[len(prices)-1] - prices[0]) / prices[0]
}

// MaxDrawdown is the largest peak-to-trough decline as a fraction of the running peak.
func MaxDrawdown(prices []float64) float64 {
	if len(prices) == 0 {
		return 0
	}

	maxDrawdown := 0.0
	peak := prices[0]

	for _, price := range prices[1:] {
		if price > peak {
			peak = price
		}

		if peak <= 0 {
			continue
		}

		if drawdown := (peak - price) / peak; drawdown > maxDrawdown {
			maxDrawdown = drawdown
		}
	}

	return maxDrawdown
}

// MeanReturn is the arithmetic mean of returns, 0 for an empty series.
func MeanReturn(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}

	return stat.Mean(returns, nil)
}

// StdReturn is the population standard deviation of returns.
// The variance is floored at 1e-6 so a constant series never yields 0 or NaN.
func StdReturn(returns []float64) float64 {
	variance := emptyVariance
	if len(returns) > 0 {
		variance = stat.PopVariance(returns, nil)
	}

	return math.Sqrt(math.Max(variance, varianceFloor))
}

// AnnualizedVolatility scales StdReturn by sqrt(252).
func AnnualizedVolatility(returns []float64) float64 {
	return StdReturn(returns) * annualization
}

// SharpeRatio is the annualized mean over std ratio with a zero risk-free rate.
func SharpeRatio(returns []float64) float64 {
	return MeanReturn(returns) / math.Max(StdReturn(returns), sharpeStdFloor) * annualization
}

// PositiveDayRatio is the fraction of strictly positive returns.
func PositiveDayRatio(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}

	positive := 0

	for _, r := range returns {
		if r > 0 {
			positive++
		}
	}

	return float64(positive) / float64(len(returns))
}

// RollingVolatility computes the annualized population std of every trailing window.
// The result has max(0, len(returns)-window+1) points.
func RollingVolatility(returns []float64, window int) []float64 {
	if window <= 0 || len(returns) < window {
		return []float64{}
	}

	result := make([]float64, 0, len(returns)-window+1)

	for i := window; i <= len(returns); i++ {
		variance := stat.PopVariance(returns[i-window:i], nil)
		result = append(result, math.Sqrt(math.Max(variance, 0))*annualization)
	}

	return result
}

// SMA is the trailing simple moving average of prices. Empty when len(prices) < period.
func SMA(prices []float64, period int) []float64 {
	if period <= 0 || len(prices) < period {
		return []float64{}
	}

	result := make([]float64, 0, len(prices)-period+1)
	sum := floats.Sum(prices[:period])
	result = append(result, sum/float64(period))

	for i := period; i < len(prices); i++ {
		sum += prices[i] - prices[i-period]
		result = append(result, sum/float64(period))
	}

	return result
}

// Trend compares the latest short and long moving averages.
// Neutral when either series is empty.
func Trend(shortSMA, longSMA []float64) types.Trend {
	if len(shortSMA) == 0 || len(longSMA) == 0 {
		return types.TrendNeutral
	}

	if shortSMA[len(shortSMA)-1] > longSMA[len(longSMA)-1] {
		return types.TrendBullish
	}

	return types.TrendBearish
}
