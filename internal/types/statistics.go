package types

import (
	"fmt"
	"time"

	"github.com/moznion/go-optional"
)

const (
	// NotAvailable is displayed for statistics that need more history than loaded.
	NotAvailable = "N/A"
	// DateLayout is the display layout for calendar dates.
	DateLayout = "2006-01-02"
)

// Trend is the moving-average regime of a price series.
type Trend string

const (
	TrendBullish Trend = "Bullish"
	TrendBearish Trend = "Bearish"
	// TrendNeutral means one of the moving averages could not be computed.
	TrendNeutral Trend = "Neutral"
)

// StatisticsReport holds every statistic derived from one loaded dataset.
// Values that need a minimum history length are optional; None means "not enough data".
type StatisticsReport struct {
	TotalDays  int
	StartDate  time.Time
	EndDate    time.Time
	FirstPrice float64
	LastPrice  float64
	MinPrice   float64
	MaxPrice   float64

	// Fraction, e.g. 0.03 for +3%.
	TotalReturn float64
	// Fraction of the running peak, always >= 0.
	MaxDrawdown float64

	MeanReturn           float64
	StdReturn            float64
	AnnualizedVolatility float64
	SharpeRatio          float64
	PositiveDayRatio     float64

	RollingWindow            int
	RollingVolatility        []float64
	CurrentRollingVolatility optional.Option[float64]
	AverageRollingVolatility optional.Option[float64]

	SMA50        []float64
	SMA200       []float64
	LatestSMA50  optional.Option[float64]
	LatestSMA200 optional.Option[float64]
	AboveSMA200  optional.Option[bool]
	Trend        Trend
}

// StatisticsView is the display rendering of a StatisticsReport.
type StatisticsView struct {
	TotalDays            string `yaml:"total_days" json:"total_days"`
	DateRange            string `yaml:"date_range" json:"date_range"`
	FirstPrice           string `yaml:"first_price" json:"first_price"`
	LastPrice            string `yaml:"last_price" json:"last_price"`
	TotalReturn          string `yaml:"total_return" json:"total_return"`
	MaxDrawdown          string `yaml:"max_drawdown" json:"max_drawdown"`
	MeanDailyReturn      string `yaml:"mean_daily_return" json:"mean_daily_return"`
	StdDailyReturn       string `yaml:"std_daily_return" json:"std_daily_return"`
	AnnualizedVolatility string `yaml:"annualized_volatility" json:"annualized_volatility"`
	SharpeRatio          string `yaml:"sharpe_ratio" json:"sharpe_ratio"`
	PositiveDays         string `yaml:"positive_days" json:"positive_days"`
	CurrentTrend         string `yaml:"current_trend" json:"current_trend"`
	SMA50                string `yaml:"sma_50" json:"sma_50"`
	SMA200               string `yaml:"sma_200" json:"sma_200"`
	AboveSMA200          string `yaml:"above_sma_200" json:"above_sma_200"`
	CurrentRollingVol    string `yaml:"current_rolling_volatility" json:"current_rolling_volatility"`
	AverageRollingVol    string `yaml:"average_rolling_volatility" json:"average_rolling_volatility"`
}

// View renders the report for display. An empty report renders as all N/A.
func (r StatisticsReport) View() StatisticsView {
	if r.TotalDays == 0 {
		return StatisticsView{
			TotalDays:            "0",
			DateRange:            NotAvailable,
			FirstPrice:           NotAvailable,
			LastPrice:            NotAvailable,
			TotalReturn:          NotAvailable,
			MaxDrawdown:          NotAvailable,
			MeanDailyReturn:      NotAvailable,
			StdDailyReturn:       NotAvailable,
			AnnualizedVolatility: NotAvailable,
			SharpeRatio:          NotAvailable,
			PositiveDays:         NotAvailable,
			CurrentTrend:         NotAvailable,
			SMA50:                NotAvailable,
			SMA200:               NotAvailable,
			AboveSMA200:          NotAvailable,
			CurrentRollingVol:    NotAvailable,
			AverageRollingVol:    NotAvailable,
		}
	}

	positiveDays := "0%"
	if r.TotalDays > 1 {
		positiveDays = fmt.Sprintf("%.1f%%", r.PositiveDayRatio*100)
	}

	return StatisticsView{
		TotalDays:            fmt.Sprintf("%d", r.TotalDays),
		DateRange:            fmt.Sprintf("%s - %s", r.StartDate.Format(DateLayout), r.EndDate.Format(DateLayout)),
		FirstPrice:           fmt.Sprintf("$%.2f", r.FirstPrice),
		LastPrice:            fmt.Sprintf("$%.2f", r.LastPrice),
		TotalReturn:          fmt.Sprintf("%.2f%%", r.TotalReturn*100),
		MaxDrawdown:          fmt.Sprintf("%.2f%%", r.MaxDrawdown*100),
		MeanDailyReturn:      fmt.Sprintf("%.4f%%", r.MeanReturn*100),
		StdDailyReturn:       fmt.Sprintf("%.4f%%", r.StdReturn*100),
		AnnualizedVolatility: fmt.Sprintf("%.2f%%", r.AnnualizedVolatility*100),
		SharpeRatio:          fmt.Sprintf("%.2f", r.SharpeRatio),
		PositiveDays:         positiveDays,
		CurrentTrend:         string(r.Trend),
		SMA50:                formatOptional(r.LatestSMA50, "%.2f", 1),
		SMA200:               formatOptional(r.LatestSMA200, "%.2f", 1),
		AboveSMA200:          formatYesNo(r.AboveSMA200),
		CurrentRollingVol:    formatOptional(r.CurrentRollingVolatility, "%.2f%%", 100),
		AverageRollingVol:    formatOptional(r.AverageRollingVolatility, "%.2f%%", 100),
	}
}

func formatOptional(value optional.Option[float64], format string, scale float64) string {
	if value.IsNone() {
		return NotAvailable
	}

	return fmt.Sprintf(format, value.Unwrap()*scale)
}

func formatYesNo(value optional.Option[bool]) string {
	if value.IsNone() {
		return NotAvailable
	}

	if value.Unwrap() {
		return "Yes"
	}

	return "No"
}
