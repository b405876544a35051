package types

import (
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type StatisticsTestSuite struct {
	suite.Suite
}

func TestStatisticsSuite(t *testing.T) {
	suite.Run(t, new(StatisticsTestSuite))
}

func (suite *StatisticsTestSuite) TestViewEmptyReport() {
	view := StatisticsReport{}.View()

	suite.Equal("0", view.TotalDays)
	suite.Equal(NotAvailable, view.DateRange)
	suite.Equal(NotAvailable, view.SharpeRatio)
	suite.Equal(NotAvailable, view.CurrentTrend)
	suite.Equal(NotAvailable, view.AverageRollingVol)
}

func (suite *StatisticsTestSuite) TestViewShortHistory() {
	report := StatisticsReport{
		TotalDays:                5,
		StartDate:                time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:                  time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		FirstPrice:               100,
		LastPrice:                103,
		TotalReturn:              0.03,
		MaxDrawdown:              0.019047619,
		MeanReturn:               0.0078,
		StdReturn:                0.0245,
		AnnualizedVolatility:     0.389,
		SharpeRatio:              5.05,
		PositiveDayRatio:         0.5,
		RollingWindow:            20,
		CurrentRollingVolatility: optional.None[float64](),
		AverageRollingVolatility: optional.None[float64](),
		LatestSMA50:              optional.None[float64](),
		LatestSMA200:             optional.None[float64](),
		AboveSMA200:              optional.None[bool](),
		Trend:                    TrendNeutral,
	}

	view := report.View()

	suite.Equal("5", view.TotalDays)
	suite.Equal("2024-01-01 - 2024-01-05", view.DateRange)
	suite.Equal("$100.00", view.FirstPrice)
	suite.Equal("$103.00", view.LastPrice)
	suite.Equal("3.00%", view.TotalReturn)
	suite.Equal("1.90%", view.MaxDrawdown)
	suite.Equal("0.7800%", view.MeanDailyReturn)
	suite.Equal("2.4500%", view.StdDailyReturn)
	suite.Equal("38.90%", view.AnnualizedVolatility)
	suite.Equal("5.05", view.SharpeRatio)
	suite.Equal("50.0%", view.PositiveDays)
	suite.Equal("Neutral", view.CurrentTrend)
	suite.Equal(NotAvailable, view.SMA50)
	suite.Equal(NotAvailable, view.SMA200)
	suite.Equal(NotAvailable, view.AboveSMA200)
	suite.Equal(NotAvailable, view.CurrentRollingVol)
}

func (suite *StatisticsTestSuite) TestViewLongHistory() {
	report := StatisticsReport{
		TotalDays:                300,
		RollingWindow:            20,
		CurrentRollingVolatility: optional.Some(0.1532),
		AverageRollingVolatility: optional.Some(0.2),
		LatestSMA50:              optional.Some(120.456),
		LatestSMA200:             optional.Some(110.0),
		AboveSMA200:              optional.Some(true),
		Trend:                    TrendBullish,
	}

	view := report.View()

	suite.Equal("Bullish", view.CurrentTrend)
	suite.Equal("120.46", view.SMA50)
	suite.Equal("110.00", view.SMA200)
	suite.Equal("Yes", view.AboveSMA200)
	suite.Equal("15.32%", view.CurrentRollingVol)
	suite.Equal("20.00%", view.AverageRollingVol)

	report.AboveSMA200 = optional.Some(false)
	suite.Equal("No", report.View().AboveSMA200)
}

func (suite *StatisticsTestSuite) TestViewYAML() {
	view := StatisticsReport{}.View()

	data, err := yaml.Marshal(view)
	suite.Require().NoError(err)
	suite.Contains(string(data), "total_days: \"0\"")
	suite.Contains(string(data), "current_trend: N/A")
}

func (suite *StatisticsTestSuite) TestDataSummary() {
	empty := DataSummary{}
	suite.Equal(NotAvailable, empty.DateRange())
	suite.Equal(NotAvailable, empty.PriceRange())

	summary := DataSummary{
		Count:     3,
		StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		MinPrice:  95.1,
		MaxPrice:  130.424,
	}
	suite.Equal("2024-03-01 - 2024-03-05", summary.DateRange())
	suite.Equal("$95.10 - $130.42", summary.PriceRange())
}
