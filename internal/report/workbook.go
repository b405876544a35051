package report

import (
	"fmt"

	"github.com/rxtech-lab/argo-forecast/internal/types"
	"github.com/rxtech-lab/argo-forecast/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const (
	SheetStatistics = "Statistics"
	SheetBenchmark  = "Benchmark"
	SheetForecast   = "Forecast"
	SheetWarnings   = "Warnings"
)

func writeWorkbook(path string, report Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetStatistics); err != nil {
		return errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to rename sheet", err)
	}

	rows := [][]any{
		{"Symbol", report.Symbol},
		{"Source", report.Source},
		{"Generated At", report.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"Observations", report.Summary.Count},
		{"Date Range", report.Summary.DateRange()},
		{"Price Range", report.Summary.PriceRange()},
		{"Skipped Rows", len(report.Warnings)},
	}
	rows = append(rows, statisticsRows(report.Statistics)...)

	if err := writeRows(f, SheetStatistics, rows); err != nil {
		return err
	}

	if report.Benchmark != nil {
		if err := writeSheet(f, SheetBenchmark, benchmarkRows(*report.Benchmark)); err != nil {
			return err
		}
	}

	if report.Forecast != nil {
		if err := writeSheet(f, SheetForecast, forecastRows(*report.Forecast)); err != nil {
			return err
		}
	}

	if len(report.Warnings) > 0 {
		if err := writeSheet(f, SheetWarnings, warningRows(report.Warnings)); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to save %s", path)
	}

	return nil
}

func writeSheet(f *excelize.File, sheet string, rows [][]any) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to create sheet %s", sheet)
	}

	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errors.Wrap(errors.ErrCodeReportWriteFailed, "invalid cell", err)
		}

		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to write %s!%s", sheet, cell)
		}
	}

	return nil
}

func statisticsRows(view types.StatisticsView) [][]any {
	return [][]any{
		{"Total Days", view.TotalDays},
		{"First Price", view.FirstPrice},
		{"Last Price", view.LastPrice},
		{"Total Return", view.TotalReturn},
		{"Max Drawdown", view.MaxDrawdown},
		{"Mean Daily Return", view.MeanDailyReturn},
		{"Std Daily Return", view.StdDailyReturn},
		{"Annualized Volatility", view.AnnualizedVolatility},
		{"Sharpe Ratio", view.SharpeRatio},
		{"Positive Days", view.PositiveDays},
		{"Trend", view.CurrentTrend},
		{"SMA 50", view.SMA50},
		{"SMA 200", view.SMA200},
		{"Above SMA 200", view.AboveSMA200},
		{"Current Rolling Volatility", view.CurrentRollingVol},
		{"Average Rolling Volatility", view.AverageRollingVol},
	}
}

func benchmarkRows(summary types.BenchmarkSummary) [][]any {
	return [][]any{
		{"Run ID", summary.RunID},
		{"Metric", summary.ModelName, "random-walk", "Improvement %"},
		{"RMSE", summary.Model.RMSE, summary.Baseline.RMSE, summary.Comparison.RMSEImprovementPct},
		{"MSE", summary.Model.MSE, summary.Baseline.MSE, nil},
		{"MAE", summary.Model.MAE, summary.Baseline.MAE, summary.Comparison.MAEImprovementPct},
		{"Direction Accuracy %", summary.Model.DirectionAccuracy, summary.Baseline.DirectionAccuracy, summary.Comparison.AccuracyImprovementPct},
		{"Sample Size", summary.Model.SampleSize, summary.Baseline.SampleSize, nil},
		{"Verdict", summary.Comparison.Verdict()},
	}
}

func forecastRows(forecast types.Forecast) [][]any {
	rows := [][]any{
		{"Last Price", forecast.LastPrice},
		{"Day", "Return", "Baseline Return", "Price", "Cumulative Change"},
	}

	for i, projection := range forecast.Projections {
		var baseline any
		if i < len(forecast.Baseline) {
			baseline = forecast.Baseline[i]
		}

		rows = append(rows, []any{
			projection.Day,
			projection.Return,
			baseline,
			projection.Price,
			fmt.Sprintf("%.2f%%", projection.Change*100),
		})
	}

	return rows
}

func warningRows(warnings []types.ParseWarning) [][]any {
	rows := [][]any{{"Line", "Reason", "Content"}}

	for _, warning := range warnings {
		rows = append(rows, []any{warning.Line, warning.Reason, warning.Content})
	}

	return rows
}
