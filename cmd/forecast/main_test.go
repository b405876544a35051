package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rxtech-lab/argo-forecast/internal/report"
	"github.com/rxtech-lab/argo-forecast/mocks"
	"github.com/rxtech-lab/argo-forecast/pkg/errors"
	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type ForecastCmdTestSuite struct {
	suite.Suite
	tempDir string
	csvPath string
}

func TestForecastCmdSuite(t *testing.T) {
	suite.Run(t, new(ForecastCmdTestSuite))
}

func (suite *ForecastCmdTestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()
	suite.csvPath = filepath.Join(suite.tempDir, "prices.csv")
	suite.Require().NoError(os.WriteFile(suite.csvPath, []byte(mocks.GenerateCSV(300)), 0644))

	suite.T().Setenv("FORECAST_LOG_LEVEL", "error")
}

func (suite *ForecastCmdTestSuite) run(args ...string) (string, error) {
	var out bytes.Buffer

	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out

	err := app.Run(context.Background(), append([]string{"forecast"}, args...))

	return out.String(), err
}

func (suite *ForecastCmdTestSuite) TestStats() {
	out, err := suite.run("stats", "--input", suite.csvPath)
	suite.Require().NoError(err)

	suite.Contains(out, "SPX: 300 observations")
	suite.Contains(out, "total_return:")
	suite.Contains(out, "sharpe_ratio:")
}

func (suite *ForecastCmdTestSuite) TestStatsWritesReportAndArchive() {
	reportPath := filepath.Join(suite.tempDir, "stats.json")
	archivePath := filepath.Join(suite.tempDir, "prices.parquet")
	metricsPath := filepath.Join(suite.tempDir, "metrics.prom")

	_, err := suite.run("stats", "--input", suite.csvPath, "--output", reportPath, "--archive", archivePath, "--metrics", metricsPath)
	suite.Require().NoError(err)

	data, err := os.ReadFile(reportPath)
	suite.Require().NoError(err)

	var rep report.Report
	suite.Require().NoError(json.Unmarshal(data, &rep))
	suite.Equal(300, rep.Summary.Count)
	suite.Equal("300", rep.Statistics.TotalDays)
	suite.FileExists(archivePath)

	metricsText, err := os.ReadFile(metricsPath)
	suite.Require().NoError(err)
	suite.Contains(string(metricsText), "forecast_parser_rows_parsed_total 300")

	// the archive reads back through the parquet path
	out, err := suite.run("stats", "--input", archivePath)
	suite.Require().NoError(err)
	suite.Contains(out, "SPX: 300 observations")
}

func (suite *ForecastCmdTestSuite) TestStatsFromURL() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(mocks.GenerateCSV(40)))
	}))
	defer server.Close()

	out, err := suite.run("stats", "--url", server.URL)
	suite.Require().NoError(err)
	suite.Contains(out, "SPX: 40 observations")
}

func (suite *ForecastCmdTestSuite) TestBenchmark() {
	reportPath := filepath.Join(suite.tempDir, "benchmark.yaml")

	out, err := suite.run("benchmark", "--input", suite.csvPath, "--output", reportPath)
	suite.Require().NoError(err)
	suite.Contains(out, "model_name: window-mean")
	suite.Contains(out, "random walk self evaluation")

	data, err := os.ReadFile(reportPath)
	suite.Require().NoError(err)

	var rep report.Report
	suite.Require().NoError(yaml.Unmarshal(data, &rep))
	suite.Require().NotNil(rep.Benchmark)
	suite.Greater(rep.Benchmark.Model.SampleSize, 0)
}

func (suite *ForecastCmdTestSuite) TestPredict() {
	reportPath := filepath.Join(suite.tempDir, "predict.xlsx")

	out, err := suite.run("predict", "--input", suite.csvPath, "--output", reportPath)
	suite.Require().NoError(err)
	suite.Contains(out, "Day +1")
	suite.Contains(out, "Day +5")
	suite.FileExists(reportPath)
}

func (suite *ForecastCmdTestSuite) TestConfigFile() {
	configPath := filepath.Join(suite.tempDir, "config.yaml")
	suite.Require().NoError(os.WriteFile(configPath, []byte("symbol: NDX\nwindow_size: 20\nhorizon: 3\n"), 0644))

	out, err := suite.run("predict", "--config", configPath, "--input", suite.csvPath)
	suite.Require().NoError(err)
	suite.Contains(out, "NDX last close")
	suite.Contains(out, "Day +3")
	suite.NotContains(out, "Day +4")
}

func (suite *ForecastCmdTestSuite) TestNoInput() {
	_, err := suite.run("stats")
	suite.Equal(errors.ErrCodeInvalidParameter, errors.GetCode(err))
}

func (suite *ForecastCmdTestSuite) TestTooLittleHistory() {
	shortPath := filepath.Join(suite.tempDir, "short.csv")
	suite.Require().NoError(os.WriteFile(shortPath, []byte(mocks.GenerateCSV(30)), 0644))

	_, err := suite.run("benchmark", "--input", shortPath)
	suite.True(errors.IsInsufficientDataError(err))
}

func (suite *ForecastCmdTestSuite) TestSchema() {
	out, err := suite.run("schema")
	suite.Require().NoError(err)
	suite.Contains(out, "forecast-pipeline-config")

	dir := filepath.Join(suite.tempDir, "config")
	_, err = suite.run("schema", "--dir", dir)
	suite.Require().NoError(err)
	suite.FileExists(filepath.Join(dir, schemaFileName))

	sample, err := os.ReadFile(filepath.Join(dir, sampleFileName))
	suite.Require().NoError(err)
	suite.Contains(string(sample), "# yaml-language-server: $schema="+schemaFileName)
	suite.Contains(string(sample), "window_size: 60")
}
