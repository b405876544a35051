package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
)

type MetricsTestSuite struct {
	suite.Suite
}

func TestMetricsSuite(t *testing.T) {
	suite.Run(t, new(MetricsTestSuite))
}

func (suite *MetricsTestSuite) TestObserveParse() {
	recorder := NewRecorder()
	recorder.ObserveParse(10, 2, 1)
	recorder.ObserveParse(5, 0, 0)

	suite.Equal(15.0, testutil.ToFloat64(recorder.RowsParsed))
	suite.Equal(2.0, testutil.ToFloat64(recorder.RowsSkipped))
	suite.Equal(1.0, testutil.ToFloat64(recorder.DuplicatesDropped))
}

func (suite *MetricsTestSuite) TestObserveSplitAndBenchmark() {
	recorder := NewRecorder()
	recorder.ObserveSplit(80, 20)
	recorder.ObserveBenchmark("random-walk", 0.02, 0.015, 48)

	suite.Equal(80.0, testutil.ToFloat64(recorder.WindowSamples.WithLabelValues("train")))
	suite.Equal(20.0, testutil.ToFloat64(recorder.WindowSamples.WithLabelValues("test")))
	suite.Equal(0.02, testutil.ToFloat64(recorder.BenchmarkRMSE.WithLabelValues("random-walk")))
	suite.Equal(48.0, testutil.ToFloat64(recorder.DirectionAccuracy.WithLabelValues("random-walk")))
}

func (suite *MetricsTestSuite) TestObserveStage() {
	recorder := NewRecorder()
	recorder.ObserveStage("parse", time.Now().Add(-time.Millisecond))

	suite.Equal(1, testutil.CollectAndCount(recorder.StageDuration))

	families, err := recorder.Registry().Gather()
	suite.Require().NoError(err)
	suite.NotEmpty(families)
}

func (suite *MetricsTestSuite) TestNilRecorder() {
	var recorder *Recorder

	suite.NotPanics(func() {
		recorder.ObserveParse(1, 1, 1)
		recorder.ObserveSplit(1, 1)
		recorder.ObserveBenchmark("model", 1, 1, 1)
		recorder.ObserveStage("parse", time.Now())
	})
	suite.Nil(recorder.Registry())
}
