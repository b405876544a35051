package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "forecast"

// Recorder collects pipeline metrics on its own registry.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	RowsParsed        prometheus.Counter
	RowsSkipped       prometheus.Counter
	DuplicatesDropped prometheus.Counter
	WindowSamples     *prometheus.GaugeVec
	BenchmarkRMSE     *prometheus.GaugeVec
	BenchmarkMAE      *prometheus.GaugeVec
	DirectionAccuracy *prometheus.GaugeVec
	StageDuration     *prometheus.HistogramVec
}

// NewRecorder creates a Recorder with every collector registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		RowsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "parser",
			Name:      "rows_parsed_total",
			Help:      "Observations accepted by the parser",
		}),
		RowsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "parser",
			Name:      "rows_skipped_total",
			Help:      "Rows skipped with a warning",
		}),
		DuplicatesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "parser",
			Name:      "duplicates_dropped_total",
			Help:      "Rows dropped because their date was already seen",
		}),
		WindowSamples: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "window",
			Name:      "samples",
			Help:      "Windowed samples of the prepared dataset by split",
		}, []string{"split"}),
		BenchmarkRMSE: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "benchmark",
			Name:      "rmse",
			Help:      "Root mean squared error by forecaster",
		}, []string{"forecaster"}),
		BenchmarkMAE: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "benchmark",
			Name:      "mae",
			Help:      "Mean absolute error by forecaster",
		}, []string{"forecaster"}),
		DirectionAccuracy: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "benchmark",
			Name:      "direction_accuracy_percent",
			Help:      "Directional accuracy by forecaster",
		}, []string{"forecaster"}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Duration of pipeline stages",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage"}),
	}

	r.registry.MustRegister(
		r.RowsParsed,
		r.RowsSkipped,
		r.DuplicatesDropped,
		r.WindowSamples,
		r.BenchmarkRMSE,
		r.BenchmarkMAE,
		r.DirectionAccuracy,
		r.StageDuration,
	)

	return r
}

// Registry exposes the registry for gathering or serving.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}

	return r.registry
}

// ObserveParse records the outcome of one parse.
func (r *Recorder) ObserveParse(parsed, skipped, duplicates int) {
	if r == nil {
		return
	}

	r.RowsParsed.Add(float64(parsed))
	r.RowsSkipped.Add(float64(skipped))
	r.DuplicatesDropped.Add(float64(duplicates))
}

// ObserveSplit records the size of the train and test splits.
func (r *Recorder) ObserveSplit(train, test int) {
	if r == nil {
		return
	}

	r.WindowSamples.WithLabelValues("train").Set(float64(train))
	r.WindowSamples.WithLabelValues("test").Set(float64(test))
}

// ObserveBenchmark records the scores of one forecaster.
func (r *Recorder) ObserveBenchmark(forecaster string, rmse, mae, directionAccuracy float64) {
	if r == nil {
		return
	}

	r.BenchmarkRMSE.WithLabelValues(forecaster).Set(rmse)
	r.BenchmarkMAE.WithLabelValues(forecaster).Set(mae)
	r.DirectionAccuracy.WithLabelValues(forecaster).Set(directionAccuracy)
}

// ObserveStage records how long a stage took since start.
func (r *Recorder) ObserveStage(stage string, start time.Time) {
	if r == nil {
		return
	}

	r.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}
