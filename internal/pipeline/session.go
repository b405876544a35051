// Package pipeline wires the forecasting stages into one explicit session:
// load, statistics, prepare, train, forecast and benchmark.
package pipeline

import (
	"context"
	"time"

	"github.com/rxtech-lab/argo-forecast/internal/config"
	"github.com/rxtech-lab/argo-forecast/internal/forecast"
	"github.com/rxtech-lab/argo-forecast/internal/logger"
	"github.com/rxtech-lab/argo-forecast/internal/metrics"
	"github.com/rxtech-lab/argo-forecast/internal/parser"
	"github.com/rxtech-lab/argo-forecast/internal/returns"
	"github.com/rxtech-lab/argo-forecast/internal/statistics"
	"github.com/rxtech-lab/argo-forecast/internal/types"
	"github.com/rxtech-lab/argo-forecast/internal/window"
	"github.com/rxtech-lab/argo-forecast/pkg/errors"
	"github.com/rxtech-lab/argo-forecast/pkg/source"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

// Option customizes a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(log *logger.Logger) Option {
	return func(s *Session) {
		s.logger = log
	}
}

// WithMetrics records stage metrics on recorder.
func WithMetrics(recorder *metrics.Recorder) Option {
	return func(s *Session) {
		s.metrics = recorder
	}
}

// WithRandomSource sets the random source of the baseline.
func WithRandomSource(randomSource forecast.RandomSource) Option {
	return func(s *Session) {
		s.randomSource = randomSource
	}
}

// Session holds the state of one pipeline run. Each load replaces the observations and
// recomputes everything derived from them. A Session is not safe for concurrent use.
type Session struct {
	config       config.PipelineConfig
	logger       *logger.Logger
	metrics      *metrics.Recorder
	randomSource forecast.RandomSource
	parser       *parser.RecordParser

	sourceName   string
	observations []types.Observation
	returns      []float64
	warnings     []types.ParseWarning
	statistics   types.StatisticsReport
	dataset      *window.Dataset
	baseline     *forecast.RandomWalk
}

// NewSession creates an empty session. Without WithRandomSource the baseline is seeded
// from cfg.Seed, or from the clock when the seed is 0.
func NewSession(cfg config.PipelineConfig, opts ...Option) *Session {
	s := &Session{
		config:       cfg,
		logger:       nil,
		metrics:      nil,
		randomSource: nil,
		observations: []types.Observation{},
		returns:      []float64{},
		warnings:     []types.ParseWarning{},
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.NewNopLogger()
	}

	if s.randomSource == nil {
		if cfg.Seed != 0 {
			s.randomSource = forecast.NewSeededSource(cfg.Seed)
		} else {
			s.randomSource = forecast.NewTimeSource()
		}
	}

	s.parser = parser.NewRecordParser(s.logger)
	s.statistics = statistics.BuildReport(nil, nil, cfg.StatisticsOptions())
	s.baseline = forecast.NewRandomWalk(s.randomSource, s.logger)

	return s
}

// Config returns the session configuration.
func (s *Session) Config() config.PipelineConfig {
	return s.config
}

// Load fetches raw text from src and loads it.
func (s *Session) Load(ctx context.Context, src source.Source) error {
	start := time.Now()

	data, err := src.Fetch(ctx)
	if err != nil {
		return err
	}

	s.metrics.ObserveStage("fetch", start)

	if err := s.LoadText(string(data)); err != nil {
		return err
	}

	s.sourceName = src.Name()
	s.logger.Info("Loaded price series",
		zap.String("source", src.Name()),
		zap.Int("observations", len(s.observations)),
		zap.Int("warnings", len(s.warnings)),
	)

	return nil
}

// LoadText parses raw price text and replaces the session data. On error the previous
// data is kept.
func (s *Session) LoadText(raw string) error {
	start := time.Now()

	result, err := s.parser.Parse(raw)
	if err != nil {
		return err
	}

	s.metrics.ObserveParse(len(result.Observations), len(result.Warnings), result.DuplicatesDropped)
	s.metrics.ObserveStage("parse", start)

	s.replace(result.Observations, result.Warnings)
	s.sourceName = "text"

	return nil
}

// LoadObservations replaces the session data with observations already sorted by date,
// such as those read back from an archive.
func (s *Session) LoadObservations(observations []types.Observation) error {
	if len(observations) == 0 {
		return errors.NewFormatError("no observations")
	}

	for i := 1; i < len(observations); i++ {
		if !observations[i].Date.After(observations[i-1].Date) {
			return errors.Newf(errors.ErrCodeInvalidParameter,
				"observations must have strictly increasing dates, got %s after %s",
				observations[i].Date.Format(types.DateLayout), observations[i-1].Date.Format(types.DateLayout))
		}
	}

	s.replace(append([]types.Observation(nil), observations...), []types.ParseWarning{})
	s.sourceName = "observations"

	return nil
}

func (s *Session) replace(observations []types.Observation, warnings []types.ParseWarning) {
	start := time.Now()

	s.observations = observations
	s.warnings = warnings
	s.returns = returns.Compute(observations)
	s.statistics = statistics.BuildReport(s.observations, s.returns, s.config.StatisticsOptions())

	// derived state belongs to the previous series
	s.dataset = nil
	s.baseline = forecast.NewRandomWalk(s.randomSource, s.logger)

	s.metrics.ObserveStage("statistics", start)
}

// SourceName names where the current data came from.
func (s *Session) SourceName() string {
	return s.sourceName
}

// Observations returns the loaded observations in date order.
func (s *Session) Observations() []types.Observation {
	return s.observations
}

// Returns returns the daily return series of the loaded observations.
func (s *Session) Returns() []float64 {
	return s.returns
}

// Warnings returns the rows skipped by the last parse.
func (s *Session) Warnings() []types.ParseWarning {
	return s.warnings
}

// Statistics returns the report computed for the loaded observations.
func (s *Session) Statistics() types.StatisticsReport {
	return s.statistics
}

// Summary describes the loaded observations.
func (s *Session) Summary() types.DataSummary {
	if len(s.observations) == 0 {
		return types.DataSummary{}
	}

	prices := returns.Prices(s.observations)

	return types.DataSummary{
		Count:     len(s.observations),
		StartDate: s.observations[0].Date,
		EndDate:   s.observations[len(s.observations)-1].Date,
		MinPrice:  floats.Min(prices),
		MaxPrice:  floats.Max(prices),
	}
}

// Dataset returns the prepared dataset, or nil before Prepare.
func (s *Session) Dataset() *window.Dataset {
	return s.dataset
}

// Prepare normalizes the returns and builds the train/test windows.
func (s *Session) Prepare() (*window.Dataset, error) {
	if len(s.observations) == 0 {
		return nil, errors.New(errors.ErrCodeNoDataLoaded, "no data loaded")
	}

	opts := s.config.WindowOptions()

	if len(s.returns) == 0 {
		return nil, errors.NewInsufficientDataErrorf(opts.WindowSize+opts.Horizon+window.MinSamples, 0,
			s.config.Symbol, "no return history: %d observation(s) loaded", len(s.observations))
	}

	start := time.Now()

	dataset, err := window.Prepare(s.returns, opts)
	if err != nil {
		return nil, err
	}

	s.dataset = dataset

	s.metrics.ObserveSplit(len(dataset.Split.Train), len(dataset.Split.Test))
	s.metrics.ObserveStage("prepare", start)
	s.logger.Info("Prepared dataset",
		zap.Int("train", len(dataset.Split.Train)),
		zap.Int("test", len(dataset.Split.Test)),
		zap.Int("discarded", dataset.Split.Discarded),
		zap.Float64("min", dataset.Params.Min),
		zap.Float64("max", dataset.Params.Max),
	)

	return dataset, nil
}

// readyDataset returns the prepared dataset if it still belongs to the loaded returns.
func (s *Session) readyDataset() (*window.Dataset, error) {
	if s.dataset == nil {
		return nil, errors.New(errors.ErrCodeDatasetNotReady, "dataset not prepared")
	}

	if !s.dataset.BoundTo(s.returns) {
		return nil, errors.New(errors.ErrCodeDatasetNotReady, "dataset was prepared from a different series")
	}

	return s.dataset, nil
}

// Baseline returns the random walk baseline of the session.
func (s *Session) Baseline() *forecast.RandomWalk {
	return s.baseline
}

// TrainBaseline fits the random walk on the raw returns covered by the training windows.
func (s *Session) TrainBaseline() error {
	dataset, err := s.readyDataset()
	if err != nil {
		return err
	}

	start := time.Now()

	s.baseline.Train(dataset.TrainReturns())

	mean, std := s.baseline.Moments()
	s.metrics.ObserveStage("train_baseline", start)
	s.logger.Info("Trained random walk baseline", zap.Float64("mean", mean), zap.Float64("std", std))

	return nil
}

// TrainModel fits model on the training tensors.
func (s *Session) TrainModel(ctx context.Context, model forecast.SequenceModel) error {
	dataset, err := s.readyDataset()
	if err != nil {
		return err
	}

	start := time.Now()
	inputs, targets := dataset.TrainTensors()

	if err := model.Fit(ctx, inputs, targets); err != nil {
		return err
	}

	s.metrics.ObserveStage("train_model", start)
	s.logger.Info("Trained model", zap.String("model", model.Name()), zap.Int("samples", len(inputs)))

	return nil
}

// SelfEvaluate scores the baseline on the last SelfEvaluationSize returns of the full series.
// An untrained baseline is left untouched: a separate random walk is fit on the history
// before the scored segment.
func (s *Session) SelfEvaluate() types.BenchmarkReport {
	evaluator := s.baseline

	if !evaluator.Trained() {
		evaluator = forecast.NewRandomWalk(s.randomSource, s.logger)
		evaluator.Train(s.returns[:max(len(s.returns)-s.config.SelfEvaluationSize, 0)])
	}

	return evaluator.SelfEvaluate(s.returns, s.config.SelfEvaluationSize)
}

func (s *Session) ensureBaseline() error {
	if s.baseline.Trained() {
		return nil
	}

	return s.TrainBaseline()
}
