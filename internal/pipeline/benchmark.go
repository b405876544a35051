package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-forecast/internal/benchmark"
	"github.com/rxtech-lab/argo-forecast/internal/forecast"
	"github.com/rxtech-lab/argo-forecast/internal/normalize"
	"github.com/rxtech-lab/argo-forecast/internal/types"
	"github.com/rxtech-lab/argo-forecast/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BaselineName labels the random walk in benchmark output.
const BaselineName = "random-walk"

// Benchmark runs model and the baseline over every test sample and scores both against the
// raw returns at the target positions. The two forecasters run concurrently on the
// read-only dataset.
func (s *Session) Benchmark(ctx context.Context, model forecast.SequenceModel) (types.BenchmarkSummary, error) {
	dataset, err := s.readyDataset()
	if err != nil {
		return types.BenchmarkSummary{}, err
	}

	if err := s.ensureBaseline(); err != nil {
		return types.BenchmarkSummary{}, err
	}

	samples := dataset.Split.Test
	if len(samples) == 0 {
		return types.BenchmarkSummary{}, errors.NewInsufficientDataError(1, 0, s.config.Symbol, "no test samples to benchmark")
	}

	start := time.Now()
	horizon := dataset.Options.Horizon
	inputs, _ := dataset.TestTensors()

	actual := make([]float64, 0, len(samples)*horizon)
	for _, sample := range samples {
		actual = append(actual, dataset.RawTarget(sample)...)
	}

	var modelPredictions, baselinePredictions []float64

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		output, err := model.Predict(gctx, inputs)
		if err != nil {
			return err
		}

		if err := checkOutput(output, len(samples), horizon); err != nil {
			return err
		}

		predictions := make([]float64, 0, len(actual))
		for _, row := range output {
			predictions = append(predictions, normalize.DenormalizeAll(row, dataset.Params)...)
		}

		modelPredictions = predictions

		return nil
	})

	g.Go(func() error {
		predictions := make([]float64, 0, len(actual))

		for _, sample := range samples {
			if err := gctx.Err(); err != nil {
				return err
			}

			predictions = append(predictions, s.baseline.Predict(dataset.RawWindow(sample), horizon)...)
		}

		baselinePredictions = predictions

		return nil
	})

	if err := g.Wait(); err != nil {
		return types.BenchmarkSummary{}, err
	}

	modelReport, err := benchmark.Evaluate(actual, modelPredictions)
	if err != nil {
		return types.BenchmarkSummary{}, err
	}

	baselineReport, err := benchmark.Evaluate(actual, baselinePredictions)
	if err != nil {
		return types.BenchmarkSummary{}, err
	}

	summary := types.BenchmarkSummary{
		RunID:      uuid.New().String(),
		ModelName:  model.Name(),
		Model:      modelReport,
		Baseline:   baselineReport,
		Comparison: benchmark.Compare(modelReport, baselineReport),
	}

	s.metrics.ObserveBenchmark(model.Name(), modelReport.RMSE, modelReport.MAE, modelReport.DirectionAccuracy)
	s.metrics.ObserveBenchmark(BaselineName, baselineReport.RMSE, baselineReport.MAE, baselineReport.DirectionAccuracy)
	s.metrics.ObserveStage("benchmark", start)
	s.logger.Info("Benchmark complete",
		zap.String("run_id", summary.RunID),
		zap.String("model", summary.ModelName),
		zap.Float64("model_rmse", modelReport.RMSE),
		zap.Float64("baseline_rmse", baselineReport.RMSE),
		zap.String("verdict", summary.Comparison.Verdict()),
	)

	return summary, nil
}
