package pipeline

import (
	"context"
	"math"
	"time"

	"github.com/rxtech-lab/argo-forecast/internal/forecast"
	"github.com/rxtech-lab/argo-forecast/internal/normalize"
	"github.com/rxtech-lab/argo-forecast/internal/types"
	"github.com/rxtech-lab/argo-forecast/internal/window"
	"github.com/rxtech-lab/argo-forecast/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Forecast predicts the next Horizon returns from the most recent window with model and the
// baseline, and compounds the model returns into prices from the last close.
func (s *Session) Forecast(ctx context.Context, model forecast.SequenceModel) (types.Forecast, error) {
	dataset, err := s.readyDataset()
	if err != nil {
		return types.Forecast{}, err
	}

	if err := s.ensureBaseline(); err != nil {
		return types.Forecast{}, err
	}

	start := time.Now()
	horizon := dataset.Options.Horizon

	input, err := window.LastWindow(dataset.Normalized, dataset.Options.WindowSize)
	if err != nil {
		return types.Forecast{}, err
	}

	output, err := model.Predict(ctx, input)
	if err != nil {
		return types.Forecast{}, err
	}

	if err := checkOutput(output, 1, horizon); err != nil {
		return types.Forecast{}, err
	}

	predicted := normalize.DenormalizeAll(output[0], dataset.Params)

	recent := dataset.Returns[len(dataset.Returns)-dataset.Options.WindowSize:]
	baseline := s.baseline.Predict(recent, horizon)

	lastPrice := s.observations[len(s.observations)-1].Price

	result := types.Forecast{
		Returns:     predicted,
		Baseline:    baseline,
		LastPrice:   lastPrice,
		Projections: Project(lastPrice, predicted),
	}

	s.metrics.ObserveStage("forecast", start)
	s.logger.Info("Forecast complete",
		zap.String("model", model.Name()),
		zap.Int("horizon", horizon),
		zap.Float64("last_price", lastPrice),
	)

	return result, nil
}

// Project compounds daily returns into prices starting from lastPrice.
func Project(lastPrice float64, dailyReturns []float64) []types.PriceProjection {
	projections := make([]types.PriceProjection, 0, len(dailyReturns))

	last := decimal.NewFromFloat(lastPrice)
	price := last
	one := decimal.NewFromInt(1)

	for i, r := range dailyReturns {
		price = price.Mul(one.Add(decimal.NewFromFloat(r)))

		change := decimal.Zero
		if !last.IsZero() {
			change = price.Div(last).Sub(one)
		}

		projections = append(projections, types.PriceProjection{
			Day:    i + 1,
			Return: r,
			Price:  price.Round(4).InexactFloat64(),
			Change: change.InexactFloat64(),
		})
	}

	return projections
}

// checkOutput verifies a model returned rows x horizon finite predictions.
func checkOutput(output [][]float64, rows, horizon int) error {
	if err := checkShape(output, rows, horizon); err != nil {
		return err
	}

	for i, row := range output {
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return errors.Newf(errors.ErrCodeModelPredictFailed, "model row %d step %d is not finite: %v", i, j, v)
			}
		}
	}

	return nil
}

// checkShape verifies a model returned rows x horizon predictions.
func checkShape(output [][]float64, rows, horizon int) error {
	if len(output) != rows {
		return errors.Newf(errors.ErrCodeModelOutputShape, "model returned %d rows, want %d", len(output), rows)
	}

	for i, row := range output {
		if len(row) != horizon {
			return errors.Newf(errors.ErrCodeModelOutputShape, "model row %d has %d steps, want %d", i, len(row), horizon)
		}
	}

	return nil
}
