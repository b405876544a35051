package forecast

import (
	"context"
	"sync"

	"github.com/rxtech-lab/argo-forecast/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// SequenceModel is a trainable forecaster working in normalized space.
// Inputs have shape [N][window][1]; targets and predictions have shape [N][horizon].
type SequenceModel interface {
	// Name identifies the model in reports.
	Name() string
	// Fit trains the model on windowed samples.
	Fit(ctx context.Context, inputs [][][]float64, targets [][]float64) error
	// Predict returns one horizon per input window.
	Predict(ctx context.Context, inputs [][][]float64) ([][]float64, error)
}

// DefaultWindowMeanWeight is the share of the window mean in a WindowMean forecast.
const DefaultWindowMeanWeight = 0.5

// WindowMean is a deterministic SequenceModel: each forecast blends the mean of the input
// window with the mean of every training target and repeats it over the horizon.
type WindowMean struct {
	mu sync.RWMutex
	// weight is the share of the window mean, in [0, 1].
	weight     float64
	targetMean float64
	horizon    int
}

// NewWindowMean creates an unfitted WindowMean. weight outside [0, 1] uses the default.
func NewWindowMean(weight float64) *WindowMean {
	if weight < 0 || weight > 1 {
		weight = DefaultWindowMeanWeight
	}

	return &WindowMean{
		weight:     weight,
		targetMean: 0,
		horizon:    0,
	}
}

// Name implements SequenceModel.
func (m *WindowMean) Name() string {
	return "window-mean"
}

// Fit implements SequenceModel.
func (m *WindowMean) Fit(ctx context.Context, inputs [][][]float64, targets [][]float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(inputs) == 0 || len(inputs) != len(targets) {
		return errors.Newf(errors.ErrCodeModelFitFailed,
			"expected matching non-empty inputs and targets, got %d and %d", len(inputs), len(targets))
	}

	horizon := len(targets[0])
	if horizon == 0 {
		return errors.New(errors.ErrCodeModelFitFailed, "targets have an empty horizon")
	}

	sum := 0.0
	count := 0

	for _, target := range targets {
		if len(target) != horizon {
			return errors.Newf(errors.ErrCodeModelFitFailed,
				"inconsistent target horizon: %d and %d", horizon, len(target))
		}

		sum += floats.Sum(target)
		count += len(target)
	}

	m.mu.Lock()
	m.targetMean = sum / float64(count)
	m.horizon = horizon
	m.mu.Unlock()

	return nil
}

// Predict implements SequenceModel.
func (m *WindowMean) Predict(ctx context.Context, inputs [][][]float64) ([][]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	targetMean, horizon, weight := m.targetMean, m.horizon, m.weight
	m.mu.RUnlock()

	if horizon == 0 {
		return nil, errors.New(errors.ErrCodeModelPredictFailed, "model is not fitted")
	}

	predictions := make([][]float64, len(inputs))

	for i, window := range inputs {
		if len(window) == 0 {
			return nil, errors.Newf(errors.ErrCodeModelOutputShape, "input %d has an empty window", i)
		}

		sum := 0.0

		for _, step := range window {
			if len(step) != 1 {
				return nil, errors.Newf(errors.ErrCodeModelOutputShape,
					"input %d has %d features per step, expected 1", i, len(step))
			}

			sum += step[0]
		}

		value := weight*(sum/float64(len(window))) + (1-weight)*targetMean

		row := make([]float64, horizon)
		for j := range row {
			row[j] = value
		}

		predictions[i] = row
	}

	return predictions, nil
}
