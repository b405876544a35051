package window

import (
	"math"

	"github.com/rxtech-lab/argo-forecast/internal/types"
	"github.com/rxtech-lab/argo-forecast/pkg/errors"
)

const (
	// MinSamples is the exclusive lower bound on producible samples.
	MinSamples = 10

	DefaultWindowSize   = 60
	DefaultHorizon      = 5
	DefaultTestFraction = 0.2
)

// Options configures Build.
type Options struct {
	WindowSize   int
	Horizon      int
	TestFraction float64
}

// DefaultOptions returns a 60 day window, a 5 day horizon and a 20% test split.
func DefaultOptions() Options {
	return Options{
		WindowSize:   DefaultWindowSize,
		Horizon:      DefaultHorizon,
		TestFraction: DefaultTestFraction,
	}
}

// Validate checks the options.
func (o Options) Validate() error {
	if o.WindowSize <= 0 {
		return errors.Newf(errors.ErrCodeInvalidWindowSize, "window size must be positive, got %d", o.WindowSize)
	}

	if o.Horizon <= 0 {
		return errors.Newf(errors.ErrCodeInvalidHorizon, "horizon must be positive, got %d", o.Horizon)
	}

	if o.TestFraction < 0 || o.TestFraction >= 1 || math.IsNaN(o.TestFraction) {
		return errors.Newf(errors.ErrCodeInvalidTestFraction, "test fraction must be in [0, 1), got %v", o.TestFraction)
	}

	return nil
}

// Split is a chronological partition of windowed samples.
// Every train sample precedes every test sample.
type Split struct {
	Train []types.WindowedSample
	Test  []types.WindowedSample
	// Total is the number of producible samples before non-finite ones were discarded.
	Total int
	// Discarded counts samples dropped because of a non-finite value.
	Discarded int
}

// Build slides a window of opts.WindowSize over normalized one step at a time and pairs
// it with the next opts.Horizon values. Samples containing a non-finite value are discarded.
// The kept samples are split at floor(N*(1-TestFraction)), floored to 1.
func Build(normalized []float64, opts Options) (Split, error) {
	if err := opts.Validate(); err != nil {
		return Split{}, err
	}

	total := len(normalized) - opts.WindowSize - opts.Horizon + 1
	if total <= MinSamples {
		return Split{}, errors.NewInsufficientDataErrorf(MinSamples+1, max(total, 0), "",
			"not enough samples: %d, need more than %d", total, MinSamples)
	}

	samples := make([]types.WindowedSample, 0, total)
	discarded := 0

	for i := 0; i < total; i++ {
		input := normalized[i : i+opts.WindowSize]
		target := normalized[i+opts.WindowSize : i+opts.WindowSize+opts.Horizon]

		if !allFinite(input) || !allFinite(target) {
			discarded++

			continue
		}

		samples = append(samples, types.WindowedSample{
			Index:  i,
			Input:  append([]float64(nil), input...),
			Target: append([]float64(nil), target...),
		})
	}

	if len(samples) == 0 {
		return Split{}, errors.NewInsufficientDataErrorf(MinSamples+1, 0, "",
			"all %d samples contain non-finite values", total)
	}

	splitIndex := int(math.Floor(float64(len(samples)) * (1 - opts.TestFraction)))
	if splitIndex < 1 {
		splitIndex = 1
	}

	return Split{
		Train:     samples[:splitIndex:splitIndex],
		Test:      samples[splitIndex:],
		Total:     total,
		Discarded: discarded,
	}, nil
}

// Tensors converts samples to the dense layout consumed by sequence models:
// inputs [N][window][1] and targets [N][horizon].
func Tensors(samples []types.WindowedSample) ([][][]float64, [][]float64) {
	inputs := make([][][]float64, len(samples))
	targets := make([][]float64, len(samples))

	for i, sample := range samples {
		inputs[i] = column(sample.Input)
		targets[i] = append([]float64(nil), sample.Target...)
	}

	return inputs, targets
}

// LastWindow returns the most recent window of normalized as a [1][window][1] input.
func LastWindow(normalized []float64, windowSize int) ([][][]float64, error) {
	if windowSize <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidWindowSize, "window size must be positive, got %d", windowSize)
	}

	if len(normalized) < windowSize {
		return nil, errors.NewInsufficientDataErrorf(windowSize, len(normalized), "",
			"need %d values for the last window, have %d", windowSize, len(normalized))
	}

	last := normalized[len(normalized)-windowSize:]
	if !allFinite(last) {
		return nil, errors.New(errors.ErrCodeDatasetNotReady, "last window contains non-finite values")
	}

	return [][][]float64{column(last)}, nil
}

func column(values []float64) [][]float64 {
	result := make([][]float64, len(values))
	for i, v := range values {
		result[i] = []float64{v}
	}

	return result
}

func allFinite(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}
