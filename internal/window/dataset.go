package window

import (
	"github.com/rxtech-lab/argo-forecast/internal/normalize"
	"github.com/rxtech-lab/argo-forecast/internal/types"
)

// Dataset is a prepared, read-only training set. It is safe for concurrent readers.
type Dataset struct {
	Options Options
	// Params were fit on Returns and must be used to denormalize any forecast from this dataset.
	Params     types.NormalizationParams
	Returns    []float64
	Normalized []float64
	Split      Split
}

// Prepare normalizes returns and builds the windowed split.
func Prepare(returns []float64, opts Options) (*Dataset, error) {
	params := normalize.Fit(returns)
	normalized := normalize.Normalize(returns, params)

	split, err := Build(normalized, opts)
	if err != nil {
		return nil, err
	}

	return &Dataset{
		Options:    opts,
		Params:     params,
		Returns:    append([]float64(nil), returns...),
		Normalized: normalized,
		Split:      split,
	}, nil
}

// TrainTensors returns the dense training inputs and targets.
func (d *Dataset) TrainTensors() ([][][]float64, [][]float64) {
	return Tensors(d.Split.Train)
}

// TestTensors returns the dense test inputs and targets.
func (d *Dataset) TestTensors() ([][][]float64, [][]float64) {
	return Tensors(d.Split.Test)
}

// TrainReturns is the raw return history covered by the training samples.
// It never includes a value that appears in a test target.
func (d *Dataset) TrainReturns() []float64 {
	if len(d.Split.Train) == 0 {
		return []float64{}
	}

	last := d.Split.Train[len(d.Split.Train)-1]
	end := last.TargetStart() + len(last.Target)

	if len(d.Split.Test) > 0 {
		end = min(end, d.Split.Test[0].TargetStart())
	}

	return append([]float64(nil), d.Returns[:end]...)
}

// RawWindow returns the raw returns under the input window of sample.
func (d *Dataset) RawWindow(sample types.WindowedSample) []float64 {
	return d.Returns[sample.Index:sample.TargetStart()]
}

// RawTarget returns the raw returns under the target of sample.
func (d *Dataset) RawTarget(sample types.WindowedSample) []float64 {
	start := sample.TargetStart()

	return d.Returns[start : start+len(sample.Target)]
}

// BoundTo reports whether the dataset was prepared from returns.
func (d *Dataset) BoundTo(returns []float64) bool {
	return d.Params.BoundTo(returns)
}
