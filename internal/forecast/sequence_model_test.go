package forecast

import (
	"context"
	"testing"

	"github.com/rxtech-lab/argo-forecast/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type WindowMeanTestSuite struct {
	suite.Suite
}

func TestWindowMeanSuite(t *testing.T) {
	suite.Run(t, new(WindowMeanTestSuite))
}

func (suite *WindowMeanTestSuite) TestFitAndPredict() {
	model := NewWindowMean(0.5)
	suite.Equal("window-mean", model.Name())

	inputs := [][][]float64{
		{{0.2}, {0.4}},
		{{0.6}, {0.8}},
	}
	targets := [][]float64{
		{0.4, 0.6, 0.5},
		{0.7, 0.9, 0.5},
	}

	suite.Require().NoError(model.Fit(context.Background(), inputs, targets))

	predictions, err := model.Predict(context.Background(), inputs)
	suite.Require().NoError(err)
	suite.Require().Len(predictions, 2)
	suite.Len(predictions[0], 3)

	// target mean is 0.6
	suite.InDelta(0.45, predictions[0][0], 1e-12)
	suite.InDelta(0.65, predictions[1][2], 1e-12)
}

func (suite *WindowMeanTestSuite) TestInvalidWeightUsesDefault() {
	model := NewWindowMean(3)

	suite.Require().NoError(model.Fit(context.Background(), [][][]float64{{{0}}}, [][]float64{{1}}))

	predictions, err := model.Predict(context.Background(), [][][]float64{{{0}}})
	suite.Require().NoError(err)
	suite.InDelta(1-DefaultWindowMeanWeight, predictions[0][0], 1e-12)
}

func (suite *WindowMeanTestSuite) TestFitErrors() {
	tests := []struct {
		name    string
		inputs  [][][]float64
		targets [][]float64
	}{
		{name: "empty", inputs: nil, targets: nil},
		{name: "mismatched", inputs: [][][]float64{{{0.1}}}, targets: [][]float64{{0.1}, {0.2}}},
		{name: "empty horizon", inputs: [][][]float64{{{0.1}}}, targets: [][]float64{{}}},
		{name: "ragged horizon", inputs: [][][]float64{{{0.1}}, {{0.2}}}, targets: [][]float64{{0.1, 0.2}, {0.3}}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			err := NewWindowMean(0.5).Fit(context.Background(), tt.inputs, tt.targets)
			suite.Equal(errors.ErrCodeModelFitFailed, errors.GetCode(err))
		})
	}
}

func (suite *WindowMeanTestSuite) TestPredictErrors() {
	model := NewWindowMean(0.5)

	_, err := model.Predict(context.Background(), [][][]float64{{{0.1}}})
	suite.Equal(errors.ErrCodeModelPredictFailed, errors.GetCode(err))

	suite.Require().NoError(model.Fit(context.Background(), [][][]float64{{{0.1}}}, [][]float64{{0.1}}))

	_, err = model.Predict(context.Background(), [][][]float64{{}})
	suite.Equal(errors.ErrCodeModelOutputShape, errors.GetCode(err))

	_, err = model.Predict(context.Background(), [][][]float64{{{0.1, 0.2}}})
	suite.Equal(errors.ErrCodeModelOutputShape, errors.GetCode(err))
}

func (suite *WindowMeanTestSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	model := NewWindowMean(0.5)
	suite.ErrorIs(model.Fit(ctx, [][][]float64{{{0.1}}}, [][]float64{{0.1}}), context.Canceled)

	_, err := model.Predict(ctx, nil)
	suite.ErrorIs(err, context.Canceled)
}
