package types

import (
	"fmt"
	"math"
)

// BenchmarkReport scores one forecaster against ground truth.
type BenchmarkReport struct {
	RMSE float64 `yaml:"rmse" json:"rmse"`
	MSE  float64 `yaml:"mse" json:"mse"`
	MAE  float64 `yaml:"mae" json:"mae"`
	// DirectionAccuracy is a percentage in [0, 100].
	DirectionAccuracy float64 `yaml:"direction_accuracy" json:"direction_accuracy"`
	SampleSize        int     `yaml:"sample_size" json:"sample_size"`
}

// Comparison is the improvement of forecaster A over forecaster B.
// Positive values mean A is better.
type Comparison struct {
	RMSEImprovementPct     float64 `yaml:"rmse_improvement_pct" json:"rmse_improvement_pct"`
	MAEImprovementPct      float64 `yaml:"mae_improvement_pct" json:"mae_improvement_pct"`
	AccuracyImprovementPct float64 `yaml:"accuracy_improvement_pct" json:"accuracy_improvement_pct"`
}

// Verdict summarizes the comparison in one line.
func (c Comparison) Verdict() string {
	if math.Abs(c.RMSEImprovementPct) < 0.05 {
		return "model and baseline tie on RMSE"
	}

	if c.RMSEImprovementPct > 0 {
		return fmt.Sprintf("model beats baseline by %.1f%% RMSE", c.RMSEImprovementPct)
	}

	return fmt.Sprintf("baseline beats model by %.1f%% RMSE", -c.RMSEImprovementPct)
}

// BenchmarkSummary is the result of one head-to-head benchmark run.
type BenchmarkSummary struct {
	RunID      string          `yaml:"run_id" json:"run_id"`
	ModelName  string          `yaml:"model_name" json:"model_name"`
	Model      BenchmarkReport `yaml:"model" json:"model"`
	Baseline   BenchmarkReport `yaml:"baseline" json:"baseline"`
	Comparison Comparison      `yaml:"comparison" json:"comparison"`
}
