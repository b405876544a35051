package forecast

import (
	"math"
	"sync"

	"github.com/rxtech-lab/argo-forecast/internal/benchmark"
	"github.com/rxtech-lab/argo-forecast/internal/logger"
	"github.com/rxtech-lab/argo-forecast/internal/returns"
	"github.com/rxtech-lab/argo-forecast/internal/statistics"
	"github.com/rxtech-lab/argo-forecast/internal/types"
	"go.uber.org/zap"
)

const (
	// MaxPredictedReturn bounds every random walk forecast.
	MaxPredictedReturn = 0.05

	// DefaultStd is the standard deviation of an untrained or degenerate model.
	DefaultStd = 0.01
)

// NeutralReport is returned by SelfEvaluate when there is not enough history.
var NeutralReport = types.BenchmarkReport{
	RMSE:              0.02,
	MSE:               0.0004,
	MAE:               0.015,
	DirectionAccuracy: 50,
	SampleSize:        0,
}

// RandomWalk is the stochastic null-hypothesis forecaster: future returns are i.i.d. draws
// from the historical distribution.
type RandomWalk struct {
	mu      sync.RWMutex
	mean    float64
	std     float64
	trained bool

	source RandomSource
	logger *logger.Logger
}

// NewRandomWalk creates an untrained model. A nil source seeds from the clock.
func NewRandomWalk(source RandomSource, log *logger.Logger) *RandomWalk {
	if source == nil {
		source = NewTimeSource()
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &RandomWalk{
		mean:    0,
		std:     DefaultStd,
		trained: false,
		source:  source,
		logger:  log,
	}
}

// Train fits the mean and population std of the finite returns within the return clamp.
// With no usable data the model becomes trained with mean 0 and std 0.01. Never fails.
func (m *RandomWalk) Train(history []float64) {
	valid := make([]float64, 0, len(history))

	for _, r := range history {
		if math.IsNaN(r) || math.IsInf(r, 0) || math.Abs(r) > returns.MaxAbsReturn {
			continue
		}

		valid = append(valid, r)
	}

	mean, std := 0.0, DefaultStd
	if len(valid) > 0 {
		mean = statistics.MeanReturn(valid)
		std = statistics.StdReturn(valid)
	} else {
		m.logger.Warn("No usable returns for random walk, using defaults")
	}

	m.mu.Lock()
	m.mean, m.std, m.trained = mean, std, true
	m.mu.Unlock()

	m.logger.Debug("Random walk trained",
		zap.Int("samples", len(valid)),
		zap.Float64("mean", mean),
		zap.Float64("std", std),
	)
}

// Trained reports whether Train has been called.
func (m *RandomWalk) Trained() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.trained
}

// Moments returns the fitted mean and standard deviation.
func (m *RandomWalk) Moments() (float64, float64) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.mean, m.std
}

// Predict draws horizon independent returns. Each value is resampled uniformly from the
// finite values of recent, or drawn from N(mean, std) when recent has none.
// Every value is clamped to [-0.05, 0.05].
func (m *RandomWalk) Predict(recent []float64, horizon int) types.ForecastResult {
	if horizon <= 0 {
		return types.ForecastResult{}
	}

	pool := make([]float64, 0, len(recent))

	for _, r := range recent {
		if !math.IsNaN(r) && !math.IsInf(r, 0) {
			pool = append(pool, r)
		}
	}

	mean, std := m.Moments()
	result := make(types.ForecastResult, horizon)

	for i := range result {
		var value float64

		if len(pool) > 0 {
			index := int(m.source.Float64() * float64(len(pool)))
			value = pool[min(index, len(pool)-1)]
		} else {
			value = mean + std*m.standardNormal()
		}

		result[i] = returns.Clamp(value, -MaxPredictedReturn, MaxPredictedReturn)
	}

	return result
}

// standardNormal uses the Box-Muller transform.
func (m *RandomWalk) standardNormal() float64 {
	u1 := 1 - m.source.Float64()
	u2 := m.source.Float64()

	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// SelfEvaluate scores the model on the last testSize returns, resampling from the history
// before them. Returns NeutralReport when history is shorter than testSize.
func (m *RandomWalk) SelfEvaluate(history []float64, testSize int) types.BenchmarkReport {
	if testSize <= 0 || len(history) < testSize {
		return NeutralReport
	}

	split := len(history) - testSize
	predicted := m.Predict(history[:split], testSize)

	report, err := benchmark.Evaluate(history[split:], predicted)
	if err != nil {
		m.logger.Error("Random walk self evaluation failed", zap.Error(err))

		return NeutralReport
	}

	return report
}
