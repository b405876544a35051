package config

import (
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rxtech-lab/argo-forecast/pkg/errors"
)

// envOverrides lists the settings that can be overridden from the environment.
// Unset variables stay nil and leave the loaded config untouched.
type envOverrides struct {
	Symbol        *string  `envconfig:"SYMBOL"`
	WindowSize    *int     `envconfig:"WINDOW_SIZE"`
	Horizon       *int     `envconfig:"HORIZON"`
	TestFraction  *float64 `envconfig:"TEST_FRACTION"`
	RollingWindow *int     `envconfig:"ROLLING_WINDOW"`
	Seed          *uint64  `envconfig:"SEED"`
	ModelWeight   *float64 `envconfig:"MODEL_WEIGHT"`
	LogLevel      *string  `envconfig:"LOG_LEVEL"`
	LogFormat     *string  `envconfig:"LOG_FORMAT"`
	SourcePath    *string  `envconfig:"SOURCE_PATH"`
}

// LoadDotEnv loads environment files. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}

			return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to load %s", file)
		}
	}

	return nil
}

// ApplyEnv overrides cfg with FORECAST_* environment variables. A variable set to zero
// overrides too.
func ApplyEnv(cfg *PipelineConfig) error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid environment override", err)
	}

	override(&cfg.Symbol, env.Symbol)
	override(&cfg.WindowSize, env.WindowSize)
	override(&cfg.Horizon, env.Horizon)
	override(&cfg.TestFraction, env.TestFraction)
	override(&cfg.RollingWindow, env.RollingWindow)
	override(&cfg.Seed, env.Seed)
	override(&cfg.ModelWeight, env.ModelWeight)
	override(&cfg.Log.Level, env.LogLevel)
	override(&cfg.Log.Format, env.LogFormat)
	override(&cfg.Source.Path, env.SourcePath)

	return nil
}

func override[T any](field *T, value *T) {
	if value != nil {
		*field = *value
	}
}
