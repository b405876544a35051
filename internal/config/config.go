package config

import (
	"encoding/json"
	"os"
	"reflect"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/argo-forecast/internal/statistics"
	"github.com/rxtech-lab/argo-forecast/internal/version"
	"github.com/rxtech-lab/argo-forecast/internal/window"
	"github.com/rxtech-lab/argo-forecast/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. FORECAST_WINDOW_SIZE.
const EnvPrefix = "FORECAST"

// PipelineConfig configures one forecasting pipeline run.
type PipelineConfig struct {
	Version            string       `yaml:"version" json:"version" default:"1.0.0" validate:"required" jsonschema:"title=Version,description=Config format version"`
	Symbol             string       `yaml:"symbol" json:"symbol" default:"SPX" validate:"required" jsonschema:"title=Symbol,description=Name of the price series"`
	WindowSize         int          `yaml:"window_size" json:"window_size" default:"60" validate:"gte=1" jsonschema:"title=Window Size,description=Days of history in each input window,minimum=1"`
	Horizon            int          `yaml:"horizon" json:"horizon" default:"5" validate:"gte=1" jsonschema:"title=Horizon,description=Days forecast per sample,minimum=1"`
	TestFraction       float64      `yaml:"test_fraction" json:"test_fraction" default:"0.2" validate:"gte=0,lt=1" jsonschema:"title=Test Fraction,description=Share of samples held out for testing,minimum=0,maximum=1"`
	RollingWindow      int          `yaml:"rolling_window" json:"rolling_window" default:"20" validate:"gte=2" jsonschema:"title=Rolling Window,description=Days in the rolling volatility window,minimum=2"`
	Seed               uint64       `yaml:"seed" json:"seed" jsonschema:"title=Seed,description=Random seed for the baseline; 0 seeds from the clock"`
	SelfEvaluationSize int          `yaml:"self_evaluation_size" json:"self_evaluation_size" default:"50" validate:"gte=1" jsonschema:"title=Self Evaluation Size,description=Days used to score the baseline on its own history,minimum=1"`
	ModelWeight        float64      `yaml:"model_weight" json:"model_weight" default:"0.5" validate:"gte=0,lte=1" jsonschema:"title=Model Weight,description=Share of the window mean in the window-mean model,minimum=0,maximum=1"`
	Log                LogConfig    `yaml:"log" json:"log" jsonschema:"title=Log"`
	Source             SourceConfig `yaml:"source" json:"source" jsonschema:"title=Source"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `yaml:"level" json:"level" default:"info" validate:"oneof=debug info warn error" jsonschema:"title=Level,enum=debug,enum=info,enum=warn,enum=error"`
	Format string `yaml:"format" json:"format" default:"json" validate:"oneof=json console" jsonschema:"title=Format,enum=json,enum=console"`
}

// SourceConfig configures where raw price text comes from.
type SourceConfig struct {
	Path              string        `yaml:"path" json:"path" jsonschema:"title=Path,description=Local CSV or Parquet file"`
	Mirrors           []string      `yaml:"mirrors,omitempty" json:"mirrors,omitempty" validate:"dive,url" jsonschema:"title=Mirrors,description=URLs tried in order"`
	Timeout           time.Duration `yaml:"timeout" json:"timeout" default:"30s" validate:"gt=0" jsonschema:"title=Timeout,description=Per request timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second" json:"requests_per_second" default:"2" validate:"gt=0" jsonschema:"title=Requests Per Second"`
	MaxElapsed        time.Duration `yaml:"max_elapsed" json:"max_elapsed" default:"1m" validate:"gt=0" jsonschema:"title=Max Elapsed,description=Retry budget per mirror"`
}

// explicitValues captures settings whose zero value is valid, so an explicit zero in the
// file survives defaults.Set.
type explicitValues struct {
	TestFraction *float64 `yaml:"test_fraction"`
	ModelWeight  *float64 `yaml:"model_weight"`
}

// Default returns a config with every default applied.
func Default() PipelineConfig {
	var cfg PipelineConfig
	// defaults.Set only fails on malformed default tags
	_ = defaults.Set(&cfg)

	return cfg
}

// Load reads the YAML file at path, fills defaults, applies FORECAST_* environment overrides
// and validates the result. An empty path starts from Default().
func Load(path string) (PipelineConfig, error) {
	var (
		cfg      PipelineConfig
		explicit explicitValues
	)

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config %s", path)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to parse config %s", path)
		}

		if err := yaml.Unmarshal(data, &explicit); err != nil {
			return cfg, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to parse config %s", path)
		}
	}

	if err := defaults.Set(&cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to apply defaults", err)
	}

	override(&cfg.TestFraction, explicit.TestFraction)
	override(&cfg.ModelWeight, explicit.ModelWeight)

	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate checks field constraints and the config format version.
func (c PipelineConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid configuration", err)
	}

	return version.CheckCompatibility(version.ConfigFormat, c.Version)
}

// WindowOptions returns the windowing options of the config.
func (c PipelineConfig) WindowOptions() window.Options {
	return window.Options{
		WindowSize:   c.WindowSize,
		Horizon:      c.Horizon,
		TestFraction: c.TestFraction,
	}
}

// StatisticsOptions returns the statistics options of the config.
func (c PipelineConfig) StatisticsOptions() statistics.Options {
	return statistics.Options{
		RollingWindow: c.RollingWindow,
	}
}

// GenerateSchema generates a JSON schema for the PipelineConfig
func (c *PipelineConfig) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t == reflect.TypeOf(time.Duration(0)) {
				return &jsonschema.Schema{
					Type:    "string",
					Pattern: `^([0-9]+(\.[0-9]+)?(ns|us|ms|s|m|h))+$`,
				}
			}

			return nil
		},
	}

	schema := reflector.Reflect(c)

	schema.Title = "forecast-pipeline-config"
	schema.Description = "Configuration schema for the forecasting pipeline"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates a JSON schema string for the PipelineConfig
func (c *PipelineConfig) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
