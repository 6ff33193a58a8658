// Package config loads and validates the YAML configuration of a feature
// pipeline run.
package config

import (
	"encoding/json"
	"os"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-features/internal/pattern"
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/internal/version"
	"github.com/rxtech-lab/argo-features/pkg/errors"
	"gopkg.in/yaml.v3"
)

// SupportResistanceConfig configures pivot detection and line fitting.
type SupportResistanceConfig struct {
	Lookback    int `yaml:"lookback" json:"lookback" jsonschema:"title=Lookback,description=Half-width of the pivot window,minimum=1" validate:"gt=0"`
	PivotsCount int `yaml:"pivots_count" json:"pivots_count" jsonschema:"title=Pivots Count,description=Number of most recent pivots fitted by the trend line,minimum=1" validate:"gt=0"`
}

// BollingerConfig configures the Bollinger bands.
type BollingerConfig struct {
	Period int     `yaml:"period" json:"period" jsonschema:"title=Period,minimum=1" validate:"gt=0"`
	StdDev float64 `yaml:"std_dev" json:"std_dev" jsonschema:"title=Standard Deviations,description=Band width in population standard deviations" validate:"gt=0"`
}

// IndicatorConfig holds the parameters of every indicator.
type IndicatorConfig struct {
	SupportResistance SupportResistanceConfig `yaml:"support_resistance" json:"support_resistance"`
	SMAPeriod         int                     `yaml:"sma_period" json:"sma_period" jsonschema:"title=SMA Period,minimum=1" validate:"gt=0"`
	EMAPeriod         int                     `yaml:"ema_period" json:"ema_period" jsonschema:"title=EMA Period,minimum=1" validate:"gt=0"`
	RSIPeriod         int                     `yaml:"rsi_period" json:"rsi_period" jsonschema:"title=RSI Period,minimum=1" validate:"gt=0"`
	ATRPeriod         int                     `yaml:"atr_period" json:"atr_period" jsonschema:"title=ATR Period,minimum=1" validate:"gt=0"`
	Bollinger         BollingerConfig         `yaml:"bollinger" json:"bollinger"`
}

// EvaluationConfig holds the thresholds and window sizes of the evaluation engine.
type EvaluationConfig struct {
	ConfidenceThreshold float64 `yaml:"confidence_threshold" json:"confidence_threshold" jsonschema:"title=Confidence Threshold,description=Minimum classifier confidence of a high-confidence bar,minimum=0,maximum=1" validate:"gte=0,lte=1"`
	MinMoveRatio        float64 `yaml:"min_move_ratio" json:"min_move_ratio" jsonschema:"title=Minimum Move Ratio,description=Minimum |forecast-close|/close of a high-confidence bar,minimum=0" validate:"gte=0"`
	WindowSize          int     `yaml:"window_size" json:"window_size" jsonschema:"title=Walk-Forward Window,description=Training bars per fold,minimum=1" validate:"gt=0"`
	TestSize            int     `yaml:"test_size" json:"test_size" jsonschema:"title=Walk-Forward Test Size,description=Test bars per fold and stride between folds,minimum=1" validate:"gt=0"`
	ParallelFolds       int     `yaml:"parallel_folds" json:"parallel_folds" jsonschema:"title=Parallel Folds,description=Maximum number of folds trained concurrently,minimum=1" validate:"gt=0"`
}

// SignalConfig configures one-shot signal emission.
type SignalConfig struct {
	Resolutions  []int   `yaml:"resolutions" json:"resolutions" jsonschema:"title=Signal Resolutions" validate:"required,min=1,dive,gt=0"`
	MinBars      int     `yaml:"min_bars" json:"min_bars" jsonschema:"title=Minimum Bars,description=Resolutions with fewer bars emit no signal,minimum=2" validate:"gte=2"`
	MinMoveRatio float64 `yaml:"min_move_ratio" json:"min_move_ratio" jsonschema:"title=Minimum Move Ratio,description=Forecasted moves must exceed this fraction of the close,minimum=0" validate:"gte=0"`
}

// Config is the configuration of a pipeline run.
type Config struct {
	// Version pins the binary version the config was written for.
	Version     string `yaml:"version" json:"version" jsonschema:"title=Version,description=Minimum argo-features version this config needs"`
	Resolutions []int  `yaml:"resolutions" json:"resolutions" jsonschema:"title=Resolutions,description=Group sizes of raw bars per aggregated bar" validate:"required,min=1,dive,gt=0"`
	// Strict turns undersized inputs into InsufficientData errors instead of zero metrics.
	Strict        bool                       `yaml:"strict" json:"strict" jsonschema:"title=Strict,description=Fail on undersized inputs instead of reporting zero metrics"`
	ReferenceDate optional.Option[time.Time] `yaml:"reference_date" json:"reference_date" jsonschema:"title=Reference Date,description=Bars after this date are excluded from the lookback sweep"`
	Lookbacks     []types.Lookback           `yaml:"lookbacks" json:"lookbacks" jsonschema:"title=Lookbacks" validate:"dive"`
	Indicators    IndicatorConfig            `yaml:"indicators" json:"indicators"`
	Evaluation    EvaluationConfig           `yaml:"evaluation" json:"evaluation"`
	Signal        SignalConfig               `yaml:"signal" json:"signal"`
	Mining        pattern.MineOptions        `yaml:"mining" json:"mining"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Version:       version.GetVersion(),
		Resolutions:   []int{1, 5, 10, 15, 30, 60},
		Strict:        false,
		ReferenceDate: optional.None[time.Time](),
		Lookbacks: []types.Lookback{
			{Name: "1d", Duration: 24 * time.Hour},
			{Name: "1w", Duration: 7 * 24 * time.Hour},
			{Name: "1m", Duration: 30 * 24 * time.Hour},
		},
		Indicators: IndicatorConfig{
			SupportResistance: SupportResistanceConfig{Lookback: 5, PivotsCount: 5},
			SMAPeriod:         14,
			EMAPeriod:         14,
			RSIPeriod:         14,
			ATRPeriod:         14,
			Bollinger:         BollingerConfig{Period: 20, StdDev: 2},
		},
		Evaluation: EvaluationConfig{
			ConfidenceThreshold: 0.6,
			MinMoveRatio:        0.0005,
			WindowSize:          500,
			TestSize:            100,
			ParallelFolds:       4,
		},
		Signal: SignalConfig{
			Resolutions:  []int{1, 5, 15},
			MinBars:      10,
			MinMoveRatio: 0.0001,
		},
		Mining: pattern.DefaultMineOptions(),
	}
}

// Load reads, validates and version-checks the YAML file at path. Fields
// missing from the file keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config %s", path)
	}

	return Parse(data)
}

// Parse decodes YAML over the defaults, then validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks struct constraints and version compatibility.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	if c.Mining.MinSize > c.Mining.MaxSize && c.Mining.MaxSize != 0 {
		return errors.Newf(errors.ErrCodeInvalidConfiguration, "mining min_size %d is greater than max_size %d", c.Mining.MinSize, c.Mining.MaxSize)
	}

	if err := version.CheckVersionCompatibility(version.GetVersion(), c.Version); err != nil {
		return err
	}

	return nil
}

// rawConfig mirrors Config with a pointer in place of the optional date.
type rawConfig struct {
	Version       string              `yaml:"version"`
	Resolutions   []int               `yaml:"resolutions"`
	Strict        bool                `yaml:"strict"`
	ReferenceDate *time.Time          `yaml:"reference_date,omitempty"`
	Lookbacks     []types.Lookback    `yaml:"lookbacks"`
	Indicators    IndicatorConfig     `yaml:"indicators"`
	Evaluation    EvaluationConfig    `yaml:"evaluation"`
	Signal        SignalConfig        `yaml:"signal"`
	Mining        pattern.MineOptions `yaml:"mining"`
}

func (c *Config) toRaw() rawConfig {
	raw := rawConfig{
		Version:     c.Version,
		Resolutions: c.Resolutions,
		Strict:      c.Strict,
		Lookbacks:   c.Lookbacks,
		Indicators:  c.Indicators,
		Evaluation:  c.Evaluation,
		Signal:      c.Signal,
		Mining:      c.Mining,
	}

	if c.ReferenceDate.IsSome() {
		date := c.ReferenceDate.Unwrap()
		raw.ReferenceDate = &date
	}

	return raw
}

// UnmarshalYAML implements custom unmarshaling for Config
func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	raw := c.toRaw()
	if err := unmarshal(&raw); err != nil {
		return err
	}

	c.Version = raw.Version
	c.Resolutions = raw.Resolutions
	c.Strict = raw.Strict
	c.Lookbacks = raw.Lookbacks
	c.Indicators = raw.Indicators
	c.Evaluation = raw.Evaluation
	c.Signal = raw.Signal
	c.Mining = raw.Mining
	c.ReferenceDate = optional.None[time.Time]()

	if raw.ReferenceDate != nil {
		c.ReferenceDate = optional.Some(*raw.ReferenceDate)
	}

	return nil
}

// MarshalYAML implements custom marshaling for Config
func (c Config) MarshalYAML() (interface{}, error) {
	return c.toRaw(), nil
}

// GenerateSchema generates a JSON schema for the Config
func (c *Config) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t.String() == "optional.Option[time.Time]" {
				return &jsonschema.Schema{
					Type:   "string",
					Format: "date-time",
				}
			}

			if t == reflect.TypeOf(time.Duration(0)) {
				return &jsonschema.Schema{
					Type:        "string",
					Description: "Go duration, e.g. 24h or 90m",
				}
			}

			return nil
		},
	}

	schema := reflector.Reflect(c)

	schema.Title = "argo-features-config"
	schema.Description = "Configuration schema for the argo-features pipeline"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates a JSON schema string for the Config
func (c *Config) GenerateSchemaJSON() (string, error) {
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
