package config

import (
	stderrors "errors"
	"io/fs"
	"strings"

	"gamestats/domain/catalog"
	"gamestats/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every variable read by Load, e.g. GAMESTATS_DATASET_PATH.
const EnvPrefix = "GAMESTATS"

// Config represents the complete application configuration
// Nested settings are embedded so every variable shares the GAMESTATS prefix.
type Config struct {
	Dataset
	Analysis

	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO" validate:"oneof=ERROR WARN INFO DEBUG TRACE"`
}

// Dataset locates the catalog file
type Dataset struct {
	Path  string `envconfig:"DATASET_PATH" default:"dataset/games.csv" validate:"required"`
	Sheet string `envconfig:"DATASET_SHEET"`
}

// Analysis holds the defaults of the interactive analysis
type Analysis struct {
	ConfidenceLevel    int      `envconfig:"CONFIDENCE_LEVEL" default:"95" validate:"oneof=70 80 90 95 99"`
	Window             int      `envconfig:"ROLLING_WINDOW" default:"3" validate:"oneof=1 3 5 7"`
	TopN               int      `envconfig:"TOP_N" default:"10" validate:"min=1,max=100"`
	MetricColumn       string   `envconfig:"METRIC_COLUMN" default:"Positive" validate:"metric_column"`
	SplitColumn        string   `envconfig:"SPLIT_COLUMN" default:"Achievements" validate:"metric_column"`
	IntervalColumn     string   `envconfig:"INTERVAL_COLUMN" default:"Metacritic score" validate:"metric_column"`
	TrendColumn        string   `envconfig:"TREND_COLUMN" default:"Price" validate:"metric_column"`
	GenreColumn        string   `envconfig:"GENRE_METRIC_COLUMN" default:"Average playtime forever" validate:"metric_column"`
	CorrelationColumns []string `envconfig:"CORRELATION_COLUMNS" default:"Price,Positive,Negative,Metacritic score,Achievements,Recommendations" validate:"min=2,dive,metric_column"`
}

// Load reads .env when present, then the environment, and validates the result
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom is Load with explicit dotenv files. Missing files are ignored.
func LoadFrom(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(errors.ConfigInvalid(err.Error()), "failed to read %s", f)
		}
	}

	config := &Config{}
	if err := envconfig.Process(EnvPrefix, config); err != nil {
		return nil, errors.Wrap(errors.ConfigInvalid(err.Error()), "failed to load configuration")
	}
	config.LogLevel = strings.ToUpper(config.LogLevel)

	if err := Validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("metric_column", func(fl validator.FieldLevel) bool {
		return catalog.Column(fl.Field().String()).Numeric()
	})
	return v
}

// Validate checks a configuration built outside Load, e.g. from CLI flags
func Validate(config *Config) error {
	if err := validate.Struct(config); err != nil {
		var fieldErrs validator.ValidationErrors
		if stderrors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fe.Namespace()+" failed "+fe.Tag())
			}
			return errors.ConfigInvalid(strings.Join(msgs, "; "))
		}
		return errors.ConfigInvalid(err.Error())
	}
	return nil
}

// Metric returns the default metric column
func (c *Config) Metric() catalog.Column {
	return catalog.Column(c.Analysis.MetricColumn)
}

// Split returns the default split column of the two-sample test
func (c *Config) Split() catalog.Column {
	return catalog.Column(c.Analysis.SplitColumn)
}

// Interval returns the column whose mean gets a confidence interval
func (c *Config) Interval() catalog.Column {
	return catalog.Column(c.Analysis.IntervalColumn)
}

// Trend returns the column of the yearly trend
func (c *Config) Trend() catalog.Column {
	return catalog.Column(c.Analysis.TrendColumn)
}

// GenreMetric returns the column genres are ranked by
func (c *Config) GenreMetric() catalog.Column {
	return catalog.Column(c.Analysis.GenreColumn)
}

// Correlations returns the columns of the correlation matrix
func (c *Config) Correlations() []catalog.Column {
	out := make([]catalog.Column, len(c.Analysis.CorrelationColumns))
	for i, name := range c.Analysis.CorrelationColumns {
		out[i] = catalog.Column(strings.TrimSpace(name))
	}
	return out
}
