package config

import (
	"os"
	"path/filepath"
	"testing"

	"gamestats/domain/catalog"
	"gamestats/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "dataset/games.csv", cfg.Dataset.Path)
	assert.Equal(t, 95, cfg.Analysis.ConfidenceLevel)
	assert.Equal(t, 3, cfg.Analysis.Window)
	assert.Equal(t, 10, cfg.Analysis.TopN)
	assert.Equal(t, catalog.ColPositive, cfg.Metric())
	assert.Equal(t, catalog.ColAchievements, cfg.Split())
	assert.Equal(t, catalog.ColMetacriticScore, cfg.Interval())
	assert.Equal(t, catalog.ColPrice, cfg.Trend())
	assert.Equal(t, catalog.ColAvgPlaytime, cfg.GenreMetric())
	assert.Contains(t, cfg.Correlations(), catalog.ColMetacriticScore)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("GAMESTATS_DATASET_PATH", "/data/steam.xlsx")
	t.Setenv("GAMESTATS_CONFIDENCE_LEVEL", "99")
	t.Setenv("GAMESTATS_ROLLING_WINDOW", "7")
	t.Setenv("GAMESTATS_CORRELATION_COLUMNS", "Price,Positive")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadFrom()
	require.NoError(t, err)

	assert.Equal(t, "/data/steam.xlsx", cfg.Dataset.Path)
	assert.Equal(t, 99, cfg.Analysis.ConfidenceLevel)
	assert.Equal(t, 7, cfg.Analysis.Window)
	assert.Equal(t, []catalog.Column{catalog.ColPrice, catalog.ColPositive}, cfg.Correlations())
	assert.Equal(t, "DEBUG", cfg.LogLevel)
}

func TestLoad_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("GAMESTATS_TOP_N=5\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("GAMESTATS_TOP_N") })

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Analysis.TopN)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"GAMESTATS_CONFIDENCE_LEVEL": "42",
		"GAMESTATS_ROLLING_WINDOW":   "4",
		"GAMESTATS_METRIC_COLUMN":    "Reviews",
		"GAMESTATS_TOP_N":            "0",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := LoadFrom()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}

func TestLoad_MalformedNumber(t *testing.T) {
	t.Setenv("GAMESTATS_TOP_N", "ten")
	_, err := LoadFrom()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}
