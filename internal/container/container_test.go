package container

import (
	"os"
	"path/filepath"
	"testing"

	"gamestats/internal/config"
	"gamestats/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "games.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	genConfig := testkit.DefaultCatalogConfig()
	genConfig.GameCount = 100
	require.NoError(t, testkit.WriteCSV(f, testkit.NewCatalogGenerator(genConfig).Generate()))
	return path
}

func TestContainer_LoadIsCached(t *testing.T) {
	cfg := &config.Config{LogLevel: "ERROR"}
	cfg.Dataset.Path = writeCatalog(t)

	c, err := New(cfg)
	require.NoError(t, err)

	first, err := c.Load()
	require.NoError(t, err)
	second, err := c.Load()
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, c.Cache.Len())
	assert.Greater(t, first.Table.Len(), 0)

	families, err := c.Registry.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestContainer_MissingFile(t *testing.T) {
	cfg := &config.Config{LogLevel: "ERROR"}
	cfg.Dataset.Path = filepath.Join(t.TempDir(), "nope.csv")

	c, err := New(cfg)
	require.NoError(t, err)

	_, err = c.Load()
	assert.Error(t, err)
	assert.Equal(t, 0, c.Cache.Len())
}

func TestNew_NilConfig(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}
