package container

import (
	"fmt"

	"gamestats/adapters/excel"
	"gamestats/domain/catalog"
	"gamestats/internal"
	"gamestats/internal/config"
	"gamestats/internal/dataset"
	"gamestats/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure
	Registry *prometheus.Registry

	// Catalog pipeline
	Reader   *excel.DataReader
	Pipeline *dataset.Pipeline
	Cache    *dataset.Cache
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config: cfg,
		Logger: internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel)),
	}

	if err := c.initMetrics(); err != nil {
		return nil, err
	}
	c.initPipeline()

	return c, nil
}

// initMetrics registers the pipeline collectors on a private registry
func (c *Container) initMetrics() error {
	c.Registry = prometheus.NewRegistry()
	if err := metrics.Register(c.Registry); err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}
	return nil
}

// initPipeline wires reader, pipeline and cache
func (c *Container) initPipeline() {
	readerConfig := excel.DefaultReaderConfig()
	readerConfig.Sheet = c.Config.Dataset.Sheet

	c.Reader = excel.NewDataReader(readerConfig, c.Logger)
	c.Pipeline = dataset.NewPipeline(c.Reader, c.Logger)
	c.Cache = dataset.NewCache(c.Pipeline, c.Logger)
}

// Load returns the enriched catalog of the configured dataset file,
// computing it on first use.
func (c *Container) Load() (*dataset.Result, error) {
	key, err := catalog.SourceKeyForFile(c.Config.Dataset.Path)
	if err != nil {
		return nil, err
	}
	return c.Cache.GetOrCompute(key)
}
