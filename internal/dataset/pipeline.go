// Package dataset turns a raw game catalog into the enriched table the
// analysis layer works on: load, clean, enrich, and cache per source.
package dataset

import (
	"fmt"
	"time"

	"gamestats/domain/catalog"
	"gamestats/domain/core"
	"gamestats/internal"
	"gamestats/internal/metrics"
)

// Loader reads the raw table behind a source key.
type Loader interface {
	Load(key catalog.SourceKey) (*catalog.RawTable, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(key catalog.SourceKey) (*catalog.RawTable, error)

func (f LoaderFunc) Load(key catalog.SourceKey) (*catalog.RawTable, error) { return f(key) }

// Result is the output of one pipeline run.
type Result struct {
	RunID core.RunID
	Key   catalog.SourceKey
	Table *catalog.EnrichedTable

	RawRows           int
	DuplicatesRemoved int
	ImputedColumns    []string
	PriceCeiling      float64
	ClippedPrices     int
	DroppedDates      int

	Events []catalog.Event
}

// Pipeline runs Loader → Clean → Enrich strictly in order.
type Pipeline struct {
	loader Loader
	logger *internal.Logger
}

// NewPipeline creates a pipeline; a nil logger uses internal.DefaultLogger.
func NewPipeline(loader Loader, logger *internal.Logger) *Pipeline {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Pipeline{loader: loader, logger: logger}
}

// Run loads, cleans and enriches the source. Any failure aborts the run and
// no partial table is returned.
func (p *Pipeline) Run(key catalog.SourceKey) (*Result, error) {
	start := time.Now()
	res, err := p.run(key)
	if err != nil {
		metrics.ObservePipeline(time.Since(start), metrics.OutcomeError)
		p.logger.Error("[Pipeline] %s failed: %v", key, err)
		return nil, err
	}
	metrics.ObservePipeline(time.Since(start), metrics.OutcomeSuccess)
	metrics.AddClippedPrices(res.ClippedPrices)
	return res, nil
}

func (p *Pipeline) run(key catalog.SourceKey) (*Result, error) {
	res := &Result{RunID: core.NewRunID(), Key: key}

	raw, err := p.loader.Load(key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key.Path, err)
	}
	res.RawRows = raw.Len()
	p.record(res, catalog.NewEvent(catalog.StageLoad, "table loaded", "path", key.Path, "rows", raw.Len(), "columns", len(raw.Columns)))

	cleaned, events, err := Clean(raw)
	if err != nil {
		return nil, fmt.Errorf("clean %s: %w", key.Path, err)
	}
	p.record(res, events...)
	res.DuplicatesRemoved = cleaned.DuplicatesRemoved
	res.ImputedColumns = cleaned.ImputedColumns
	res.PriceCeiling = cleaned.Ceiling()
	res.ClippedPrices = cleaned.ClippedPrices

	table, events, err := Enrich(cleaned)
	if err != nil {
		return nil, fmt.Errorf("enrich %s: %w", key.Path, err)
	}
	p.record(res, events...)
	res.DroppedDates = cleaned.Len() - table.Len()
	res.Table = table

	p.record(res, catalog.NewEvent(catalog.StageEnrich, "preprocessing finished", "records", table.Len()))
	return res, nil
}

func (p *Pipeline) record(res *Result, events ...catalog.Event) {
	for _, e := range events {
		e.RunID = res.RunID
		res.Events = append(res.Events, e)
		p.logger.Info("[Pipeline] %s", e)
	}
}
