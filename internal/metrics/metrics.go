// Package metrics holds the Prometheus collectors of the catalog pipeline.
// Nothing here serves HTTP; callers choose the registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// OutcomeSuccess labels pipeline runs that produced an enriched table.
	OutcomeSuccess = "success"
	// OutcomeError labels pipeline runs aborted by a load, cleaning or enrichment error.
	OutcomeError = "error"

	LookupHit  = "hit"
	LookupMiss = "miss"
)

var (
	cacheLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gamestats",
			Name:      "cache_lookups_total",
			Help:      "Enriched table cache lookups, partitioned by hit or miss.",
		},
		[]string{"result"},
	)

	pipelineRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gamestats",
			Name:      "pipeline_runs_total",
			Help:      "Load, clean and enrich runs, partitioned by outcome.",
		},
		[]string{"outcome"},
	)

	pipelineDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "gamestats",
			Name:      "pipeline_seconds",
			Help:      "Pipeline latency in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
	)

	clippedPricesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "gamestats",
			Name:      "clipped_prices_total",
			Help:      "Prices clipped to the IQR ceiling across all runs.",
		},
	)
)

// Register attaches the collectors to the supplied Prometheus registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		cacheLookupsTotal,
		pipelineRunsTotal,
		pipelineDurationSeconds,
		clippedPricesTotal,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveLookup counts one cache lookup.
func ObserveLookup(hit bool) {
	label := LookupMiss
	if hit {
		label = LookupHit
	}
	cacheLookupsTotal.WithLabelValues(label).Inc()
}

// ObservePipeline records a pipeline duration and outcome label.
func ObservePipeline(duration time.Duration, outcome string) {
	label := outcome
	if label != OutcomeError {
		label = OutcomeSuccess
	}
	pipelineRunsTotal.WithLabelValues(label).Inc()
	pipelineDurationSeconds.Observe(duration.Seconds())
}

// AddClippedPrices adds the clip count of one cleaning pass.
func AddClippedPrices(n int) {
	if n > 0 {
		clippedPricesTotal.Add(float64(n))
	}
}
