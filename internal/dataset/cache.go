package dataset

import (
	"sync"

	"gamestats/domain/catalog"
	"gamestats/internal"
	"gamestats/internal/metrics"

	"golang.org/x/sync/singleflight"
)

// Runner produces a pipeline result for a source key.
type Runner interface {
	Run(key catalog.SourceKey) (*Result, error)
}

// Cache memoizes pipeline results per source key. Concurrent callers with the
// same key share one computation; a failed computation is not stored.
type Cache struct {
	runner Runner
	logger *internal.Logger

	mu      sync.Mutex
	entries map[catalog.SourceKey]*Result
	group   singleflight.Group
}

// NewCache wraps runner; a nil logger uses internal.DefaultLogger.
func NewCache(runner Runner, logger *internal.Logger) *Cache {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Cache{
		runner:  runner,
		logger:  logger,
		entries: make(map[catalog.SourceKey]*Result),
	}
}

// GetOrCompute returns the stored result for key, running the pipeline at
// most once per key.
func (c *Cache) GetOrCompute(key catalog.SourceKey) (*Result, error) {
	if res, ok := c.lookup(key); ok {
		metrics.ObserveLookup(true)
		return res, nil
	}

	v, err, _ := c.group.Do(key.String(), func() (interface{}, error) {
		// a flight that finished after our lookup already stored the result
		if res, ok := c.lookup(key); ok {
			metrics.ObserveLookup(true)
			return res, nil
		}
		metrics.ObserveLookup(false)
		c.logger.Debug("[Cache] computing %s", key)

		res, err := c.runner.Run(key)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = res
		c.mu.Unlock()
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Result), nil
}

// Invalidate drops the stored result for key.
func (c *Cache) Invalidate(key catalog.SourceKey) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Len returns the number of stored results.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) lookup(key catalog.SourceKey) (*Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	res, ok := c.entries[key]
	return res, ok
}
