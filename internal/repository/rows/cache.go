// Package rows caches parsed data-source rows for the lifetime of the process.
package rows

import (
	"context"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/designkb/internal/domain/row"
	"github.com/kailas-cloud/designkb/internal/logger"
)

// provider is the consumer interface for row loading (ISP).
type provider interface {
	Load(ctx context.Context, locator string) ([]row.Row, error)
}

// Cache memoizes provider results by locator. Entries are never evicted;
// failed loads are not cached and are retried on the next access.
type Cache struct {
	provider   provider
	cacheTotal *prometheus.CounterVec

	mu      sync.Mutex
	entries map[string][]row.Row
}

// New creates a row cache.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), may be nil.
func New(p provider, cacheTotal *prometheus.CounterVec) *Cache {
	return &Cache{
		provider:   p,
		cacheTotal: cacheTotal,
		entries:    make(map[string][]row.Row),
	}
}

// Rows returns the rows of locator, loading them on first access.
// The returned slice is shared and must not be modified.
func (c *Cache) Rows(ctx context.Context, locator string) ([]row.Row, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if rs, ok := c.entries[locator]; ok {
		c.inc("hit")
		return rs, nil
	}
	c.inc("miss")

	rs, err := c.provider.Load(ctx, locator)
	if err != nil {
		return nil, fmt.Errorf("load rows: %w", err)
	}
	c.entries[locator] = rs

	logger.FromContext(ctx).Debug("rows loaded",
		zap.String("source", locator),
		zap.Int("rows", len(rs)),
	)
	return rs, nil
}

// Len returns the number of cached data sources.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) inc(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}
