package cache

import (
	"context"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/platinummonkey/contentlint/pkg/linter"
)

// ResultCache is an in-process LRU of lint results with per-entry TTL.
// Entries expire so long-running servers pick up rule or config changes
// without an explicit flush.
type ResultCache struct {
	cache   *lru.LRU[string, *linter.LintResult]
	metrics *metrics
}

// NewResultCache creates a result cache holding at most size entries, each
// valid for ttl.
func NewResultCache(size int, ttl time.Duration) *ResultCache {
	if size < 16 {
		size = 16
	}

	return &ResultCache{
		cache:   lru.NewLRU[string, *linter.LintResult](size, nil, ttl),
		metrics: newMetrics(),
	}
}

// Get retrieves a cached lint result
func (c *ResultCache) Get(ctx context.Context, key string) (*linter.LintResult, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}

	result, ok := c.cache.Get(key)
	if !ok {
		c.metrics.recordMiss()
		return nil, ErrCacheMiss
	}

	c.metrics.recordHit()
	return result, nil
}

// Set stores a lint result in the cache
func (c *ResultCache) Set(ctx context.Context, key string, result *linter.LintResult) error {
	if key == "" {
		return ErrInvalidKey
	}
	if result == nil {
		return ErrCacheMiss
	}

	c.cache.Add(key, result)
	return nil
}

// Delete removes a cached result
func (c *ResultCache) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrInvalidKey
	}

	c.cache.Remove(key)
	return nil
}

// Purge clears every entry
func (c *ResultCache) Purge() {
	c.cache.Purge()
}

// Stats returns cache statistics
func (c *ResultCache) Stats() Stats {
	stats := Stats{
		Hits:      c.metrics.getHits(),
		Misses:    c.metrics.getMisses(),
		ItemCount: int64(c.cache.Len()),
	}

	total := stats.Hits + stats.Misses
	if total > 0 {
		stats.HitRate = float64(stats.Hits) / float64(total)
	}

	return stats
}

// Stats describes cache effectiveness
type Stats struct {
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	ItemCount int64   `json:"item_count"`
	HitRate   float64 `json:"hit_rate"`
}

// metrics tracks cache hit/miss counters
type metrics struct {
	hits   atomic.Int64
	misses atomic.Int64
}

func newMetrics() *metrics {
	return &metrics{}
}

func (m *metrics) recordHit() {
	m.hits.Add(1)
}

func (m *metrics) recordMiss() {
	m.misses.Add(1)
}

func (m *metrics) getHits() int64 {
	return m.hits.Load()
}

func (m *metrics) getMisses() int64 {
	return m.misses.Load()
}
