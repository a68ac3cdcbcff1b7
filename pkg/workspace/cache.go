package workspace

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/platinummonkey/alloykit/pkg/linter"
)

const (
	// DefaultCacheSize is the number of analyses kept
	DefaultCacheSize = 256
	// DefaultCacheTTL bounds how long an analysis is reused
	DefaultCacheTTL = 10 * time.Minute
)

// AnalysisCache memoises lint results by content hash. Identical text
// yields identical findings for a fixed engine, so one cache must not be
// shared between engines with different configurations.
type AnalysisCache struct {
	cache  *lru.LRU[string, []linter.Finding]
	hits   atomic.Int64
	misses atomic.Int64
}

// CacheStats reports cache effectiveness
type CacheStats struct {
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	ItemCount int     `json:"item_count"`
	HitRate   float64 `json:"hit_rate"`
}

// NewAnalysisCache creates a cache. Non-positive values fall back to the defaults.
func NewAnalysisCache(size int, ttl time.Duration) *AnalysisCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &AnalysisCache{
		cache: lru.NewLRU[string, []linter.Finding](size, nil, ttl),
	}
}

// ContentKey hashes document text
func ContentKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Get returns a copy of the cached findings for text
func (c *AnalysisCache) Get(text string) ([]linter.Finding, bool) {
	findings, ok := c.cache.Get(ContentKey(text))
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return slices.Clone(findings), true
}

// Add stores findings for text
func (c *AnalysisCache) Add(text string, findings []linter.Finding) {
	c.cache.Add(ContentKey(text), slices.Clone(findings))
}

// Purge empties the cache
func (c *AnalysisCache) Purge() {
	c.cache.Purge()
}

// Stats returns cache statistics
func (c *AnalysisCache) Stats() CacheStats {
	stats := CacheStats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		ItemCount: c.cache.Len(),
	}
	if total := stats.Hits + stats.Misses; total > 0 {
		stats.HitRate = float64(stats.Hits) / float64(total)
	}
	return stats
}
