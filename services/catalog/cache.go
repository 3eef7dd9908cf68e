package catalog

import (
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"medley/models"
)

const (
	defaultCacheTTL  = 2 * time.Minute
	defaultCacheSize = 512
)

// Cache stores already-mapped item slices keyed by source plus normalized
// query parameters. Values are returned as stored, not cloned; callers must
// treat them as read-only.
type Cache interface {
	Get(key string) ([]models.Item, bool)
	Set(key string, items []models.Item)
}

type lruCache struct {
	inner *expirable.LRU[string, []models.Item]
}

// NewCache returns a capacity-bounded cache whose entries expire after ttl.
// Zero values fall back to the defaults (512 entries, 2 minutes).
func NewCache(size int, ttl time.Duration) Cache {
	if size <= 0 {
		size = defaultCacheSize
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &lruCache{inner: expirable.NewLRU[string, []models.Item](size, nil, ttl)}
}

func (c *lruCache) Get(key string) ([]models.Item, bool) {
	return c.inner.Get(key)
}

func (c *lruCache) Set(key string, items []models.Item) {
	c.inner.Add(key, items)
}

// cacheKey builds a stable key from a source name and its normalized query
// parameters.
func cacheKey(source string, parts ...string) string {
	normalized := make([]string, 0, len(parts)+1)
	normalized = append(normalized, source)
	for _, p := range parts {
		normalized = append(normalized, strings.ToLower(strings.TrimSpace(p)))
	}
	return strings.Join(normalized, "|")
}
