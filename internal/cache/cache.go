package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// NoExpiration keeps an entry for the lifetime of the cache.
const NoExpiration = gocache.NoExpiration

type Cache[V any] struct {
	cache *gocache.Cache
}

func New[V any](ttl time.Duration) *Cache[V] {
	cleanup := 10 * time.Minute
	if ttl == NoExpiration {
		cleanup = 0
	}
	return &Cache[V]{
		cache: gocache.New(ttl, cleanup),
	}
}

func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	v, ok := c.cache.Get(key)
	if !ok {
		return zero, false
	}
	typed, ok := v.(V)
	return typed, ok
}

// GetOrSet returns the cached value for key, computing and storing it with
// the default TTL on a miss.
func (c *Cache[V]) GetOrSet(key string, compute func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}
	v := compute()
	c.cache.SetDefault(key, v)
	return v
}
