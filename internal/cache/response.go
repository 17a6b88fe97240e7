package cache

import (
	"strconv"
	"time"
)

// ResponseCache memoizes rendered JSON payloads for the read-only API.
// Keys embed the snapshot build time, so a refresh naturally invalidates
// every entry computed from the previous snapshot; the TTL then evicts the
// stale ones.
type ResponseCache struct {
	lru *LRU[[]byte]
}

func NewResponseCache(maxSize int, ttl time.Duration) *ResponseCache {
	return &ResponseCache{lru: NewLRU[[]byte](maxSize, ttl)}
}

// Key builds a cache key from the request path, its raw query string, and
// the build time of the snapshot the response was computed from.
func Key(path, rawQuery string, builtAt time.Time) string {
	return path + "?" + rawQuery + "@" + strconv.FormatInt(builtAt.UnixNano(), 10)
}

func (c *ResponseCache) Get(key string) ([]byte, bool) {
	return c.lru.Get(key)
}

func (c *ResponseCache) Set(key string, payload []byte) {
	// Store a copy so later writes by the caller cannot corrupt the entry.
	buf := make([]byte, len(payload))
	copy(buf, payload)
	c.lru.Set(key, buf)
}

func (c *ResponseCache) CleanExpired() int { return c.lru.CleanExpired() }

func (c *ResponseCache) Size() int { return c.lru.Size() }
