package tmdb

import (
	"sync"
	"time"
)

type cacheEntry struct {
	payload []byte
	expires time.Time
}

// cache holds raw response payloads keyed by request path, so every
// endpoint shares one TTL policy.
type cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

func newCache(ttl time.Duration) *cache {
	return &cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

func (c *cache) get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expires) {
		return nil, false
	}
	return entry.payload, true
}

func (c *cache) set(key string, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		payload: payload,
		expires: time.Now().Add(c.ttl),
	}
}
