package feature

import (
	"strings"
	"sync"
	"time"
)

// Cache is the TTL-keyed store behind the feature store. Expiry is
// lazy: expired entries linger in the map until overwritten or
// invalidated, but Get never returns one. There is no size bound or
// eviction policy — unbounded growth is a known limitation of the
// snapshot contract, kept rather than silently fixed.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Cached
}

// NewCache returns an empty cache safe for concurrent use.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]Cached)}
}

// Get returns the live entry for key, or ok=false when the key was
// never written or has expired. The read path alone enforces the TTL
// contract.
func (c *Cache) Get(key string, now time.Time) (Cached, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || e.Meta.Expired(now) {
		return Cached{}, false
	}
	return e, true
}

// Put inserts or overwrites. Last write wins under concurrent access.
func (c *Cache) Put(key string, e Cached) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = e
}

// Invalidate removes a single key.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// InvalidateUser removes every entry whose key belongs to the user,
// i.e. keys prefixed "<userID>:".
func (c *Cache) InvalidateUser(userID string) {
	prefix := userID + ":"
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
}

// Clear empties the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Cached)
}

// Len reports the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Snapshot copies out every entry still live at the given instant.
func (c *Cache) Snapshot(now time.Time) map[string]Cached {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]Cached, len(c.entries))
	for k, e := range c.entries {
		if e.Meta.Expired(now) {
			continue
		}
		out[k] = e
	}
	return out
}
