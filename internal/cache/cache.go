// Package cache provides a process-wide key/value store with per-entry TTL.
//
// Two instances back the theme manager: a TTL cache for registry-derived
// metadata and a no-TTL cache for the installed-theme listing, which is
// invalidated explicitly because it reflects local filesystem truth.
package cache

import (
	"sync"
	"time"
)

// entry is intentionally mutable for timestamps.
type entry struct {
	value    any
	expireAt time.Time // zero => no TTL
}

// Cache is a concurrency-safe in-memory store. Expired entries are
// dropped lazily on Get.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// New creates an empty cache using the wall clock.
func New() *Cache {
	return NewWithClock(time.Now)
}

// NewWithClock creates an empty cache with a custom clock, used by tests
// to simulate TTL expiry.
func NewWithClock(now func() time.Time) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     now,
	}
}

// Get returns the value stored under key, or false if the key is absent
// or its TTL has elapsed.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if !e.expireAt.IsZero() && !c.now().Before(e.expireAt) {
		c.Delete(key)
		return nil, false
	}

	return e.value, true
}

// Set stores value under key. A ttl of zero means the entry never
// expires on its own and must be deleted explicitly.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	e := entry{value: value}
	if ttl > 0 {
		e.expireAt = c.now().Add(ttl)
	}

	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
}

// Delete removes a single key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Flush clears every entry. Callers that hold derived caches (the
// rendering layer) register on this event through the settings manager;
// the cache itself only clears its own namespace.
func (c *Cache) Flush() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// Len returns the number of entries, including ones whose TTL has
// elapsed but which have not been read since.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
