// Package cache provides the time-boxed fetch cache. Within the TTL window
// repeated requests for the same URL reuse the prior payload instead of
// re-fetching.
package cache

import (
	"context"
	"sync"
	"time"
)

// DefaultTTL matches the original dashboard's two-minute fetch window.
const DefaultTTL = 2 * time.Minute

// Cache stores fetched JSON payloads keyed by URL.
type Cache interface {
	// Get returns the cached payload for key, or false when absent or
	// expired.
	Get(ctx context.Context, key string) (map[string]interface{}, bool)

	// Set stores a payload under key for the cache's TTL.
	Set(ctx context.Context, key string, payload map[string]interface{})

	Close() error
}

type memoryEntry struct {
	payload  map[string]interface{}
	storedAt time.Time
}

// MemoryCache is an in-process Cache with (key, value, timestamp) entries.
// The clock is injected so expiry is testable.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryCache creates a memory cache. A zero ttl uses DefaultTTL; a nil
// clock uses time.Now.
func NewMemoryCache(ttl time.Duration, now func() time.Time) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     now,
	}
}

// Get returns the cached payload for key when it is still fresh.
func (c *MemoryCache) Get(_ context.Context, key string) (map[string]interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.storedAt) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return entry.payload, true
}

// Set stores a payload under key, stamping it with the current clock.
func (c *MemoryCache) Set(_ context.Context, key string, payload map[string]interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = memoryEntry{payload: payload, storedAt: c.now()}

	// Opportunistic sweep keeps the map from accumulating dead leagues.
	for k, e := range c.entries {
		if c.now().Sub(e.storedAt) >= c.ttl {
			delete(c.entries, k)
		}
	}
}

// Close is a no-op for the memory backend.
func (c *MemoryCache) Close() error {
	return nil
}
