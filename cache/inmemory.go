package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value    []byte
	cachedAt time.Time
}

// InMemoryResultCache is a simple in-memory implementation of ResultCache.
// Thread-safe for concurrent access.
type InMemoryResultCache struct {
	entries map[string]entry
	config  Config
	now     func() time.Time
	mu      sync.RWMutex
}

// NewInMemoryResultCache creates a new in-memory result cache
func NewInMemoryResultCache(config Config) *InMemoryResultCache {
	return &InMemoryResultCache{
		entries: make(map[string]entry),
		config:  config,
		now:     time.Now,
	}
}

// Get returns nil, false if the key is missing or expired
func (c *InMemoryResultCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}

	// Check TTL if configured
	if c.config.TTL > 0 && c.now().Sub(e.cachedAt) > c.config.TTL {
		return nil, false, nil
	}

	// Return copy to prevent external modifications
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, true, nil
}

// Set stores a copy of value
func (c *InMemoryResultCache) Set(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	c.entries[key] = entry{value: stored, cachedAt: c.now()}
	c.evictExpired()
	return nil
}

// Invalidate drops key
func (c *InMemoryResultCache) Invalidate(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	return nil
}

// Len counts entries, expired or not
func (c *InMemoryResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// evictExpired must be called with the write lock held
func (c *InMemoryResultCache) evictExpired() {
	if c.config.TTL <= 0 {
		return
	}
	now := c.now()
	for k, e := range c.entries {
		if now.Sub(e.cachedAt) > c.config.TTL {
			delete(c.entries, k)
		}
	}
}
