// Package cache holds recently resolved responses so repeat
// submissions of the same video URL skip the browser entirely. The
// site's resolution of a given URL is stable for minutes, which makes
// a short TTL safe.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/snagbot/snagbot/models"
)

// entry holds a cached response with its creation timestamp.
type entry struct {
	response  *models.ProcessResponse
	createdAt time.Time
}

// Cache is a bounded in-memory TTL cache for process responses.
// It is safe for concurrent use.
type Cache struct {
	mu         sync.RWMutex
	store      map[string]*entry
	maxEntries int
	ttl        time.Duration
}

// New creates a Cache. A TTL of zero disables it: Get always misses
// and Set is a no-op. A background goroutine sweeps expired entries
// every minute.
func New(maxEntries int, ttl time.Duration) *Cache {
	c := &Cache{
		store:      make(map[string]*entry),
		maxEntries: maxEntries,
		ttl:        ttl,
	}

	if ttl > 0 {
		go c.sweepLoop()
	}
	return c
}

// Key derives the cache key for a video URL.
func Key(videoURL string) string {
	sum := sha256.Sum256([]byte(videoURL))
	return hex.EncodeToString(sum[:])
}

// Get retrieves a cached response if it exists and is still fresh.
func (c *Cache) Get(key string) (*models.ProcessResponse, bool) {
	if c.ttl <= 0 {
		return nil, false
	}

	c.mu.RLock()
	e, ok := c.store[key]
	c.mu.RUnlock()

	if !ok || time.Since(e.createdAt) > c.ttl {
		return nil, false
	}
	return e.response, true
}

// Set stores a response. If the cache is at capacity, a random entry
// is evicted to make room.
func (c *Cache) Set(key string, resp *models.ProcessResponse) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Evict one random entry if at capacity (map iteration is random in Go).
	if len(c.store) >= c.maxEntries {
		for k := range c.store {
			delete(c.store, k)
			break
		}
	}

	c.store[key] = &entry{
		response:  resp,
		createdAt: time.Now(),
	}
}

// Len reports the current number of entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// sweepLoop evicts expired entries once a minute.
func (c *Cache) sweepLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-c.ttl)
		c.mu.Lock()
		for k, e := range c.store {
			if e.createdAt.Before(cutoff) {
				delete(c.store, k)
			}
		}
		c.mu.Unlock()
	}
}
