package cache

import (
	"sync"
	"time"

	"github.com/salesloop/pagelens/models"
)

// key identifies a cached extraction by URL and the method the caller
// asked for. "auto" and the concrete strategy it resolves to are
// distinct keys on purpose; unifying them would change documented
// behavior.
type key struct {
	url    string
	method models.Method
}

// entry holds a cached record with its capture timestamp.
type entry struct {
	record     *models.ContentRecord
	capturedAt time.Time
}

// Cache is an in-memory, TTL-bounded store of extraction records.
// Staleness is computed at read time; a background sweep only bounds
// memory growth. It is safe for concurrent use.
type Cache struct {
	mu         sync.RWMutex
	store      map[key]*entry
	ttl        time.Duration
	maxEntries int
}

// New creates a Cache with the given TTL and capacity. A background
// goroutine evicts stale entries every 5 minutes.
func New(ttl time.Duration, maxEntries int) *Cache {
	c := &Cache{
		store:      make(map[key]*entry),
		ttl:        ttl,
		maxEntries: maxEntries,
	}

	go c.sweepLoop()
	return c
}

// Get returns the cached record for (url, method) if present and fresh.
// Stale entries are evicted and reported as a miss.
func (c *Cache) Get(url string, method models.Method) (*models.ContentRecord, bool) {
	k := key{url: url, method: method}

	c.mu.RLock()
	e, ok := c.store[k]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if time.Since(e.capturedAt) > c.ttl {
		c.mu.Lock()
		// Re-check under the write lock: a Put may have refreshed it.
		if cur, still := c.store[k]; still && time.Since(cur.capturedAt) > c.ttl {
			delete(c.store, k)
		}
		c.mu.Unlock()
		return nil, false
	}

	return e.record, true
}

// Put stores a record under (url, method). If the cache is at capacity,
// one arbitrary entry is evicted to make room (map iteration is random
// in Go).
func (c *Cache) Put(url string, method models.Method, record *models.ContentRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.store) >= c.maxEntries {
		for k := range c.store {
			delete(c.store, k)
			break
		}
	}

	c.store[key{url: url, method: method}] = &entry{
		record:     record,
		capturedAt: time.Now(),
	}
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[key]*entry)
}

// Len reports the number of entries currently held, stale ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// sweepLoop evicts entries older than the TTL every 5 minutes.
func (c *Cache) sweepLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-c.ttl)
		c.mu.Lock()
		for k, e := range c.store {
			if e.capturedAt.Before(cutoff) {
				delete(c.store, k)
			}
		}
		c.mu.Unlock()
	}
}
