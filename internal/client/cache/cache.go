// Package cache is the short-lived read cache in front of a remote
// collection. Entries are fresh while now-StoredAt < MaxAge; a stale lookup
// is reported as a miss and the entry is dropped.
//
// The cache does not coalesce concurrent misses: two callers that miss the
// same key both go to the network.
package cache

import (
	"sync"
	"time"
)

// DefaultMaxAge is the freshness window used when none is given.
const DefaultMaxAge = 60 * time.Second

// ListKey is the key of the whole-collection entry.
const ListKey = "list"

// RecordKey returns the key of a single-record entry.
func RecordKey(id string) string {
	return "id:" + id
}

// Clock returns the current time. Tests inject a fake one.
type Clock func() time.Time

// Entry is one cached response body.
type Entry struct {
	Key      string
	Value    any
	StoredAt time.Time
}

type Cache struct {
	mu      sync.Mutex
	entries map[string]Entry
	maxAge  time.Duration
	now     Clock
}

type Option func(*Cache)

// WithClock replaces time.Now.
func WithClock(c Clock) Option {
	return func(cc *Cache) { cc.now = c }
}

// WithMaxAge sets the freshness window. Non-positive values are ignored.
func WithMaxAge(d time.Duration) Option {
	return func(cc *Cache) {
		if d > 0 {
			cc.maxAge = d
		}
	}
}

func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]Entry),
		maxAge:  DefaultMaxAge,
		now:     time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Cache) MaxAge() time.Duration {
	return c.maxAge
}

// Get returns the value stored under key if it is still fresh.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.StoredAt) >= c.maxAge {
		delete(c.entries, key)
		return nil, false
	}
	return e.Value, true
}

// Set stores value under key, stamped with the current clock.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = Entry{Key: key, Value: value, StoredAt: c.now()}
}

// Delete drops the given keys. Missing keys are ignored.
func (c *Cache) Delete(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, k := range keys {
		delete(c.entries, k)
	}
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.entries)
}

// Len counts stored entries, stale ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
