// Package cache memoizes upstream lookups for a fixed time window.
//
// Each logical data source owns its own Cache, so keys of different sources
// never collide. Entries are evicted lazily when a lookup finds them expired.
package cache

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

type options struct {
	now func() time.Time
}

type Option func(*options)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

type Cache[K comparable, V any] struct {
	name  string
	ttl   time.Duration
	now   func() time.Time
	group singleflight.Group

	mu    sync.RWMutex
	items map[K]entry[V]

	hits   atomic.Int64
	misses atomic.Int64
}

func New[K comparable, V any](name string, ttl time.Duration, opts ...Option) *Cache[K, V] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache[K, V]{
		name:  name,
		ttl:   ttl,
		now:   o.now,
		items: make(map[K]entry[V]),
	}
}

// GetOrCompute returns the live value for key, or runs compute and stores its
// result for the cache's TTL. Zero/nil results are stored like any other, so
// a failing upstream is asked at most once per window. Concurrent misses on
// the same key share one compute call.
func (c *Cache[K, V]) GetOrCompute(key K, compute func() V) V {
	if v, ok := c.get(key); ok {
		c.hits.Add(1)
		return v
	}
	c.misses.Add(1)

	res, _, _ := c.group.Do(fmt.Sprintf("%#v", key), func() (any, error) {
		// a flight that just finished may already have stored the value
		if v, ok := c.get(key); ok {
			return v, nil
		}
		v := compute()
		c.set(key, v)
		return v, nil
	})

	v, _ := res.(V)
	return v
}

func (c *Cache[K, V]) get(key K) (V, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		var zero V
		return zero, false
	}
	if c.now().Before(e.expiresAt) {
		return e.value, true
	}

	c.mu.Lock()
	if cur, ok := c.items[key]; ok && !c.now().Before(cur.expiresAt) {
		delete(c.items, key)
	}
	c.mu.Unlock()

	var zero V
	return zero, false
}

func (c *Cache[K, V]) set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = entry[V]{
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	}
}

type Stats struct {
	Name    string        `json:"name"`
	TTL     time.Duration `json:"ttl"`
	Entries int           `json:"entries"`
	Hits    int64         `json:"hits"`
	Misses  int64         `json:"misses"`
	HitRate float64       `json:"hit_rate"`
}

func (c *Cache[K, V]) Stats() Stats {
	c.mu.RLock()
	size := len(c.items)
	c.mu.RUnlock()

	hits, misses := c.hits.Load(), c.misses.Load()
	rate := 0.0
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total)
	}

	return Stats{
		Name:    c.name,
		TTL:     c.ttl,
		Entries: size,
		Hits:    hits,
		Misses:  misses,
		HitRate: rate,
	}
}
