// Package cache holds the in-process caches behind corpus loading and the
// memory verse cache.
package cache

import (
	"sync"
	"time"
)

// purgeEvery is how many writes pass between sweeps of expired entries.
const purgeEvery = 1024

type item[V any] struct {
	value    V
	deadline int64 // unix nanoseconds, 0 for never
}

// TTLCache maps keys to values that expire a fixed time after they are
// set. A TTL of zero or less keeps entries forever. Expired entries are
// invisible to Get and are swept every purgeEvery writes, so a long-running
// server does not grow without bound.
type TTLCache[K comparable, V any] struct {
	ttl time.Duration
	now func() time.Time

	mu     sync.RWMutex
	items  map[K]item[V]
	writes int
}

func New[K comparable, V any](ttl time.Duration) *TTLCache[K, V] {
	return &TTLCache[K, V]{
		ttl:   ttl,
		now:   time.Now,
		items: make(map[K]item[V]),
	}
}

func (c *TTLCache[K, V]) live(it item[V], now int64) bool {
	return it.deadline == 0 || now < it.deadline
}

// Get returns the value for key if it is present and live.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, ok := c.items[key]
	if !ok || !c.live(it, c.now().UnixNano()) {
		var zero V
		return zero, false
	}
	return it.value, true
}

// Set stores value under key, replacing any previous value and deadline.
func (c *TTLCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	it := item[V]{value: value}
	if c.ttl > 0 {
		it.deadline = c.now().Add(c.ttl).UnixNano()
	}
	c.items[key] = it

	c.writes++
	if c.ttl > 0 && c.writes%purgeEvery == 0 {
		c.purgeLocked()
	}
}

// Purge drops expired entries and returns how many were removed.
func (c *TTLCache[K, V]) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.purgeLocked()
}

func (c *TTLCache[K, V]) purgeLocked() int {
	now := c.now().UnixNano()
	n := 0
	for k, it := range c.items {
		if !c.live(it, now) {
			delete(c.items, k)
			n++
		}
	}
	return n
}

// Len returns the number of stored entries, including expired ones not yet
// swept.
func (c *TTLCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
