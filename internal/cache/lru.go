// Package cache provides a small bounded LRU used by the parser,
// validator, property-access, and template layers. It is grounded on
// the cache shape of the Kangaroo ASTParser (sync.Map keyed by a
// string digest, with a maxCacheSize advisory bound and negative
// caching of failed parses) but adds real least-recently-used eviction
// instead of letting the map grow past its bound.
package cache

import (
	"container/list"
	"sync"
)

// entry is stored in the backing list; key lets Set locate the map
// entry to delete once a list node falls off the back.
type entry[K comparable, V any] struct {
	key   K
	value V
	ok    bool // false represents a cached negative result (failed parse/validation)
}

// LRU is a fixed-capacity, goroutine-safe cache with least-recently-used
// eviction. A zero-value LRU panics on use; construct with New.
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	items    map[K]*list.Element
	order    *list.List // front = most recently used

	hits, misses, evictions int64
}

// New returns an LRU bounded to capacity entries. capacity <= 0 means
// unbounded (never evicts), matching caches that are advisory only.
func New[K comparable, V any](capacity int) *LRU[K, V] {
	return &LRU[K, V]{
		capacity: capacity,
		items:    make(map[K]*list.Element),
		order:    list.New(),
	}
}

// Get returns the cached value for key and whether it was found. A
// found entry is promoted to most-recently-used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, found := c.items[key]
	if !found {
		c.misses++
		var zero V
		return zero, false
	}
	c.order.MoveToFront(el)
	c.hits++
	e := el.Value.(*entry[K, V])
	return e.value, e.ok
}

// Set stores value for key, evicting the least-recently-used entry if
// the cache is at capacity. ok distinguishes a cached success from a
// cached negative result (e.g. "this expression fails to parse").
func (c *LRU[K, V]) Set(key K, value V, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, found := c.items[key]; found {
		el.Value.(*entry[K, V]).value = value
		el.Value.(*entry[K, V]).ok = ok
		c.order.MoveToFront(el)
		return
	}

	el := c.order.PushFront(&entry[K, V]{key: key, value: value, ok: ok})
	c.items[key] = el

	if c.capacity > 0 && c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*entry[K, V]).key)
			c.evictions++
		}
	}
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Clear empties the cache without resetting hit/miss/eviction counters.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]*list.Element)
	c.order.Init()
}

// Stats reports cumulative hit/miss/eviction counts, surfaced through
// Engine.Stats() for the CLI's --stats output.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
}

// Stats returns a snapshot of the cache's counters.
func (c *LRU[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Size:      c.order.Len(),
	}
}

// ResetStats zeroes the hit/miss/eviction counters without clearing
// cached entries.
func (c *LRU[K, V]) ResetStats() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hits, c.misses, c.evictions = 0, 0, 0
}
