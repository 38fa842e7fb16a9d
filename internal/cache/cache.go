// Package cache provides a byte-budgeted LRU cache for rasterized tiles.
//
//	c := cache.New[image.Rectangle, image.Image](64<<20, cache.ImageBytes)
//	c.Set(rect, img)
//	img, ok := c.Get(rect)
//
// The budget is soft: an entry larger than the whole budget is still kept
// until the next insertion.
package cache

import (
	"image"
	"sync"
)

// CostFunc returns the size of a value in bytes.
type CostFunc[V any] func(V) int64

// ImageBytes is the RGBA size of an image.
func ImageBytes(img image.Image) int64 {
	if img == nil {
		return 0
	}
	b := img.Bounds()
	return int64(b.Dx()) * int64(b.Dy()) * 4
}

// Cache is a thread-safe LRU cache bounded by the summed cost of its
// values. Cache must not be copied after creation.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*entry[K, V]
	lru     lruList[K, V]
	cost    CostFunc[V]
	budget  int64
	used    int64

	hits      uint64
	misses    uint64
	evictions uint64
}

type entry[K comparable, V any] struct {
	key        K
	value      V
	cost       int64
	prev, next *entry[K, V]
}

// New creates a cache holding at most budget bytes as measured by cost.
// A budget of 0 means unlimited.
func New[K comparable, V any](budget int64, cost CostFunc[V]) *Cache[K, V] {
	return &Cache[K, V]{
		entries: make(map[K]*entry[K, V]),
		cost:    cost,
		budget:  budget,
	}
}

// Get returns the value for key and marks it most recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.lru.moveToFront(e)
	return e.value, true
}

// Set stores value under key, replacing any previous value, and evicts
// least recently used entries while over budget.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.entries[key]; ok {
		c.remove(old)
	}
	e := &entry[K, V]{key: key, value: value, cost: c.cost(value)}
	c.entries[key] = e
	c.lru.pushFront(e)
	c.used += e.cost

	for c.budget > 0 && c.used > c.budget && c.lru.len > 1 {
		c.remove(c.lru.tail)
		c.evictions++
	}
}

// Delete removes key. It reports whether key was present.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if ok {
		c.remove(e)
	}
	return ok
}

// DeleteFunc removes every entry whose key matches and returns how many
// were removed.
func (c *Cache[K, V]) DeleteFunc(match func(K) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for key, e := range c.entries {
		if match(key) {
			c.remove(e)
			n++
		}
	}
	return n
}

// Clear removes all entries. Statistics are kept.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*entry[K, V])
	c.lru = lruList[K, V]{}
	c.used = 0
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Used returns the summed cost of all entries.
func (c *Cache[K, V]) Used() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.used
}

// Stats returns a snapshot of the cache counters.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Len:       len(c.entries),
		Used:      c.used,
		Budget:    c.budget,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}

// remove unlinks e. Caller must hold c.mu.
func (c *Cache[K, V]) remove(e *entry[K, V]) {
	c.lru.unlink(e)
	delete(c.entries, e.key)
	c.used -= e.cost
}

// Stats contains cache statistics.
type Stats struct {
	Len       int
	Used      int64
	Budget    int64
	Hits      uint64
	Misses    uint64
	Evictions uint64
	// HitRate is hits over lookups, 0 to 1.
	HitRate float64
}
