package cache

import (
	"container/list"
	"sync"
)

type lruEntry[K comparable, V any] struct {
	key   K
	value V
}

// LRUCache is a thread-safe fixed-capacity cache with least-recently-used
// eviction. The key index and the recency list are mutated together under a
// single mutex, so no caller can observe them out of sync.
//
// Get and Put both count as "use": a hit promotes the entry to
// most-recently-used. Entries inserted earlier are evicted earlier when
// recency is otherwise equal.
type LRUCache[K comparable, V any] struct {
	capacity int
	onEvict  func(key K, value V)

	mu      sync.Mutex
	items   map[K]*list.Element
	recency *list.List // front = most recently used
}

// NewLRUCache creates an LRU cache holding at most capacity entries.
// Capacity must be at least 1. onEvict, when non-nil, is invoked for every
// entry removed by capacity eviction or Clear; it runs outside the cache's
// lock, so it may block or call back into the cache.
func NewLRUCache[K comparable, V any](capacity int, onEvict func(key K, value V)) (*LRUCache[K, V], error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	return &LRUCache[K, V]{
		capacity: capacity,
		onEvict:  onEvict,
		items:    make(map[K]*list.Element),
		recency:  list.New(),
	}, nil
}

// Get retrieves the value for key and promotes it to most-recently-used.
// A miss leaves the recency order untouched.
func (c *LRUCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.recency.MoveToFront(elem)
		return elem.Value.(*lruEntry[K, V]).value, true
	}

	var zero V
	return zero, false
}

// Peek retrieves the value for key without touching the recency order.
func (c *LRUCache[K, V]) Peek(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		return elem.Value.(*lruEntry[K, V]).value, true
	}

	var zero V
	return zero, false
}

// Put inserts or updates the value for key and promotes it to
// most-recently-used. When a new key would exceed capacity, the
// least-recently-used entry is evicted first.
// Returns the previous value and whether the key already existed.
func (c *LRUCache[K, V]) Put(key K, value V) (V, bool) {
	var evictedKey K
	var evictedValue V
	evicted := false

	c.mu.Lock()

	if elem, ok := c.items[key]; ok {
		c.recency.MoveToFront(elem)
		entry := elem.Value.(*lruEntry[K, V])
		old := entry.value
		entry.value = value
		c.mu.Unlock()
		return old, true
	}

	if c.recency.Len() == c.capacity {
		oldest := c.recency.Back()
		entry := oldest.Value.(*lruEntry[K, V])
		c.recency.Remove(oldest)
		delete(c.items, entry.key)
		evictedKey, evictedValue, evicted = entry.key, entry.value, true
	}

	c.items[key] = c.recency.PushFront(&lruEntry[K, V]{key: key, value: value})
	c.mu.Unlock()

	if evicted && c.onEvict != nil {
		c.onEvict(evictedKey, evictedValue)
	}

	var zero V
	return zero, false
}

// Remove deletes key from the cache if present, returning the removed value.
// Explicit removal does not trigger the eviction callback: the caller holds
// the value and owns any cleanup.
func (c *LRUCache[K, V]) Remove(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.recency.Remove(elem)
		delete(c.items, key)
		return elem.Value.(*lruEntry[K, V]).value, true
	}

	var zero V
	return zero, false
}

// Clear removes all entries. The eviction callback, if set, is invoked for
// each removed entry after the cache has been emptied.
func (c *LRUCache[K, V]) Clear() {
	c.mu.Lock()
	var removed []*lruEntry[K, V]
	if c.onEvict != nil {
		removed = make([]*lruEntry[K, V], 0, c.recency.Len())
		for elem := c.recency.Front(); elem != nil; elem = elem.Next() {
			removed = append(removed, elem.Value.(*lruEntry[K, V]))
		}
	}
	c.items = make(map[K]*list.Element)
	c.recency.Init()
	c.mu.Unlock()

	for _, entry := range removed {
		c.onEvict(entry.key, entry.value)
	}
}

// Len returns the number of entries currently cached.
func (c *LRUCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recency.Len()
}

// Capacity returns the cache's fixed capacity.
func (c *LRUCache[K, V]) Capacity() int {
	return c.capacity
}

// Keys returns the cached keys ordered from most to least recently used.
func (c *LRUCache[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]K, 0, c.recency.Len())
	for elem := c.recency.Front(); elem != nil; elem = elem.Next() {
		keys = append(keys, elem.Value.(*lruEntry[K, V]).key)
	}
	return keys
}
