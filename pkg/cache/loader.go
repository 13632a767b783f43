package cache

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"
)

// LoadFunc produces the value for a key on a cache miss.
type LoadFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)

// Loader adds read-through semantics to an LRUCache: on a miss it invokes a
// load function and caches the result, collapsing concurrent loads of the
// same key into a single call. Load errors are not cached.
type Loader[K comparable, V any] struct {
	cache *LRUCache[K, V]
	group singleflight.Group
}

// NewLoader wraps an existing cache with read-through loading.
func NewLoader[K comparable, V any](c *LRUCache[K, V]) (*Loader[K, V], error) {
	if c == nil {
		return nil, ErrNilCache
	}
	return &Loader[K, V]{cache: c}, nil
}

// GetOrLoad returns the cached value for key, loading and caching it on a
// miss. Concurrent callers missing on the same key share one load call and
// receive the same result.
func (l *Loader[K, V]) GetOrLoad(ctx context.Context, key K, load LoadFunc[K, V]) (V, error) {
	var zero V
	if load == nil {
		return zero, ErrNilLoadFunc
	}

	if v, ok := l.cache.Get(key); ok {
		return v, nil
	}

	// singleflight keys are strings; %v keeps distinct comparable keys
	// distinct for the key types the toolkit is used with.
	v, err, _ := l.group.Do(fmt.Sprintf("%v", key), func() (any, error) {
		// Re-check under the flight: another caller may have loaded the
		// value between our miss and the flight starting.
		if v, ok := l.cache.Get(key); ok {
			return v, nil
		}

		v, err := load(ctx, key)
		if err != nil {
			return nil, err
		}
		l.cache.Put(key, v)
		return v, nil
	})
	if err != nil {
		return zero, err
	}
	return v.(V), nil
}

// Cache exposes the underlying LRUCache.
func (l *Loader[K, V]) Cache() *LRUCache[K, V] {
	return l.cache
}
