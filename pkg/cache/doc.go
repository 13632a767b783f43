// Package cache provides a generic, thread-safe LRU (Least Recently Used)
// cache with optional read-through loading.
//
// The cache holds at most its configured capacity; adding a new key beyond
// capacity evicts the least recently used entry first. Get, Put, Remove and
// Peek are O(1).
//
// # Usage
//
//	c, err := cache.NewLRUCache[string, *Conn](100, func(addr string, conn *Conn) {
//		conn.Close() // cleanup for evicted entries
//	})
//	if err != nil {
//		return err
//	}
//
//	c.Put("db-1", conn)
//	if conn, ok := c.Get("db-1"); ok { // promotes db-1 to most recently used
//		// use conn
//	}
//
// # Recency
//
// Both Get hits and Put (insert or update) promote an entry to
// most-recently-used. Peek reads without promotion. Recency reflects the
// order in which operations complete under the cache's lock, and entries
// inserted earlier lose ties to entries inserted later.
//
// # Eviction callbacks
//
// The callback passed to NewLRUCache runs for capacity evictions and Clear,
// always outside the cache's lock: a slow callback never blocks other
// callers, and the callback may safely re-enter the cache. Explicit Remove
// returns the value instead of invoking the callback.
//
// # Read-through loading
//
// Loader collapses concurrent misses on the same key into one load call:
//
//	loader, _ := cache.NewLoader(c)
//	conn, err := loader.GetOrLoad(ctx, "db-2", dial)
package cache
