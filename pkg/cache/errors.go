package cache

import "errors"

var (
	// ErrInvalidCapacity is returned when constructing a cache with capacity < 1.
	ErrInvalidCapacity = errors.New("cache capacity must be at least 1")

	// ErrNilCache is returned when constructing a Loader without a cache.
	ErrNilCache = errors.New("cache cannot be nil")

	// ErrNilLoadFunc is returned by GetOrLoad when no load function is provided.
	ErrNilLoadFunc = errors.New("load function cannot be nil")
)
