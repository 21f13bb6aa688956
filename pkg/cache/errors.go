package cache

import "errors"

var (
	// ErrCacheMiss indicates the key was not found in the cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidKey indicates an empty or malformed cache key
	ErrInvalidKey = errors.New("invalid cache key")
)
