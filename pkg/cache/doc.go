// Package cache provides lint result caching keyed by content hash.
//
// Two layers are available: an in-process expirable LRU (ResultCache) and an
// optional Redis-backed cache (RedisCache) shared across instances. Both are
// fail-open: a cache error never fails a lint, the caller just recomputes.
package cache
