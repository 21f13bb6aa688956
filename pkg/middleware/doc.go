// Package middleware provides HTTP middleware for the lint API server.
//
// # Overview
//
// This package implements request processing middleware: API key
// authentication and rate limiting (in-memory and Redis-backed).
//
// # Middleware Components
//
// APIKeyAuth: fixed-key authentication
//
//	auth := middleware.NewAPIKeyAuth(cfg.Auth.APIKeys)
//	router.Use(auth.Handler)
//	// Accepts "Authorization: Bearer <key>" or "X-API-Key: <key>"
//
// RateLimitMiddleware: in-memory token bucket rate limiting
//
//	rl := middleware.NewRateLimitMiddleware(nil) // default 100 req/min
//	router.Use(rl.Handler)
//
// DistributedRateLimitMiddleware: Redis-backed rate limiting shared
// across instances
//
//	drl := middleware.NewDistributedRateLimitMiddleware(redisClient, nil)
//	router.Use(drl.Handler)
//
// # Rate Limiting
//
// Requests are keyed by the authenticated API key when present,
// otherwise by client IP. The Redis limiter fails open on cache
// errors so a cache outage never takes the API down with it.
package middleware
