// Package middleware provides request rate limiting for the HTTP API.
//
// # Overview
//
// Two limiters implement Limiter. RateLimiter keeps token buckets in memory
// and suits a single server. DistributedRateLimiter counts requests in
// fixed Redis windows so several servers sharing a Redis diagnostic store
// also share their limits.
//
// # Usage
//
//	limiter := middleware.NewRateLimiter(&middleware.RateLimitConfig{
//		RequestsPerWindow: 600,
//		WindowDuration:    time.Minute,
//		BurstSize:         20,
//	})
//	limiter.StartCleanup(ctx)
//	router.Use(middleware.RateLimit(limiter, logger))
//
// Requests are keyed by client IP. Limiter errors fail open: the request is
// served and the error logged.
package middleware
