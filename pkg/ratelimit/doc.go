// Package ratelimit provides short-window request throttling for mutation
// endpoints, independent of daily plan quotas.
//
// The limiter is a fixed-window counter keyed by (bucket, identity):
// approximate at window boundaries but monotonic, which is the accepted
// trade-off for throttling. Two store backends share one contract:
// MemoryStore for single-instance deployments and RedisStore for
// multi-instance deployments, where atomicity comes from INCR with a TTL.
//
//	limiter, _ := ratelimit.New(store, ratelimit.Config{Limit: 30, Window: time.Minute})
//	result, err := limiter.Allow(ctx, ratelimit.Key("checkout", userID))
//	if err == nil && !result.Allowed {
//		// respond 429 with result.ResetAt so clients can back off
//	}
//
// Middleware wraps a chi route and surfaces the standard
// X-RateLimit-Limit/Remaining/Reset headers on every response.
package ratelimit
