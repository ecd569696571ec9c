package ratelimit

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strconv"
)

// KeyFunc derives the rate limit key from a request.
type KeyFunc func(r *http.Request) string

// IPKeyFunc keys requests by client IP under the given bucket. Used for
// unauthenticated callers where no user identity exists.
func IPKeyFunc(bucket string) KeyFunc {
	return func(r *http.Request) string {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		return Key(bucket, host)
	}
}

// Middleware throttles requests through the limiter. Every response
// carries X-RateLimit-* headers; denials get a 429 with a JSON body
// containing the reset time as epoch seconds so clients can render a
// deterministic countdown. Limiter store failures fail open with a log
// entry: throttling is protective, not an entitlement check.
func Middleware(limiter *Limiter, keyFn KeyFunc, log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFn(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			result, err := limiter.Allow(r.Context(), key)
			if err != nil {
				log.WarnContext(r.Context(), "rate limit check failed, allowing request",
					slog.String("key", key),
					slog.Any("error", err),
				)
				next.ServeHTTP(w, r)
				return
			}

			reset := result.ResetAt.Unix()
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(reset, 10))

			if !result.Allowed {
				w.Header().Set("Retry-After", strconv.Itoa(int(result.RetryAfter().Seconds())+1))
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"error":     "rate limit exceeded",
					"limit":     result.Limit,
					"remaining": 0,
					"reset":     reset,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
