package billing

import (
	"context"
	"net/http"

	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/ratelimit"
)

type ctxKey int

const userIDKey ctxKey = iota

// UserIDHeader carries the authenticated user identity, set by the
// upstream auth layer. Requests reaching these handlers without it are
// rejected; the module never authenticates on its own.
const UserIDHeader = "X-User-ID"

// requireUser rejects requests without an authenticated user identity
// and stashes it in the context for handlers.
func requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(UserIDHeader)
		if userID == "" {
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	})
}

// userIDFrom returns the authenticated user set by requireUser.
func userIDFrom(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey).(string)
	return userID
}

// userKeyFunc keys rate limits by the authenticated user within a bucket.
func userKeyFunc(bucket string) ratelimit.KeyFunc {
	return func(r *http.Request) string {
		userID := r.Header.Get(UserIDHeader)
		if userID == "" {
			return ""
		}
		return ratelimit.Key(bucket, userID)
	}
}
