package requestid

import (
	"context"
	"log/slog"
)

// LoggerExtractor feeds the request ID into every log line through the
// logger factory's context extractor hook.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := FromContext(ctx); id != "" {
			return slog.String("request_id", id), true
		}
		return slog.Attr{}, false
	}
}
