// Package logger builds the service's slog.Logger: functional options
// pick format and level, attribute constructors keep key names consistent
// (user_id, event_id, plan), and a decorating handler copies
// request-scoped context values into every record.
package logger
