// Package httpserver wraps net/http with graceful shutdown, env-driven
// timeouts, lifecycle hooks, and probe handlers.
//
// Run blocks until the context is cancelled or an interrupt/TERM signal
// arrives, then drains in-flight requests within the shutdown deadline.
// Listen failures wrap ErrStart and shutdown failures wrap ErrShutdown,
// so callers distinguish them with errors.Is.
package httpserver
