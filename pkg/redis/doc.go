// Package redis connects to the Redis instance backing the shared rate
// limit counters. Connect retries until the server is reachable and the
// Healthcheck closure plugs into the readiness probe.
package redis
