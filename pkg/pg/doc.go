// Package pg bootstraps the PostgreSQL layer: a pgx/v5 connection pool
// with startup retries, goose schema migrations, a health check closure,
// and error classification helpers for unique-key and not-found handling.
//
// Config is populated from environment variables. Connect retries with
// linear backoff so service restarts tolerate a database that is still
// coming up; Migrate runs before the HTTP server starts serving.
package pg
