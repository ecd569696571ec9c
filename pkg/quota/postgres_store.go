package quota

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Store on top of a pgx connection pool.
// Atomicity comes from a single conditional upsert: the update arm only
// fires while the counter is below the limit, so two concurrent requests
// can never both pass the check and jointly exceed it.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a postgres-backed quota store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	if pool == nil {
		panic("quota: pgx pool is required")
	}
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) IncrementIfBelow(ctx context.Context, userID string, day Day, limit int64) (int64, bool, error) {
	// The WHERE predicate on the conflict arm makes the upsert a no-op
	// once the counter reaches the limit; RETURNING then yields no row.
	const q = `
		INSERT INTO quota_usage (user_id, usage_date, count)
		VALUES ($1, $2, 1)
		ON CONFLICT (user_id, usage_date)
		DO UPDATE SET count = quota_usage.count + 1
		WHERE quota_usage.count < $3
		RETURNING count`

	var count int64
	err := s.pool.QueryRow(ctx, q, userID, day, limit).Scan(&count)
	if err == nil {
		return count, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, false, fmt.Errorf("quota increment: %w", err)
	}

	// No-op upsert: re-read so the caller can report actual usage.
	count, err = s.Count(ctx, userID, day)
	if err != nil {
		return 0, false, err
	}
	return count, false, nil
}

func (s *PostgresStore) Count(ctx context.Context, userID string, day Day) (int64, error) {
	const q = `SELECT count FROM quota_usage WHERE user_id = $1 AND usage_date = $2`

	var count int64
	err := s.pool.QueryRow(ctx, q, userID, day).Scan(&count)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("quota count: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) ListActive(ctx context.Context, day Day) ([]Usage, error) {
	const q = `SELECT user_id, count FROM quota_usage WHERE usage_date = $1 AND count > 0`

	rows, err := s.pool.Query(ctx, q, day)
	if err != nil {
		return nil, fmt.Errorf("quota list active: %w", err)
	}
	defer rows.Close()

	var usage []Usage
	for rows.Next() {
		var u Usage
		if err := rows.Scan(&u.UserID, &u.Count); err != nil {
			return nil, fmt.Errorf("quota list active scan: %w", err)
		}
		usage = append(usage, u)
	}
	return usage, rows.Err()
}
