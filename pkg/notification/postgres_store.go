package notification

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/quota"
)

// PostgresSuppressionStore implements SuppressionStore on top of a pgx
// connection pool. The claim is a single insert racing on the primary
// key: exactly one concurrent caller gets a row in, and the rows-affected
// count says which one.
type PostgresSuppressionStore struct {
	pool *pgxpool.Pool
}

// NewPostgresSuppressionStore creates a postgres-backed suppression store.
func NewPostgresSuppressionStore(pool *pgxpool.Pool) *PostgresSuppressionStore {
	if pool == nil {
		panic("notification: pgx pool is required")
	}
	return &PostgresSuppressionStore{pool: pool}
}

func (s *PostgresSuppressionStore) MarkIfFirst(ctx context.Context, userID string, kind Kind, day quota.Day) (bool, error) {
	const q = `
		INSERT INTO notification_log (user_id, kind, sent_date)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, kind, sent_date) DO NOTHING`

	tag, err := s.pool.Exec(ctx, q, userID, kind, day)
	if err != nil {
		return false, fmt.Errorf("notification claim: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
