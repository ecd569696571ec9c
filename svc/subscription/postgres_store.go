package subscription

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/plan"
)

const uniqueViolation = "23505"

// PostgresStore implements Store on pgx. Reconciliation transactions lock
// the subscription row (SELECT ... FOR UPDATE) so concurrent deliveries
// for the same subscription serialize at the database.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a postgres-backed subscription store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	if pool == nil {
		panic("subscription: pgx pool is required")
	}
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) InTx(ctx context.Context, fn func(tx Tx) error) error {
	return pgx.BeginFunc(ctx, s.pool, func(pgtx pgx.Tx) error {
		return fn(&postgresTx{tx: pgtx})
	})
}

func (s *PostgresStore) GetSubscription(ctx context.Context, externalID string) (*Subscription, error) {
	return scanSubscription(s.pool.QueryRow(ctx, `
		SELECT external_id, user_id, plan, status,
		       current_period_start, current_period_end, cancel_at_period_end,
		       created_at, updated_at
		FROM subscriptions WHERE external_id = $1`, externalID))
}

func (s *PostgresStore) GetSubscriptionByUser(ctx context.Context, userID string) (*Subscription, error) {
	return scanSubscription(s.pool.QueryRow(ctx, `
		SELECT external_id, user_id, plan, status,
		       current_period_start, current_period_end, cancel_at_period_end,
		       created_at, updated_at
		FROM subscriptions
		WHERE user_id = $1 AND status <> 'canceled'
		ORDER BY current_period_end DESC
		LIMIT 1`, userID))
}

func (s *PostgresStore) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	var p Profile
	err := s.pool.QueryRow(ctx, `
		SELECT user_id, plan, customer_id, email, notify_opt_out, updated_at
		FROM profiles WHERE user_id = $1`, userID).
		Scan(&p.UserID, &p.Plan, &p.CustomerID, &p.Email, &p.NotifyOptOut, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

type postgresTx struct {
	tx pgx.Tx
}

func (t *postgresTx) ClaimEvent(ctx context.Context, eventID string) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO processed_events (event_id, processed_at) VALUES ($1, now())`, eventID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrEventAlreadyProcessed
		}
		return fmt.Errorf("claim event: %w", err)
	}
	return nil
}

func (t *postgresTx) GetSubscription(ctx context.Context, externalID string) (*Subscription, error) {
	return scanSubscription(t.tx.QueryRow(ctx, `
		SELECT external_id, user_id, plan, status,
		       current_period_start, current_period_end, cancel_at_period_end,
		       created_at, updated_at
		FROM subscriptions WHERE external_id = $1
		FOR UPDATE`, externalID))
}

func (t *postgresTx) UpsertSubscription(ctx context.Context, sub *Subscription) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO subscriptions (
			external_id, user_id, plan, status,
			current_period_start, current_period_end, cancel_at_period_end,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (external_id) DO UPDATE SET
			plan = EXCLUDED.plan,
			status = EXCLUDED.status,
			current_period_start = EXCLUDED.current_period_start,
			current_period_end = EXCLUDED.current_period_end,
			cancel_at_period_end = EXCLUDED.cancel_at_period_end,
			updated_at = EXCLUDED.updated_at`,
		sub.ExternalID, sub.UserID, sub.Plan, sub.Status,
		sub.CurrentPeriodStart, sub.CurrentPeriodEnd, sub.CancelAtPeriodEnd,
		sub.CreatedAt, sub.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert subscription: %w", err)
	}
	return nil
}

func (t *postgresTx) SetProfilePlan(ctx context.Context, userID string, p plan.Plan, customerID string) error {
	// NULLIF keeps the stored customer handle when the event carries none.
	_, err := t.tx.Exec(ctx, `
		INSERT INTO profiles (user_id, plan, customer_id, updated_at)
		VALUES ($1, $2, COALESCE(NULLIF($3, ''), ''), now())
		ON CONFLICT (user_id) DO UPDATE SET
			plan = EXCLUDED.plan,
			customer_id = COALESCE(NULLIF($3, ''), profiles.customer_id),
			updated_at = now()`,
		userID, p, customerID)
	if err != nil {
		return fmt.Errorf("set profile plan: %w", err)
	}
	return nil
}

func scanSubscription(row pgx.Row) (*Subscription, error) {
	var sub Subscription
	err := row.Scan(
		&sub.ExternalID, &sub.UserID, &sub.Plan, &sub.Status,
		&sub.CurrentPeriodStart, &sub.CurrentPeriodEnd, &sub.CancelAtPeriodEnd,
		&sub.CreatedAt, &sub.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan subscription: %w", err)
	}
	return &sub, nil
}
