package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_exchange_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSubscriptionRepository struct {
	BaseRepository
}

func newPgxSubscriptionRepository(db *pgxpool.Pool) *PgxSubscriptionRepository {
	return &PgxSubscriptionRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.SubscriptionRepository = (*PgxSubscriptionRepository)(nil)

func (r *PgxSubscriptionRepository) UpsertSubscription(ctx context.Context, sub domain.NotificationSubscription) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO notification_subscriptions (user_id, currency_code, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, currency_code) DO UPDATE SET
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at;`,
		sub.UserID, strings.ToUpper(sub.CurrencyCode), sub.IsActive, sub.CreatedAt, sub.UpdatedAt)
	if err != nil {
		return translateWriteError(err, "notification subscription")
	}
	return nil
}

func (r *PgxSubscriptionRepository) ListSubscriptionsByUser(ctx context.Context, userID string) ([]domain.NotificationSubscription, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT user_id, currency_code, is_active, created_at, updated_at
		FROM notification_subscriptions
		WHERE user_id = $1
		ORDER BY currency_code;`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions of user %s: %w", userID, err)
	}
	defer rows.Close()

	subs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.NotificationSubscription, error) {
		var s domain.NotificationSubscription
		err := row.Scan(&s.UserID, &s.CurrencyCode, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan subscriptions: %w", err)
	}
	return subs, nil
}

// ListActiveSubscriberIDs skips users that are deleted or have the global toggle off.
func (r *PgxSubscriptionRepository) ListActiveSubscriberIDs(ctx context.Context, currencyCode string) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT s.user_id
		FROM notification_subscriptions s
		JOIN users u ON u.user_id = s.user_id
		WHERE s.currency_code = $1 AND s.is_active
		  AND u.notifications_enabled AND u.deleted_at IS NULL
		ORDER BY s.user_id;`, strings.ToUpper(currencyCode))
	if err != nil {
		return nil, fmt.Errorf("failed to query subscribers of %s: %w", currencyCode, err)
	}
	defer rows.Close()

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan subscribers: %w", err)
	}
	return ids, nil
}

func (r *PgxSubscriptionRepository) IsSubscribed(ctx context.Context, userID, currencyCode string) (bool, error) {
	var subscribed bool
	err := r.Pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM notification_subscriptions s
			JOIN users u ON u.user_id = s.user_id
			WHERE s.user_id = $1 AND s.currency_code = $2 AND s.is_active
			  AND u.notifications_enabled AND u.deleted_at IS NULL
		);`, userID, strings.ToUpper(currencyCode)).Scan(&subscribed)
	if err != nil {
		return false, fmt.Errorf("failed to check subscription of user %s to %s: %w", userID, currencyCode, err)
	}
	return subscribed, nil
}
