package repositories

import (
	"context"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
)

// SubscriptionRepository persists per-user, per-currency notification flags.
type SubscriptionRepository interface {
	// UpsertSubscription creates the row on first use and updates the flag afterwards.
	UpsertSubscription(ctx context.Context, sub domain.NotificationSubscription) error

	// ListSubscriptionsByUser returns every stored subscription of a user.
	ListSubscriptionsByUser(ctx context.Context, userID string) ([]domain.NotificationSubscription, error)

	// ListActiveSubscriberIDs returns users with an active subscription to currencyCode
	// whose global notification toggle is on.
	ListActiveSubscriberIDs(ctx context.Context, currencyCode string) ([]string, error)

	// IsSubscribed reports whether userID currently wants notifications for currencyCode.
	IsSubscribed(ctx context.Context, userID, currencyCode string) (bool, error)
}
