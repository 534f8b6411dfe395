package services

import (
	"context"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
)

// RateChangeObserver is notified after a rate row has been persisted.
// Implementations must not fail the write: problems are logged and swallowed.
type RateChangeObserver interface {
	OnRateSaved(ctx context.Context, rate domain.ExchangeRate)
}

// NotificationDispatcherSvc fans a detected change out to subscribed users.
type NotificationDispatcherSvc interface {
	// DispatchRateChange returns the number of users the change was submitted for.
	DispatchRateChange(ctx context.Context, change domain.RateChange) (int, error)
}

// SubscriptionChecker is consulted by live connections before forwarding a rate change.
type SubscriptionChecker interface {
	IsSubscribed(ctx context.Context, userID, currencyCode string) (bool, error)
}

// SubscriptionSvcFacade manages per-user notification preferences.
type SubscriptionSvcFacade interface {
	SubscriptionChecker

	// GetPreferences returns the flag of every active currency for userID.
	GetPreferences(ctx context.Context, userID string) (*domain.NotificationPreferences, error)

	// SavePreferences upserts the given flags. The home currency is always stored active.
	// enabled, when not nil, updates the user's global toggle.
	SavePreferences(ctx context.Context, userID string, prefs []domain.CurrencyPreference, enabled *bool) error
}

// GroupPublisher delivers a message to every live connection registered under group.
// Delivery is fire-and-forget; a group without connections is not an error.
type GroupPublisher interface {
	GroupSend(ctx context.Context, group string, msg domain.PushMessage) error
}
