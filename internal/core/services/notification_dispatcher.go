package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_exchange_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/currency_exchange_app/internal/core/ports/services"
	"github.com/SscSPs/currency_exchange_app/internal/monitoring"
)

// NotificationDispatcher submits a rate change to the connection group of every subscribed user.
// Delivery is at-most-once: a user without a live connection never sees the message.
type NotificationDispatcher struct {
	BaseService
	subscriptionRepo portsrepo.SubscriptionRepository
	publisher        portssvc.GroupPublisher
	metrics          monitoring.MetricsService
}

func NewNotificationDispatcher(subscriptionRepo portsrepo.SubscriptionRepository, publisher portssvc.GroupPublisher, metrics monitoring.MetricsService) *NotificationDispatcher {
	if metrics == nil {
		metrics = monitoring.NoopMetrics{}
	}
	return &NotificationDispatcher{
		subscriptionRepo: subscriptionRepo,
		publisher:        publisher,
		metrics:          metrics,
	}
}

// DispatchRateChange returns the number of users the message was submitted for.
// Only the subscriber lookup can fail; per-user publish errors are logged and skipped.
func (d *NotificationDispatcher) DispatchRateChange(ctx context.Context, change domain.RateChange) (int, error) {
	logger := d.GetLogger(ctx).With(slog.String("currency", change.CurrencyCode))

	userIDs, err := d.subscriptionRepo.ListActiveSubscriberIDs(ctx, change.CurrencyCode)
	if err != nil {
		return 0, fmt.Errorf("failed to list subscribers of %s: %w", change.CurrencyCode, err)
	}
	if len(userIDs) == 0 {
		logger.Info("No subscribers for rate change")
		return 0, nil
	}

	msg := domain.NewRateChangedMessage(change)
	submitted := 0
	for _, userID := range userIDs {
		if err := d.publisher.GroupSend(ctx, domain.UserGroup(userID), msg); err != nil {
			logger.Warn("Failed to publish rate change", slog.String("user_id", userID), slog.String("error", err.Error()))
			continue
		}
		submitted++
	}
	d.metrics.RecordNotificationDispatched(change.CurrencyCode, submitted)
	return submitted, nil
}
