package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/currency_exchange_app/internal/apperrors"
	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_exchange_app/internal/core/ports/repositories"
)

// SubscriptionService manages notification preferences. The home currency subscription is always active.
type SubscriptionService struct {
	BaseService
	subscriptionRepo portsrepo.SubscriptionRepository
	currencyRepo     portsrepo.CurrencyReader
	userRepo         portsrepo.UserRepositoryFacade
	homeCurrency     string
}

func NewSubscriptionService(
	subscriptionRepo portsrepo.SubscriptionRepository,
	currencyRepo portsrepo.CurrencyReader,
	userRepo portsrepo.UserRepositoryFacade,
	homeCurrency string,
) *SubscriptionService {
	return &SubscriptionService{
		subscriptionRepo: subscriptionRepo,
		currencyRepo:     currencyRepo,
		userRepo:         userRepo,
		homeCurrency:     homeCurrency,
	}
}

func (s *SubscriptionService) IsSubscribed(ctx context.Context, userID, currencyCode string) (bool, error) {
	return s.subscriptionRepo.IsSubscribed(ctx, userID, currencyCode)
}

// GetPreferences lists every active currency with the caller's flag. Missing rows read as inactive.
func (s *SubscriptionService) GetPreferences(ctx context.Context, userID string) (*domain.NotificationPreferences, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	subs, err := s.subscriptionRepo.ListSubscriptionsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	active := make(map[string]bool, len(subs))
	for _, sub := range subs {
		active[sub.CurrencyCode] = sub.IsActive
	}

	prefs := &domain.NotificationPreferences{Enabled: user.NotificationsEnabled}
	for _, c := range currencies {
		if !c.IsActive {
			continue
		}
		prefs.Currencies = append(prefs.Currencies, domain.CurrencyPreference{
			CurrencyCode: c.CurrencyCode,
			Active:       c.CurrencyCode == s.homeCurrency || active[c.CurrencyCode],
		})
	}
	return prefs, nil
}

// SavePreferences validates every currency before writing anything, then upserts the flags.
func (s *SubscriptionService) SavePreferences(ctx context.Context, userID string, prefs []domain.CurrencyPreference, enabled *bool) error {
	wanted := make(map[string]bool, len(prefs)+1)
	order := make([]string, 0, len(prefs)+1)
	for _, p := range prefs {
		code := strings.ToUpper(strings.TrimSpace(p.CurrencyCode))
		if _, err := s.currencyRepo.FindCurrencyByCode(ctx, code); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: %s", apperrors.ErrUnknownCurrency, p.CurrencyCode)
			}
			return fmt.Errorf("failed to validate currency %s: %w", code, err)
		}
		if _, seen := wanted[code]; !seen {
			order = append(order, code)
		}
		wanted[code] = p.Active
	}
	if _, seen := wanted[s.homeCurrency]; !seen {
		order = append(order, s.homeCurrency)
	}
	wanted[s.homeCurrency] = true

	now := s.CurrentTime()
	for _, code := range order {
		sub := domain.NotificationSubscription{
			UserID:       userID,
			CurrencyCode: code,
			IsActive:     wanted[code],
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.subscriptionRepo.UpsertSubscription(ctx, sub); err != nil {
			s.LogError(ctx, err, "Failed to save subscription", slog.String("currency", code))
			return fmt.Errorf("failed to save subscription for %s: %w", code, err)
		}
	}

	if enabled != nil {
		if err := s.userRepo.SetNotificationsEnabled(ctx, userID, *enabled); err != nil {
			s.LogError(ctx, err, "Failed to update notification toggle")
			return fmt.Errorf("failed to update notification toggle: %w", err)
		}
	}

	s.LogInfo(ctx, "Notification preferences saved", slog.Int("currencies", len(order)))
	return nil
}
