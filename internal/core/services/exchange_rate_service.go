package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/currency_exchange_app/internal/apperrors"
	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_exchange_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/currency_exchange_app/internal/core/ports/services"
	"github.com/SscSPs/currency_exchange_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExchangeRateService provides business logic for exchange rates.
type ExchangeRateService struct {
	BaseService
	rateRepo        portsrepo.ExchangeRateRepositoryFacade
	currencyService portssvc.CurrencyReaderSvc
	observer        portssvc.RateChangeObserver
	homeCurrency    string
}

// ExchangeRateServiceOption configures optional collaborators of ExchangeRateService.
type ExchangeRateServiceOption func(*ExchangeRateService)

// WithRateChangeObserver runs observer after every persisted rate.
func WithRateChangeObserver(observer portssvc.RateChangeObserver) ExchangeRateServiceOption {
	return func(s *ExchangeRateService) {
		s.observer = observer
	}
}

// WithExchangeRateClock overrides the clock used for audit fields.
func WithExchangeRateClock(now func() time.Time) ExchangeRateServiceOption {
	return func(s *ExchangeRateService) {
		s.Now = now
	}
}

// NewExchangeRateService creates a new ExchangeRateService.
func NewExchangeRateService(
	rateRepo portsrepo.ExchangeRateRepositoryFacade,
	currencyService portssvc.CurrencyReaderSvc,
	homeCurrency string,
	opts ...ExchangeRateServiceOption,
) *ExchangeRateService {
	s := &ExchangeRateService{
		rateRepo:        rateRepo,
		currencyService: currencyService,
		homeCurrency:    homeCurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// validateRateValues enforces base > 0 and 0 <= commission < base.
func validateRateValues(base, buyCommission, sellCommission decimal.Decimal) error {
	if !base.IsPositive() {
		return fmt.Errorf("%w: base price must be positive", apperrors.ErrValidation)
	}
	if buyCommission.IsNegative() || sellCommission.IsNegative() {
		return fmt.Errorf("%w: commissions cannot be negative", apperrors.ErrValidation)
	}
	if buyCommission.GreaterThanOrEqual(base) || sellCommission.GreaterThanOrEqual(base) {
		return fmt.Errorf("%w: commissions must be lower than the base price", apperrors.ErrValidation)
	}
	return nil
}

func (s *ExchangeRateService) requireActiveCurrency(ctx context.Context, code, leg string) error {
	currency, err := s.currencyService.GetCurrencyByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: %s currency code '%s' not found", apperrors.ErrValidation, leg, code)
		}
		return fmt.Errorf("failed to validate %s currency '%s': %w", leg, code, err)
	}
	if !currency.IsActive {
		return fmt.Errorf("%w: %s currency '%s' is not active", apperrors.ErrValidation, leg, code)
	}
	return nil
}

// CreateExchangeRate handles the creation of a new exchange rate.
func (s *ExchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	origin := strings.ToUpper(strings.TrimSpace(req.OriginCurrencyCode))
	destination := strings.ToUpper(strings.TrimSpace(req.DestinationCurrencyCode))

	if origin == destination {
		return nil, fmt.Errorf("%w: origin and destination currency codes cannot be the same", apperrors.ErrValidation)
	}
	if err := validateRateValues(req.BasePrice, req.BuyCommission, req.SellCommission); err != nil {
		return nil, err
	}
	if err := s.requireActiveCurrency(ctx, origin, "origin"); err != nil {
		return nil, err
	}
	if err := s.requireActiveCurrency(ctx, destination, "destination"); err != nil {
		return nil, err
	}

	return s.persist(ctx, origin, destination, req.BasePrice, req.BuyCommission, req.SellCommission, req.DateEffective, creatorUserID)
}

// SupersedeExchangeRate records new values for the pair of an existing row. The old row is left untouched.
func (s *ExchangeRateService) SupersedeExchangeRate(ctx context.Context, rateID string, req dto.UpdateExchangeRateRequest, userID string) (*domain.ExchangeRate, error) {
	current, err := s.GetExchangeRateByID(ctx, rateID)
	if err != nil {
		return nil, err
	}
	if err := validateRateValues(req.BasePrice, req.BuyCommission, req.SellCommission); err != nil {
		return nil, err
	}
	return s.persist(ctx, current.OriginCurrencyCode, current.DestinationCurrencyCode, req.BasePrice, req.BuyCommission, req.SellCommission, req.DateEffective, userID)
}

func (s *ExchangeRateService) persist(
	ctx context.Context,
	origin, destination string,
	base, buyCommission, sellCommission decimal.Decimal,
	dateEffective *time.Time,
	userID string,
) (*domain.ExchangeRate, error) {
	now := s.CurrentTime()
	effective := now
	if dateEffective != nil && !dateEffective.IsZero() {
		effective = dateEffective.UTC()
	}

	rate := domain.ExchangeRate{
		ExchangeRateID:          uuid.NewString(),
		OriginCurrencyCode:      origin,
		DestinationCurrencyCode: destination,
		BasePrice:               base,
		BuyCommission:           buyCommission,
		SellCommission:          sellCommission,
		DateEffective:           effective,
		IsActive:                true,
		AuditFields:             domain.NewAuditFields(userID, now),
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		s.LogError(ctx, err, "Failed to save exchange rate", slog.String("origin", origin), slog.String("destination", destination))
		return nil, fmt.Errorf("failed to create exchange rate in service: %w", err)
	}

	s.LogInfo(ctx, "Exchange rate saved",
		slog.String("rate_id", rate.ExchangeRateID),
		slog.String("origin", origin),
		slog.String("destination", destination),
		slog.String("base_price", base.String()))

	if s.observer != nil {
		s.observer.OnRateSaved(ctx, rate)
	}
	return &rate, nil
}

// DeactivateExchangeRate marks a rate row inactive.
func (s *ExchangeRateService) DeactivateExchangeRate(ctx context.Context, rateID string, userID string) error {
	if _, err := s.GetExchangeRateByID(ctx, rateID); err != nil {
		return err
	}
	if err := s.rateRepo.DeactivateExchangeRate(ctx, rateID, userID, s.CurrentTime()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate exchange rate", slog.String("rate_id", rateID))
		return fmt.Errorf("failed to deactivate exchange rate %s: %w", rateID, err)
	}
	s.LogInfo(ctx, "Exchange rate deactivated", slog.String("rate_id", rateID))
	return nil
}

func (s *ExchangeRateService) GetExchangeRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error) {
	if _, err := uuid.Parse(rateID); err != nil {
		return nil, fmt.Errorf("%w: invalid exchange rate id", apperrors.ErrValidation)
	}
	rate, err := s.rateRepo.FindExchangeRateByID(ctx, rateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rate %s: %w", rateID, err)
	}
	return rate, nil
}

// GetCurrentRate returns the most recent active rate of currencyCode against the home currency.
func (s *ExchangeRateService) GetCurrentRate(ctx context.Context, currencyCode string) (*domain.ExchangeRate, error) {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	if len(code) != 3 {
		return nil, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}
	if code == s.homeCurrency {
		return nil, fmt.Errorf("%w: the home currency has no rate against itself", apperrors.ErrValidation)
	}

	rate, err := s.rateRepo.FindLatestActiveRate(ctx, code, s.homeCurrency)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w for %s", apperrors.ErrNoActiveRate, code)
		}
		s.LogError(ctx, err, "Failed to find current rate", slog.String("currency_code", code))
		return nil, fmt.Errorf("failed to get current rate for %s: %w", code, err)
	}
	return rate, nil
}

func (s *ExchangeRateService) ListExchangeRates(ctx context.Context, params dto.ListExchangeRatesParams) ([]domain.ExchangeRate, int, error) {
	filter := portsrepo.ExchangeRateFilter{
		OnlyActive: params.OnlyActive,
		Page:       params.Page,
		PageSize:   params.PageSize,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	if params.Origin != "" {
		origin := strings.ToUpper(params.Origin)
		filter.OriginCurrencyCode = &origin
	}
	if params.Destination != "" {
		destination := strings.ToUpper(params.Destination)
		filter.DestinationCurrencyCode = &destination
	}

	rates, total, err := s.rateRepo.ListExchangeRates(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list exchange rates")
		return nil, 0, fmt.Errorf("failed to list exchange rates: %w", err)
	}
	if rates == nil {
		rates = []domain.ExchangeRate{}
	}
	return rates, total, nil
}
