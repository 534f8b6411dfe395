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
	"github.com/SscSPs/currency_exchange_app/internal/dto"
)

const defaultCurrencyPrecision = 2

type CurrencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
	homeCurrency string
}

func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade, homeCurrency string) *CurrencyService {
	return &CurrencyService{currencyRepo: currencyRepo, homeCurrency: homeCurrency}
}

func (s *CurrencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	precision := defaultCurrencyPrecision
	if req.Precision != nil {
		precision = *req.Precision
	}

	currency := domain.Currency{
		CurrencyCode: strings.ToUpper(strings.TrimSpace(req.CurrencyCode)),
		Symbol:       req.Symbol,
		Name:         req.Name,
		Precision:    precision,
		IsActive:     true,
		AuditFields:  domain.NewAuditFields(creatorUserID, s.CurrentTime()),
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save currency", slog.String("currency_code", currency.CurrencyCode))
		}
		return nil, fmt.Errorf("failed to create currency %s: %w", currency.CurrencyCode, err)
	}

	s.LogInfo(ctx, "Currency created", slog.String("currency_code", currency.CurrencyCode))
	return &currency, nil
}

func (s *CurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get currency %s: %w", code, err)
	}
	return currency, nil
}

func (s *CurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currencies")
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}

func (s *CurrencyService) DeactivateCurrency(ctx context.Context, currencyCode string, userID string) error {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	if code == s.homeCurrency {
		return fmt.Errorf("%w: the home currency %s cannot be deactivated", apperrors.ErrValidation, code)
	}
	if _, err := s.GetCurrencyByCode(ctx, code); err != nil {
		return err
	}
	if err := s.currencyRepo.SetCurrencyActive(ctx, code, false, userID); err != nil {
		s.LogError(ctx, err, "Failed to deactivate currency", slog.String("currency_code", code))
		return fmt.Errorf("failed to deactivate currency %s: %w", code, err)
	}
	s.LogInfo(ctx, "Currency deactivated", slog.String("currency_code", code))
	return nil
}
