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
	portssvc "github.com/SscSPs/currency_exchange_app/internal/core/ports/services"
	"github.com/SscSPs/currency_exchange_app/internal/dto"
	"github.com/SscSPs/currency_exchange_app/internal/utils/conversion"
)

// SimulationService prices conversions against the latest active rate of the foreign leg.
type SimulationService struct {
	BaseService
	currencyRepo     portsrepo.CurrencyReader
	rateRepo         portsrepo.ExchangeRateReader
	operativeClients portssvc.OperativeClientSvc
	homeCurrency     string
}

func NewSimulationService(
	currencyRepo portsrepo.CurrencyReader,
	rateRepo portsrepo.ExchangeRateReader,
	operativeClients portssvc.OperativeClientSvc,
	homeCurrency string,
) *SimulationService {
	return &SimulationService{
		currencyRepo:     currencyRepo,
		rateRepo:         rateRepo,
		operativeClients: operativeClients,
		homeCurrency:     homeCurrency,
	}
}

func (s *SimulationService) Simulate(ctx context.Context, userID string, req dto.SimulateConversionRequest) (*domain.Quote, error) {
	client, err := s.operativeClients.GetOperativeClient(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve operative client: %w", err)
	}
	return s.QuoteForClient(ctx, client, req)
}

func (s *SimulationService) QuoteForClient(ctx context.Context, client *domain.Client, req dto.SimulateConversionRequest) (*domain.Quote, error) {
	op, ok := domain.ParseOperation(req.Operacion)
	if !ok {
		return nil, conversion.ErrInvalidOp
	}
	amount, err := req.Valor.Decimal()
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}

	origin := strings.ToUpper(strings.TrimSpace(req.Origen))
	destination := strings.ToUpper(strings.TrimSpace(req.Destino))
	foreign, err := conversion.ForeignCurrency(op, origin, destination, s.homeCurrency)
	if err != nil {
		return nil, err
	}
	for _, code := range []string{origin, destination} {
		if err := s.requireKnownCurrency(ctx, code); err != nil {
			return nil, err
		}
	}

	rate, err := s.rateRepo.FindLatestActiveRate(ctx, foreign, s.homeCurrency)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w for %s", apperrors.ErrNoActiveRate, foreign)
		}
		s.LogError(ctx, err, "Failed to load rate for simulation", slog.String("currency_code", foreign))
		return nil, fmt.Errorf("failed to load rate for %s: %w", foreign, err)
	}

	discount, segment := conversion.ResolveDiscount(client)
	result, err := conversion.Calculate(op, amount, *rate, discount)
	if err != nil {
		return nil, err
	}

	quote := &domain.Quote{
		Operation:               op,
		OriginCurrencyCode:      origin,
		DestinationCurrencyCode: destination,
		Amount:                  amount,
		Rate:                    *rate,
		SegmentName:             segment,
		DiscountPercent:         discount,
		EffectiveRate:           result.EffectiveRate,
		Result:                  result.Amount,
		Margin:                  result.Margin,
	}
	if client != nil {
		quote.ClientID = client.ClientID
	}

	s.LogDebug(ctx, "Conversion priced",
		slog.String("operation", string(op)),
		slog.String("rate_id", rate.ExchangeRateID),
		slog.String("discount", discount.String()),
		slog.String("result", result.Amount.String()))
	return quote, nil
}

func (s *SimulationService) requireKnownCurrency(ctx context.Context, code string) error {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: %s", apperrors.ErrUnknownCurrency, code)
		}
		return fmt.Errorf("failed to load currency %s: %w", code, err)
	}
	if !currency.IsActive {
		return fmt.Errorf("%w: %s is not active", apperrors.ErrUnknownCurrency, code)
	}
	return nil
}
