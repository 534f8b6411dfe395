package services

import (
	"context"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	"github.com/SscSPs/currency_exchange_app/internal/dto"
)

// SimulationSvc prices a conversion for the caller's operative client.
type SimulationSvc interface {
	Simulate(ctx context.Context, userID string, req dto.SimulateConversionRequest) (*domain.Quote, error)
	// QuoteForClient prices a conversion for an explicit client; nil means no discount.
	QuoteForClient(ctx context.Context, client *domain.Client, req dto.SimulateConversionRequest) (*domain.Quote, error)
}
