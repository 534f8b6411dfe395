package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
)

// ExchangeRateFilter narrows a rate history listing.
type ExchangeRateFilter struct {
	OriginCurrencyCode      *string
	DestinationCurrencyCode *string
	OnlyActive              bool
	Page                    int
	PageSize                int
}

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindExchangeRateByID retrieves a single rate row.
	FindExchangeRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error)

	// FindLatestActiveRate returns the most recently updated active row for the pair.
	FindLatestActiveRate(ctx context.Context, originCode, destinationCode string) (*domain.ExchangeRate, error)

	// FindPreviousRate returns the most recently updated row for the pair other than excludeRateID.
	FindPreviousRate(ctx context.Context, originCode, destinationCode, excludeRateID string) (*domain.ExchangeRate, error)

	// ListExchangeRates returns a page of the rate history plus the total row count.
	ListExchangeRates(ctx context.Context, filter ExchangeRateFilter) ([]domain.ExchangeRate, int, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// SaveExchangeRate inserts a new rate row.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error

	// DeactivateExchangeRate marks a rate row as inactive, recording who did it and when.
	DeactivateExchangeRate(ctx context.Context, rateID string, userID string, at time.Time) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
