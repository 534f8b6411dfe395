package dto

import (
	"time"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExchangeRateRequest defines the structure for creating a new exchange rate.
// Decimals accept both JSON numbers and quoted strings.
type CreateExchangeRateRequest struct {
	OriginCurrencyCode      string          `json:"originCurrencyCode" binding:"required,len=3,uppercase"`
	DestinationCurrencyCode string          `json:"destinationCurrencyCode" binding:"required,len=3,uppercase"`
	BasePrice               decimal.Decimal `json:"basePrice" binding:"positive_decimal"`
	BuyCommission           decimal.Decimal `json:"buyCommission" binding:"nonnegative_decimal"`
	SellCommission          decimal.Decimal `json:"sellCommission" binding:"nonnegative_decimal"`
	DateEffective           *time.Time      `json:"dateEffective"`
}

// UpdateExchangeRateRequest carries the new values used to supersede an existing rate.
// The currency pair is taken from the superseded row.
type UpdateExchangeRateRequest struct {
	BasePrice      decimal.Decimal `json:"basePrice" binding:"positive_decimal"`
	BuyCommission  decimal.Decimal `json:"buyCommission" binding:"nonnegative_decimal"`
	SellCommission decimal.Decimal `json:"sellCommission" binding:"nonnegative_decimal"`
	DateEffective  *time.Time      `json:"dateEffective"`
}

// ListExchangeRatesParams defines query parameters for the rate history.
type ListExchangeRatesParams struct {
	Origin      string `form:"origin" binding:"omitempty,len=3,uppercase"`
	Destination string `form:"destination" binding:"omitempty,len=3,uppercase"`
	OnlyActive  bool   `form:"onlyActive"`
	Page        int    `form:"page,default=1" binding:"min=1"`
	PageSize    int    `form:"pageSize,default=20" binding:"min=1,max=100"`
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	ExchangeRateID          string          `json:"exchangeRateID"`
	OriginCurrencyCode      string          `json:"originCurrencyCode"`
	DestinationCurrencyCode string          `json:"destinationCurrencyCode"`
	BasePrice               decimal.Decimal `json:"basePrice"`
	BuyCommission           decimal.Decimal `json:"buyCommission"`
	SellCommission          decimal.Decimal `json:"sellCommission"`
	BuyPrice                decimal.Decimal `json:"buyPrice"`
	SellPrice               decimal.Decimal `json:"sellPrice"`
	DateEffective           time.Time       `json:"dateEffective"`
	IsActive                bool            `json:"isActive"`
	DeactivatedAt           *time.Time      `json:"deactivatedAt,omitempty"`
	DeactivatedBy           *string         `json:"deactivatedBy,omitempty"`
	CreatedAt               time.Time       `json:"createdAt"`
	CreatedBy               string          `json:"createdBy"`
	LastUpdatedAt           time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy           string          `json:"lastUpdatedBy"`
}

// ListExchangeRatesResponse is one page of rate history.
type ListExchangeRatesResponse struct {
	Rates    []ExchangeRateResponse `json:"rates"`
	Total    int                    `json:"total"`
	Page     int                    `json:"page"`
	PageSize int                    `json:"pageSize"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID:          rate.ExchangeRateID,
		OriginCurrencyCode:      rate.OriginCurrencyCode,
		DestinationCurrencyCode: rate.DestinationCurrencyCode,
		BasePrice:               rate.BasePrice,
		BuyCommission:           rate.BuyCommission,
		SellCommission:          rate.SellCommission,
		BuyPrice:                rate.BuyPrice(),
		SellPrice:               rate.SellPrice(),
		DateEffective:           rate.DateEffective,
		IsActive:                rate.IsActive,
		DeactivatedAt:           rate.DeactivatedAt,
		DeactivatedBy:           rate.DeactivatedBy,
		CreatedAt:               rate.CreatedAt,
		CreatedBy:               rate.CreatedBy,
		LastUpdatedAt:           rate.LastUpdatedAt,
		LastUpdatedBy:           rate.LastUpdatedBy,
	}
}

// ToListExchangeRateResponse converts a page of rates into its response DTO.
func ToListExchangeRateResponse(rates []domain.ExchangeRate, total, page, pageSize int) ListExchangeRatesResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return ListExchangeRatesResponse{
		Rates:    responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
}
