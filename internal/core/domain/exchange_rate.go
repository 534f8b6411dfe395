package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is one row of the rate history for a currency pair.
// Rows are never mutated once superseded; a new rate for the pair is a new row.
// Deactivation only sets is_active and DeactivatedAt/By; the audit pair keeps its written values.
type ExchangeRate struct {
	ExchangeRateID          string          `json:"exchangeRateID"`
	OriginCurrencyCode      string          `json:"originCurrencyCode"`
	DestinationCurrencyCode string          `json:"destinationCurrencyCode"`
	BasePrice               decimal.Decimal `json:"basePrice"`
	BuyCommission           decimal.Decimal `json:"buyCommission"`
	SellCommission          decimal.Decimal `json:"sellCommission"`
	DateEffective           time.Time       `json:"dateEffective"`
	IsActive                bool            `json:"isActive"`
	DeactivatedAt           *time.Time      `json:"deactivatedAt,omitempty"`
	DeactivatedBy           *string         `json:"deactivatedBy,omitempty"`
	AuditFields
}

// SellPrice is the undiscounted price the house sells the origin currency at.
func (r ExchangeRate) SellPrice() decimal.Decimal {
	return r.BasePrice.Add(r.SellCommission)
}

// BuyPrice is the undiscounted price the house buys the origin currency at.
func (r ExchangeRate) BuyPrice() decimal.Decimal {
	return r.BasePrice.Sub(r.BuyCommission)
}

// RateChange describes a detected change in base price for a currency.
type RateChange struct {
	CurrencyCode  string
	PreviousPrice decimal.Decimal
	NewPrice      decimal.Decimal
	PercentDelta  decimal.Decimal
	DetectedAt    time.Time
}
