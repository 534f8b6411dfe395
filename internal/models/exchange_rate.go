package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is one row of the exchange_rates history table.
type ExchangeRate struct {
	ExchangeRateID          string          `db:"exchange_rate_id"`
	OriginCurrencyCode      string          `db:"origin_currency_code"`
	DestinationCurrencyCode string          `db:"destination_currency_code"`
	BasePrice               decimal.Decimal `db:"base_price"`
	BuyCommission           decimal.Decimal `db:"buy_commission"`
	SellCommission          decimal.Decimal `db:"sell_commission"`
	DateEffective           time.Time       `db:"date_effective"`
	IsActive                bool            `db:"is_active"`
	DeactivatedAt           *time.Time      `db:"deactivated_at"`
	DeactivatedBy           *string         `db:"deactivated_by"`
	AuditFields
}
