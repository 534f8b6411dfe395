package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of the transactions table.
type Transaction struct {
	TransactionID           string          `db:"transaction_id"`
	OwnerUserID             string          `db:"owner_user_id"`
	ClientID                string          `db:"client_id"`
	Amount                  decimal.Decimal `db:"amount"`
	Operation               string          `db:"operation"`
	Status                  string          `db:"status"`
	OriginCurrencyCode      string          `db:"origin_currency_code"`
	DestinationCurrencyCode string          `db:"destination_currency_code"`
	RateApplied             decimal.Decimal `db:"rate_applied"`
	RateReferenceID         string          `db:"rate_reference_id"`
	DiscountPercent         decimal.Decimal `db:"discount_percent"`
	ResultAmount            decimal.Decimal `db:"result_amount"`
	Margin                  decimal.Decimal `db:"margin"`
	PaymentMethodID         *string         `db:"payment_method_id"`
	AccreditationAccountID  *string         `db:"accreditation_account_id"`
	CreatedAt               time.Time       `db:"created_at"`
	LastUpdatedAt           time.Time       `db:"last_updated_at"`
}
