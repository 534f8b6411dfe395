package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Operation is the side of an exchange, seen from the house.
type Operation string

const (
	OperationBuy  Operation = "BUY"
	OperationSell Operation = "SELL"
)

// IsValid reports whether o is BUY or SELL.
func (o Operation) IsValid() bool {
	return o == OperationBuy || o == OperationSell
}

// ParseOperation accepts BUY/SELL in any case, and the desk terms compra/venta.
func ParseOperation(raw string) (Operation, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "BUY", "COMPRA":
		return OperationBuy, true
	case "SELL", "VENTA":
		return OperationSell, true
	}
	return "", false
}

// TransactionStatus indicates the state of a recorded transaction.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "PENDING"
	TransactionCompleted TransactionStatus = "COMPLETED"
	TransactionCancelled TransactionStatus = "CANCELLED"
)

// CanTransitionTo reports whether a transaction in status s may move to next.
// Only pending transactions can change, and only to a final state.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	return s == TransactionPending && (next == TransactionCompleted || next == TransactionCancelled)
}

// Transaction is a recorded exchange operation. The rate is frozen at creation.
type Transaction struct {
	TransactionID           string            `json:"transactionID"`
	OwnerUserID             string            `json:"ownerUserID"`
	ClientID                string            `json:"clientID"`
	Amount                  decimal.Decimal   `json:"amount"`
	Operation               Operation         `json:"operation"`
	Status                  TransactionStatus `json:"status"`
	OriginCurrencyCode      string            `json:"originCurrencyCode"`
	DestinationCurrencyCode string            `json:"destinationCurrencyCode"`
	RateApplied             decimal.Decimal   `json:"rateApplied"`
	RateReferenceID         string            `json:"rateReferenceID"`
	DiscountPercent         decimal.Decimal   `json:"discountPercent"`
	ResultAmount            decimal.Decimal   `json:"resultAmount"`
	Margin                  decimal.Decimal   `json:"margin"`
	PaymentMethodID         *string           `json:"paymentMethodID,omitempty"`
	AccreditationAccountID  *string           `json:"accreditationAccountID,omitempty"`
	CreatedAt               time.Time         `json:"createdAt"`
	LastUpdatedAt           time.Time         `json:"lastUpdatedAt"`
}
