package dto

import (
	"time"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest records a conversion at the current rate.
type CreateTransactionRequest struct {
	SimulateConversionRequest
	ClienteID              *string `json:"cliente_id" binding:"omitempty,uuid"`
	PaymentMethodID        *string `json:"payment_method_id" binding:"omitempty,uuid"`
	AccreditationAccountID *string `json:"accreditation_account_id" binding:"omitempty,uuid"`
}

// UpdateTransactionStatusRequest moves a pending transaction to a final state.
type UpdateTransactionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=COMPLETED CANCELLED"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

type TransactionResponse struct {
	TransactionID           string          `json:"transactionID"`
	OwnerUserID             string          `json:"ownerUserID"`
	ClientID                string          `json:"clientID,omitempty"`
	Operation               string          `json:"operation"`
	Status                  string          `json:"status"`
	Amount                  decimal.Decimal `json:"amount"`
	OriginCurrencyCode      string          `json:"originCurrencyCode"`
	DestinationCurrencyCode string          `json:"destinationCurrencyCode"`
	RateApplied             decimal.Decimal `json:"rateApplied"`
	RateReferenceID         string          `json:"rateReferenceID"`
	DiscountPercent         decimal.Decimal `json:"discountPercent"`
	ResultAmount            decimal.Decimal `json:"resultAmount"`
	Margin                  decimal.Decimal `json:"margin"`
	PaymentMethodID         *string         `json:"paymentMethodID,omitempty"`
	AccreditationAccountID  *string         `json:"accreditationAccountID,omitempty"`
	CreatedAt               time.Time       `json:"createdAt"`
	LastUpdatedAt           time.Time       `json:"lastUpdatedAt"`
}

type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:           txn.TransactionID,
		OwnerUserID:             txn.OwnerUserID,
		ClientID:                txn.ClientID,
		Operation:               string(txn.Operation),
		Status:                  string(txn.Status),
		Amount:                  txn.Amount,
		OriginCurrencyCode:      txn.OriginCurrencyCode,
		DestinationCurrencyCode: txn.DestinationCurrencyCode,
		RateApplied:             txn.RateApplied,
		RateReferenceID:         txn.RateReferenceID,
		DiscountPercent:         txn.DiscountPercent,
		ResultAmount:            txn.ResultAmount,
		Margin:                  txn.Margin,
		PaymentMethodID:         txn.PaymentMethodID,
		AccreditationAccountID:  txn.AccreditationAccountID,
		CreatedAt:               txn.CreatedAt,
		LastUpdatedAt:           txn.LastUpdatedAt,
	}
}

func ToListTransactionsResponse(txns []domain.Transaction, nextToken *string) ListTransactionsResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return ListTransactionsResponse{Transactions: res, NextToken: nextToken}
}
