package mapping

import (
	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	"github.com/SscSPs/currency_exchange_app/internal/models"
)

func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:           d.TransactionID,
		OwnerUserID:             d.OwnerUserID,
		ClientID:                d.ClientID,
		Amount:                  d.Amount,
		Operation:               string(d.Operation),
		Status:                  string(d.Status),
		OriginCurrencyCode:      d.OriginCurrencyCode,
		DestinationCurrencyCode: d.DestinationCurrencyCode,
		RateApplied:             d.RateApplied,
		RateReferenceID:         d.RateReferenceID,
		DiscountPercent:         d.DiscountPercent,
		ResultAmount:            d.ResultAmount,
		Margin:                  d.Margin,
		PaymentMethodID:         d.PaymentMethodID,
		AccreditationAccountID:  d.AccreditationAccountID,
		CreatedAt:               d.CreatedAt,
		LastUpdatedAt:           d.LastUpdatedAt,
	}
}

func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:           m.TransactionID,
		OwnerUserID:             m.OwnerUserID,
		ClientID:                m.ClientID,
		Amount:                  m.Amount,
		Operation:               domain.Operation(m.Operation),
		Status:                  domain.TransactionStatus(m.Status),
		OriginCurrencyCode:      m.OriginCurrencyCode,
		DestinationCurrencyCode: m.DestinationCurrencyCode,
		RateApplied:             m.RateApplied,
		RateReferenceID:         m.RateReferenceID,
		DiscountPercent:         m.DiscountPercent,
		ResultAmount:            m.ResultAmount,
		Margin:                  m.Margin,
		PaymentMethodID:         m.PaymentMethodID,
		AccreditationAccountID:  m.AccreditationAccountID,
		CreatedAt:               m.CreatedAt,
		LastUpdatedAt:           m.LastUpdatedAt,
	}
}

func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
