package mapping

import (
	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	"github.com/SscSPs/currency_exchange_app/internal/models"
)

func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		ExchangeRateID:          d.ExchangeRateID,
		OriginCurrencyCode:      d.OriginCurrencyCode,
		DestinationCurrencyCode: d.DestinationCurrencyCode,
		BasePrice:               d.BasePrice,
		BuyCommission:           d.BuyCommission,
		SellCommission:          d.SellCommission,
		DateEffective:           d.DateEffective,
		IsActive:                d.IsActive,
		DeactivatedAt:           d.DeactivatedAt,
		DeactivatedBy:           d.DeactivatedBy,
		AuditFields:             ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		ExchangeRateID:          m.ExchangeRateID,
		OriginCurrencyCode:      m.OriginCurrencyCode,
		DestinationCurrencyCode: m.DestinationCurrencyCode,
		BasePrice:               m.BasePrice,
		BuyCommission:           m.BuyCommission,
		SellCommission:          m.SellCommission,
		DateEffective:           m.DateEffective,
		IsActive:                m.IsActive,
		DeactivatedAt:           m.DeactivatedAt,
		DeactivatedBy:           m.DeactivatedBy,
		AuditFields:             ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainExchangeRateSlice(ms []models.ExchangeRate) []domain.ExchangeRate {
	ds := make([]domain.ExchangeRate, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExchangeRate(m)
	}
	return ds
}
