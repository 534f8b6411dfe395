package dto

import (
	"time"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
)

type CreatePaymentMethodRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Type string `json:"type" binding:"required,oneof=TRANSFER CARD WALLET CASH"`
}

type UpdatePaymentMethodRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=100"`
	Type     *string `json:"type" binding:"omitempty,oneof=TRANSFER CARD WALLET CASH"`
	IsActive *bool   `json:"isActive"`
}

type PaymentMethodResponse struct {
	PaymentMethodID string    `json:"paymentMethodID"`
	Name            string    `json:"name"`
	Type            string    `json:"type"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	LastUpdatedAt   time.Time `json:"lastUpdatedAt"`
}

func ToPaymentMethodResponse(pm *domain.PaymentMethod) PaymentMethodResponse {
	return PaymentMethodResponse{
		PaymentMethodID: pm.PaymentMethodID,
		Name:            pm.Name,
		Type:            string(pm.Type),
		IsActive:        pm.IsActive,
		CreatedAt:       pm.CreatedAt,
		LastUpdatedAt:   pm.LastUpdatedAt,
	}
}

func ToListPaymentMethodResponse(pms []domain.PaymentMethod) []PaymentMethodResponse {
	res := make([]PaymentMethodResponse, len(pms))
	for i := range pms {
		res[i] = ToPaymentMethodResponse(&pms[i])
	}
	return res
}

type CreateAccreditationAccountRequest struct {
	Type          string `json:"type" binding:"required,oneof=BANK_ACCOUNT WALLET CASH_PICKUP"`
	Provider      string `json:"provider" binding:"required,max=100"`
	AccountNumber string `json:"accountNumber" binding:"required,max=64"`
	HolderName    string `json:"holderName" binding:"required,max=200"`
	CurrencyCode  string `json:"currencyCode" binding:"required,len=3,uppercase"`
}

type UpdateAccreditationAccountRequest struct {
	Provider      *string `json:"provider" binding:"omitempty,max=100"`
	AccountNumber *string `json:"accountNumber" binding:"omitempty,max=64"`
	HolderName    *string `json:"holderName" binding:"omitempty,max=200"`
	IsActive      *bool   `json:"isActive"`
}

type AccreditationAccountResponse struct {
	AccountID     string    `json:"accountID"`
	ClientID      string    `json:"clientID"`
	Type          string    `json:"type"`
	Provider      string    `json:"provider"`
	AccountNumber string    `json:"accountNumber"`
	HolderName    string    `json:"holderName"`
	CurrencyCode  string    `json:"currencyCode"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

func ToAccreditationAccountResponse(acc *domain.AccreditationAccount) AccreditationAccountResponse {
	return AccreditationAccountResponse{
		AccountID:     acc.AccountID,
		ClientID:      acc.ClientID,
		Type:          string(acc.Type),
		Provider:      acc.Provider,
		AccountNumber: acc.AccountNumber,
		HolderName:    acc.HolderName,
		CurrencyCode:  acc.CurrencyCode,
		IsActive:      acc.IsActive,
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
}

func ToListAccreditationAccountResponse(accs []domain.AccreditationAccount) []AccreditationAccountResponse {
	res := make([]AccreditationAccountResponse, len(accs))
	for i := range accs {
		res[i] = ToAccreditationAccountResponse(&accs[i])
	}
	return res
}
