package services

import (
	"context"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	"github.com/SscSPs/currency_exchange_app/internal/dto"
)

// PaymentMethodSvcFacade manages the payment method catalog.
type PaymentMethodSvcFacade interface {
	GetPaymentMethodByID(ctx context.Context, id string) (*domain.PaymentMethod, error)
	ListPaymentMethods(ctx context.Context, onlyActive bool) ([]domain.PaymentMethod, error)
	CreatePaymentMethod(ctx context.Context, req dto.CreatePaymentMethodRequest, creatorUserID string) (*domain.PaymentMethod, error)
	UpdatePaymentMethod(ctx context.Context, id string, req dto.UpdatePaymentMethodRequest, userID string) (*domain.PaymentMethod, error)
}

// AccreditationAccountSvcFacade manages the accounts a client is credited through.
type AccreditationAccountSvcFacade interface {
	GetAccountByID(ctx context.Context, clientID, accountID string) (*domain.AccreditationAccount, error)
	ListAccounts(ctx context.Context, clientID string) ([]domain.AccreditationAccount, error)
	CreateAccount(ctx context.Context, clientID string, req dto.CreateAccreditationAccountRequest, creatorUserID string) (*domain.AccreditationAccount, error)
	UpdateAccount(ctx context.Context, clientID, accountID string, req dto.UpdateAccreditationAccountRequest, userID string) (*domain.AccreditationAccount, error)
}
