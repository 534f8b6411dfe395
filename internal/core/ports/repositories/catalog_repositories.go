package repositories

import (
	"context"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
)

// PaymentMethodRepository persists the payment method catalog.
type PaymentMethodRepository interface {
	FindPaymentMethodByID(ctx context.Context, id string) (*domain.PaymentMethod, error)
	ListPaymentMethods(ctx context.Context, onlyActive bool) ([]domain.PaymentMethod, error)
	SavePaymentMethod(ctx context.Context, pm domain.PaymentMethod) error
	UpdatePaymentMethod(ctx context.Context, pm domain.PaymentMethod) error
}

// AccreditationAccountRepository persists client accreditation accounts.
type AccreditationAccountRepository interface {
	FindAccountByID(ctx context.Context, accountID string) (*domain.AccreditationAccount, error)
	ListAccountsByClientID(ctx context.Context, clientID string) ([]domain.AccreditationAccount, error)
	SaveAccount(ctx context.Context, account domain.AccreditationAccount) error
	UpdateAccount(ctx context.Context, account domain.AccreditationAccount) error
}
