package services

import (
	"context"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	"github.com/SscSPs/currency_exchange_app/internal/dto"
)

// TransactionSvcFacade records and tracks exchange operations.
type TransactionSvcFacade interface {
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	// GetTransaction returns a transaction visible to userID: owned, or any with transactions.manage.
	GetTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
	UpdateTransactionStatus(ctx context.Context, userID, transactionID string, status domain.TransactionStatus) (*domain.Transaction, error)
}
