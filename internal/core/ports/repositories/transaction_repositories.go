package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
)

// TransactionRepository persists recorded exchange transactions.
type TransactionRepository interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByOwner returns a page of a user's transactions, newest first,
	// and the token for the next page (nil when exhausted).
	ListTransactionsByOwner(ctx context.Context, ownerUserID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// UpdateTransactionStatus moves a transaction from one status to another.
	// It returns apperrors.ErrNotFound when no row in status `from` matches.
	UpdateTransactionStatus(ctx context.Context, transactionID string, from, to domain.TransactionStatus, now time.Time) error
}
