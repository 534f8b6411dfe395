package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/currency_exchange_app/internal/apperrors"
	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_exchange_app/internal/core/ports/repositories"
	"github.com/SscSPs/currency_exchange_app/internal/models"
	"github.com/SscSPs/currency_exchange_app/internal/utils/mapping"
	"github.com/SscSPs/currency_exchange_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(db *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

const transactionColumns = `
	transaction_id, owner_user_id, client_id, amount, operation, status,
	origin_currency_code, destination_currency_code, rate_applied, rate_reference_id,
	discount_percent, result_amount, margin, payment_method_id, accreditation_account_id,
	created_at, last_updated_at`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID, &m.OwnerUserID, &m.ClientID, &m.Amount, &m.Operation, &m.Status,
		&m.OriginCurrencyCode, &m.DestinationCurrencyCode, &m.RateApplied, &m.RateReferenceID,
		&m.DiscountPercent, &m.ResultAmount, &m.Margin, &m.PaymentMethodID, &m.AccreditationAccountID,
		&m.CreatedAt, &m.LastUpdatedAt,
	)
	return m, err
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	_, err := r.Pool.Exec(ctx, `INSERT INTO transactions (`+transactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);`,
		m.TransactionID, m.OwnerUserID, m.ClientID, m.Amount, m.Operation, m.Status,
		m.OriginCurrencyCode, m.DestinationCurrencyCode, m.RateApplied, m.RateReferenceID,
		m.DiscountPercent, m.ResultAmount, m.Margin, m.PaymentMethodID, m.AccreditationAccountID,
		m.CreatedAt, m.LastUpdatedAt)
	if err != nil {
		return translateWriteError(err, "transaction")
	}
	return nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	m, err := scanTransaction(r.Pool.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE transaction_id = $1;`, transactionID))
	if err != nil {
		return nil, notFoundOr(err, "failed to find transaction %s", transactionID)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// ListTransactionsByOwner pages newest first using a (created_at, transaction_id) keyset.
func (r *PgxTransactionRepository) ListTransactionsByOwner(ctx context.Context, ownerUserID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	args := []any{ownerUserID}
	keyset := ""
	if nextToken != nil && *nextToken != "" {
		createdAt, id, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, createdAt, id)
		keyset = ` AND (created_at, transaction_id) < ($2, $3)`
	}
	args = append(args, limit+1)
	query := fmt.Sprintf(`SELECT %s FROM transactions
		WHERE owner_user_id = $1%s
		ORDER BY created_at DESC, transaction_id DESC
		LIMIT $%d;`, transactionColumns, keyset, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions of user %s: %w", ownerUserID, err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Transaction, error) {
		return scanTransaction(row)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan transactions: %w", err)
	}

	var next *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		token := pagination.EncodeCursor(last.CreatedAt, last.TransactionID)
		next = &token
	}
	return mapping.ToDomainTransactionSlice(ms), next, nil
}

// UpdateTransactionStatus is a compare-and-set on the current status.
func (r *PgxTransactionRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, from, to domain.TransactionStatus, now time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE transactions
		SET status = $1, last_updated_at = $2
		WHERE transaction_id = $3 AND status = $4;`,
		string(to), now, transactionID, string(from))
	if err != nil {
		return fmt.Errorf("failed to update status of transaction %s: %w", transactionID, err)
	}
	return requireAffected(tag, "transaction "+transactionID+" in status "+string(from))
}
