package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_exchange_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxPaymentMethodRepository stores the payment method catalog. Rows scan straight into the domain type.
type PgxPaymentMethodRepository struct {
	BaseRepository
}

func newPgxPaymentMethodRepository(db *pgxpool.Pool) *PgxPaymentMethodRepository {
	return &PgxPaymentMethodRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.PaymentMethodRepository = (*PgxPaymentMethodRepository)(nil)

const paymentMethodColumns = `payment_method_id, name, type, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanPaymentMethod(row pgx.Row) (domain.PaymentMethod, error) {
	var pm domain.PaymentMethod
	err := row.Scan(&pm.PaymentMethodID, &pm.Name, &pm.Type, &pm.IsActive,
		&pm.CreatedAt, &pm.CreatedBy, &pm.LastUpdatedAt, &pm.LastUpdatedBy)
	return pm, err
}

func (r *PgxPaymentMethodRepository) FindPaymentMethodByID(ctx context.Context, id string) (*domain.PaymentMethod, error) {
	pm, err := scanPaymentMethod(r.Pool.QueryRow(ctx,
		`SELECT `+paymentMethodColumns+` FROM payment_methods WHERE payment_method_id = $1;`, id))
	if err != nil {
		return nil, notFoundOr(err, "failed to find payment method %s", id)
	}
	return &pm, nil
}

func (r *PgxPaymentMethodRepository) ListPaymentMethods(ctx context.Context, onlyActive bool) ([]domain.PaymentMethod, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+paymentMethodColumns+`
		FROM payment_methods
		WHERE is_active OR NOT $1
		ORDER BY name;`, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment methods: %w", err)
	}
	defer rows.Close()

	pms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.PaymentMethod, error) {
		return scanPaymentMethod(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan payment methods: %w", err)
	}
	return pms, nil
}

func (r *PgxPaymentMethodRepository) SavePaymentMethod(ctx context.Context, pm domain.PaymentMethod) error {
	_, err := r.Pool.Exec(ctx, `INSERT INTO payment_methods (`+paymentMethodColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		pm.PaymentMethodID, pm.Name, string(pm.Type), pm.IsActive,
		pm.CreatedAt, pm.CreatedBy, pm.LastUpdatedAt, pm.LastUpdatedBy)
	if err != nil {
		return translateWriteError(err, "payment method "+pm.Name)
	}
	return nil
}

func (r *PgxPaymentMethodRepository) UpdatePaymentMethod(ctx context.Context, pm domain.PaymentMethod) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE payment_methods
		SET name = $1, type = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE payment_method_id = $6;`,
		pm.Name, string(pm.Type), pm.IsActive, pm.LastUpdatedAt, pm.LastUpdatedBy, pm.PaymentMethodID)
	if err != nil {
		return translateWriteError(err, "payment method "+pm.Name)
	}
	return requireAffected(tag, "payment method "+pm.PaymentMethodID)
}

type PgxAccreditationAccountRepository struct {
	BaseRepository
}

func newPgxAccreditationAccountRepository(db *pgxpool.Pool) *PgxAccreditationAccountRepository {
	return &PgxAccreditationAccountRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.AccreditationAccountRepository = (*PgxAccreditationAccountRepository)(nil)

const accountColumns = `account_id, client_id, type, provider, account_number, holder_name, currency_code, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (domain.AccreditationAccount, error) {
	var a domain.AccreditationAccount
	err := row.Scan(&a.AccountID, &a.ClientID, &a.Type, &a.Provider, &a.AccountNumber, &a.HolderName,
		&a.CurrencyCode, &a.IsActive, &a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy)
	return a, err
}

func (r *PgxAccreditationAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.AccreditationAccount, error) {
	a, err := scanAccount(r.Pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accreditation_accounts WHERE account_id = $1;`, accountID))
	if err != nil {
		return nil, notFoundOr(err, "failed to find accreditation account %s", accountID)
	}
	return &a, nil
}

func (r *PgxAccreditationAccountRepository) ListAccountsByClientID(ctx context.Context, clientID string) ([]domain.AccreditationAccount, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+accountColumns+`
		FROM accreditation_accounts
		WHERE client_id = $1
		ORDER BY created_at, account_id;`, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accreditation accounts of client %s: %w", clientID, err)
	}
	defer rows.Close()

	accs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.AccreditationAccount, error) {
		return scanAccount(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan accreditation accounts: %w", err)
	}
	return accs, nil
}

func (r *PgxAccreditationAccountRepository) SaveAccount(ctx context.Context, a domain.AccreditationAccount) error {
	_, err := r.Pool.Exec(ctx, `INSERT INTO accreditation_accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`,
		a.AccountID, a.ClientID, string(a.Type), a.Provider, a.AccountNumber, a.HolderName,
		a.CurrencyCode, a.IsActive, a.CreatedAt, a.CreatedBy, a.LastUpdatedAt, a.LastUpdatedBy)
	if err != nil {
		return translateWriteError(err, "accreditation account")
	}
	return nil
}

func (r *PgxAccreditationAccountRepository) UpdateAccount(ctx context.Context, a domain.AccreditationAccount) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE accreditation_accounts
		SET type = $1, provider = $2, account_number = $3, holder_name = $4, currency_code = $5, is_active = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE account_id = $9;`,
		string(a.Type), a.Provider, a.AccountNumber, a.HolderName, a.CurrencyCode, a.IsActive,
		a.LastUpdatedAt, a.LastUpdatedBy, a.AccountID)
	if err != nil {
		return translateWriteError(err, "accreditation account")
	}
	return requireAffected(tag, "accreditation account "+a.AccountID)
}
