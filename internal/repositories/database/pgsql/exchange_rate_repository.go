package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_exchange_app/internal/core/ports/repositories"
	"github.com/SscSPs/currency_exchange_app/internal/models"
	"github.com/SscSPs/currency_exchange_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxExchangeRateRepository keeps the append-only rate history.
type PgxExchangeRateRepository struct {
	BaseRepository
}

func newPgxExchangeRateRepository(db *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

const exchangeRateColumns = `
	exchange_rate_id, origin_currency_code, destination_currency_code,
	base_price, buy_commission, sell_commission, date_effective, is_active,
	deactivated_at, deactivated_by,
	created_at, created_by, last_updated_at, last_updated_by`

// Most recent first; created_at and id break ties between rows written in the same instant.
const exchangeRateRecency = `ORDER BY last_updated_at DESC, created_at DESC, exchange_rate_id DESC`

func scanExchangeRate(row pgx.Row) (models.ExchangeRate, error) {
	var m models.ExchangeRate
	err := row.Scan(
		&m.ExchangeRateID, &m.OriginCurrencyCode, &m.DestinationCurrencyCode,
		&m.BasePrice, &m.BuyCommission, &m.SellCommission, &m.DateEffective, &m.IsActive,
		&m.DeactivatedAt, &m.DeactivatedBy,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// SaveExchangeRate inserts a new rate row. Existing rows are never overwritten.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	m := mapping.ToModelExchangeRate(rate)
	query := `INSERT INTO exchange_rates (` + exchangeRateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`

	_, err := r.Pool.Exec(ctx, query,
		m.ExchangeRateID, m.OriginCurrencyCode, m.DestinationCurrencyCode,
		m.BasePrice, m.BuyCommission, m.SellCommission, m.DateEffective, m.IsActive,
		m.DeactivatedAt, m.DeactivatedBy,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "exchange rate")
	}
	return nil
}

// DeactivateExchangeRate flips is_active off and stamps deactivated_at/by.
// The last_updated pair drives recency ordering and stays as written.
func (r *PgxExchangeRateRepository) DeactivateExchangeRate(ctx context.Context, rateID string, userID string, at time.Time) error {
	query := `
		UPDATE exchange_rates
		SET is_active = FALSE, deactivated_at = $1, deactivated_by = $2
		WHERE exchange_rate_id = $3;
	`
	tag, err := r.Pool.Exec(ctx, query, at, userID, rateID)
	if err != nil {
		return fmt.Errorf("failed to deactivate exchange rate %s: %w", rateID, err)
	}
	return requireAffected(tag, "exchange rate "+rateID)
}

// FindExchangeRateByID retrieves an exchange rate by its ID.
func (r *PgxExchangeRateRepository) FindExchangeRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error) {
	query := `SELECT ` + exchangeRateColumns + ` FROM exchange_rates WHERE exchange_rate_id = $1;`

	m, err := scanExchangeRate(r.Pool.QueryRow(ctx, query, rateID))
	if err != nil {
		return nil, notFoundOr(err, "failed to find exchange rate %s", rateID)
	}
	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}

func (r *PgxExchangeRateRepository) FindLatestActiveRate(ctx context.Context, originCode, destinationCode string) (*domain.ExchangeRate, error) {
	query := `SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE origin_currency_code = $1 AND destination_currency_code = $2 AND is_active
		` + exchangeRateRecency + `
		LIMIT 1;`

	m, err := scanExchangeRate(r.Pool.QueryRow(ctx, query, strings.ToUpper(originCode), strings.ToUpper(destinationCode)))
	if err != nil {
		return nil, notFoundOr(err, "failed to find latest rate %s/%s", originCode, destinationCode)
	}
	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}

func (r *PgxExchangeRateRepository) FindPreviousRate(ctx context.Context, originCode, destinationCode, excludeRateID string) (*domain.ExchangeRate, error) {
	query := `SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE origin_currency_code = $1 AND destination_currency_code = $2 AND exchange_rate_id <> $3
		` + exchangeRateRecency + `
		LIMIT 1;`

	m, err := scanExchangeRate(r.Pool.QueryRow(ctx, query, strings.ToUpper(originCode), strings.ToUpper(destinationCode), excludeRateID))
	if err != nil {
		return nil, notFoundOr(err, "failed to find previous rate %s/%s", originCode, destinationCode)
	}
	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}

// ListExchangeRates returns one page of the filtered history plus the filtered row count.
func (r *PgxExchangeRateRepository) ListExchangeRates(ctx context.Context, filter portsrepo.ExchangeRateFilter) ([]domain.ExchangeRate, int, error) {
	var (
		conditions []string
		args       []any
	)
	if filter.OriginCurrencyCode != nil {
		args = append(args, *filter.OriginCurrencyCode)
		conditions = append(conditions, fmt.Sprintf("origin_currency_code = $%d", len(args)))
	}
	if filter.DestinationCurrencyCode != nil {
		args = append(args, *filter.DestinationCurrencyCode)
		conditions = append(conditions, fmt.Sprintf("destination_currency_code = $%d", len(args)))
	}
	if filter.OnlyActive {
		conditions = append(conditions, "is_active")
	}
	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM exchange_rates `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count exchange rates: %w", err)
	}

	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	args = append(args, pageSize, (page-1)*pageSize)
	query := fmt.Sprintf(`SELECT %s FROM exchange_rates %s %s LIMIT $%d OFFSET $%d;`,
		exchangeRateColumns, where, exchangeRateRecency, len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query exchange rates: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ExchangeRate, error) {
		return scanExchangeRate(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan exchange rates: %w", err)
	}
	return mapping.ToDomainExchangeRateSlice(ms), total, nil
}

