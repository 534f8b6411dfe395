package pgsql

import (
	portsrepo "github.com/SscSPs/currency_exchange_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every Postgres repository. The session store is not a table
// and is supplied by the caller.
func NewRepositoryProvider(dbPool *pgxpool.Pool, sessions portsrepo.OperativeClientStore) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CurrencyRepo:             newPgxCurrencyRepository(dbPool),
		ExchangeRateRepo:         newPgxExchangeRateRepository(dbPool),
		SubscriptionRepo:         newPgxSubscriptionRepository(dbPool),
		UserRepo:                 newPgxUserRepository(dbPool),
		RoleRepo:                 newPgxRoleRepository(dbPool),
		ClientRepo:               newPgxClientRepository(dbPool),
		SegmentationRepo:         newPgxSegmentationRepository(dbPool),
		PaymentMethodRepo:        newPgxPaymentMethodRepository(dbPool),
		AccreditationAccountRepo: newPgxAccreditationAccountRepository(dbPool),
		TransactionRepo:          newPgxTransactionRepository(dbPool),
		SessionStore:             sessions,
	}
}
