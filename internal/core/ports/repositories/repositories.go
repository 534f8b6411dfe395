package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	CurrencyRepo             CurrencyRepositoryFacade
	ExchangeRateRepo         ExchangeRateRepositoryFacade
	SubscriptionRepo         SubscriptionRepository
	UserRepo                 UserRepositoryFacade
	RoleRepo                 RoleRepositoryFacade
	ClientRepo               ClientRepositoryFacade
	SegmentationRepo         SegmentationRepository
	PaymentMethodRepo        PaymentMethodRepository
	AccreditationAccountRepo AccreditationAccountRepository
	TransactionRepo          TransactionRepository
	SessionStore             OperativeClientStore
}
