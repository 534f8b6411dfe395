package services

import (
	portsrepo "github.com/SscSPs/currency_exchange_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/currency_exchange_app/internal/core/ports/services"
	"github.com/SscSPs/currency_exchange_app/internal/monitoring"
	"github.com/SscSPs/currency_exchange_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// publisher delivers push messages to connection groups.
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	publisher portssvc.GroupPublisher,
	metrics monitoring.MetricsService,
) *portssvc.ServiceContainer {
	if metrics == nil {
		metrics = monitoring.NoopMetrics{}
	}
	container := &portssvc.ServiceContainer{}

	userService := NewUserService(repos.UserRepo)
	roleService := NewRoleService(repos.RoleRepo, userService)
	container.User = userService
	container.Role = roleService
	container.Token = NewTokenService(cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer)

	currencyService := NewCurrencyService(repos.CurrencyRepo, cfg.HomeCurrency)
	container.Currency = currencyService

	// Rate writes run the detector inline; it hands significant moves to the dispatcher.
	dispatcher := NewNotificationDispatcher(repos.SubscriptionRepo, publisher, metrics)
	detector := NewRateChangeDetector(repos.ExchangeRateRepo, dispatcher, cfg.HomeCurrency, cfg.RateChangeThresholdPercent, metrics)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, currencyService, cfg.HomeCurrency,
		WithRateChangeObserver(detector))

	container.Subscription = NewSubscriptionService(repos.SubscriptionRepo, repos.CurrencyRepo, repos.UserRepo, cfg.HomeCurrency)

	container.Segmentation = NewSegmentationService(repos.SegmentationRepo)
	container.Client = NewClientService(repos.ClientRepo, repos.SegmentationRepo, repos.UserRepo)
	operativeClients := NewOperativeClientService(repos.ClientRepo, repos.SessionStore)
	container.OperativeClient = operativeClients

	simulation := NewSimulationService(repos.CurrencyRepo, repos.ExchangeRateRepo, operativeClients, cfg.HomeCurrency)
	container.Simulation = simulation

	container.PaymentMethod = NewPaymentMethodService(repos.PaymentMethodRepo)
	container.AccreditationAccount = NewAccreditationAccountService(repos.AccreditationAccountRepo, repos.ClientRepo, repos.CurrencyRepo)
	container.Transaction = NewTransactionService(TransactionServiceDeps{
		TransactionRepo:  repos.TransactionRepo,
		ClientRepo:       repos.ClientRepo,
		PaymentMethods:   repos.PaymentMethodRepo,
		Accounts:         repos.AccreditationAccountRepo,
		Simulation:       simulation,
		OperativeClients: operativeClients,
		Authorizer:       roleService,
		Metrics:          metrics,
	})

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.CurrencySvcFacade             = (*CurrencyService)(nil)
	_ portssvc.ExchangeRateSvcFacade         = (*ExchangeRateService)(nil)
	_ portssvc.UserSvcFacade                 = (*UserService)(nil)
	_ portssvc.RoleSvcFacade                 = (*RoleService)(nil)
	_ portssvc.PermissionChecker             = (*RoleService)(nil)
	_ portssvc.SubscriptionSvcFacade         = (*SubscriptionService)(nil)
	_ portssvc.SubscriptionChecker           = (*SubscriptionService)(nil)
	_ portssvc.RateChangeObserver            = (*RateChangeDetector)(nil)
	_ portssvc.NotificationDispatcherSvc     = (*NotificationDispatcher)(nil)
	_ portssvc.SegmentationSvcFacade         = (*SegmentationService)(nil)
	_ portssvc.ClientSvcFacade               = (*ClientService)(nil)
	_ portssvc.OperativeClientSvc            = (*OperativeClientService)(nil)
	_ portssvc.SimulationSvc                 = (*SimulationService)(nil)
	_ portssvc.PaymentMethodSvcFacade        = (*PaymentMethodService)(nil)
	_ portssvc.AccreditationAccountSvcFacade = (*AccreditationAccountService)(nil)
	_ portssvc.TransactionSvcFacade          = (*TransactionService)(nil)
)
