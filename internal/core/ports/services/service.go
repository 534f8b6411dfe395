package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Currency             CurrencySvcFacade
	ExchangeRate         ExchangeRateSvcFacade
	User                 UserSvcFacade
	Token                TokenSvc
	Role                 RoleSvcFacade
	Subscription         SubscriptionSvcFacade
	Segmentation         SegmentationSvcFacade
	Client               ClientSvcFacade
	OperativeClient      OperativeClientSvc
	Simulation           SimulationSvc
	PaymentMethod        PaymentMethodSvcFacade
	AccreditationAccount AccreditationAccountSvcFacade
	Transaction          TransactionSvcFacade
}
