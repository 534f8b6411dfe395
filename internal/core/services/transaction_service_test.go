package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/currency_exchange_app/internal/apperrors"
	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	"github.com/SscSPs/currency_exchange_app/internal/core/services"
	"github.com/SscSPs/currency_exchange_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	txnRepo      *MockTransactionRepository
	clientRepo   *MockClientRepository
	pmRepo       *MockPaymentMethodRepository
	accountRepo  *MockAccreditationAccountRepository
	currencyRepo *MockCurrencyRepository
	rateRepo     *MockExchangeRateRepository
	operative    *MockOperativeClientSvc
	authorizer   *MockPermissionChecker
	service      *services.TransactionService
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.txnRepo = new(MockTransactionRepository)
	suite.clientRepo = new(MockClientRepository)
	suite.pmRepo = new(MockPaymentMethodRepository)
	suite.accountRepo = new(MockAccreditationAccountRepository)
	suite.currencyRepo = new(MockCurrencyRepository)
	suite.rateRepo = new(MockExchangeRateRepository)
	suite.operative = new(MockOperativeClientSvc)
	suite.authorizer = new(MockPermissionChecker)

	simulation := services.NewSimulationService(suite.currencyRepo, suite.rateRepo, suite.operative, homeCurrency)
	suite.service = services.NewTransactionService(services.TransactionServiceDeps{
		TransactionRepo:  suite.txnRepo,
		ClientRepo:       suite.clientRepo,
		PaymentMethods:   suite.pmRepo,
		Accounts:         suite.accountRepo,
		Simulation:       simulation,
		OperativeClients: suite.operative,
		Authorizer:       suite.authorizer,
	})

	for _, code := range []string{"PYG", "USD"} {
		suite.currencyRepo.On("FindCurrencyByCode", mock.Anything, code).
			Return(&domain.Currency{CurrencyCode: code, IsActive: true}, nil).Maybe()
	}
	suite.rateRepo.On("FindLatestActiveRate", mock.Anything, "USD", homeCurrency).Return(&domain.ExchangeRate{
		ExchangeRateID:          "rate-1",
		OriginCurrencyCode:      "USD",
		DestinationCurrencyCode: homeCurrency,
		BasePrice:               decimal.NewFromInt(7400),
		BuyCommission:           decimal.NewFromInt(100),
		SellCommission:          decimal.NewFromInt(100),
		IsActive:                true,
	}, nil).Maybe()
}

func activeClient(id string) *domain.Client {
	return &domain.Client{ClientID: id, Name: "ACME", Status: domain.StatusActive}
}

func txnRequest() dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		SimulateConversionRequest: dto.SimulateConversionRequest{
			Operacion: "SELL",
			Valor:     dto.NewAmountInput(decimal.NewFromInt(750000)),
			Origen:    "PYG",
			Destino:   "USD",
		},
	}
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_FreezesQuote() {
	ctx := context.Background()
	suite.operative.On("GetOperativeClient", ctx, "u1").Return(activeClient("c1"), nil).Once()
	var saved domain.Transaction
	suite.txnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Transaction) }).
		Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, "u1", txnRequest())

	suite.Require().NoError(err)
	suite.Equal(saved, *txn)
	suite.Equal(domain.TransactionPending, txn.Status)
	suite.Equal("u1", txn.OwnerUserID)
	suite.Equal("c1", txn.ClientID)
	suite.Equal("rate-1", txn.RateReferenceID)
	suite.True(decimal.NewFromInt(7500).Equal(txn.RateApplied))
	suite.True(decimal.NewFromInt(100).Equal(txn.ResultAmount))
	suite.True(decimal.NewFromInt(10000).Equal(txn.Margin))
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NoClient() {
	ctx := context.Background()
	suite.operative.On("GetOperativeClient", ctx, "u1").Return(nil, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, "u1", txnRequest())

	suite.ErrorIs(err, services.ErrNoOperativeClient)
	suite.txnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ExplicitClientNotAssigned() {
	ctx := context.Background()
	clientID := uuid.NewString()
	req := txnRequest()
	req.ClienteID = &clientID
	suite.clientRepo.On("FindClientByID", ctx, clientID).Return(activeClient(clientID), nil).Once()
	suite.clientRepo.On("IsUserAssigned", ctx, "u1", clientID).Return(false, nil).Once()
	suite.authorizer.On("UserHasPermission", ctx, "u1", domain.PermTransactionsManage).Return(false, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, "u1", req)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_AccountOfAnotherClient() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := txnRequest()
	req.AccreditationAccountID = &accountID
	suite.operative.On("GetOperativeClient", ctx, "u1").Return(activeClient("c1"), nil).Once()
	suite.accountRepo.On("FindAccountByID", ctx, accountID).
		Return(&domain.AccreditationAccount{AccountID: accountID, ClientID: "c2", IsActive: true}, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, "u1", req)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.txnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_InactivePaymentMethod() {
	ctx := context.Background()
	pmID := uuid.NewString()
	req := txnRequest()
	req.PaymentMethodID = &pmID
	suite.operative.On("GetOperativeClient", ctx, "u1").Return(activeClient("c1"), nil).Once()
	suite.pmRepo.On("FindPaymentMethodByID", ctx, pmID).Return(&domain.PaymentMethod{PaymentMethodID: pmID, IsActive: false}, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, "u1", req)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestGetTransaction_Visibility() {
	ctx := context.Background()
	id := uuid.NewString()
	txn := &domain.Transaction{TransactionID: id, OwnerUserID: "owner", Status: domain.TransactionPending}
	suite.txnRepo.On("FindTransactionByID", ctx, id).Return(txn, nil)
	suite.authorizer.On("UserHasPermission", ctx, "stranger", domain.PermTransactionsManage).Return(false, nil)
	suite.authorizer.On("UserHasPermission", ctx, "supervisor", domain.PermTransactionsManage).Return(true, nil)

	got, err := suite.service.GetTransaction(ctx, "owner", id)
	suite.Require().NoError(err)
	suite.Equal(id, got.TransactionID)

	_, err = suite.service.GetTransaction(ctx, "stranger", id)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	_, err = suite.service.GetTransaction(ctx, "supervisor", id)
	suite.NoError(err)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransactionStatus() {
	ctx := context.Background()
	id := uuid.NewString()
	suite.txnRepo.On("FindTransactionByID", ctx, id).
		Return(&domain.Transaction{TransactionID: id, OwnerUserID: "u1", Status: domain.TransactionPending, Operation: domain.OperationSell}, nil).Once()
	suite.txnRepo.On("UpdateTransactionStatus", ctx, id, domain.TransactionPending, domain.TransactionCompleted, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	txn, err := suite.service.UpdateTransactionStatus(ctx, "u1", id, domain.TransactionCompleted)

	suite.Require().NoError(err)
	suite.Equal(domain.TransactionCompleted, txn.Status)
	suite.txnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransactionStatus_FinalStateIsFinal() {
	ctx := context.Background()
	id := uuid.NewString()
	suite.txnRepo.On("FindTransactionByID", ctx, id).
		Return(&domain.Transaction{TransactionID: id, OwnerUserID: "u1", Status: domain.TransactionCancelled}, nil).Once()

	_, err := suite.service.UpdateTransactionStatus(ctx, "u1", id, domain.TransactionCompleted)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.txnRepo.AssertNotCalled(suite.T(), "UpdateTransactionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_PassesToken() {
	ctx := context.Background()
	token := "abc"
	next := "def"
	suite.txnRepo.On("ListTransactionsByOwner", ctx, "u1", 20, &token).
		Return([]domain.Transaction{{TransactionID: "t1"}}, &next, nil).Once()

	txns, gotNext, err := suite.service.ListTransactions(ctx, "u1", 0, &token)

	suite.Require().NoError(err)
	suite.Len(txns, 1)
	suite.Equal(&next, gotNext)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
