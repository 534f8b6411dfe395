package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/currency_exchange_app/internal/apperrors"
	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_exchange_app/internal/core/ports/repositories"
	"github.com/SscSPs/currency_exchange_app/internal/core/services"
	"github.com/SscSPs/currency_exchange_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const homeCurrency = "PYG"

var fixedNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

// --- Test Suite ---
type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockRateRepo    *MockExchangeRateRepository
	mockCurrencySvc *MockCurrencyService
	mockObserver    *MockRateChangeObserver
	service         *services.ExchangeRateService
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.mockCurrencySvc = new(MockCurrencyService)
	suite.mockObserver = new(MockRateChangeObserver)
	suite.service = services.NewExchangeRateService(
		suite.mockRateRepo,
		suite.mockCurrencySvc,
		homeCurrency,
		services.WithRateChangeObserver(suite.mockObserver),
		services.WithExchangeRateClock(func() time.Time { return fixedNow }),
	)
}

func (suite *ExchangeRateServiceTestSuite) expectActiveCurrency(code string) {
	suite.mockCurrencySvc.On("GetCurrencyByCode", mock.Anything, code).
		Return(&domain.Currency{CurrencyCode: code, IsActive: true}, nil).Once()
}

func createRateRequest(base, buy, sell string) dto.CreateExchangeRateRequest {
	return dto.CreateExchangeRateRequest{
		OriginCurrencyCode:      "usd",
		DestinationCurrencyCode: "PYG",
		BasePrice:               decimal.RequireFromString(base),
		BuyCommission:           decimal.RequireFromString(buy),
		SellCommission:          decimal.RequireFromString(sell),
	}
}

// --- Test Cases ---

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := createRateRequest("7400", "100", "100")

	suite.expectActiveCurrency("USD")
	suite.expectActiveCurrency("PYG")
	suite.mockRateRepo.On("SaveExchangeRate", ctx, mock.AnythingOfType("domain.ExchangeRate")).Return(nil).Once()
	suite.mockObserver.On("OnRateSaved", ctx, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.OriginCurrencyCode == "USD" && r.BasePrice.Equal(req.BasePrice)
	})).Once()

	rate, err := suite.service.CreateExchangeRate(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(rate)
	suite.NotEmpty(rate.ExchangeRateID)
	suite.Equal("USD", rate.OriginCurrencyCode)
	suite.Equal("PYG", rate.DestinationCurrencyCode)
	suite.True(rate.IsActive)
	suite.Equal(fixedNow, rate.DateEffective)
	suite.Equal(fixedNow, rate.LastUpdatedAt)
	suite.Equal(creatorUserID, rate.CreatedBy)
	suite.True(decimal.NewFromInt(7500).Equal(rate.SellPrice()))
	suite.True(decimal.NewFromInt(7300).Equal(rate.BuyPrice()))

	suite.mockRateRepo.AssertExpectations(suite.T())
	suite.mockCurrencySvc.AssertExpectations(suite.T())
	suite.mockObserver.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_UsesGivenEffectiveDate() {
	ctx := context.Background()
	req := createRateRequest("7400", "100", "100")
	effective := time.Date(2024, 6, 1, 0, 0, 0, 0, time.FixedZone("PYT", -4*3600))
	req.DateEffective = &effective

	suite.expectActiveCurrency("USD")
	suite.expectActiveCurrency("PYG")
	suite.mockRateRepo.On("SaveExchangeRate", ctx, mock.Anything).Return(nil).Once()
	suite.mockObserver.On("OnRateSaved", ctx, mock.Anything).Once()

	rate, err := suite.service.CreateExchangeRate(ctx, req, "creator")

	suite.Require().NoError(err)
	suite.Equal(effective.UTC(), rate.DateEffective)
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_SameCurrency() {
	req := createRateRequest("1", "0", "0")
	req.DestinationCurrencyCode = "USD"

	rate, err := suite.service.CreateExchangeRate(context.Background(), req, "creator")

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.True(errors.Is(err, apperrors.ErrValidation))
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveExchangeRate", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_InvalidValues() {
	cases := map[string]dto.CreateExchangeRateRequest{
		"zero base":                createRateRequest("0", "0", "0"),
		"negative commission":      createRateRequest("7400", "-1", "100"),
		"commission equal to base": createRateRequest("7400", "7400", "100"),
	}
	for name, req := range cases {
		suite.Run(name, func() {
			_, err := suite.service.CreateExchangeRate(context.Background(), req, "creator")
			suite.Require().Error(err)
			suite.True(errors.Is(err, apperrors.ErrValidation))
		})
	}
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveExchangeRate", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_UnknownCurrency() {
	ctx := context.Background()
	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "USD").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateExchangeRate(ctx, createRateRequest("7400", "100", "100"), "creator")

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
	suite.Contains(err.Error(), "USD")
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_InactiveCurrency() {
	ctx := context.Background()
	suite.expectActiveCurrency("USD")
	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "PYG").
		Return(&domain.Currency{CurrencyCode: "PYG", IsActive: false}, nil).Once()

	_, err := suite.service.CreateExchangeRate(ctx, createRateRequest("7400", "100", "100"), "creator")

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_SaveFailureSkipsObserver() {
	ctx := context.Background()
	dbErr := errors.New("connection reset")
	suite.expectActiveCurrency("USD")
	suite.expectActiveCurrency("PYG")
	suite.mockRateRepo.On("SaveExchangeRate", ctx, mock.Anything).Return(dbErr).Once()

	_, err := suite.service.CreateExchangeRate(ctx, createRateRequest("7400", "100", "100"), "creator")

	suite.Require().Error(err)
	suite.True(errors.Is(err, dbErr))
	suite.mockObserver.AssertNotCalled(suite.T(), "OnRateSaved", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestSupersedeExchangeRate_InsertsNewRow() {
	ctx := context.Background()
	oldID := uuid.NewString()
	existing := &domain.ExchangeRate{
		ExchangeRateID:          oldID,
		OriginCurrencyCode:      "USD",
		DestinationCurrencyCode: "PYG",
		BasePrice:               decimal.NewFromInt(7000),
		IsActive:                true,
	}
	req := dto.UpdateExchangeRateRequest{
		BasePrice:      decimal.NewFromInt(7400),
		BuyCommission:  decimal.NewFromInt(50),
		SellCommission: decimal.NewFromInt(60),
	}

	suite.mockRateRepo.On("FindExchangeRateByID", ctx, oldID).Return(existing, nil).Once()
	suite.mockRateRepo.On("SaveExchangeRate", ctx, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.ExchangeRateID != oldID && r.OriginCurrencyCode == "USD" && r.DestinationCurrencyCode == "PYG"
	})).Return(nil).Once()
	suite.mockObserver.On("OnRateSaved", ctx, mock.Anything).Once()

	rate, err := suite.service.SupersedeExchangeRate(ctx, oldID, req, "editor")

	suite.Require().NoError(err)
	suite.NotEqual(oldID, rate.ExchangeRateID)
	suite.True(req.BasePrice.Equal(rate.BasePrice))
	suite.True(decimal.NewFromInt(7000).Equal(existing.BasePrice), "superseded row must not change")
	suite.mockRateRepo.AssertExpectations(suite.T())
	suite.mockCurrencySvc.AssertNotCalled(suite.T(), "GetCurrencyByCode", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestDeactivateExchangeRate_StampsServiceClock() {
	ctx := context.Background()
	rateID := uuid.NewString()
	suite.mockRateRepo.On("FindExchangeRateByID", ctx, rateID).
		Return(&domain.ExchangeRate{ExchangeRateID: rateID, IsActive: true}, nil).Once()
	suite.mockRateRepo.On("DeactivateExchangeRate", ctx, rateID, "editor", fixedNow).Return(nil).Once()

	suite.Require().NoError(suite.service.DeactivateExchangeRate(ctx, rateID, "editor"))
	suite.mockRateRepo.AssertExpectations(suite.T())
	suite.mockObserver.AssertNotCalled(suite.T(), "OnRateSaved", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestDeactivateExchangeRate_NotFound() {
	ctx := context.Background()
	rateID := uuid.NewString()
	suite.mockRateRepo.On("FindExchangeRateByID", ctx, rateID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeactivateExchangeRate(ctx, rateID, "editor")

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrNotFound))
	suite.mockRateRepo.AssertNotCalled(suite.T(), "DeactivateExchangeRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRateByID_InvalidID() {
	_, err := suite.service.GetExchangeRateByID(context.Background(), "not-a-uuid")

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
}

func (suite *ExchangeRateServiceTestSuite) TestGetCurrentRate_Success() {
	ctx := context.Background()
	expected := &domain.ExchangeRate{ExchangeRateID: uuid.NewString(), OriginCurrencyCode: "USD", DestinationCurrencyCode: "PYG"}
	suite.mockRateRepo.On("FindLatestActiveRate", ctx, "USD", homeCurrency).Return(expected, nil).Once()

	rate, err := suite.service.GetCurrentRate(ctx, "usd")

	suite.Require().NoError(err)
	suite.Equal(expected, rate)
}

func (suite *ExchangeRateServiceTestSuite) TestGetCurrentRate_NoActiveRate() {
	ctx := context.Background()
	suite.mockRateRepo.On("FindLatestActiveRate", ctx, "EUR", homeCurrency).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetCurrentRate(ctx, "EUR")

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrNoActiveRate))
	suite.True(errors.Is(err, apperrors.ErrNotFound))
}

func (suite *ExchangeRateServiceTestSuite) TestGetCurrentRate_HomeCurrency() {
	_, err := suite.service.GetCurrentRate(context.Background(), homeCurrency)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
}

func (suite *ExchangeRateServiceTestSuite) TestListExchangeRates_BuildsFilter() {
	ctx := context.Background()
	origin := "USD"
	expectedFilter := portsrepo.ExchangeRateFilter{
		OriginCurrencyCode: &origin,
		OnlyActive:         true,
		Page:               2,
		PageSize:           10,
	}
	suite.mockRateRepo.On("ListExchangeRates", ctx, expectedFilter).Return(nil, 0, nil).Once()

	rates, total, err := suite.service.ListExchangeRates(ctx, dto.ListExchangeRatesParams{
		Origin: "usd", OnlyActive: true, Page: 2, PageSize: 10,
	})

	suite.Require().NoError(err)
	suite.NotNil(rates)
	suite.Empty(rates)
	suite.Zero(total)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func TestExchangeRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
