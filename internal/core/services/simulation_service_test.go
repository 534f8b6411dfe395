package services_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/SscSPs/currency_exchange_app/internal/apperrors"
	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	"github.com/SscSPs/currency_exchange_app/internal/core/services"
	"github.com/SscSPs/currency_exchange_app/internal/dto"
	"github.com/SscSPs/currency_exchange_app/internal/utils/conversion"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SimulationServiceTestSuite struct {
	suite.Suite
	currencyRepo *MockCurrencyRepository
	rateRepo     *MockExchangeRateRepository
	operative    *MockOperativeClientSvc
	service      *services.SimulationService
}

func (suite *SimulationServiceTestSuite) SetupTest() {
	suite.currencyRepo = new(MockCurrencyRepository)
	suite.rateRepo = new(MockExchangeRateRepository)
	suite.operative = new(MockOperativeClientSvc)
	suite.service = services.NewSimulationService(suite.currencyRepo, suite.rateRepo, suite.operative, homeCurrency)

	for _, code := range []string{"PYG", "USD"} {
		suite.currencyRepo.On("FindCurrencyByCode", mock.Anything, code).
			Return(&domain.Currency{CurrencyCode: code, IsActive: true}, nil).Maybe()
	}
	suite.currencyRepo.On("FindCurrencyByCode", mock.Anything, "EUR").
		Return(&domain.Currency{CurrencyCode: "EUR", IsActive: false}, nil).Maybe()
	suite.currencyRepo.On("FindCurrencyByCode", mock.Anything, "XXX").Return(nil, apperrors.ErrNotFound).Maybe()
}

func simRequest(op, amount, origin, destination string) dto.SimulateConversionRequest {
	var valor dto.AmountInput
	_ = json.Unmarshal([]byte(amount), &valor)
	return dto.SimulateConversionRequest{Operacion: op, Valor: valor, Origen: origin, Destino: destination}
}

func (suite *SimulationServiceTestSuite) activeRate(base, buy, sell string) *domain.ExchangeRate {
	rate := &domain.ExchangeRate{
		ExchangeRateID:          "rate-usd",
		OriginCurrencyCode:      "USD",
		DestinationCurrencyCode: homeCurrency,
		BasePrice:               decimal.RequireFromString(base),
		BuyCommission:           decimal.RequireFromString(buy),
		SellCommission:          decimal.RequireFromString(sell),
		IsActive:                true,
	}
	suite.rateRepo.On("FindLatestActiveRate", mock.Anything, "USD", homeCurrency).Return(rate, nil).Once()
	return rate
}

func (suite *SimulationServiceTestSuite) TestSimulate_SellWithoutClient() {
	ctx := context.Background()
	suite.operative.On("GetOperativeClient", ctx, "u1").Return(nil, nil).Once()
	suite.activeRate("7400", "100", "100")

	quote, err := suite.service.Simulate(ctx, "u1", simRequest("venta", `"1000"`, "PYG", "USD"))

	suite.Require().NoError(err)
	amount := decimal.NewFromInt(1000)
	expected := amount.Div(decimal.NewFromInt(7500)).Round(2)
	suite.True(expected.Equal(quote.Result), "result %s", quote.Result)
	suite.True(amount.Sub(expected.Mul(decimal.NewFromInt(7400))).Round(2).Equal(quote.Margin), "margin %s", quote.Margin)
	suite.True(decimal.NewFromInt(7500).Equal(quote.EffectiveRate))
	suite.True(quote.DiscountPercent.IsZero())
	suite.Equal(conversion.NoSegmentationLabel, quote.SegmentName)
	suite.Equal("rate-usd", quote.Rate.ExchangeRateID)
	suite.Empty(quote.ClientID)
}

func (suite *SimulationServiceTestSuite) TestSimulate_BuyWithSegmentDiscount() {
	ctx := context.Background()
	client := &domain.Client{
		ClientID: "c1",
		Status:   domain.StatusActive,
		Segmentation: &domain.Segmentation{
			Name: "VIP", DiscountPercent: decimal.NewFromInt(50), Status: domain.StatusActive,
		},
	}
	suite.operative.On("GetOperativeClient", ctx, "u1").Return(client, nil).Once()
	suite.activeRate("7000", "100", "100")

	quote, err := suite.service.Simulate(ctx, "u1", simRequest("BUY", `100`, "usd", "pyg"))

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(6950).Equal(quote.EffectiveRate), "effective %s", quote.EffectiveRate)
	suite.True(decimal.NewFromInt(695000).Equal(quote.Result))
	suite.True(decimal.NewFromInt(5000).Equal(quote.Margin))
	suite.Equal("VIP", quote.SegmentName)
	suite.Equal("c1", quote.ClientID)
}

func (suite *SimulationServiceTestSuite) TestQuoteForClient_InactiveSegmentationHasNoDiscount() {
	client := &domain.Client{
		ClientID: "c1",
		Segmentation: &domain.Segmentation{
			Name: "VIP", DiscountPercent: decimal.NewFromInt(80), Status: domain.StatusInactive,
		},
	}
	suite.activeRate("7000", "100", "100")

	quote, err := suite.service.QuoteForClient(context.Background(), client, simRequest("BUY", `100`, "USD", "PYG"))

	suite.Require().NoError(err)
	suite.True(quote.DiscountPercent.IsZero())
	suite.True(decimal.NewFromInt(6900).Equal(quote.EffectiveRate))
}

func (suite *SimulationServiceTestSuite) TestQuoteForClient_ValidationErrors() {
	cases := []struct {
		name string
		req  dto.SimulateConversionRequest
		want error
	}{
		{"non numeric amount", simRequest("SELL", `"abc"`, "PYG", "USD"), apperrors.ErrInvalidAmount},
		{"negative amount", simRequest("SELL", `-5`, "PYG", "USD"), apperrors.ErrInvalidAmount},
		{"zero amount", simRequest("SELL", `"0"`, "PYG", "USD"), apperrors.ErrInvalidAmount},
		{"unknown operation", simRequest("SWAP", `10`, "PYG", "USD"), conversion.ErrInvalidOp},
		{"same currency", simRequest("SELL", `10`, "USD", "USD"), conversion.ErrSameCurrency},
		{"home currency bought", simRequest("BUY", `10`, "PYG", "USD"), conversion.ErrHomeCurrencyLeg},
		{"home currency sold", simRequest("SELL", `10`, "USD", "PYG"), conversion.ErrHomeCurrencyLeg},
		{"unknown currency", simRequest("SELL", `10`, "PYG", "XXX"), apperrors.ErrUnknownCurrency},
		{"inactive currency", simRequest("BUY", `10`, "EUR", "PYG"), apperrors.ErrUnknownCurrency},
	}
	for _, tc := range cases {
		suite.Run(tc.name, func() {
			_, err := suite.service.QuoteForClient(context.Background(), nil, tc.req)
			suite.Require().Error(err)
			suite.ErrorIs(err, tc.want)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.rateRepo.AssertNotCalled(suite.T(), "FindLatestActiveRate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SimulationServiceTestSuite) TestQuoteForClient_SellBelowMinimumUnit() {
	suite.activeRate("7400", "100", "100")

	_, err := suite.service.QuoteForClient(context.Background(), nil, simRequest("SELL", `38`, "PYG", "USD"))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
}

func (suite *SimulationServiceTestSuite) TestQuoteForClient_NoActiveRate() {
	suite.rateRepo.On("FindLatestActiveRate", mock.Anything, "USD", homeCurrency).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.QuoteForClient(context.Background(), nil, simRequest("SELL", `10`, "PYG", "USD"))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNoActiveRate)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestSimulationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SimulationServiceTestSuite))
}
