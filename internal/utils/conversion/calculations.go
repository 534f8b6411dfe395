package conversion

import (
	"fmt"

	"github.com/SscSPs/currency_exchange_app/internal/apperrors"
	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NoSegmentationLabel is the segment name reported when no discount applies.
const NoSegmentationLabel = "no segmentation"

// presentationPlaces is the number of decimals results are rounded to.
const presentationPlaces = 2

var hundred = decimal.NewFromInt(100)

var (
	ErrSameCurrency    = fmt.Errorf("%w: origin and destination currencies must differ", apperrors.ErrValidation)
	ErrHomeCurrencyLeg = fmt.Errorf("%w: home currency cannot be traded on this leg", apperrors.ErrValidation)
	ErrUnsupportedPair = fmt.Errorf("%w: one side of the operation must be the home currency", apperrors.ErrValidation)
	ErrInvalidDiscount = fmt.Errorf("%w: discount must be between 0 and 100", apperrors.ErrValidation)
	ErrInvalidOp       = fmt.Errorf("%w: operation must be BUY or SELL", apperrors.ErrValidation)
	ErrBelowMinimum    = fmt.Errorf("%w: amount is below the minimum tradable unit", apperrors.ErrInvalidAmount)
)

// Result is the outcome of a conversion.
type Result struct {
	EffectiveRate decimal.Decimal
	Amount        decimal.Decimal // converted amount, rounded for presentation
	Margin        decimal.Decimal // house margin, rounded for presentation
}

// ForeignCurrency validates the legs of an operation and returns the currency whose rate applies:
// the destination when selling and the origin when buying. The home currency is only ever the pivot.
func ForeignCurrency(op domain.Operation, origin, destination, home string) (string, error) {
	if !op.IsValid() {
		return "", ErrInvalidOp
	}
	if origin == destination {
		return "", ErrSameCurrency
	}
	switch op {
	case domain.OperationSell:
		if destination == home {
			return "", ErrHomeCurrencyLeg
		}
		if origin != home {
			return "", ErrUnsupportedPair
		}
		return destination, nil
	default:
		if origin == home {
			return "", ErrHomeCurrencyLeg
		}
		if destination != home {
			return "", ErrUnsupportedPair
		}
		return origin, nil
	}
}

// Calculate converts amount through rate applying discountPercent to the commission.
//
// SELL: effective = base + sell_commission*(1 - d/100); result = amount / effective;
// margin = amount - result*base.
// BUY: effective = base - buy_commission*(1 - d/100); result = amount * effective;
// margin = amount * buy_commission * (1 - d/100).
//
// Intermediate values keep full precision; only result and margin are rounded half-up to 2 places.
// A sell whose rounded result is zero, or is worth more than amount at base price, fails with
// ErrBelowMinimum: the house margin of a quote is never negative.
func Calculate(op domain.Operation, amount decimal.Decimal, rate domain.ExchangeRate, discountPercent decimal.Decimal) (Result, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return Result{}, apperrors.ErrInvalidAmount
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(hundred) {
		return Result{}, ErrInvalidDiscount
	}

	keep := decimal.NewFromInt(1).Sub(discountPercent.Div(hundred))

	switch op {
	case domain.OperationSell:
		effective := rate.BasePrice.Add(rate.SellCommission.Mul(keep))
		if !effective.IsPositive() {
			return Result{}, fmt.Errorf("%w: effective sell rate is not positive", apperrors.ErrValidation)
		}
		result := amount.Div(effective).Round(presentationPlaces)
		margin := amount.Sub(result.Mul(rate.BasePrice))
		if !result.IsPositive() || margin.IsNegative() {
			return Result{}, ErrBelowMinimum
		}
		return Result{EffectiveRate: effective, Amount: result, Margin: margin.Round(presentationPlaces)}, nil
	case domain.OperationBuy:
		commission := rate.BuyCommission.Mul(keep)
		effective := rate.BasePrice.Sub(commission)
		if !effective.IsPositive() {
			return Result{}, fmt.Errorf("%w: effective buy rate is not positive", apperrors.ErrValidation)
		}
		result := amount.Mul(effective).Round(presentationPlaces)
		margin := amount.Mul(commission).Round(presentationPlaces)
		return Result{EffectiveRate: effective, Amount: result, Margin: margin}, nil
	}
	return Result{}, ErrInvalidOp
}

// ResolveDiscount returns the discount percentage and segment name applicable to client.
// A missing client, a client without segmentation or an inactive segmentation yields zero.
func ResolveDiscount(client *domain.Client) (decimal.Decimal, string) {
	if client == nil || client.Segmentation == nil || !client.Segmentation.IsActive() {
		return decimal.Zero, NoSegmentationLabel
	}
	return client.Segmentation.DiscountPercent, client.Segmentation.Name
}

// PercentChange returns abs((current - previous) / previous) * 100.
// ok is false when previous is zero and the change is undefined.
func PercentChange(previous, current decimal.Decimal) (delta decimal.Decimal, ok bool) {
	if previous.IsZero() {
		return decimal.Zero, false
	}
	return current.Sub(previous).Div(previous).Abs().Mul(hundred), true
}
