package dto

import (
	"strconv"
	"strings"

	"github.com/SscSPs/currency_exchange_app/internal/apperrors"
	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Error codes reported by the conversion endpoints.
const (
	CodeInvalidAmount   = "INVALID_AMOUNT"
	CodeSameCurrency    = "SAME_CURRENCY"
	CodeHomeCurrencyLeg = "HOME_CURRENCY_LEG"
	CodeUnsupportedPair = "UNSUPPORTED_PAIR"
	CodeUnknownCurrency = "UNKNOWN_CURRENCY"
	CodeInvalidOp       = "INVALID_OPERATION"
	CodeNoActiveRate    = "NO_ACTIVE_RATE"
)

// AmountInput accepts an amount given either as a JSON number or a string.
// Unparseable input does not fail decoding; it is reported by Decimal as ErrInvalidAmount.
type AmountInput struct {
	raw   string
	value decimal.Decimal
	valid bool
}

func (a *AmountInput) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		*a = AmountInput{}
		return nil
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}
	a.raw = raw
	d, err := decimal.NewFromString(raw)
	if err != nil {
		a.valid = false
		return nil
	}
	a.value, a.valid = d, true
	return nil
}

func (a AmountInput) MarshalJSON() ([]byte, error) {
	if !a.valid {
		return []byte(strconv.Quote(a.raw)), nil
	}
	return []byte(strconv.Quote(a.value.String())), nil
}

// Decimal returns the parsed amount.
func (a AmountInput) Decimal() (decimal.Decimal, error) {
	if !a.valid {
		return decimal.Zero, apperrors.ErrInvalidAmount
	}
	return a.value, nil
}

// NewAmountInput builds an already-parsed amount.
func NewAmountInput(d decimal.Decimal) AmountInput {
	return AmountInput{raw: d.String(), value: d, valid: true}
}

// SimulateConversionRequest asks for a quote without recording anything.
type SimulateConversionRequest struct {
	Operacion string      `json:"operacion" binding:"required"`
	Valor     AmountInput `json:"valor" swaggertype:"string"`
	Origen    string      `json:"origen" binding:"required"`
	Destino   string      `json:"destino" binding:"required"`
}

// SimulateConversionResponse is the priced outcome.
type SimulateConversionResponse struct {
	Resultado      decimal.Decimal `json:"resultado"`
	GananciaTotal  decimal.Decimal `json:"ganancia_total"`
	TasaEfectiva   decimal.Decimal `json:"tasa_efectiva"`
	Descuento      decimal.Decimal `json:"descuento"`
	Segmento       string          `json:"segmento"`
	ExchangeRateID string          `json:"exchange_rate_id"`
}

// ConversionErrorResponse is the validation payload of the conversion endpoints.
type ConversionErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func ToSimulateConversionResponse(q *domain.Quote) SimulateConversionResponse {
	return SimulateConversionResponse{
		Resultado:      q.Result,
		GananciaTotal:  q.Margin,
		TasaEfectiva:   q.EffectiveRate,
		Descuento:      q.DiscountPercent,
		Segmento:       q.SegmentName,
		ExchangeRateID: q.Rate.ExchangeRateID,
	}
}
