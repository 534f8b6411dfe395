package domain

import "github.com/shopspring/decimal"

// Quote is a priced conversion: the rate row it was computed from, the discount applied,
// and the rounded outcome. Transactions freeze a quote at creation.
type Quote struct {
	Operation               Operation
	OriginCurrencyCode      string
	DestinationCurrencyCode string
	Amount                  decimal.Decimal
	Rate                    ExchangeRate
	ClientID                string // empty when no operative client is selected
	SegmentName             string
	DiscountPercent         decimal.Decimal
	EffectiveRate           decimal.Decimal
	Result                  decimal.Decimal
	Margin                  decimal.Decimal
}
