package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/currency_exchange_app/internal/apperrors"
	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_exchange_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/currency_exchange_app/internal/core/ports/services"
	"github.com/SscSPs/currency_exchange_app/internal/monitoring"
	"github.com/SscSPs/currency_exchange_app/internal/utils/conversion"
	"github.com/shopspring/decimal"
)

// RateChangeDetector compares each saved rate with the previous row of its pair and
// hands significant base price moves to the dispatcher. It runs inline with the write.
type RateChangeDetector struct {
	BaseService
	rateRepo     portsrepo.ExchangeRateReader
	dispatcher   portssvc.NotificationDispatcherSvc
	homeCurrency string
	threshold    decimal.Decimal
	metrics      monitoring.MetricsService
}

func NewRateChangeDetector(
	rateRepo portsrepo.ExchangeRateReader,
	dispatcher portssvc.NotificationDispatcherSvc,
	homeCurrency string,
	thresholdPercent decimal.Decimal,
	metrics monitoring.MetricsService,
) *RateChangeDetector {
	if metrics == nil {
		metrics = monitoring.NoopMetrics{}
	}
	return &RateChangeDetector{
		rateRepo:     rateRepo,
		dispatcher:   dispatcher,
		homeCurrency: homeCurrency,
		threshold:    thresholdPercent,
		metrics:      metrics,
	}
}

// trackedCurrency is the leg subscribers follow: the non-home side of the pair.
// ok is false for cross pairs, whose prices are not quoted in the home currency.
func (d *RateChangeDetector) trackedCurrency(rate domain.ExchangeRate) (code string, ok bool) {
	switch d.homeCurrency {
	case rate.OriginCurrencyCode:
		return rate.DestinationCurrencyCode, true
	case rate.DestinationCurrencyCode:
		return rate.OriginCurrencyCode, true
	}
	return rate.OriginCurrencyCode, false
}

// OnRateSaved never returns an error; failures are logged and the write stands.
func (d *RateChangeDetector) OnRateSaved(ctx context.Context, rate domain.ExchangeRate) {
	logger := d.GetLogger(ctx).With(
		slog.String("rate_id", rate.ExchangeRateID),
		slog.String("origin", rate.OriginCurrencyCode),
		slog.String("destination", rate.DestinationCurrencyCode),
	)
	currency, ok := d.trackedCurrency(rate)
	if !ok {
		logger.Debug("Cross pair rate, not tracked for notifications")
		d.metrics.RecordRateChange(currency, monitoring.OutcomeCrossPair)
		return
	}

	previous, err := d.rateRepo.FindPreviousRate(ctx, rate.OriginCurrencyCode, rate.DestinationCurrencyCode, rate.ExchangeRateID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Debug("First rate for pair, nothing to compare")
			d.metrics.RecordRateChange(currency, monitoring.OutcomeFirstRate)
			return
		}
		logger.Error("Failed to load previous rate", slog.String("error", err.Error()))
		d.metrics.RecordRateChange(currency, monitoring.OutcomeError)
		return
	}

	delta, ok := conversion.PercentChange(previous.BasePrice, rate.BasePrice)
	if !ok {
		logger.Warn("Previous base price is zero, skipping notification", slog.String("previous_rate_id", previous.ExchangeRateID))
		d.metrics.RecordRateChange(currency, monitoring.OutcomeNoBasis)
		return
	}
	if delta.LessThan(d.threshold) {
		logger.Debug("Rate change below threshold", slog.String("delta", delta.StringFixed(4)))
		d.metrics.RecordRateChange(currency, monitoring.OutcomeBelowThreshold)
		return
	}

	change := domain.RateChange{
		CurrencyCode:  currency,
		PreviousPrice: previous.BasePrice,
		NewPrice:      rate.BasePrice,
		PercentDelta:  delta,
		DetectedAt:    rate.LastUpdatedAt,
	}
	if change.DetectedAt.IsZero() {
		change.DetectedAt = d.CurrentTime()
	}

	notified, err := d.dispatcher.DispatchRateChange(ctx, change)
	if err != nil {
		logger.Error("Failed to dispatch rate change", slog.String("error", err.Error()))
		d.metrics.RecordRateChange(currency, monitoring.OutcomeError)
		return
	}
	d.metrics.RecordRateChange(currency, monitoring.OutcomeNotified)
	logger.Info("Rate change dispatched",
		slog.String("currency", currency),
		slog.String("delta", delta.StringFixed(2)),
		slog.Int("subscribers", notified))
}
