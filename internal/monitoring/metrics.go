package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsService records the operational metrics of the exchange backend.
type MetricsService interface {
	// HTTP metrics
	RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration)

	// Rate change pipeline
	RecordRateChange(currency, outcome string)
	RecordNotificationDispatched(currency string, subscribers int)

	// Push channel
	ConnectionOpened()
	ConnectionClosed()
	RecordPushDelivered(messageType string)
	RecordPushDropped(messageType, reason string)

	// Transactions
	RecordTransaction(operation, status string)
}

// Rate change outcomes.
const (
	OutcomeNotified       = "notified"
	OutcomeBelowThreshold = "below_threshold"
	OutcomeFirstRate      = "first_rate"
	OutcomeNoBasis        = "no_basis"
	OutcomeCrossPair      = "cross_pair"
	OutcomeError          = "error"
)

// Drop reasons of the push channel.
const (
	DropQueueFull    = "queue_full"
	DropUnsubscribed = "unsubscribed"
	DropCheckFailed  = "check_failed"
	DropClosed       = "closed"
)

type prometheusMetrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	rateChangesTotal        *prometheus.CounterVec
	notificationsDispatched *prometheus.CounterVec

	openConnections prometheus.Gauge
	pushDelivered   *prometheus.CounterVec
	pushDropped     *prometheus.CounterVec

	transactionsTotal *prometheus.CounterVec
}

// NewPrometheusMetrics registers every collector on reg.
func NewPrometheusMetrics(reg prometheus.Registerer) MetricsService {
	factory := promauto.With(reg)
	return &prometheusMetrics{
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cea_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cea_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		rateChangesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cea_rate_changes_total",
				Help: "Exchange rate writes seen by the change detector, by outcome",
			},
			[]string{"currency", "outcome"},
		),
		notificationsDispatched: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cea_notifications_dispatched_total",
				Help: "Rate change notifications submitted to user groups",
			},
			[]string{"currency"},
		),
		openConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "cea_ws_open_connections",
				Help: "Number of open push connections on this instance",
			},
		),
		pushDelivered: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cea_ws_messages_delivered_total",
				Help: "Messages written to push connections",
			},
			[]string{"type"},
		),
		pushDropped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cea_ws_messages_dropped_total",
				Help: "Messages dropped before reaching a push connection",
			},
			[]string{"type", "reason"},
		),
		transactionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cea_transactions_total",
				Help: "Recorded exchange transactions by operation and status",
			},
			[]string{"operation", "status"},
		),
	}
}

func (m *prometheusMetrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

func (m *prometheusMetrics) RecordRateChange(currency, outcome string) {
	m.rateChangesTotal.WithLabelValues(currency, outcome).Inc()
}

func (m *prometheusMetrics) RecordNotificationDispatched(currency string, subscribers int) {
	m.notificationsDispatched.WithLabelValues(currency).Add(float64(subscribers))
}

func (m *prometheusMetrics) ConnectionOpened() { m.openConnections.Inc() }
func (m *prometheusMetrics) ConnectionClosed() { m.openConnections.Dec() }

func (m *prometheusMetrics) RecordPushDelivered(messageType string) {
	m.pushDelivered.WithLabelValues(messageType).Inc()
}

func (m *prometheusMetrics) RecordPushDropped(messageType, reason string) {
	m.pushDropped.WithLabelValues(messageType, reason).Inc()
}

func (m *prometheusMetrics) RecordTransaction(operation, status string) {
	m.transactionsTotal.WithLabelValues(operation, status).Inc()
}

// NoopMetrics discards everything. Used when metrics are not wired, e.g. in tests.
type NoopMetrics struct{}

func (NoopMetrics) RecordHTTPRequest(string, string, int, time.Duration) {}
func (NoopMetrics) RecordRateChange(string, string)                      {}
func (NoopMetrics) RecordNotificationDispatched(string, int)             {}
func (NoopMetrics) ConnectionOpened()                                    {}
func (NoopMetrics) ConnectionClosed()                                    {}
func (NoopMetrics) RecordPushDelivered(string)                           {}
func (NoopMetrics) RecordPushDropped(string, string)                     {}
func (NoopMetrics) RecordTransaction(string, string)                     {}
