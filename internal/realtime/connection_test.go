package realtime

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	"github.com/SscSPs/currency_exchange_app/internal/monitoring"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestEnqueue_DropsWhenQueueFull(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := monitoring.NewPrometheusMetrics(reg)
	c := newConnection(context.Background(), "u1", nil, nil, Options{SendBuffer: 1}, slog.Default(), metrics)

	assert.True(t, c.Enqueue(domain.NewConnectedMessage("hola")))
	assert.False(t, c.Enqueue(domain.NewConnectedMessage("otra")))

	count, err := testutil.GatherAndCount(reg, "cea_ws_messages_dropped_total")
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestEnqueue_DropsAfterClose(t *testing.T) {
	c := newConnection(context.Background(), "u1", nil, nil, Options{}, slog.Default(), monitoring.NoopMetrics{})
	c.Close()
	c.Close()

	assert.False(t, c.Enqueue(domain.NewConnectedMessage("hola")))
}

func TestOriginChecker(t *testing.T) {
	allowAll := originChecker(nil)
	restricted := originChecker([]string{"http://localhost:3000"})
	wildcard := originChecker([]string{"*"})

	req := func(origin string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/ws", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}
		return r
	}

	assert.True(t, allowAll(req("http://evil.example")))
	assert.True(t, wildcard(req("http://evil.example")))
	assert.True(t, restricted(req("http://localhost:3000")))
	assert.True(t, restricted(req("")))
	assert.False(t, restricted(req("http://evil.example")))
}
