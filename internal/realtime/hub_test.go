package realtime_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	"github.com/SscSPs/currency_exchange_app/internal/monitoring"
	"github.com/SscSPs/currency_exchange_app/internal/realtime"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChecker struct {
	mu   sync.Mutex
	subs map[string]map[string]bool
	err  error
}

func (f *fakeChecker) IsSubscribed(_ context.Context, userID, currencyCode string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	return f.subs[userID][currencyCode], nil
}

func (f *fakeChecker) set(userID, code string, on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.subs[userID] == nil {
		f.subs[userID] = map[string]bool{}
	}
	f.subs[userID][code] = on
}

type harness struct {
	hub     *realtime.Hub
	checker *fakeChecker
	url     string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	hub := realtime.NewHub(nil, monitoring.NoopMetrics{})
	checker := &fakeChecker{subs: map[string]map[string]bool{}}
	srv := realtime.NewServer(hub, checker, realtime.Options{SendBuffer: 8, PingInterval: time.Second}, nil)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = srv.Serve(w, r, r.URL.Query().Get("user"))
	}))
	t.Cleanup(func() {
		hub.Close()
		ts.Close()
	})
	return &harness{hub: hub, checker: checker, url: "ws" + strings.TrimPrefix(ts.URL, "http")}
}

// dial connects userID and consumes the greeting, after which the connection is registered.
func (h *harness) dial(t *testing.T, userID string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(h.url+"?user="+userID, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	var greeting domain.PushMessage
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&greeting))
	assert.Equal(t, domain.PushTypeConnected, greeting.Type)
	assert.Equal(t, realtime.ConnectedText, greeting.Message)
	return conn
}

func rateMessage(code string) domain.PushMessage {
	return domain.NewRateChangedMessage(domain.RateChange{
		CurrencyCode:  code,
		PreviousPrice: decimal.NewFromInt(7000),
		NewPrice:      decimal.NewFromInt(7400),
		PercentDelta:  decimal.RequireFromString("5.714"),
		DetectedAt:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	})
}

func TestGroupSend_OnlyReachesTheGroup(t *testing.T) {
	h := newHarness(t)
	h.checker.set("u1", "USD", true)
	h.checker.set("u2", "USD", true)
	c1 := h.dial(t, "u1")
	c2 := h.dial(t, "u2")

	require.NoError(t, h.hub.GroupSend(context.Background(), domain.UserGroup("u1"), rateMessage("USD")))

	var got domain.PushMessage
	require.NoError(t, c1.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, c1.ReadJSON(&got))
	assert.Equal(t, domain.PushTypeRateChanged, got.Type)
	assert.Equal(t, "USD", got.Moneda)
	require.NotNil(t, got.PorcentajeCambio)
	assert.Equal(t, "5.71", got.PorcentajeCambio.String())

	require.NoError(t, c2.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	var none domain.PushMessage
	assert.Error(t, c2.ReadJSON(&none))
}

func TestGroupSend_ReachesEveryConnectionOfUser(t *testing.T) {
	h := newHarness(t)
	h.checker.set("u1", "EUR", true)
	a := h.dial(t, "u1")
	b := h.dial(t, "u1")
	assert.Equal(t, 2, h.hub.ConnectionCount(domain.UserGroup("u1")))

	require.NoError(t, h.hub.GroupSend(context.Background(), domain.UserGroup("u1"), rateMessage("EUR")))

	for _, conn := range []*websocket.Conn{a, b} {
		var got domain.PushMessage
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		require.NoError(t, conn.ReadJSON(&got))
		assert.Equal(t, "EUR", got.Moneda)
	}
}

func TestGroupSend_UnsubscribedCurrencyIsDropped(t *testing.T) {
	h := newHarness(t)
	h.checker.set("u1", "USD", true)
	conn := h.dial(t, "u1")

	ctx := context.Background()
	require.NoError(t, h.hub.GroupSend(ctx, domain.UserGroup("u1"), rateMessage("BRL")))
	require.NoError(t, h.hub.GroupSend(ctx, domain.UserGroup("u1"), rateMessage("USD")))

	var got domain.PushMessage
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "USD", got.Moneda)
}

func TestGroupSend_CheckFailureDropsMessage(t *testing.T) {
	h := newHarness(t)
	conn := h.dial(t, "u1")
	h.checker.mu.Lock()
	h.checker.err = errors.New("store down")
	h.checker.mu.Unlock()

	require.NoError(t, h.hub.GroupSend(context.Background(), domain.UserGroup("u1"), rateMessage("USD")))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	var none domain.PushMessage
	assert.Error(t, conn.ReadJSON(&none))
}

func TestGroupSend_EmptyGroupIsNotAnError(t *testing.T) {
	h := newHarness(t)
	assert.NoError(t, h.hub.GroupSend(context.Background(), domain.UserGroup("nobody"), rateMessage("USD")))
}

func TestDisconnect_UnregistersConnection(t *testing.T) {
	h := newHarness(t)
	conn := h.dial(t, "u1")
	group := domain.UserGroup("u1")
	require.Equal(t, 1, h.hub.ConnectionCount(group))

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")))
	_ = conn.Close()

	require.Eventually(t, func() bool {
		return h.hub.ConnectionCount(group) == 0
	}, 2*time.Second, 20*time.Millisecond)
}
