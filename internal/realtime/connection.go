package realtime

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	portssvc "github.com/SscSPs/currency_exchange_app/internal/core/ports/services"
	"github.com/SscSPs/currency_exchange_app/internal/monitoring"
	"github.com/gorilla/websocket"
)

const maxInboundMessageSize = 4096

// Options tunes the connection pumps.
type Options struct {
	SendBuffer   int
	PingInterval time.Duration
	WriteWait    time.Duration
}

func (o Options) withDefaults() Options {
	if o.SendBuffer <= 0 {
		o.SendBuffer = 32
	}
	if o.PingInterval <= 0 {
		o.PingInterval = 30 * time.Second
	}
	if o.WriteWait <= 0 {
		o.WriteWait = 10 * time.Second
	}
	return o
}

// pongWait must exceed the ping interval or idle clients get dropped.
func (o Options) pongWait() time.Duration {
	return o.PingInterval * 2
}

// Connection is one live websocket of a user. Messages leave in the order they were queued.
type Connection struct {
	userID  string
	ws      *websocket.Conn
	send    chan domain.PushMessage
	checker portssvc.SubscriptionChecker
	opts    Options
	logger  *slog.Logger
	metrics monitoring.MetricsService

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func newConnection(ctx context.Context, userID string, ws *websocket.Conn, checker portssvc.SubscriptionChecker, opts Options, logger *slog.Logger, metrics monitoring.MetricsService) *Connection {
	opts = opts.withDefaults()
	ctx, cancel := context.WithCancel(ctx)
	return &Connection{
		userID:  userID,
		ws:      ws,
		send:    make(chan domain.PushMessage, opts.SendBuffer),
		checker: checker,
		opts:    opts,
		logger:  logger.With(slog.String("user_id", userID)),
		metrics: metrics,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Enqueue queues msg without blocking. It reports false when the message was dropped.
func (c *Connection) Enqueue(msg domain.PushMessage) bool {
	select {
	case <-c.ctx.Done():
		c.metrics.RecordPushDropped(msg.Type, monitoring.DropClosed)
		return false
	default:
	}

	select {
	case c.send <- msg:
		return true
	default:
		c.logger.Warn("Send queue full, dropping message", slog.String("type", msg.Type))
		c.metrics.RecordPushDropped(msg.Type, monitoring.DropQueueFull)
		return false
	}
}

// Close stops both pumps. Safe to call more than once.
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		c.cancel()
		if c.ws != nil {
			_ = c.ws.Close()
		}
	})
}

// deliverable re-checks the subscription of rate change messages right before they are written.
func (c *Connection) deliverable(msg domain.PushMessage) bool {
	if msg.Type != domain.PushTypeRateChanged || c.checker == nil {
		return true
	}
	subscribed, err := c.checker.IsSubscribed(c.ctx, c.userID, msg.Moneda)
	if err != nil {
		c.logger.Warn("Subscription check failed, dropping message",
			slog.String("currency", msg.Moneda), slog.String("error", err.Error()))
		c.metrics.RecordPushDropped(msg.Type, monitoring.DropCheckFailed)
		return false
	}
	if !subscribed {
		c.metrics.RecordPushDropped(msg.Type, monitoring.DropUnsubscribed)
		return false
	}
	return true
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(c.opts.PingInterval)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case <-c.ctx.Done():
			_ = c.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(c.opts.WriteWait))
			return
		case msg := <-c.send:
			if !c.deliverable(msg) {
				continue
			}
			_ = c.ws.SetWriteDeadline(time.Now().Add(c.opts.WriteWait))
			if err := c.ws.WriteJSON(msg); err != nil {
				c.logger.Debug("Write failed, closing connection", slog.String("error", err.Error()))
				return
			}
			c.metrics.RecordPushDelivered(msg.Type)
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(c.opts.WriteWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Debug("Ping failed, closing connection", slog.String("error", err.Error()))
				return
			}
		}
	}
}

// readPump only serves keepalive; inbound frames carry no commands and are discarded.
func (c *Connection) readPump() {
	defer c.Close()

	c.ws.SetReadLimit(maxInboundMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(c.opts.pongWait()))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(c.opts.pongWait()))
	})

	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info("Connection closed unexpectedly", slog.String("error", err.Error()))
			}
			return
		}
	}
}
