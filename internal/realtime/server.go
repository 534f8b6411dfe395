package realtime

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	portssvc "github.com/SscSPs/currency_exchange_app/internal/core/ports/services"
	"github.com/SscSPs/currency_exchange_app/internal/middleware"
	"github.com/SscSPs/currency_exchange_app/internal/monitoring"
	"github.com/gorilla/websocket"
)

// ConnectedText is the greeting carried by the conexion message.
const ConnectedText = "Conectado al canal de notificaciones"

// Server upgrades authenticated requests and runs their connections against a Hub.
type Server struct {
	hub      *Hub
	checker  portssvc.SubscriptionChecker
	upgrader websocket.Upgrader
	opts     Options
	metrics  monitoring.MetricsService
}

// NewServer builds a Server. An empty allowedOrigins list accepts any origin.
func NewServer(hub *Hub, checker portssvc.SubscriptionChecker, opts Options, allowedOrigins []string) *Server {
	return &Server{
		hub:     hub,
		checker: checker,
		opts:    opts.withDefaults(),
		metrics: hub.metrics,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

// Serve upgrades the request and blocks until the connection ends.
// On upgrade failure the upgrader has already answered the request.
func (s *Server) Serve(w http.ResponseWriter, r *http.Request, userID string) error {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	logger := middleware.GetLoggerFromCtx(r.Context())
	ctx := context.WithoutCancel(r.Context())
	conn := newConnection(ctx, userID, ws, s.checker, s.opts, logger, s.metrics)
	group := domain.UserGroup(userID)

	s.hub.Register(group, conn)
	s.metrics.ConnectionOpened()
	logger.Info("Push connection opened", slog.String("group", group))
	defer func() {
		s.hub.Unregister(group, conn)
		conn.Close()
		s.metrics.ConnectionClosed()
		logger.Info("Push connection closed", slog.String("group", group))
	}()

	conn.Enqueue(domain.NewConnectedMessage(ConnectedText))
	go conn.writePump()
	conn.readPump()
	return nil
}
