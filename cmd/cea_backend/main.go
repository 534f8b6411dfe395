package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	portsrepo "github.com/SscSPs/currency_exchange_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/currency_exchange_app/internal/core/ports/services"
	"github.com/SscSPs/currency_exchange_app/internal/core/services"
	"github.com/SscSPs/currency_exchange_app/internal/handlers"
	"github.com/SscSPs/currency_exchange_app/internal/middleware"
	"github.com/SscSPs/currency_exchange_app/internal/monitoring"
	"github.com/SscSPs/currency_exchange_app/internal/platform/config"
	"github.com/SscSPs/currency_exchange_app/internal/platform/logger"
	"github.com/SscSPs/currency_exchange_app/internal/realtime"
	"github.com/SscSPs/currency_exchange_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/currency_exchange_app/internal/repositories/session"
	"github.com/SscSPs/currency_exchange_app/internal/utils"
	"github.com/SscSPs/currency_exchange_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// @title Currency Exchange Admin API
// @version 1.0
// @description Administration backend for a currency exchange house: rates, clients, conversions and live rate notifications.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	appLogger, logCloser := logger.New(cfg)
	slog.SetDefault(appLogger)
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appLogger.Info("Running database migrations...")
	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, appLogger); err != nil {
		appLogger.Error("Database migrations failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		appLogger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	appLogger.Info("Database connection pool established.")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := monitoring.NewPrometheusMetrics(reg)

	hub := realtime.NewHub(appLogger, metrics)
	defer hub.Close()

	sessions, publisher, redisClient, err := setupFanout(ctx, cfg, hub, appLogger)
	if err != nil {
		appLogger.Error("Failed to set up redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	repos := pgsql.NewRepositoryProvider(dbPool, sessions)
	container := services.NewServiceContainer(cfg, repos, publisher, metrics)

	if cfg.BootstrapAdminUsername != "" {
		if err := container.Role.EnsureAdmin(ctx, cfg.BootstrapAdminUsername, cfg.BootstrapAdminPassword); err != nil {
			appLogger.Error("Failed to bootstrap admin user", slog.String("error", err.Error()))
			os.Exit(1)
		}
		appLogger.Info("Admin user ensured", slog.String("username", cfg.BootstrapAdminUsername))
	}

	wsServer := realtime.NewServer(hub, container.Subscription, realtime.Options{
		SendBuffer:   cfg.WSSendBuffer,
		PingInterval: cfg.WSPingInterval,
	}, cfg.CORSAllowedOrigins)

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, "", appLogger)
	defer posthogClient.Close()

	loginLimiter, err := middleware.NewMemoryLimiter(cfg.LoginRateLimit)
	if err != nil {
		appLogger.Error("Invalid login rate limit", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.StructuredLoggingMiddleware(appLogger),
		gin.Recovery(),
		cors.New(corsConfig(cfg)),
		middleware.MetricsMiddleware(metrics),
	)
	if err := r.SetTrustedProxies(nil); err != nil {
		appLogger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, container, handlers.Dependencies{
		WSServer:       wsServer,
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		Posthog:        posthogClient,
		LoginLimiter:   loginLimiter,
		ActiveUsers:    container.User,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}

// setupFanout picks the session store and group publisher. With REDIS_URL set both live in
// redis so several instances share operative clients and rate notifications; otherwise they stay in process.
func setupFanout(ctx context.Context, cfg *config.Config, hub *realtime.Hub, logger *slog.Logger) (portsrepo.OperativeClientStore, portssvc.GroupPublisher, *redis.Client, error) {
	if cfg.RedisURL == "" {
		logger.Info("REDIS_URL not set, using in-process sessions and groups")
		return session.NewMemoryStore(cfg.SessionTTL), hub, nil, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, nil, err
	}

	layer := realtime.NewRedisGroupLayer(client, cfg.RedisChannelPrefix, hub, logger)
	go func() {
		if err := layer.Run(ctx); err != nil {
			logger.Error("Group layer stopped", slog.String("error", err.Error()))
		}
	}()

	logger.Info("Redis connected", slog.String("addr", opts.Addr))
	return session.NewRedisStore(client, cfg.RedisChannelPrefix, cfg.SessionTTL), layer, client, nil
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowOrigins = cfg.CORSAllowedOrigins
	c.AllowHeaders = append(c.AllowHeaders, "Authorization")
	c.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions}
	if len(c.AllowOrigins) == 0 {
		c.AllowAllOrigins = true
	}
	return c
}
