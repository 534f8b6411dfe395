package handlers

import (
	"net/http"

	"github.com/SscSPs/currency_exchange_app/cmd/docs"
	portssvc "github.com/SscSPs/currency_exchange_app/internal/core/ports/services"
	"github.com/SscSPs/currency_exchange_app/internal/middleware"
	"github.com/SscSPs/currency_exchange_app/internal/platform/config"
	"github.com/SscSPs/currency_exchange_app/internal/realtime"
	"github.com/SscSPs/currency_exchange_app/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// Dependencies carries the router collaborators that are not services. Every field is optional.
// With ActiveUsers set, tokens of deleted users are rejected on /api/v1 and the push channel.
type Dependencies struct {
	WSServer       *realtime.Server
	MetricsHandler http.Handler
	Posthog        *utils.PosthogClientWrapper
	LoginLimiter   *limiter.Limiter
	ActiveUsers    portssvc.UserReaderSvc
}

// authChain is the authentication middleware followed by the live user check, when configured.
func authChain(auth gin.HandlerFunc, deps Dependencies) []gin.HandlerFunc {
	if deps.ActiveUsers == nil {
		return []gin.HandlerFunc{auth}
	}
	return []gin.HandlerFunc{auth, middleware.RequireActiveUser(deps.ActiveUsers)}
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps Dependencies,
) {
	RegisterValidators()

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	if deps.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}

	registerAuthRoutes(r, services, deps.LoginLimiter)

	setupAPIV1Routes(r, cfg, services, deps)

	if deps.WSServer != nil {
		ws := r.Group("/api/v1/ws", authChain(middleware.WebSocketAuthMiddleware(cfg.JWTSecret), deps)...)
		registerPushRoutes(ws, deps.WSServer)
	}

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	deps Dependencies,
) {
	v1 := r.Group("/api/v1", authChain(middleware.AuthMiddleware(cfg.JWTSecret), deps)...)
	v1.Use(middleware.PosthogMiddleware(deps.Posthog))

	auth := NewAuthHandler(service.User, service.Role, service.Token)
	v1.GET("/me", auth.Me)

	registerUserRoutes(v1, service.User, service.Role)
	registerRoleRoutes(v1, service.Role)
	registerCurrencyRoutes(v1, service.Currency, service.Role)
	registerExchangeRateRoutes(v1, service.ExchangeRate, service.Role)
	registerNotificationRoutes(v1, service.Subscription)
	registerSegmentationRoutes(v1, service.Segmentation, service.Role)
	registerClientRoutes(v1, service.Client, service.OperativeClient, service.Role)
	registerCatalogRoutes(v1, service.PaymentMethod, service.AccreditationAccount, service.Role)
	registerConversionRoutes(v1, service.Simulation, service.Transaction, service.Role, deps.Posthog)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
