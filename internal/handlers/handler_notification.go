package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/currency_exchange_app/internal/apperrors"
	portssvc "github.com/SscSPs/currency_exchange_app/internal/core/ports/services"
	"github.com/SscSPs/currency_exchange_app/internal/dto"
	"github.com/SscSPs/currency_exchange_app/internal/middleware"
	"github.com/SscSPs/currency_exchange_app/internal/realtime"
	"github.com/gin-gonic/gin"
)

// notificationHandler serves the notification preferences and the push channel.
type notificationHandler struct {
	subscriptionService portssvc.SubscriptionSvcFacade
	wsServer            *realtime.Server
}

func newNotificationHandler(ss portssvc.SubscriptionSvcFacade, ws *realtime.Server) *notificationHandler {
	return &notificationHandler{subscriptionService: ss, wsServer: ws}
}

// configOnlyPostMethods are answered with 405 on the config path; POST is the only write.
var configOnlyPostMethods = []string{
	http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch,
	http.MethodDelete, http.MethodOptions, http.MethodConnect, http.MethodTrace,
}

// registerNotificationRoutes registers the preference endpoints on the authenticated group.
func registerNotificationRoutes(rg *gin.RouterGroup, ss portssvc.SubscriptionSvcFacade) {
	h := newNotificationHandler(ss, nil)

	notifications := rg.Group("/notifications")
	{
		notifications.GET("/preferences", h.getConfig)
		notifications.POST("/config", h.saveConfig)
		for _, method := range configOnlyPostMethods {
			notifications.Handle(method, "/config", h.methodNotAllowed)
		}
	}
}

// registerPushRoutes registers the websocket endpoint. Its group authenticates with the query token too,
// and the identity is checked before the upgrade.
func registerPushRoutes(rg *gin.RouterGroup, ws *realtime.Server) {
	h := newNotificationHandler(nil, ws)
	rg.GET("/notifications", h.serveWebSocket)
}

// getConfig godoc
// @Summary Notification preferences
// @Description Returns the flag of every active currency. The home currency is always active.
// @Tags notifications
// @Produce json
// @Success 200 {object} dto.NotificationConfigResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} dto.StatusResponse
// @Security BearerAuth
// @Router /notifications/preferences [get]
func (h *notificationHandler) getConfig(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	prefs, err := h.subscriptionService.GetPreferences(c.Request.Context(), userID)
	if err != nil {
		h.respondStatusError(c, err, "load notification preferences")
		return
	}
	c.JSON(http.StatusOK, dto.ToNotificationConfigResponse(prefs))
}

// saveConfig godoc
// @Summary Save notification preferences
// @Description Upserts per-currency flags and optionally the global toggle. Unknown currencies reject the whole request.
// @Tags notifications
// @Accept json
// @Produce json
// @Param config body dto.NotificationConfigRequest true "Preferences"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} dto.StatusResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} dto.StatusResponse
// @Security BearerAuth
// @Router /notifications/config [post]
func (h *notificationHandler) saveConfig(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.NotificationConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind notification config", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.StatusResponse{Status: dto.StatusError, Message: "invalid request: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	err := h.subscriptionService.SavePreferences(c.Request.Context(), userID, dto.ToCurrencyPreferences(req.Monedas), req.Notificaciones)
	if err != nil {
		h.respondStatusError(c, err, "save notification preferences")
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Status: dto.StatusOK})
}

func (h *notificationHandler) methodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, dto.StatusResponse{Status: dto.StatusError, Message: "method not allowed"})
}

// respondStatusError answers with the {status, message} payload used by the notification endpoints.
func (h *notificationHandler) respondStatusError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.StatusCode(err)
	if status == http.StatusInternalServerError {
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(status, dto.StatusResponse{Status: dto.StatusError, Message: "failed to " + action})
		return
	}
	logger.Warn("Notification request rejected", slog.String("error", err.Error()))
	c.JSON(status, dto.StatusResponse{Status: dto.StatusError, Message: err.Error()})
}

// serveWebSocket godoc
// @Summary Notification push channel
// @Description Upgrades to a websocket. Accepts the token as a bearer header or the "token" query parameter.
// @Tags notifications
// @Param token query string false "Access token"
// @Success 101 "Switching Protocols"
// @Failure 401 {object} ErrorResponse
// @Router /ws/notifications [get]
func (h *notificationHandler) serveWebSocket(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.wsServer.Serve(c.Writer, c.Request, userID); err != nil {
		// the upgrader has already written the failure response
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Push connection ended with error", slog.String("error", err.Error()))
	}
}
