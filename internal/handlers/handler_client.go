package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	portssvc "github.com/SscSPs/currency_exchange_app/internal/core/ports/services"
	"github.com/SscSPs/currency_exchange_app/internal/dto"
	"github.com/SscSPs/currency_exchange_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// clientHandler handles client administration and the caller's own client selection.
type clientHandler struct {
	clientService    portssvc.ClientSvcFacade
	operativeClients portssvc.OperativeClientSvc
}

func newClientHandler(cs portssvc.ClientSvcFacade, ocs portssvc.OperativeClientSvc) *clientHandler {
	return &clientHandler{clientService: cs, operativeClients: ocs}
}

// registerClientRoutes registers client CRUD behind clients.manage and the /me client routes open to every operator.
func registerClientRoutes(rg *gin.RouterGroup, cs portssvc.ClientSvcFacade, ocs portssvc.OperativeClientSvc, checker portssvc.PermissionChecker) {
	h := newClientHandler(cs, ocs)

	clients := rg.Group("/clients", middleware.RequirePermission(checker, domain.PermClientsManage))
	{
		clients.POST("", h.createClient)
		clients.GET("", h.listClients)
		clients.GET("/:clientID", h.getClient)
		clients.PUT("/:clientID", h.updateClient)
		clients.PATCH("/:clientID/deactivate", h.deactivateClient)
		clients.POST("/:clientID/users", h.assignUser)
		clients.DELETE("/:clientID/users/:userID", h.unassignUser)
	}

	me := rg.Group("/me")
	{
		me.GET("/clients", h.listMyClients)
		me.GET("/operative-client", h.getOperativeClient)
		me.POST("/operative-client", h.selectOperativeClient)
	}
}

// createClient godoc
// @Summary Register a client
// @Tags clients
// @Accept json
// @Produce json
// @Param client body dto.CreateClientRequest true "Client"
// @Success 201 {object} dto.ClientResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Security BearerAuth
// @Router /clients [post]
func (h *clientHandler) createClient(c *gin.Context) {
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "create client request")
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "create client")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Client created", slog.String("client_id", client.ClientID))
	c.JSON(http.StatusCreated, dto.ToClientResponse(client))
}

// listClients godoc
// @Summary List clients
// @Tags clients
// @Produce json
// @Param limit query int false "Limit" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} dto.ClientResponse
// @Security BearerAuth
// @Router /clients [get]
func (h *clientHandler) listClients(c *gin.Context) {
	var params dto.ListClientsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "list clients query")
		return
	}
	clients, err := h.clientService.ListClients(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondError(c, err, "list clients")
		return
	}
	c.JSON(http.StatusOK, dto.ToListClientResponse(clients))
}

// getClient godoc
// @Summary Get a client
// @Tags clients
// @Produce json
// @Param clientID path string true "Client ID"
// @Success 200 {object} dto.ClientResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{clientID} [get]
func (h *clientHandler) getClient(c *gin.Context) {
	client, err := h.clientService.GetClientByID(c.Request.Context(), c.Param("clientID"))
	if err != nil {
		respondError(c, err, "retrieve client")
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// updateClient godoc
// @Summary Update a client
// @Description An empty segmentationID removes the segmentation.
// @Tags clients
// @Accept json
// @Produce json
// @Param clientID path string true "Client ID"
// @Param client body dto.UpdateClientRequest true "Fields to update"
// @Success 200 {object} dto.ClientResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{clientID} [put]
func (h *clientHandler) updateClient(c *gin.Context) {
	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "update client request")
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), c.Param("clientID"), req, userID)
	if err != nil {
		respondError(c, err, "update client")
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// deactivateClient godoc
// @Summary Deactivate a client
// @Tags clients
// @Param clientID path string true "Client ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{clientID}/deactivate [patch]
func (h *clientHandler) deactivateClient(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.clientService.DeactivateClient(c.Request.Context(), c.Param("clientID"), userID); err != nil {
		respondError(c, err, "deactivate client")
		return
	}
	c.Status(http.StatusNoContent)
}

// assignUser godoc
// @Summary Assign an operator to a client
// @Tags clients
// @Accept json
// @Param clientID path string true "Client ID"
// @Param assignment body dto.AssignClientUserRequest true "Operator"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Client or user not found"
// @Security BearerAuth
// @Router /clients/{clientID}/users [post]
func (h *clientHandler) assignUser(c *gin.Context) {
	var req dto.AssignClientUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "assign client user request")
		return
	}
	clientID := c.Param("clientID")
	if err := h.clientService.AssignUser(c.Request.Context(), clientID, req.UserID); err != nil {
		respondError(c, err, "assign user to client")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User assigned to client",
		slog.String("client_id", clientID), slog.String("target_user_id", req.UserID))
	c.Status(http.StatusNoContent)
}

// unassignUser godoc
// @Summary Remove an operator from a client
// @Tags clients
// @Param clientID path string true "Client ID"
// @Param userID path string true "User ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{clientID}/users/{userID} [delete]
func (h *clientHandler) unassignUser(c *gin.Context) {
	if err := h.clientService.UnassignUser(c.Request.Context(), c.Param("clientID"), c.Param("userID")); err != nil {
		respondError(c, err, "unassign user from client")
		return
	}
	c.Status(http.StatusNoContent)
}

// listMyClients godoc
// @Summary Clients of the caller
// @Description Active clients the caller operates for, by name.
// @Tags clients
// @Produce json
// @Success 200 {array} dto.ClientResponse
// @Security BearerAuth
// @Router /me/clients [get]
func (h *clientHandler) listMyClients(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	clients, err := h.clientService.ListClientsForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "list clients")
		return
	}
	c.JSON(http.StatusOK, dto.ToListClientResponse(clients))
}

// getOperativeClient godoc
// @Summary Current operative client
// @Description Returns the selected client, or the first active assigned client when none is selected.
// @Tags clients
// @Produce json
// @Success 200 {object} dto.OperativeClientResponse
// @Security BearerAuth
// @Router /me/operative-client [get]
func (h *clientHandler) getOperativeClient(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	client, err := h.operativeClients.GetOperativeClient(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "resolve operative client")
		return
	}
	c.JSON(http.StatusOK, dto.ToOperativeClientResponse(client))
}

// selectOperativeClient godoc
// @Summary Select the operative client
// @Description The client must be active and assigned to the caller. The selection drives simulation discounts.
// @Tags clients
// @Accept json
// @Produce json
// @Param selection body dto.SelectOperativeClientRequest true "Client"
// @Success 200 {object} dto.OperativeClientResponse
// @Failure 400 {object} ErrorResponse "Inactive client"
// @Failure 403 {object} ErrorResponse "Client not assigned to caller"
// @Failure 404 {object} ErrorResponse "Client not found"
// @Security BearerAuth
// @Router /me/operative-client [post]
func (h *clientHandler) selectOperativeClient(c *gin.Context) {
	var req dto.SelectOperativeClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "select operative client request")
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	client, err := h.operativeClients.SelectOperativeClient(c.Request.Context(), userID, req.ClienteID)
	if err != nil {
		respondError(c, err, "select operative client")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Operative client selected", slog.String("client_id", client.ClientID))
	c.JSON(http.StatusOK, dto.ToOperativeClientResponse(client))
}
