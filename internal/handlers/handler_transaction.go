package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	portssvc "github.com/SscSPs/currency_exchange_app/internal/core/ports/services"
	"github.com/SscSPs/currency_exchange_app/internal/dto"
	"github.com/SscSPs/currency_exchange_app/internal/middleware"
	"github.com/SscSPs/currency_exchange_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// conversionHandler serves the simulator and the transactions that freeze its quotes.
type conversionHandler struct {
	simulation   portssvc.SimulationSvc
	transactions portssvc.TransactionSvcFacade
	posthog      *utils.PosthogClientWrapper
}

func registerConversionRoutes(
	rg *gin.RouterGroup,
	sim portssvc.SimulationSvc,
	txns portssvc.TransactionSvcFacade,
	checker portssvc.PermissionChecker,
	posthogClient *utils.PosthogClientWrapper,
) {
	h := &conversionHandler{simulation: sim, transactions: txns, posthog: posthogClient}

	rg.POST("/simulator/convert", h.simulate)

	txGroup := rg.Group("/transactions", middleware.RequirePermission(checker, domain.PermTransactionsOperate))
	{
		txGroup.POST("", h.createTransaction)
		txGroup.GET("", h.listTransactions)
		txGroup.GET("/:transactionID", h.getTransaction)
		txGroup.PATCH("/:transactionID/status", h.updateTransactionStatus)
	}
}

// simulate godoc
// @Summary Simulate a conversion
// @Description Prices a BUY or SELL against the latest active rate, applying the discount of the operative client.
// @Tags simulator
// @Accept json
// @Produce json
// @Param request body dto.SimulateConversionRequest true "Conversion"
// @Success 200 {object} dto.SimulateConversionResponse
// @Failure 400 {object} dto.ConversionErrorResponse
// @Failure 404 {object} dto.ConversionErrorResponse "No active rate"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /simulator/convert [post]
func (h *conversionHandler) simulate(c *gin.Context) {
	var req dto.SimulateConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "simulation request")
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	quote, err := h.simulation.Simulate(c.Request.Context(), userID, req)
	if err != nil {
		respondConversionError(c, err, "simulate conversion")
		return
	}
	c.JSON(http.StatusOK, dto.ToSimulateConversionResponse(quote))
}

// createTransaction godoc
// @Summary Record a transaction
// @Description Freezes the current quote for the operative client, or for cliente_id when given. Starts PENDING.
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body dto.CreateTransactionRequest true "Transaction"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ConversionErrorResponse
// @Failure 403 {object} ErrorResponse "Client not assigned to caller"
// @Failure 404 {object} dto.ConversionErrorResponse "No active rate"
// @Security BearerAuth
// @Router /transactions [post]
func (h *conversionHandler) createTransaction(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "create transaction request")
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	txn, err := h.transactions.CreateTransaction(c.Request.Context(), userID, req)
	if err != nil {
		respondConversionError(c, err, "create transaction")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Transaction created", slog.String("transaction_id", txn.TransactionID))
	middleware.TrackEvent(c, h.posthog, "transaction_created", map[string]any{
		"operation":   string(txn.Operation),
		"origin":      txn.OriginCurrencyCode,
		"destination": txn.DestinationCurrencyCode,
	})
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List the caller's transactions
// @Tags transactions
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token of the next page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse "Invalid page token"
// @Security BearerAuth
// @Router /transactions [get]
func (h *conversionHandler) listTransactions(c *gin.Context) {
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "list transactions query")
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	txns, next, err := h.transactions.ListTransactions(c.Request.Context(), userID, params.Limit, params.NextToken)
	if err != nil {
		respondError(c, err, "list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(txns, next))
}

// getTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID} [get]
func (h *conversionHandler) getTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	txn, err := h.transactions.GetTransaction(c.Request.Context(), userID, c.Param("transactionID"))
	if err != nil {
		respondError(c, err, "retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// updateTransactionStatus godoc
// @Summary Complete or cancel a transaction
// @Description Only PENDING transactions move, to COMPLETED or CANCELLED.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Param status body dto.UpdateTransactionStatusRequest true "New status"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse "Transition not allowed"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID}/status [patch]
func (h *conversionHandler) updateTransactionStatus(c *gin.Context) {
	var req dto.UpdateTransactionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "update transaction status request")
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	txn, err := h.transactions.UpdateTransactionStatus(c.Request.Context(), userID, c.Param("transactionID"), domain.TransactionStatus(req.Status))
	if err != nil {
		respondError(c, err, "update transaction status")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Transaction status updated",
		slog.String("transaction_id", txn.TransactionID), slog.String("status", string(txn.Status)))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}
