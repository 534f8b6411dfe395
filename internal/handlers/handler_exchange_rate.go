package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/currency_exchange_app/internal/apperrors"
	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	portssvc "github.com/SscSPs/currency_exchange_app/internal/core/ports/services"
	"github.com/SscSPs/currency_exchange_app/internal/dto"
	"github.com/SscSPs/currency_exchange_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{
		exchangeRateService: ers,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates. Writes require rates.manage.
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade, checker portssvc.PermissionChecker) {
	h := newExchangeRateHandler(exchangeRateService)
	requireManage := middleware.RequirePermission(checker, domain.PermRatesManage)

	exchangeRates := rg.Group("/exchange-rates")
	{
		exchangeRates.POST("", requireManage, h.createExchangeRate)
		exchangeRates.GET("", h.listExchangeRates)
		exchangeRates.GET("/current/:code", h.getCurrentRate)
		exchangeRates.GET("/:rateID", h.getExchangeRate)
		exchangeRates.PUT("/:rateID", requireManage, h.supersedeExchangeRate)
		exchangeRates.PATCH("/:rateID/deactivate", requireManage, h.deactivateExchangeRate)
	}
}

// createExchangeRate godoc
// @Summary Create a new exchange rate
// @Description Records a new rate for a currency pair. A significant move against the previous rate notifies subscribed users.
// @Tags exchange rates
// @Accept  json
// @Produce  json
// @Param   rate body dto.CreateExchangeRateRequest true "Exchange Rate details"
// @Success 201 {object} dto.ExchangeRateResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 500 {object} ErrorResponse "Failed to create exchange rate"
// @Security BearerAuth
// @Router /exchange-rates [post]
func (h *exchangeRateHandler) createExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "create exchange rate request")
		return
	}

	creatorUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	logger.Info("Received request to create exchange rate",
		slog.String("origin", req.OriginCurrencyCode),
		slog.String("destination", req.DestinationCurrencyCode),
		slog.String("base_price", req.BasePrice.String()),
	)

	createdRate, err := h.exchangeRateService.CreateExchangeRate(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, err, "create exchange rate")
		return
	}

	logger.Info("Exchange rate created successfully", slog.String("rate_id", createdRate.ExchangeRateID))
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(createdRate))
}

// supersedeExchangeRate godoc
// @Summary Update an exchange rate
// @Description Stores the new values as a new row for the same pair. Earlier rows are kept as history.
// @Tags exchange rates
// @Accept  json
// @Produce  json
// @Param   rateID path string true "Exchange Rate ID"
// @Param   rate body dto.UpdateExchangeRateRequest true "New values"
// @Success 201 {object} dto.ExchangeRateResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Exchange rate not found"
// @Failure 500 {object} ErrorResponse "Failed to update exchange rate"
// @Security BearerAuth
// @Router /exchange-rates/{rateID} [put]
func (h *exchangeRateHandler) supersedeExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rateID := c.Param("rateID")

	var req dto.UpdateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "update exchange rate request")
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	newRate, err := h.exchangeRateService.SupersedeExchangeRate(c.Request.Context(), rateID, req, userID)
	if err != nil {
		respondError(c, err, "update exchange rate")
		return
	}

	logger.Info("Exchange rate superseded", slog.String("previous_rate_id", rateID), slog.String("rate_id", newRate.ExchangeRateID))
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(newRate))
}

// deactivateExchangeRate godoc
// @Summary Deactivate an exchange rate
// @Tags exchange rates
// @Param   rateID path string true "Exchange Rate ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Exchange rate not found"
// @Failure 500 {object} ErrorResponse "Failed to deactivate exchange rate"
// @Security BearerAuth
// @Router /exchange-rates/{rateID}/deactivate [patch]
func (h *exchangeRateHandler) deactivateExchangeRate(c *gin.Context) {
	rateID := c.Param("rateID")
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.exchangeRateService.DeactivateExchangeRate(c.Request.Context(), rateID, userID); err != nil {
		respondError(c, err, "deactivate exchange rate")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Exchange rate deactivated", slog.String("rate_id", rateID))
	c.Status(http.StatusNoContent)
}

// getExchangeRate godoc
// @Summary Get an exchange rate
// @Tags exchange rates
// @Produce  json
// @Param   rateID path string true "Exchange Rate ID"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 404 {object} ErrorResponse "Exchange rate not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve exchange rate"
// @Security BearerAuth
// @Router /exchange-rates/{rateID} [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rateID := c.Param("rateID")

	rate, err := h.exchangeRateService.GetExchangeRateByID(c.Request.Context(), rateID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Exchange rate not found", slog.String("rate_id", rateID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Exchange rate not found"})
			return
		}
		respondError(c, err, "retrieve exchange rate")
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// getCurrentRate godoc
// @Summary Current rate of a currency
// @Description Returns the most recent active rate of the currency against the home currency
// @Tags exchange rates
// @Produce  json
// @Param   code path string true "Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} ErrorResponse "Invalid currency code format"
// @Failure 404 {object} ErrorResponse "No active rate"
// @Failure 500 {object} ErrorResponse "Failed to retrieve exchange rate"
// @Security BearerAuth
// @Router /exchange-rates/current/{code} [get]
func (h *exchangeRateHandler) getCurrentRate(c *gin.Context) {
	code := strings.ToUpper(c.Param("code"))
	if len(code) != 3 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Currency code must be 3 letters"})
		return
	}

	rate, err := h.exchangeRateService.GetCurrentRate(c.Request.Context(), code)
	if err != nil {
		respondError(c, err, "retrieve current rate")
		return
	}
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// listExchangeRates godoc
// @Summary List exchange rate history
// @Description Newest first. Filters by origin and destination currency.
// @Tags exchange rates
// @Produce  json
// @Param   origin query string false "Origin currency code"
// @Param   destination query string false "Destination currency code"
// @Param   onlyActive query bool false "Only active rows"
// @Param   page query int false "Page number" default(1)
// @Param   pageSize query int false "Page size" default(20)
// @Success 200 {object} dto.ListExchangeRatesResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 500 {object} ErrorResponse "Failed to list exchange rates"
// @Security BearerAuth
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) listExchangeRates(c *gin.Context) {
	var params dto.ListExchangeRatesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "list exchange rates query")
		return
	}

	rates, total, err := h.exchangeRateService.ListExchangeRates(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "list exchange rates")
		return
	}
	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rates, total, params.Page, params.PageSize))
}
