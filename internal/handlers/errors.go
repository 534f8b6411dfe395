package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/currency_exchange_app/internal/apperrors"
	"github.com/SscSPs/currency_exchange_app/internal/dto"
	"github.com/SscSPs/currency_exchange_app/internal/middleware"
	"github.com/SscSPs/currency_exchange_app/internal/utils/conversion"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError translates a service error into an HTTP response.
// Anything outside the apperrors taxonomy is logged and answered with a generic 500.
func respondError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.StatusCode(err)
	if status == http.StatusInternalServerError {
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(status, ErrorResponse{Error: "Failed to " + action})
		return
	}
	logger.Warn("Request rejected", slog.String("action", action), slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

// bindError answers a request whose body or query could not be bound.
func bindError(c *gin.Context, err error, what string) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
}

// requireUserID returns the authenticated user or aborts with 401.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}

// conversionErrorCode returns the machine readable code of a pricing error, or "" when err is not one.
func conversionErrorCode(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrInvalidAmount):
		return dto.CodeInvalidAmount
	case errors.Is(err, conversion.ErrSameCurrency):
		return dto.CodeSameCurrency
	case errors.Is(err, conversion.ErrHomeCurrencyLeg):
		return dto.CodeHomeCurrencyLeg
	case errors.Is(err, conversion.ErrUnsupportedPair):
		return dto.CodeUnsupportedPair
	case errors.Is(err, conversion.ErrInvalidOp):
		return dto.CodeInvalidOp
	case errors.Is(err, apperrors.ErrUnknownCurrency):
		return dto.CodeUnknownCurrency
	case errors.Is(err, apperrors.ErrNoActiveRate):
		return dto.CodeNoActiveRate
	}
	return ""
}

// respondConversionError answers pricing failures with {error, code}; other errors go through respondError.
func respondConversionError(c *gin.Context, err error, action string) {
	code := conversionErrorCode(err)
	if code == "" {
		respondError(c, err, action)
		return
	}
	status := apperrors.StatusCode(err)
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Conversion rejected", slog.String("code", code), slog.String("error", err.Error()))
	c.JSON(status, dto.ConversionErrorResponse{Error: err.Error(), Code: code})
}
