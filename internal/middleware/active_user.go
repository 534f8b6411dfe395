package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/currency_exchange_app/internal/apperrors"
	portssvc "github.com/SscSPs/currency_exchange_app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// RequireActiveUser rejects tokens whose subject no longer exists or was soft deleted.
// It must run after AuthMiddleware or WebSocketAuthMiddleware.
func RequireActiveUser(users portssvc.UserReaderSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), userID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to load token subject", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify user"})
			return
		}
		if err != nil || user.DeletedAt != nil {
			logger.Warn("Token subject is no longer active")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User is no longer active"})
			return
		}
		c.Next()
	}
}
