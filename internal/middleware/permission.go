package middleware

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	portssvc "github.com/SscSPs/currency_exchange_app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// RequirePermission aborts with 403 unless the authenticated user holds perm.
// It must run after AuthMiddleware.
func RequirePermission(checker portssvc.PermissionChecker, perm domain.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		allowed, err := checker.UserHasPermission(c.Request.Context(), userID, perm)
		if err != nil {
			logger.Error("Failed to check permission", slog.String("permission", string(perm)), slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to check permissions"})
			return
		}
		if !allowed {
			logger.Warn("Permission denied", slog.String("permission", string(perm)))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}
