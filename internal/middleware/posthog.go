package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/currency_exchange_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// untrackedRoutes are never reported to PostHog.
var untrackedRoutes = map[string]bool{
	"/health":                  true,
	"/metrics":                 true,
	"/api/v1/ws/notifications": true,
}

// PosthogMiddleware reports successful authenticated API calls as product events.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || untrackedRoutes[c.FullPath()] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}
		eventName := routeEventName(c.Request.Method, c.FullPath())
		if eventName == "" {
			return
		}

		props := map[string]any{
			"route":       c.FullPath(),
			"status_code": c.Writer.Status(),
		}
		if len(c.Params) > 0 {
			params := make(map[string]string, len(c.Params))
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}
		posthogClient.Enqueue(userID, eventName, props)
	}
}

// TrackEvent sends a custom event for the authenticated caller.
func TrackEvent(c *gin.Context, posthogClient *utils.PosthogClientWrapper, eventName string, properties map[string]any) {
	if !posthogClient.IsInitialized() {
		return
	}
	userID, exists := GetUserIDFromContext(c)
	if !exists {
		return
	}
	if properties == nil {
		properties = make(map[string]any)
	}
	properties["route"] = c.FullPath()
	posthogClient.Enqueue(userID, eventName, properties)
}

// routeEventName turns "POST /api/v1/exchange-rates/:rateID" into "post_exchange_rates_rateID".
func routeEventName(method, route string) string {
	route = strings.TrimPrefix(route, "/api/v1")
	route = strings.Trim(route, "/")
	if route == "" {
		return ""
	}
	replacer := strings.NewReplacer("/", "_", "-", "_", ":", "")
	return strings.ToLower(method) + "_" + replacer.Replace(route)
}
