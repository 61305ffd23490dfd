package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ur-campus-api/internal/service"
)

// unmatchedRoute labels requests that hit no registered route, keeping the
// path label bounded.
const unmatchedRoute = "unmatched"

// Metrics records request latency per route template and counts gate
// rejections as session events.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, status, time.Since(start))

		switch status {
		case http.StatusUnauthorized:
			metricsSvc.RecordSessionEvent("gate", "redirect_login")
		case http.StatusForbidden:
			metricsSvc.RecordSessionEvent("gate", "denied")
		}
	}
}
