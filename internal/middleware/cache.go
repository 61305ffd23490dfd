package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type cacheInvalidator interface {
	Invalidate(ctx context.Context, pattern string) error
}

// InvalidateCache drops cached entries matching patterns after a mutating
// request succeeds. Reads and failed writes leave the cache untouched; an
// invalidation error never changes the response.
func InvalidateCache(cache cacheInvalidator, patterns ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if cache == nil || !mutating(c.Request.Method) || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		for _, pattern := range patterns {
			_ = cache.Invalidate(c.Request.Context(), pattern)
		}
	}
}

func mutating(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}
