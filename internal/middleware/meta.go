package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

const (
	responseMetaKey   = "response_meta"
	requestStartKey   = "response_meta_start"
	cacheHitKey       = "cache_hit"
	processingTimeKey = "processing_time_ms"
)

// WithResponseMeta starts an empty meta map for the request envelope and
// remembers when the request entered the API group.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(requestStartKey, time.Now())
		c.Set(responseMetaKey, map[string]interface{}{})
		c.Next()
	}
}

// SetMeta attaches a value to the envelope meta of the current response.
func SetMeta(c *gin.Context, key string, value interface{}) {
	ensureMeta(c)[key] = value
}

// SetCacheHit records whether the payload was served from cache.
func SetCacheHit(c *gin.Context, hit bool) {
	SetMeta(c, cacheHitKey, hit)
}

// SetProcessingTime records how long the handler spent since start.
func SetProcessingTime(c *gin.Context, start time.Time) {
	SetMeta(c, processingTimeKey, time.Since(start).Milliseconds())
}

// Meta returns the envelope meta for the current response. When the request
// went through WithResponseMeta and no handler timed itself, the elapsed
// request time is stamped as processing_time_ms.
func Meta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return nil
	}
	meta := ensureMeta(c)
	if _, set := meta[processingTimeKey]; !set {
		if raw, ok := c.Get(requestStartKey); ok {
			if start, ok := raw.(time.Time); ok {
				meta[processingTimeKey] = time.Since(start).Milliseconds()
			}
		}
	}
	if len(meta) == 0 {
		return nil
	}
	return meta
}

func ensureMeta(c *gin.Context) map[string]interface{} {
	if meta, exists := c.Get(responseMetaKey); exists {
		if typed, ok := meta.(map[string]interface{}); ok {
			return typed
		}
	}
	meta := make(map[string]interface{})
	c.Set(responseMetaKey, meta)
	return meta
}
