package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type recordingInvalidator struct {
	patterns []string
}

func (r *recordingInvalidator) Invalidate(_ context.Context, pattern string) error {
	r.patterns = append(r.patterns, pattern)
	return nil
}

func TestInvalidateCacheOnlyAfterSuccessfulWrites(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cache := &recordingInvalidator{}
	r := gin.New()
	r.Use(InvalidateCache(cache, "dash:*", "analytics*"))
	r.GET("/facilities", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/facilities", func(c *gin.Context) { c.Status(http.StatusCreated) })
	r.PUT("/facilities/:id", func(c *gin.Context) { c.Status(http.StatusBadRequest) })

	serve := func(method, path string) {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(method, path, nil))
	}

	serve(http.MethodGet, "/facilities")
	assert.Empty(t, cache.patterns)

	serve(http.MethodPut, "/facilities/fac-001")
	assert.Empty(t, cache.patterns)

	serve(http.MethodPost, "/facilities")
	assert.Equal(t, []string{"dash:*", "analytics*"}, cache.patterns)
}
