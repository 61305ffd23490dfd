package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ur-campus-api/internal/middleware"
	"github.com/noah-isme/ur-campus-api/internal/models"
	"github.com/noah-isme/ur-campus-api/internal/view"
	appErrors "github.com/noah-isme/ur-campus-api/pkg/errors"
	"github.com/noah-isme/ur-campus-api/pkg/response"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	claims, ok := middleware.Claims(c)
	if !ok {
		return nil
	}
	return claims
}

// identityFromContext returns the hydrated caller or writes a 401.
func identityFromContext(c *gin.Context) (models.Identity, bool) {
	state := middleware.SessionState(c)
	if !state.IsAuthenticated() {
		response.Error(c, appErrors.ErrUnauthorized)
		return models.Identity{}, false
	}
	return *state.Identity, true
}

type viewerResolver interface {
	Viewer(ctx context.Context, identity models.Identity) (view.Viewer, error)
}

// viewerFromContext builds the page viewer for the caller, writing the error
// response when it cannot.
func viewerFromContext(c *gin.Context, resolver viewerResolver) (view.Viewer, bool) {
	identity, ok := identityFromContext(c)
	if !ok {
		return view.Viewer{}, false
	}
	v, err := resolver.Viewer(c.Request.Context(), identity)
	if err != nil {
		response.Error(c, err)
		return view.Viewer{}, false
	}
	return v, true
}

func bindJSON(c *gin.Context, dest interface{}, message string) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, message))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindQuery(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return false
	}
	return true
}

// respondList writes a list together with the filters that produced it.
func respondList[T any](c *gin.Context, items []T, filters interface{}) {
	if items == nil {
		items = []T{}
	}
	middleware.SetMeta(c, "filters", filters)
	middleware.SetMeta(c, "total", len(items))
	response.JSON(c, http.StatusOK, items, nil, middleware.Meta(c))
}

// respondTimed writes data produced by a cache-aware service call that began at start.
func respondTimed(c *gin.Context, data interface{}, cacheHit bool, start time.Time) {
	middleware.SetCacheHit(c, cacheHit)
	middleware.SetProcessingTime(c, start)
	response.JSON(c, http.StatusOK, data, nil, middleware.Meta(c))
}
