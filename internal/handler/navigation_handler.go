package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ur-campus-api/internal/access"
	"github.com/noah-isme/ur-campus-api/internal/middleware"
	appErrors "github.com/noah-isme/ur-campus-api/pkg/errors"
	"github.com/noah-isme/ur-campus-api/pkg/response"
)

// NavigationHandler exposes the role menu and the route gate.
type NavigationHandler struct {
	gate access.Gate
}

// NewNavigationHandler constructs the handler.
func NewNavigationHandler() *NavigationHandler {
	return &NavigationHandler{}
}

// Menu godoc
// @Summary Navigation menu for the caller's role
// @Tags Navigation
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /navigation [get]
func (h *NavigationHandler) Menu(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		return
	}
	response.JSON(c, http.StatusOK, access.Menu(identity.Role), nil, map[string]interface{}{"role": identity.Role})
}

// Resolve godoc
// @Summary Evaluate the route gate for a dashboard path
// @Description Returns allow, redirect_login or denied for the caller and path. Anonymous callers are allowed to ask.
// @Tags Navigation
// @Produce json
// @Param path query string true "Dashboard route, e.g. /users"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /navigation/resolve [get]
func (h *NavigationHandler) Resolve(c *gin.Context) {
	path := strings.TrimSpace(c.Query("path"))
	if path == "" || !strings.HasPrefix(path, "/") {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "path must be an absolute route"))
		return
	}
	decision := access.Resolve(h.gate, middleware.SessionState(c), path)
	response.JSON(c, http.StatusOK, decision, nil)
}
