package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ur-campus-api/internal/access"
)

func TestNavigationMenuFollowsRole(t *testing.T) {
	handler := NewNavigationHandler()

	c, w := newGinContext(http.MethodGet, "/navigation", nil)
	withIdentity(c, studentIdentity)
	handler.Menu(c)

	require.Equal(t, http.StatusOK, w.Code)
	var items []access.NavItem
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &items))
	require.NotEmpty(t, items)
	routes := make([]string, 0, len(items))
	for _, item := range items {
		routes = append(routes, item.Route)
	}
	assert.Contains(t, routes, "/my-feedback")
	assert.NotContains(t, routes, "/users")
}

func TestNavigationResolve(t *testing.T) {
	handler := NewNavigationHandler()

	cases := []struct {
		name    string
		path    string
		setup   func(c *gin.Context)
		outcome access.Outcome
	}{
		{name: "anonymous is sent to login", path: "/users", outcome: access.OutcomeRedirectLogin},
		{name: "public page", path: "/register", outcome: access.OutcomeAllow},
		{name: "student denied admin page", path: "/users", setup: func(c *gin.Context) { withIdentity(c, studentIdentity) }, outcome: access.OutcomeDenied},
		{name: "staff may plan", path: "/predictive-planning", setup: func(c *gin.Context) { withIdentity(c, staffIdentity) }, outcome: access.OutcomeAllow},
		{name: "detail route", path: "/facilities/fac-001", setup: func(c *gin.Context) { withIdentity(c, studentIdentity) }, outcome: access.OutcomeAllow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, w := newGinContext(http.MethodGet, "/navigation/resolve?path="+tc.path, nil)
			if tc.setup != nil {
				tc.setup(c)
			}
			handler.Resolve(c)

			require.Equal(t, http.StatusOK, w.Code)
			var decision access.Decision
			require.NoError(t, json.Unmarshal(decode(t, w).Data, &decision))
			assert.Equal(t, tc.outcome, decision.Outcome)
		})
	}
}

func TestNavigationResolveRequiresAbsolutePath(t *testing.T) {
	handler := NewNavigationHandler()

	c, w := newGinContext(http.MethodGet, "/navigation/resolve?path=users", nil)
	handler.Resolve(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
