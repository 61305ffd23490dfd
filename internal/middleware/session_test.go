package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/ur-campus-api/internal/models"
	appErrors "github.com/noah-isme/ur-campus-api/pkg/errors"
)

type fakeHydrator struct {
	sessions map[string]models.Identity
}

func (f *fakeHydrator) ValidateToken(token string) (*models.JWTClaims, error) {
	if token == "garbage" {
		return nil, appErrors.ErrUnauthorized
	}
	// Tokens in these tests carry a stale role to prove hydration replaces it.
	return &models.JWTClaims{UserID: "stale", SessionID: token, Role: models.RoleStudent}, nil
}

func (f *fakeHydrator) Hydrate(_ context.Context, sessionID string) models.SessionState {
	identity, ok := f.sessions[sessionID]
	if !ok {
		return models.Anonymous()
	}
	return models.Authenticated(identity)
}

type envelope struct {
	Data  json.RawMessage        `json:"data"`
	Error *appErrors.Error       `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	hydrator := &fakeHydrator{sessions: map[string]models.Identity{
		"admin-session": {ID: "1", Name: "CAMPUS PLANNER", Role: models.RoleAdmin},
		"staff-session": {ID: "2", Name: "Karangwa", Role: models.RoleStaff, Department: "Computer Science"},
	}}
	r.Use(Session(hydrator))
	chain := append([]gin.HandlerFunc{JWT()}, handlers...)
	chain = append(chain, func(c *gin.Context) {
		claims, _ := Claims(c)
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"user_id": claims.UserID, "role": claims.Role}})
	})
	r.GET("/users/:id", chain...)
	return r
}

func do(t *testing.T, r *gin.Engine, path, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestJWTRedirectsAnonymousToLogin(t *testing.T) {
	r := newRouter()

	for _, token := range []string{"", "garbage", "unknown-session"} {
		rec, body := do(t, r, "/users/1", token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, token)
		require.NotNil(t, body.Error)
		assert.Equal(t, appErrors.ErrUnauthorized.Code, body.Error.Code)
		assert.Equal(t, "/login?from=%2Fusers%2F1", body.Meta["redirect"])
		assert.Equal(t, "/users/1", body.Meta["from"])
	}
}

func TestSessionReplacesTokenRoleWithHydratedRole(t *testing.T) {
	r := newRouter()

	rec, body := do(t, r, "/users/1", "admin-session")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":"1","role":"admin"}`, string(body.Data))
}

func TestRequireRolesDeniesWithRequiredRoleMessage(t *testing.T) {
	r := newRouter(RequireRoles(models.RoleAdmin))

	rec, body := do(t, r, "/users/9", "staff-session")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "You don't have permission to access this page. Required role: admin", body.Error.Message)
	assert.Equal(t, "/unauthorized", body.Meta["redirect"])

	rec, _ = do(t, r, "/users/9", "admin-session")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRBACAllowsSelf(t *testing.T) {
	r := newRouter(RBAC(string(models.RoleAdmin), Self))

	rec, _ := do(t, r, "/users/2", "staff-session")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, r, "/users/3", "staff-session")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuditLogsSuccessfulRequestsOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.InfoLevel)
	r := gin.New()
	r.POST("/users/:id/approve", Audit(zap.New(core), "approve", "user"), func(c *gin.Context) {
		if c.Param("id") == "404" {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusOK)
	})

	for _, id := range []string{"4", "404"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users/"+id+"/approve", nil))
	}

	entries := logs.FilterMessage("audit").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "4", entries[0].ContextMap()["resource_id"])
	assert.Equal(t, "approve", entries[0].ContextMap()["action"])
}
