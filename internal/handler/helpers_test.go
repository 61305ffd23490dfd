package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ur-campus-api/internal/middleware"
	"github.com/noah-isme/ur-campus-api/internal/models"
	appErrors "github.com/noah-isme/ur-campus-api/pkg/errors"
)

var (
	adminIdentity   = models.Identity{ID: "1", Name: "CAMPUS PLANNER", Role: models.RoleAdmin, Status: models.UserStatusActive}
	staffIdentity   = models.Identity{ID: "2", Name: "Karangwa", Role: models.RoleStaff, Department: "Computer Science", Status: models.UserStatusActive}
	studentIdentity = models.Identity{ID: "5", Name: "Simon", Role: models.RoleStudent, Status: models.UserStatusActive}
)

type envelope struct {
	Data  json.RawMessage        `json:"data"`
	Error *appErrors.Error       `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

func newGinContext(method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func withIdentity(c *gin.Context, identity models.Identity) {
	c.Set(middleware.ContextSessionKey, models.Authenticated(identity))
}

func mustJSON(t *testing.T, v interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
