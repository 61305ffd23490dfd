package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ur-campus-api/internal/models"
	"github.com/noah-isme/ur-campus-api/internal/service"
)

func scrape(t *testing.T, metrics *service.MetricsService) string {
	t.Helper()
	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestMetricsCountsGateRejections(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	r := gin.New()
	r.Use(Metrics(metrics))
	r.Use(Session(&fakeHydrator{sessions: map[string]models.Identity{
		"staff-session": {ID: "2", Role: models.RoleStaff},
	}}))
	r.GET("/analytics/overview", JWT(), RequireRoles(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do(t, r, "/analytics/overview", "")
	do(t, r, "/analytics/overview", "staff-session")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/no/such/route", nil))

	body := scrape(t, metrics)
	assert.Contains(t, body, `session_events_total{event="gate",result="redirect_login"} 1`)
	assert.Contains(t, body, `session_events_total{event="gate",result="denied"} 1`)
	assert.Contains(t, body, `path="/analytics/overview"`)
	assert.Contains(t, body, `path="unmatched"`)
	assert.NotContains(t, body, "/no/such/route")
}
