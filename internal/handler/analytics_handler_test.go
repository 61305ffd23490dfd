package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ur-campus-api/internal/models"
	"github.com/noah-isme/ur-campus-api/internal/repository"
	"github.com/noah-isme/ur-campus-api/internal/service"
	appErrors "github.com/noah-isme/ur-campus-api/pkg/errors"
)

func newAnalyticsHandler() *AnalyticsHandler {
	svc := service.NewAnalyticsService(service.AnalyticsSources{
		Facilities:      repository.NewFacilityRepository(repository.SeedFacilities()),
		Feedback:        repository.NewFeedbackRepository(repository.SeedFeedback()),
		Recommendations: repository.NewRecommendationRepository(repository.SeedRecommendations()),
	}, nil, nil, nil, nil, service.ProviderLatency{})
	return NewAnalyticsHandler(svc)
}

func TestAnalyticsHandlerOverview(t *testing.T) {
	handler := newAnalyticsHandler()

	c, w := newGinContext(http.MethodGet, "/analytics/overview", nil)
	handler.Overview(c)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body.Meta["cache_hit"])
	var overview models.AnalyticsOverview
	require.NoError(t, json.Unmarshal(body.Data, &overview))
	assert.Len(t, overview.TopFacilities, 5)
}

func TestAnalyticsHandlerUtilization(t *testing.T) {
	handler := newAnalyticsHandler()

	c, w := newGinContext(http.MethodGet, "/analytics/utilization?facility_id=fac-001&from=2025-05-05&to=2025-05-12", nil)
	handler.Utilization(c)
	require.Equal(t, http.StatusOK, w.Code)
	var points []models.DailyUtilization
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &points))
	assert.Len(t, points, 7)

	c, w = newGinContext(http.MethodGet, "/analytics/utilization?facility_id=fac-001&from=2025-05-12&to=2025-05-05", nil)
	handler.Utilization(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, appErrors.ErrValidation.Code, decode(t, w).Error.Code)
}

func TestAnalyticsHandlerFeedbackTimeframe(t *testing.T) {
	handler := newAnalyticsHandler()

	c, w := newGinContext(http.MethodGet, "/analytics/feedback?timeframe=year", nil)
	handler.Feedback(c)
	require.Equal(t, http.StatusOK, w.Code)
	var points []models.FeedbackTrendPoint
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &points))
	assert.Len(t, points, 12)

	c, w = newGinContext(http.MethodGet, "/analytics/feedback?timeframe=decade", nil)
	handler.Feedback(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyticsHandlerWithoutService(t *testing.T) {
	handler := NewAnalyticsHandler(nil)

	c, w := newGinContext(http.MethodGet, "/analytics/ai-effectiveness", nil)
	handler.AIEffectiveness(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
