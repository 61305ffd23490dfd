package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/ur-campus-api/internal/models"
	"github.com/noah-isme/ur-campus-api/internal/repository"
	"github.com/noah-isme/ur-campus-api/internal/view"
	appErrors "github.com/noah-isme/ur-campus-api/pkg/errors"
)

type fakeDashboardReports struct {
	reports []models.Report
	err     error
}

func (f *fakeDashboardReports) Browse(context.Context, view.Viewer, view.ReportFilters) ([]models.Report, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.reports, nil
}

type failingAnalytics struct{}

func (failingAnalytics) Overview(context.Context) (*models.AnalyticsOverview, bool, error) {
	return nil, false, appErrors.ErrUnavailable
}

func newDashboardFixture(cache *CacheService) (*DashboardService, DashboardServiceParams) {
	facilityRepo := repository.NewFacilityRepository(repository.SeedFacilities())
	feedbackRepo := repository.NewFeedbackRepository(repository.SeedFeedback())
	recRepo := repository.NewRecommendationRepository(repository.SeedRecommendations())

	params := DashboardServiceParams{
		Facilities:      NewFacilityService(facilityRepo, repository.NewMemoryAssignmentStore(repository.SeedAssignments()), nil, nil, nil, ProviderLatency{}),
		Feedback:        NewFeedbackService(feedbackRepo, facilityRepo, nil, nil, nil, ProviderLatency{}),
		Recommendations: NewRecommendationService(recRepo, nil, nil, nil, ProviderLatency{}),
		Reports: &fakeDashboardReports{reports: []models.Report{
			{ID: "r1", Status: models.ReportGenerating},
			{ID: "r2", Status: models.ReportCompleted},
		}},
		Announcements: NewAnnouncementService(repository.NewAnnouncementRepository(repository.SeedAnnouncements()), nil, nil, ProviderLatency{}),
		Users:         NewUserService(repository.NewUserRepository(repository.SeedUsers()), nil, nil, nil, ProviderLatency{}),
		Analytics: NewAnalyticsService(AnalyticsSources{
			Facilities:      facilityRepo,
			Feedback:        feedbackRepo,
			Recommendations: recRepo,
		}, nil, nil, nil, nil, ProviderLatency{}),
		Cache:  cache,
		Logger: zap.NewNop(),
	}
	svc := NewDashboardService(params)
	svc.now = func() time.Time { return time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC) }
	return svc, params
}

func TestDashboardServiceAdmin_ComposesAndCaches(t *testing.T) {
	cacheSvc := NewCacheService(&stubCacheRepo{}, nil, time.Minute, zap.NewNop(), true)
	svc, _ := newDashboardFixture(cacheSvc)
	ctx := context.Background()

	result, cacheHit, err := svc.Dashboard(ctx, planner)
	require.NoError(t, err)
	assert.False(t, cacheHit)
	assert.Equal(t, models.RoleAdmin, result.Role)
	assert.Equal(t, 11, result.Stats.Facilities)
	assert.Equal(t, 4, result.Stats.Students)
	assert.Equal(t, 3, result.Stats.Staff)
	assert.Equal(t, 9, result.Stats.TotalUsers)
	assert.Equal(t, 8, result.Stats.TotalFeedback)
	assert.Equal(t, 3, result.Stats.PendingFeedback)
	assert.Equal(t, 3, result.Stats.PendingRecommendations)
	assert.Len(t, result.RecentFeedback, 3)
	assert.Len(t, result.Recommendations, 3)
	assert.Len(t, result.MonthlyUtilization, 12)
	assert.NotEmpty(t, result.UtilizationByType)
	assert.Empty(t, result.Announcements)

	cached, cacheHit, err := svc.Dashboard(ctx, planner)
	require.NoError(t, err)
	assert.True(t, cacheHit)
	assert.Equal(t, result.Stats, cached.Stats)
	assert.Equal(t, result.GeneratedAt, cached.GeneratedAt)
}

func TestDashboardServiceStaff_ScopesToDepartmentAndAssignments(t *testing.T) {
	svc, _ := newDashboardFixture(nil)

	result, _, err := svc.Dashboard(context.Background(), karangwa)
	require.NoError(t, err)
	assert.Equal(t, []string{"fac-001", "fac-002"}, facilityIDs(result.Facilities))
	assert.Equal(t, 2, result.Stats.Facilities)
	assert.Equal(t, []string{"fb-001", "fb-002"}, feedbackIDs(result.RecentFeedback))
	assert.Equal(t, 1, result.Stats.PendingFeedback)
	assert.Equal(t, 1, result.Stats.PendingRecommendations)
	assert.Equal(t, 1, result.Stats.PendingReports)
	assert.Zero(t, result.Stats.TotalUsers)
	assert.Empty(t, result.MonthlyUtilization)

	michael := models.Identity{ID: "8", Name: "Michael Kananga", Role: models.RoleStaff, Department: "Chemistry"}
	result, _, err = svc.Dashboard(context.Background(), michael)
	require.NoError(t, err)
	assert.Equal(t, []string{"fac-003", "fac-004", "fac-009"}, facilityIDs(result.Facilities))
}

func TestDashboardServiceStudent_ShowsOwnFeedbackAndUpdates(t *testing.T) {
	svc, _ := newDashboardFixture(nil)

	result, _, err := svc.Dashboard(context.Background(), simon)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, result.Role)
	assert.Len(t, result.Facilities, 4)
	assert.Equal(t, 11, result.Stats.Facilities)
	assert.Equal(t, 5, result.Stats.TotalFeedback)
	assert.Equal(t, 3, result.Stats.PendingFeedback)
	assert.Equal(t, 1, result.Stats.ResolvedFeedback)
	assert.Len(t, result.RecentFeedback, 3)
	require.Len(t, result.Announcements, 3)
	assert.Equal(t, "Library Hours Extended", result.Announcements[0].Title)
	assert.Empty(t, result.Recommendations)
	assert.Equal(t, time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC), result.GeneratedAt)
}

func TestDashboardServiceAnalyticsFallback(t *testing.T) {
	svc, params := newDashboardFixture(nil)
	params.Analytics = failingAnalytics{}
	svc = NewDashboardService(params)

	result, _, err := svc.Dashboard(context.Background(), planner)
	require.NoError(t, err)
	assert.Empty(t, result.MonthlyUtilization)
	assert.Equal(t, 11, result.Stats.Facilities)
}

func TestDashboardServiceProviderFailure(t *testing.T) {
	svc, params := newDashboardFixture(nil)
	params.Reports = &fakeDashboardReports{err: appErrors.ErrUnavailable}
	svc = NewDashboardService(params)

	_, _, err := svc.Dashboard(context.Background(), karangwa)
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrUnavailable)
}

func TestDashboardServiceValidation(t *testing.T) {
	svc := NewDashboardService(DashboardServiceParams{})
	_, _, err := svc.Dashboard(context.Background(), models.Identity{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	fixture, _ := newDashboardFixture(nil)
	_, _, err = fixture.Dashboard(context.Background(), models.Identity{ID: "x", Role: "guest"})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}
