package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/ur-campus-api/internal/models"
	"github.com/noah-isme/ur-campus-api/internal/view"
	appErrors "github.com/noah-isme/ur-campus-api/pkg/errors"
)

type dashboardFacilities interface {
	Viewer(ctx context.Context, identity models.Identity) (view.Viewer, error)
	Browse(ctx context.Context, v view.Viewer, filters view.FacilityFilters) ([]models.Facility, error)
}

type dashboardFeedback interface {
	Triage(ctx context.Context, v view.Viewer, filters view.FeedbackFilters) ([]models.FeedbackItem, error)
	Mine(ctx context.Context, v view.Viewer, filters view.FeedbackFilters) ([]models.FeedbackItem, error)
}

type dashboardRecommendations interface {
	Browse(ctx context.Context, v view.Viewer, filters view.RecommendationFilters) ([]models.AIRecommendation, error)
}

type dashboardReports interface {
	Browse(ctx context.Context, v view.Viewer, filters view.ReportFilters) ([]models.Report, error)
}

type dashboardAnnouncements interface {
	List(ctx context.Context) ([]models.Announcement, error)
}

type dashboardUsers interface {
	List(ctx context.Context, filter models.UserFilter) ([]models.User, error)
}

type dashboardAnalytics interface {
	Overview(ctx context.Context) (*models.AnalyticsOverview, bool, error)
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CacheTTL          time.Duration
	RecentLimit       int
	StudentFacilities int
}

// DashboardService composes role specific dashboards from parallel provider fetches.
type DashboardService struct {
	facilities      dashboardFacilities
	feedback        dashboardFeedback
	recommendations dashboardRecommendations
	reports         dashboardReports
	announcements   dashboardAnnouncements
	users           dashboardUsers
	analytics       dashboardAnalytics
	cache           *CacheService
	logger          *zap.Logger
	now             func() time.Time
	cfg             DashboardServiceConfig
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Facilities      dashboardFacilities
	Feedback        dashboardFeedback
	Recommendations dashboardRecommendations
	Reports         dashboardReports
	Announcements   dashboardAnnouncements
	Users           dashboardUsers
	Analytics       dashboardAnalytics
	Cache           *CacheService
	Logger          *zap.Logger
	Config          DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	cfg := params.Config
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = 3
	}
	if cfg.StudentFacilities <= 0 {
		cfg.StudentFacilities = 4
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		facilities:      params.Facilities,
		feedback:        params.Feedback,
		recommendations: params.Recommendations,
		reports:         params.Reports,
		announcements:   params.Announcements,
		users:           params.Users,
		analytics:       params.Analytics,
		cache:           params.Cache,
		logger:          logger,
		now:             time.Now,
		cfg:             cfg,
	}
}

// Dashboard returns the dashboard of identity's role and indicates cache utilisation.
func (s *DashboardService) Dashboard(ctx context.Context, identity models.Identity) (*models.Dashboard, bool, error) {
	if identity.ID == "" {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "identity is required")
	}
	cacheKey := fmt.Sprintf("dash:%s:%s", identity.Role, identity.ID)
	if summary, hit, err := s.tryCache(ctx, cacheKey); err != nil {
		return nil, false, err
	} else if hit {
		return summary, true, nil
	}

	v, err := s.facilities.Viewer(ctx, identity)
	if err != nil {
		return nil, false, err
	}

	var summary *models.Dashboard
	switch identity.Role {
	case models.RoleAdmin:
		summary, err = s.composeAdmin(ctx, v)
	case models.RoleStaff:
		summary, err = s.composeStaff(ctx, v)
	case models.RoleStudent:
		summary, err = s.composeStudent(ctx, v)
	default:
		return nil, false, appErrors.Clone(appErrors.ErrForbidden, "no dashboard for this role")
	}
	if err != nil {
		return nil, false, err
	}
	summary.Role = identity.Role
	summary.GeneratedAt = s.now().UTC()

	s.persistCache(ctx, cacheKey, summary)
	return summary, false, nil
}

func (s *DashboardService) tryCache(ctx context.Context, key string) (*models.Dashboard, bool, error) {
	if s.cache == nil {
		return nil, false, nil
	}
	var cached models.Dashboard
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		return nil, false, err
	}
	if hit {
		return &cached, true, nil
	}
	return nil, false, nil
}

func (s *DashboardService) persistCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cfg.CacheTTL); err != nil && s.logger != nil {
		s.logger.Warn("dashboard cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *DashboardService) composeAdmin(ctx context.Context, v view.Viewer) (*models.Dashboard, error) {
	var (
		facilities []models.Facility
		feedback   []models.FeedbackItem
		recs       []models.AIRecommendation
		users      []models.User
		overview   *models.AnalyticsOverview
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		facilities, err = s.facilities.Browse(gctx, v, view.FacilityFilters{})
		return err
	})
	g.Go(func() (err error) {
		feedback, err = s.feedback.Triage(gctx, v, view.FeedbackFilters{})
		return err
	})
	g.Go(func() (err error) {
		recs, err = s.recommendations.Browse(gctx, v, view.RecommendationFilters{})
		return err
	})
	g.Go(func() (err error) {
		users, err = s.users.List(gctx, models.UserFilter{})
		return err
	})
	if s.analytics != nil {
		g.Go(func() error {
			out, _, err := s.analytics.Overview(gctx)
			if err != nil {
				s.logger.Warn("dashboard analytics unavailable", zap.Error(err))
				return nil
			}
			overview = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &models.Dashboard{
		RecentFeedback:  firstN(feedback, s.cfg.RecentLimit),
		Recommendations: firstN(recs, s.cfg.RecentLimit),
	}
	out.Stats.Facilities = len(facilities)
	for _, u := range users {
		switch u.Role {
		case models.RoleStudent:
			out.Stats.Students++
		case models.RoleStaff:
			out.Stats.Staff++
		}
		if u.Status == models.UserStatusPending {
			out.Stats.PendingApprovals++
		}
	}
	out.Stats.TotalUsers = len(users)
	countFeedback(&out.Stats, feedback)
	out.Stats.PendingRecommendations = countPendingRecommendations(recs)
	if overview != nil {
		out.MonthlyUtilization = overview.MonthlyUtilization
		out.UtilizationByType = overview.UtilizationByType
	}
	return out, nil
}

func (s *DashboardService) composeStaff(ctx context.Context, v view.Viewer) (*models.Dashboard, error) {
	var (
		facilities []models.Facility
		feedback   []models.FeedbackItem
		recs       []models.AIRecommendation
		reports    []models.Report
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		facilities, err = s.facilities.Browse(gctx, v, view.FacilityFilters{})
		return err
	})
	g.Go(func() (err error) {
		feedback, err = s.feedback.Triage(gctx, v, view.FeedbackFilters{})
		return err
	})
	g.Go(func() (err error) {
		recs, err = s.recommendations.Browse(gctx, v, view.RecommendationFilters{})
		return err
	})
	if s.reports != nil {
		g.Go(func() (err error) {
			reports, err = s.reports.Browse(gctx, v, view.ReportFilters{})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &models.Dashboard{
		Facilities:      facilities,
		RecentFeedback:  firstN(feedback, s.cfg.RecentLimit),
		Recommendations: firstN(recs, s.cfg.RecentLimit),
	}
	out.Stats.Facilities = len(facilities)
	countFeedback(&out.Stats, feedback)
	out.Stats.PendingRecommendations = countPendingRecommendations(recs)
	for _, r := range reports {
		if r.Status == models.ReportGenerating {
			out.Stats.PendingReports++
		}
	}
	return out, nil
}

func (s *DashboardService) composeStudent(ctx context.Context, v view.Viewer) (*models.Dashboard, error) {
	var (
		facilities    []models.Facility
		feedback      []models.FeedbackItem
		announcements []models.Announcement
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		facilities, err = s.facilities.Browse(gctx, v, view.FacilityFilters{})
		return err
	})
	g.Go(func() (err error) {
		feedback, err = s.feedback.Mine(gctx, v, view.FeedbackFilters{})
		return err
	})
	if s.announcements != nil {
		g.Go(func() (err error) {
			announcements, err = s.announcements.List(gctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &models.Dashboard{
		Facilities:     firstN(facilities, s.cfg.StudentFacilities),
		RecentFeedback: firstN(feedback, s.cfg.RecentLimit),
		Announcements:  firstN(announcements, s.cfg.RecentLimit),
	}
	out.Stats.Facilities = len(facilities)
	countFeedback(&out.Stats, feedback)
	return out, nil
}

func countFeedback(stats *models.DashboardStats, items []models.FeedbackItem) {
	stats.TotalFeedback = len(items)
	for _, item := range items {
		switch item.Status {
		case models.FeedbackPending:
			stats.PendingFeedback++
		case models.FeedbackResolved:
			stats.ResolvedFeedback++
		}
		if item.Urgency == models.UrgencyHigh {
			stats.HighUrgencyFeedback++
		}
	}
}

func countPendingRecommendations(recs []models.AIRecommendation) int {
	n := 0
	for _, r := range recs {
		if r.Status == models.RecommendationPending {
			n++
		}
	}
	return n
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		items = items[:n]
	}
	return append([]T(nil), items...)
}
