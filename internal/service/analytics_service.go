package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/ur-campus-api/internal/models"
	appErrors "github.com/noah-isme/ur-campus-api/pkg/errors"
	"github.com/noah-isme/ur-campus-api/pkg/validation"
)

const (
	// satisfactionBaseline is the survey score recorded before any recommendation shipped.
	satisfactionBaseline    = 72.0
	satisfactionPerApproval = 8.0
	maxUtilizationDays      = 366
	rankedFacilities        = 5
)

// monthlyProfile is the academic-year utilization shape, normalised so the
// average month equals the campus overall figure.
var monthlyProfile = []models.NamedValue{
	{Name: "Jan", Value: 65}, {Name: "Feb", Value: 70}, {Name: "Mar", Value: 75}, {Name: "Apr", Value: 80},
	{Name: "May", Value: 85}, {Name: "Jun", Value: 60}, {Name: "Jul", Value: 50}, {Name: "Aug", Value: 55},
	{Name: "Sep", Value: 78}, {Name: "Oct", Value: 82}, {Name: "Nov", Value: 78}, {Name: "Dec", Value: 68},
}

var timeOfDayProfile = []models.NamedValue{
	{Name: "8am", Value: 45}, {Name: "10am", Value: 75}, {Name: "12pm", Value: 85}, {Name: "2pm", Value: 90},
	{Name: "4pm", Value: 70}, {Name: "6pm", Value: 45}, {Name: "8pm", Value: 25},
}

// weekdayFactor scales a facility's current utilization per day of week.
var weekdayFactor = map[time.Weekday]float64{
	time.Monday:    1.0,
	time.Tuesday:   1.05,
	time.Wednesday: 1.1,
	time.Thursday:  1.05,
	time.Friday:    0.9,
	time.Saturday:  0.5,
	time.Sunday:    0.35,
}

var facilityTypeOrder = []models.FacilityType{
	models.FacilityClassroom,
	models.FacilityLaboratory,
	models.FacilityOffice,
	models.FacilityLibrary,
	models.FacilityRecreational,
	models.FacilityHostel,
	models.FacilityCafeteria,
}

// AnalyticsSources are the stores analytics are derived from.
type AnalyticsSources struct {
	Facilities      facilityLookup
	Feedback        feedbackLister
	Recommendations recommendationLister
}

// AnalyticsService derives campus analytics from the entity stores with cache integration.
type AnalyticsService struct {
	provider
	sources   AnalyticsSources
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewAnalyticsService constructs an analytics service.
func NewAnalyticsService(sources AnalyticsSources, cache *CacheService, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService, latency ProviderLatency) *AnalyticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validation.New()
	}
	return &AnalyticsService{
		provider:  provider{name: "analytics", latency: latency, metrics: metrics},
		sources:   sources,
		cache:     cache,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// Overview returns the campus wide analytics snapshot. The boolean indicates whether data originated from cache.
func (s *AnalyticsService) Overview(ctx context.Context) (*models.AnalyticsOverview, bool, error) {
	return cachedAnalytics(ctx, s, makeAnalyticsCacheKey("overview"), "overview", s.latency.Report, s.buildOverview)
}

// FacilityUtilizationByDate returns one utilization point per day in [from, to).
func (s *AnalyticsService) FacilityUtilizationByDate(ctx context.Context, query models.UtilizationQuery) ([]models.DailyUtilization, bool, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, false, validation.Error(err)
	}
	from, _ := time.Parse("2006-01-02", query.From)
	to, _ := time.Parse("2006-01-02", query.To)
	days := int(math.Ceil(to.Sub(from).Hours() / 24))
	if days < 0 {
		return nil, false, appErrors.WithDetails(appErrors.ErrValidation, map[string]string{"to": "to must not be before from"})
	}
	if days > maxUtilizationDays {
		return nil, false, appErrors.WithDetails(appErrors.ErrValidation, map[string]string{"to": fmt.Sprintf("range must not exceed %d days", maxUtilizationDays)})
	}

	key := makeAnalyticsCacheKey("utilization", query.FacilityID, query.From, query.To)
	return cachedAnalytics(ctx, s, key, "utilization", s.latency.Detail, func(ctx context.Context) ([]models.DailyUtilization, error) {
		facility, err := s.sources.Facilities.FindByID(ctx, query.FacilityID)
		if err != nil {
			return nil, storeError(err, "facility not found", "failed to load facility")
		}
		return dailyUtilization(*facility, from, days), nil
	})
}

// FeedbackByTimeframe counts submitted feedback per bucket ending today.
func (s *AnalyticsService) FeedbackByTimeframe(ctx context.Context, query models.FeedbackTrendQuery) ([]models.FeedbackTrendPoint, bool, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, false, validation.Error(err)
	}
	timeframe := query.Timeframe
	if timeframe == "" {
		timeframe = models.TimeframeYear
	}
	now := s.now().UTC()
	key := makeAnalyticsCacheKey("feedback", string(timeframe), now.Format("2006-01-02"))
	return cachedAnalytics(ctx, s, key, "feedback", s.latency.Detail, func(ctx context.Context) ([]models.FeedbackTrendPoint, error) {
		items, err := s.sources.Feedback.List(ctx)
		if err != nil {
			return nil, storeError(err, "feedback not found", "failed to list feedback")
		}
		return feedbackTrend(items, timeframe, now), nil
	})
}

// AIEffectiveness summarises what approved recommendations delivered.
func (s *AnalyticsService) AIEffectiveness(ctx context.Context) (*models.AIEffectiveness, bool, error) {
	return cachedAnalytics(ctx, s, makeAnalyticsCacheKey("ai-effectiveness"), "ai_effectiveness", s.latency.Detail, func(ctx context.Context) (*models.AIEffectiveness, error) {
		recs, err := s.sources.Recommendations.List(ctx)
		if err != nil {
			return nil, storeError(err, "recommendation not found", "failed to list recommendations")
		}
		out := &models.AIEffectiveness{UserSatisfactionBefore: satisfactionBaseline}
		for _, rec := range recs {
			if rec.Status != models.RecommendationApproved {
				continue
			}
			out.RecommendationsImplemented++
			if rec.Savings != nil {
				out.TotalSavings += rec.Savings.Cost
				out.SpaceOptimized += math.Max(rec.Savings.Space, 0)
				out.AvailabilityIncreased += rec.Savings.Time
			}
		}
		out.UserSatisfactionAfter = math.Min(100, satisfactionBaseline+satisfactionPerApproval*float64(out.RecommendationsImplemented))
		return out, nil
	})
}

func (s *AnalyticsService) buildOverview(ctx context.Context) (*models.AnalyticsOverview, error) {
	facilities, err := s.sources.Facilities.List(ctx)
	if err != nil {
		return nil, storeError(err, "facility not found", "failed to list facilities")
	}
	feedback, err := s.sources.Feedback.List(ctx)
	if err != nil {
		return nil, storeError(err, "feedback not found", "failed to list feedback")
	}
	recs, err := s.sources.Recommendations.List(ctx)
	if err != nil {
		return nil, storeError(err, "recommendation not found", "failed to list recommendations")
	}

	overall := averageUtilization(facilities)
	out := &models.AnalyticsOverview{
		OverallUtilization:     round1(overall),
		MonthlyUtilization:     scaleProfile(monthlyProfile, overall),
		UtilizationByType:      utilizationByType(facilities),
		FeedbackByCategory:     feedbackByCategory(feedback),
		UtilizationByTimeOfDay: append([]models.NamedValue(nil), timeOfDayProfile...),
	}
	for _, rec := range recs {
		if rec.Savings == nil || (rec.Status != models.RecommendationPending && rec.Status != models.RecommendationApproved) {
			continue
		}
		out.SavingsPotential.Cost += rec.Savings.Cost
		out.SavingsPotential.Space += rec.Savings.Space
		out.SavingsPotential.Time += rec.Savings.Time
	}
	out.TopFacilities, out.LowUtilizationFacilities = rankFacilities(facilities)
	return out, nil
}

// cachedAnalytics serves key from cache or computes, stores and returns a fresh value.
func cachedAnalytics[T any](ctx context.Context, s *AnalyticsService, key, op string, delay time.Duration, compute func(context.Context) (T, error)) (T, bool, error) {
	var out T
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, key, &out); err != nil {
			return out, false, fmt.Errorf("get %s cache: %w", op, err)
		} else if hit {
			return out, true, nil
		}
	}

	err := s.call(ctx, op, delay, func() (err error) {
		out, err = compute(ctx)
		return err
	})
	if err != nil {
		var zero T
		return zero, false, storeError(err, "", "failed to compute analytics")
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, out, 0); err != nil {
			s.logger.Warn("cache analytics", zap.String("op", op), zap.Error(err))
		}
	}
	return out, false, nil
}

func averageUtilization(facilities []models.Facility) float64 {
	if len(facilities) == 0 {
		return 0
	}
	var total float64
	for _, f := range facilities {
		total += f.Utilization()
	}
	return total / float64(len(facilities))
}

func scaleProfile(profile []models.NamedValue, overall float64) []models.NamedValue {
	var mean float64
	for _, p := range profile {
		mean += p.Value
	}
	mean /= float64(len(profile))

	out := make([]models.NamedValue, len(profile))
	for i, p := range profile {
		out[i] = models.NamedValue{Name: p.Name, Value: round1(math.Min(100, p.Value*overall/mean))}
	}
	return out
}

func utilizationByType(facilities []models.Facility) []models.NamedValue {
	groups := make(map[models.FacilityType][]models.Facility)
	for _, f := range facilities {
		groups[f.Type] = append(groups[f.Type], f)
	}
	out := make([]models.NamedValue, 0, len(groups))
	for _, typ := range facilityTypeOrder {
		if rows, ok := groups[typ]; ok {
			out = append(out, models.NamedValue{Name: string(typ), Value: round1(averageUtilization(rows))})
		}
	}
	return out
}

func feedbackByCategory(items []models.FeedbackItem) []models.CategoryCount {
	counts := make(map[string]int)
	for _, item := range items {
		counts[string(item.Category)]++
	}
	out := make([]models.CategoryCount, 0, len(counts))
	for category, count := range counts {
		out = append(out, models.CategoryCount{Category: category, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func rankFacilities(facilities []models.Facility) (top, low []models.FacilityUtilization) {
	ranked := make([]models.FacilityUtilization, 0, len(facilities))
	for _, f := range facilities {
		ranked = append(ranked, models.FacilityUtilization{ID: f.ID, Name: f.Name, Utilization: round1(f.Utilization())})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Utilization != ranked[j].Utilization {
			return ranked[i].Utilization > ranked[j].Utilization
		}
		return ranked[i].ID < ranked[j].ID
	})
	n := rankedFacilities
	if n > len(ranked) {
		n = len(ranked)
	}
	top = append(top, ranked[:n]...)

	asc := make([]models.FacilityUtilization, len(ranked))
	copy(asc, ranked)
	sort.SliceStable(asc, func(i, j int) bool {
		if asc[i].Utilization != asc[j].Utilization {
			return asc[i].Utilization < asc[j].Utilization
		}
		return asc[i].ID < asc[j].ID
	})
	low = append(low, asc[:n]...)
	return top, low
}

func dailyUtilization(f models.Facility, from time.Time, days int) []models.DailyUtilization {
	base := f.Utilization()
	out := make([]models.DailyUtilization, 0, days)
	for i := 0; i < days; i++ {
		day := from.AddDate(0, 0, i)
		out = append(out, models.DailyUtilization{
			Date:        day.Format("2006-01-02"),
			Utilization: round1(math.Min(100, base*weekdayFactor[day.Weekday()])),
		})
	}
	return out
}

type trendBucket struct {
	label      string
	start, end time.Time
}

func feedbackBuckets(timeframe models.FeedbackTimeframe, now time.Time) []trendBucket {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	daily := func(n int) []trendBucket {
		out := make([]trendBucket, 0, n)
		for i := n - 1; i >= 0; i-- {
			start := today.AddDate(0, 0, -i)
			out = append(out, trendBucket{label: start.Format("Jan 2"), start: start, end: start.AddDate(0, 0, 1)})
		}
		return out
	}

	switch timeframe {
	case models.TimeframeWeek:
		return daily(7)
	case models.TimeframeMonth:
		return daily(30)
	case models.TimeframeQuarter:
		out := make([]trendBucket, 0, 12)
		end := today.AddDate(0, 0, 1)
		first := end.AddDate(0, 0, -7*12)
		for i := 0; i < 12; i++ {
			start := first.AddDate(0, 0, 7*i)
			out = append(out, trendBucket{label: fmt.Sprintf("Week %d", i+1), start: start, end: start.AddDate(0, 0, 7)})
		}
		return out
	default:
		month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		out := make([]trendBucket, 0, 12)
		for i := 11; i >= 0; i-- {
			start := month.AddDate(0, -i, 0)
			out = append(out, trendBucket{label: start.Format("Jan"), start: start, end: start.AddDate(0, 1, 0)})
		}
		return out
	}
}

func feedbackTrend(items []models.FeedbackItem, timeframe models.FeedbackTimeframe, now time.Time) []models.FeedbackTrendPoint {
	buckets := feedbackBuckets(timeframe, now)
	out := make([]models.FeedbackTrendPoint, len(buckets))
	for i, b := range buckets {
		out[i].Label = b.label
		for _, item := range items {
			created := item.CreatedAt.UTC()
			if !created.Before(b.start) && created.Before(b.end) {
				out[i].Count++
			}
		}
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func makeAnalyticsCacheKey(parts ...string) string {
	var builder strings.Builder
	builder.Grow(len(parts) * 16)
	builder.WriteString("analytics")
	for _, part := range parts {
		if part == "" {
			continue
		}
		builder.WriteByte(':')
		builder.WriteString(strings.ReplaceAll(part, ":", "|"))
	}
	return builder.String()
}
