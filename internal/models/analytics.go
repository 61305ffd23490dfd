package models

// NamedValue is a labelled percentage or count used by charts.
type NamedValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// CategoryCount counts feedback per category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// FacilityUtilization ranks a facility by utilization.
type FacilityUtilization struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Utilization float64 `json:"utilization"`
}

// AnalyticsOverview is the campus wide analytics snapshot.
type AnalyticsOverview struct {
	OverallUtilization       float64               `json:"overall_utilization"`
	MonthlyUtilization       []NamedValue          `json:"monthly_utilization"`
	UtilizationByType        []NamedValue          `json:"utilization_by_type"`
	FeedbackByCategory       []CategoryCount       `json:"feedback_by_category"`
	UtilizationByTimeOfDay   []NamedValue          `json:"utilization_by_time_of_day"`
	SavingsPotential         Savings               `json:"savings_potential"`
	TopFacilities            []FacilityUtilization `json:"top_facilities"`
	LowUtilizationFacilities []FacilityUtilization `json:"low_utilization_facilities"`
}

// DailyUtilization is one point of a facility utilization series.
type DailyUtilization struct {
	Date        string  `json:"date"`
	Utilization float64 `json:"utilization"`
}

// FeedbackTrendPoint counts feedback created within a bucket.
type FeedbackTrendPoint struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// AIEffectiveness summarises the impact of implemented recommendations.
type AIEffectiveness struct {
	RecommendationsImplemented int     `json:"recommendations_implemented"`
	TotalSavings               float64 `json:"total_savings"`
	SpaceOptimized             float64 `json:"space_optimized"`
	AvailabilityIncreased      float64 `json:"availability_increased"`
	UserSatisfactionBefore     float64 `json:"user_satisfaction_before"`
	UserSatisfactionAfter      float64 `json:"user_satisfaction_after"`
}

// FeedbackTimeframe selects the bucketing of the feedback trend.
type FeedbackTimeframe string

const (
	TimeframeWeek    FeedbackTimeframe = "week"
	TimeframeMonth   FeedbackTimeframe = "month"
	TimeframeQuarter FeedbackTimeframe = "quarter"
	TimeframeYear    FeedbackTimeframe = "year"
)

// UtilizationQuery asks for a facility's daily utilization between two dates.
// To is exclusive.
type UtilizationQuery struct {
	FacilityID string `form:"facility_id" json:"facility_id" validate:"required"`
	From       string `form:"from" json:"from" validate:"required,datetime=2006-01-02"`
	To         string `form:"to" json:"to" validate:"required,datetime=2006-01-02"`
}

// FeedbackTrendQuery selects the feedback trend timeframe.
type FeedbackTrendQuery struct {
	Timeframe FeedbackTimeframe `form:"timeframe" json:"timeframe" validate:"omitempty,oneof=week month quarter year"`
}
