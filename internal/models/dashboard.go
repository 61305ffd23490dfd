package models

import "time"

// DashboardStats are the headline counters of a role dashboard. Fields that
// do not apply to a role stay zero and are omitted.
type DashboardStats struct {
	Facilities             int `json:"facilities"`
	Students               int `json:"students,omitempty"`
	Staff                  int `json:"staff,omitempty"`
	TotalUsers             int `json:"total_users,omitempty"`
	PendingApprovals       int `json:"pending_approvals,omitempty"`
	TotalFeedback          int `json:"total_feedback,omitempty"`
	PendingFeedback        int `json:"pending_feedback"`
	HighUrgencyFeedback    int `json:"high_urgency_feedback,omitempty"`
	ResolvedFeedback       int `json:"resolved_feedback,omitempty"`
	PendingRecommendations int `json:"pending_recommendations,omitempty"`
	PendingReports         int `json:"pending_reports,omitempty"`
}

// Dashboard is the role specific landing payload.
type Dashboard struct {
	Role               UserRole           `json:"role"`
	Stats              DashboardStats     `json:"stats"`
	Facilities         []Facility         `json:"facilities,omitempty"`
	RecentFeedback     []FeedbackItem     `json:"recent_feedback,omitempty"`
	Recommendations    []AIRecommendation `json:"recommendations,omitempty"`
	Announcements      []Announcement     `json:"announcements,omitempty"`
	MonthlyUtilization []NamedValue       `json:"monthly_utilization,omitempty"`
	UtilizationByType  []NamedValue       `json:"utilization_by_type,omitempty"`
	GeneratedAt        time.Time          `json:"generated_at"`
}
