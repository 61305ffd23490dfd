package models

import "time"

// FeedbackStatus is the triage state of a feedback item.
type FeedbackStatus string

const (
	FeedbackPending    FeedbackStatus = "pending"
	FeedbackInProgress FeedbackStatus = "inProgress"
	FeedbackResolved   FeedbackStatus = "resolved"
)

// Valid reports whether s is a known feedback status.
func (s FeedbackStatus) Valid() bool {
	switch s {
	case FeedbackPending, FeedbackInProgress, FeedbackResolved:
		return true
	}
	return false
}

// Urgency ranks how quickly an issue needs attention.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// FeedbackCategory groups reported issues.
type FeedbackCategory string

const (
	CategoryMaintenance FeedbackCategory = "maintenance"
	CategoryCleanliness FeedbackCategory = "cleanliness"
	CategoryEquipment   FeedbackCategory = "equipment"
	CategoryNoise       FeedbackCategory = "noise"
	CategoryTemperature FeedbackCategory = "temperature"
	CategoryOther       FeedbackCategory = "other"
)

// FeedbackCategories lists categories in display order.
var FeedbackCategories = []FeedbackCategory{
	CategoryEquipment, CategoryMaintenance, CategoryCleanliness, CategoryTemperature, CategoryNoise, CategoryOther,
}

// Comment is a note left on feedback or a recommendation.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedbackItem is an issue reported against a facility.
type FeedbackItem struct {
	ID           string           `json:"id"`
	UserID       string           `json:"user_id"`
	UserName     string           `json:"user_name"`
	UserRole     UserRole         `json:"user_role"`
	FacilityID   string           `json:"facility_id"`
	FacilityName string           `json:"facility_name"`
	Description  string           `json:"description"`
	Urgency      Urgency          `json:"urgency"`
	Status       FeedbackStatus   `json:"status"`
	Category     FeedbackCategory `json:"category"`
	CreatedAt    time.Time        `json:"created_at"`
	ResolvedAt   *time.Time       `json:"resolved_at,omitempty"`
	AssignedTo   string           `json:"assigned_to,omitempty"`
	Attachments  []string         `json:"attachments,omitempty"`
	Comments     []Comment        `json:"comments"`
}

// CreateFeedbackRequest is the feedback submission form.
type CreateFeedbackRequest struct {
	FacilityID  string           `json:"facility_id" validate:"required,notblank"`
	Description string           `json:"description" validate:"detailed"`
	Urgency     Urgency          `json:"urgency" validate:"required,oneof=low medium high"`
	Category    FeedbackCategory `json:"category" validate:"required,oneof=maintenance cleanliness equipment noise temperature other"`
	Attachments []string         `json:"attachments" validate:"max=3,dive,notblank"`
}

// UpdateFeedbackStatusRequest moves feedback through triage.
type UpdateFeedbackStatusRequest struct {
	Status     FeedbackStatus `json:"status" validate:"required,oneof=pending inProgress resolved"`
	AssignedTo string         `json:"assigned_to"`
}

// AddCommentRequest adds a comment to feedback or a recommendation.
type AddCommentRequest struct {
	Text string `json:"text" validate:"required,notblank,max=2000"`
}
