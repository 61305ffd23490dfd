package models

import "time"

// RecommendationType classifies an AI suggestion.
type RecommendationType string

const (
	RecommendationExpansion    RecommendationType = "expansion"
	RecommendationRelocation   RecommendationType = "relocation"
	RecommendationMaintenance  RecommendationType = "maintenance"
	RecommendationScheduling   RecommendationType = "scheduling"
	RecommendationOptimization RecommendationType = "optimization"
)

// Impact ranks the expected effect of a recommendation.
type Impact string

const (
	ImpactLow    Impact = "low"
	ImpactMedium Impact = "medium"
	ImpactHigh   Impact = "high"
)

// RecommendationStatus is the review state of a recommendation.
type RecommendationStatus string

const (
	RecommendationPending  RecommendationStatus = "pending"
	RecommendationApproved RecommendationStatus = "approved"
	RecommendationRejected RecommendationStatus = "rejected"
	RecommendationFlagged  RecommendationStatus = "flagged"
)

// Savings estimates cost (currency), space (sq ft) and time (hours) recovered.
type Savings struct {
	Cost  float64 `json:"cost"`
	Space float64 `json:"space"`
	Time  float64 `json:"time"`
}

// Implementation describes the effort a recommendation needs.
type Implementation struct {
	Difficulty    string   `json:"difficulty"`
	TimeFrame     string   `json:"time_frame"`
	EstimatedCost *float64 `json:"estimated_cost,omitempty"`
}

// AIRecommendation is a generated suggestion awaiting review.
type AIRecommendation struct {
	ID             string               `json:"id"`
	Title          string               `json:"title"`
	Description    string               `json:"description"`
	Type           RecommendationType   `json:"type"`
	Impact         Impact               `json:"impact"`
	Status         RecommendationStatus `json:"status"`
	AIConfidence   int                  `json:"ai_confidence"`
	FacilityID     string               `json:"facility_id,omitempty"`
	FacilityName   string               `json:"facility_name,omitempty"`
	Department     string               `json:"department,omitempty"`
	Savings        *Savings             `json:"savings,omitempty"`
	Implementation *Implementation      `json:"implementation,omitempty"`
	ReviewComments []Comment            `json:"review_comments"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// UpdateRecommendationStatusRequest records a review decision.
type UpdateRecommendationStatusRequest struct {
	Status  RecommendationStatus `json:"status" validate:"required,oneof=pending approved rejected flagged"`
	Comment string               `json:"comment" validate:"max=2000"`
}
