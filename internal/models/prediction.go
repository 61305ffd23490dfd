package models

import "time"

// InfrastructureType is the kind of capacity a prediction covers.
type InfrastructureType string

const (
	InfraClassroom  InfrastructureType = "classroom"
	InfraLab        InfrastructureType = "lab"
	InfraParking    InfrastructureType = "parking"
	InfraHostel     InfrastructureType = "hostel"
	InfraLibrary    InfrastructureType = "library"
	InfraOffice     InfrastructureType = "office"
	InfraRestaurant InfrastructureType = "restaurant"
	InfraRecreation InfrastructureType = "recreation"
	InfraPrinting   InfrastructureType = "printing"
)

// Priority ranks prediction urgency.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// PredictionDetails holds the projected figures for a prediction.
type PredictionDetails struct {
	CurrentUtilization      float64 `json:"current_utilization"`
	ProjectedUtilization    float64 `json:"projected_utilization"`
	RecommendedAction       string  `json:"recommended_action"`
	EstimatedCost           float64 `json:"estimated_cost"`
	SpaceNeeded             float64 `json:"space_needed"`
	ImplementationTimeframe string  `json:"implementation_timeframe,omitempty"`
}

// ImpactFactors lists the drivers behind a prediction.
type ImpactFactors struct {
	StudentGrowth     float64 `json:"student_growth"`
	UtilizationTrend  float64 `json:"utilization_trend"`
	FeedbackScore     float64 `json:"feedback_score"`
	MaintenanceStatus string  `json:"maintenance_status"`
}

// DatasetRef identifies the dataset applied to a prediction.
type DatasetRef struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Source string `json:"source"`
}

// InfrastructurePrediction is a projected capacity need.
type InfrastructurePrediction struct {
	ID                    string             `json:"id"`
	Title                 string             `json:"title"`
	InfrastructureType    InfrastructureType `json:"infrastructure_type"`
	Year                  int                `json:"year"`
	CurrentCapacity       int                `json:"current_capacity"`
	RecommendedCapacity   int                `json:"recommended_capacity"`
	ProjectedStudentCount int                `json:"projected_student_count"`
	Priority              Priority           `json:"priority"`
	AIConfidence          int                `json:"ai_confidence"`
	Details               PredictionDetails  `json:"details"`
	ImpactFactors         ImpactFactors      `json:"impact_factors"`
	DatasetApplied        *DatasetRef        `json:"dataset_applied,omitempty"`
	CreatedAt             time.Time          `json:"created_at"`
}

// DatasetMetrics are the aggregate figures a campus dataset contributes.
type DatasetMetrics struct {
	StudentGrowthRate           float64 `json:"student_growth_rate"`
	AverageUtilization          float64 `json:"average_utilization"`
	InfrastructureExpansionRate float64 `json:"infrastructure_expansion_rate"`
}

// CampusDataset is an external planning dataset.
type CampusDataset struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Source      string         `json:"source"`
	LastUpdated string         `json:"last_updated"`
	Metrics     DatasetMetrics `json:"metrics"`
	DataPoints  int            `json:"data_points"`
	Tags        []string       `json:"tags"`
}

// PredictionParams drives prediction generation.
type PredictionParams struct {
	StudentGrowth      float64            `json:"student_growth" validate:"gte=-100,lte=1000"`
	InfrastructureType InfrastructureType `json:"infrastructure_type" validate:"required,oneof=classroom lab parking hostel library office restaurant recreation printing"`
	YearRange          int                `json:"year_range" validate:"gte=0,lte=50"`
}

// PopulationRequest generates a prediction from an expected student population.
type PopulationRequest struct {
	Population int `json:"population" validate:"required,gt=0"`
}

// ApplyDatasetRequest merges dataset metrics into a prediction.
type ApplyDatasetRequest struct {
	DatasetID    string `json:"dataset_id" validate:"required,notblank"`
	PredictionID string `json:"prediction_id"`
}

// PredictionModel is a saved set of prediction parameters.
type PredictionModel struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	DatasetIDs  []string         `json:"dataset_ids"`
	Parameters  PredictionParams `json:"parameters"`
	CreatedBy   string           `json:"created_by"`
	CreatedAt   time.Time        `json:"created_at"`
}

// SavePredictionModelRequest stores a named parameter set.
type SavePredictionModelRequest struct {
	Name        string           `json:"name" validate:"required,notblank,max=120"`
	Description string           `json:"description" validate:"max=500"`
	DatasetIDs  []string         `json:"dataset_ids"`
	Parameters  PredictionParams `json:"parameters"`
}

// PredictionFilter narrows prediction lists on the provider side.
type PredictionFilter struct {
	Year     string
	Type     string
	Priority string
}
