package models

import "time"

// FacilityType classifies campus spaces.
type FacilityType string

const (
	FacilityClassroom    FacilityType = "classroom"
	FacilityLaboratory   FacilityType = "laboratory"
	FacilityOffice       FacilityType = "office"
	FacilityLibrary      FacilityType = "library"
	FacilityRecreational FacilityType = "recreational"
	FacilityHostel       FacilityType = "hostel"
	FacilityCafeteria    FacilityType = "cafeteria"
)

// FacilityStatus describes whether a facility can be used.
type FacilityStatus string

const (
	FacilityOperational  FacilityStatus = "operational"
	FacilityMaintenance  FacilityStatus = "maintenance"
	FacilityConstruction FacilityStatus = "construction"
	FacilityClosed       FacilityStatus = "closed"
)

// Facility is a managed campus space.
type Facility struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	Type                FacilityType   `json:"type"`
	Location            string         `json:"location"`
	Capacity            int            `json:"capacity"`
	CurrentOccupancy    int            `json:"current_occupancy"`
	Department          string         `json:"department,omitempty"`
	Status              FacilityStatus `json:"status"`
	LastMaintenanceDate string         `json:"last_maintenance_date,omitempty"`
	Features            []string       `json:"features"`
	Images              []string       `json:"images,omitempty"`
	Description         string         `json:"description,omitempty"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

// Utilization returns occupancy as a percentage of capacity clamped to [0, 100].
func (f Facility) Utilization() float64 {
	if f.Capacity <= 0 || f.CurrentOccupancy <= 0 {
		return 0
	}
	pct := float64(f.CurrentOccupancy) / float64(f.Capacity) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// FacilityAssignment links a staff member to a facility they manage.
type FacilityAssignment struct {
	StaffID    string    `db:"staff_id" json:"staff_id"`
	FacilityID string    `db:"facility_id" json:"facility_id"`
	AssignedAt time.Time `db:"assigned_at" json:"assigned_at"`
}

// CreateFacilityRequest is the payload for adding a facility.
type CreateFacilityRequest struct {
	Name                string         `json:"name" validate:"required,notblank"`
	Type                FacilityType   `json:"type" validate:"required,oneof=classroom laboratory office library recreational hostel cafeteria"`
	Location            string         `json:"location" validate:"required,notblank"`
	Capacity            int            `json:"capacity" validate:"gte=0"`
	CurrentOccupancy    int            `json:"current_occupancy" validate:"gte=0"`
	Department          string         `json:"department"`
	Status              FacilityStatus `json:"status" validate:"omitempty,oneof=operational maintenance construction closed"`
	LastMaintenanceDate string         `json:"last_maintenance_date" validate:"omitempty,datetime=2006-01-02"`
	Features            []string       `json:"features"`
	Images              []string       `json:"images"`
	Description         string         `json:"description"`
}

// UpdateFacilityRequest carries a partial update; nil fields are left unchanged.
type UpdateFacilityRequest struct {
	Name                *string         `json:"name" validate:"omitempty,notblank"`
	Type                *FacilityType   `json:"type" validate:"omitempty,oneof=classroom laboratory office library recreational hostel cafeteria"`
	Location            *string         `json:"location" validate:"omitempty,notblank"`
	Capacity            *int            `json:"capacity" validate:"omitempty,gte=0"`
	CurrentOccupancy    *int            `json:"current_occupancy" validate:"omitempty,gte=0"`
	Department          *string         `json:"department"`
	Status              *FacilityStatus `json:"status" validate:"omitempty,oneof=operational maintenance construction closed"`
	LastMaintenanceDate *string         `json:"last_maintenance_date" validate:"omitempty,datetime=2006-01-02"`
	Features            []string        `json:"features"`
	Images              []string        `json:"images"`
	Description         *string         `json:"description"`
}
