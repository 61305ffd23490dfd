package models

import "time"

// AnnouncementCategory groups campus updates.
type AnnouncementCategory string

const (
	AnnouncementOperations  AnnouncementCategory = "operations"
	AnnouncementExpansion   AnnouncementCategory = "expansion"
	AnnouncementMaintenance AnnouncementCategory = "maintenance"
	AnnouncementRenovation  AnnouncementCategory = "renovation"
)

// Announcement is a campus update shown to students.
type Announcement struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Content     string               `json:"content"`
	Category    AnnouncementCategory `json:"category"`
	Facility    string               `json:"facility"`
	Important   bool                 `json:"important"`
	PublishedAt time.Time            `json:"published_at"`
	CreatedBy   string               `json:"created_by"`
}
