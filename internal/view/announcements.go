package view

import (
	"github.com/noah-isme/ur-campus-api/internal/filter"
	"github.com/noah-isme/ur-campus-api/internal/models"
)

// AnnouncementFilters narrow the campus updates page.
type AnnouncementFilters struct {
	Category string `form:"category" json:"category,omitempty"`
	Facility string `form:"facility" json:"facility,omitempty"`
}

// Predicates turns the filters into list predicates.
func (f AnnouncementFilters) Predicates() []filter.Predicate[models.Announcement] {
	return []filter.Predicate[models.Announcement]{
		filter.Equal(f.Category, func(a models.Announcement) string { return string(a.Category) }),
		filter.EqualFold(f.Facility, func(a models.Announcement) string { return a.Facility }),
	}
}
