package view

import (
	"github.com/noah-isme/ur-campus-api/internal/filter"
	"github.com/noah-isme/ur-campus-api/internal/models"
)

// FeedbackFilters are the triage filters used by staff and admins.
type FeedbackFilters struct {
	Status   string `form:"status" json:"status,omitempty"`
	Urgency  string `form:"urgency" json:"urgency,omitempty"`
	Facility string `form:"facility" json:"facility,omitempty"`
	Category string `form:"category" json:"category,omitempty"`
}

// FeedbackScope restricts staff to feedback about facilities they can see.
// Admins and students are unscoped. visibleFacilityIDs is the result of
// VisibleFacilityIDs for the same viewer.
func FeedbackScope(v Viewer, visibleFacilityIDs []string) filter.Predicate[models.FeedbackItem] {
	if !v.isStaff() {
		return nil
	}
	return filter.In(visibleFacilityIDs, func(f models.FeedbackItem) string { return f.FacilityID })
}

// MyFeedbackScope restricts a list to the viewer's own submissions.
func MyFeedbackScope(v Viewer) filter.Predicate[models.FeedbackItem] {
	id := v.Identity.ID
	return func(f models.FeedbackItem) bool { return f.UserID == id }
}

// Predicates turns the filters into list predicates.
func (f FeedbackFilters) Predicates() []filter.Predicate[models.FeedbackItem] {
	return []filter.Predicate[models.FeedbackItem]{
		filter.Equal(f.Status, func(x models.FeedbackItem) string { return string(x.Status) }),
		filter.Equal(f.Urgency, func(x models.FeedbackItem) string { return string(x.Urgency) }),
		filter.Equal(f.Facility, func(x models.FeedbackItem) string { return x.FacilityID }),
		filter.Equal(f.Category, func(x models.FeedbackItem) string { return string(x.Category) }),
	}
}
