package view

import (
	"strings"

	"github.com/noah-isme/ur-campus-api/internal/filter"
	"github.com/noah-isme/ur-campus-api/internal/models"
)

// RecommendationFilters are the filters on the recommendations page.
type RecommendationFilters struct {
	Status string `form:"status" json:"status,omitempty"`
	Impact string `form:"impact" json:"impact,omitempty"`
	Type   string `form:"type" json:"type,omitempty"`
}

// Action is something a viewer may do to a recommendation.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionFlag    Action = "flag"
)

// RecommendationScope limits staff to their department's recommendations and
// those about facilities assigned to them.
func RecommendationScope(v Viewer) filter.Predicate[models.AIRecommendation] {
	if !v.isStaff() {
		return nil
	}
	return func(r models.AIRecommendation) bool {
		if v.Identity.Department != "" && strings.EqualFold(r.Department, v.Identity.Department) {
			return true
		}
		return r.FacilityID != "" && v.assigned(r.FacilityID)
	}
}

// Predicates turns the filters into list predicates.
func (f RecommendationFilters) Predicates() []filter.Predicate[models.AIRecommendation] {
	return []filter.Predicate[models.AIRecommendation]{
		filter.Equal(f.Status, func(x models.AIRecommendation) string { return string(x.Status) }),
		filter.Equal(f.Impact, func(x models.AIRecommendation) string { return string(x.Impact) }),
		filter.Equal(f.Type, func(x models.AIRecommendation) string { return string(x.Type) }),
	}
}

// RecommendationActions lists what role may do to a recommendation in status.
// Admins approve or reject pending items and flag the rest; staff may always
// flag. Students have no actions.
func RecommendationActions(role models.UserRole, status models.RecommendationStatus) []Action {
	switch role {
	case models.RoleAdmin:
		if status == models.RecommendationPending {
			return []Action{ActionApprove, ActionReject}
		}
		return []Action{ActionFlag}
	case models.RoleStaff:
		return []Action{ActionFlag}
	default:
		return []Action{}
	}
}

// ActionStatus maps an action to the status it produces.
func ActionStatus(a Action) models.RecommendationStatus {
	switch a {
	case ActionApprove:
		return models.RecommendationApproved
	case ActionReject:
		return models.RecommendationRejected
	case ActionFlag:
		return models.RecommendationFlagged
	}
	return ""
}

// StatusAction is the inverse of ActionStatus. Moving back to pending has no action.
func StatusAction(s models.RecommendationStatus) (Action, bool) {
	switch s {
	case models.RecommendationApproved:
		return ActionApprove, true
	case models.RecommendationRejected:
		return ActionReject, true
	case models.RecommendationFlagged:
		return ActionFlag, true
	}
	return "", false
}

// CanPerform reports whether role may perform a on a recommendation in status.
func CanPerform(role models.UserRole, status models.RecommendationStatus, a Action) bool {
	for _, allowed := range RecommendationActions(role, status) {
		if allowed == a {
			return true
		}
	}
	return false
}
