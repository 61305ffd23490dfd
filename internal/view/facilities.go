package view

import (
	"strings"

	"github.com/noah-isme/ur-campus-api/internal/filter"
	"github.com/noah-isme/ur-campus-api/internal/models"
)

// FacilityFilters are the user-chosen filters on the facilities page.
type FacilityFilters struct {
	Search string `form:"search" json:"search,omitempty"`
	Type   string `form:"type" json:"type,omitempty"`
	Status string `form:"status" json:"status,omitempty"`
}

// FacilityScope limits staff to facilities of their department or assigned
// to them. Admins and students see every facility.
func FacilityScope(v Viewer) filter.Predicate[models.Facility] {
	if !v.isStaff() {
		return nil
	}
	return func(f models.Facility) bool {
		if v.Identity.Department != "" && strings.EqualFold(f.Department, v.Identity.Department) {
			return true
		}
		return v.assigned(f.ID)
	}
}

// Predicates turns the filters into list predicates.
func (f FacilityFilters) Predicates() []filter.Predicate[models.Facility] {
	return []filter.Predicate[models.Facility]{
		filter.Contains(f.Search,
			func(x models.Facility) string { return x.Name },
			func(x models.Facility) string { return x.Location },
			func(x models.Facility) string { return string(x.Type) },
		),
		filter.Equal(f.Type, func(x models.Facility) string { return string(x.Type) }),
		filter.Equal(f.Status, func(x models.Facility) string { return string(x.Status) }),
	}
}

// VisibleFacilityIDs returns the ids of facilities within the viewer's scope.
func VisibleFacilityIDs(v Viewer, facilities []models.Facility) []string {
	scoped := filter.Apply(facilities, FacilityScope(v))
	ids := make([]string, 0, len(scoped))
	for _, f := range scoped {
		ids = append(ids, f.ID)
	}
	return ids
}
