package view

import "github.com/noah-isme/ur-campus-api/internal/models"

// Viewer is the identity a page is rendered for, plus the facilities a staff
// member has been assigned to.
type Viewer struct {
	Identity models.Identity
	Assigned []string
}

func (v Viewer) assigned(facilityID string) bool {
	for _, id := range v.Assigned {
		if id == facilityID {
			return true
		}
	}
	return false
}

func (v Viewer) isStaff() bool { return v.Identity.Role == models.RoleStaff }
