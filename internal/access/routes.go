package access

import (
	"strings"

	"github.com/noah-isme/ur-campus-api/internal/models"
)

// Route is a shell page and the roles allowed to open it.
type Route struct {
	Pattern string            `json:"pattern"`
	Public  bool              `json:"public"`
	Roles   []models.UserRole `json:"roles,omitempty"`
}

var (
	adminOnly     = []models.UserRole{models.RoleAdmin}
	adminAndStaff = []models.UserRole{models.RoleAdmin, models.RoleStaff}
)

// Routes is the dashboard navigation surface. Roles nil means any authenticated identity.
var Routes = []Route{
	{Pattern: "/login", Public: true},
	{Pattern: "/register", Public: true},
	{Pattern: "/unauthorized", Public: true},
	{Pattern: "/"},
	{Pattern: "/users", Roles: adminOnly},
	{Pattern: "/analytics", Roles: adminOnly},
	{Pattern: "/recommendations", Roles: adminAndStaff},
	{Pattern: "/reports", Roles: adminAndStaff},
	{Pattern: "/predictive-planning", Roles: adminAndStaff},
	{Pattern: "/facilities"},
	{Pattern: "/facilities/:id"},
	{Pattern: "/feedback"},
	{Pattern: "/feedback/new"},
	{Pattern: "/my-feedback"},
	{Pattern: "/profile"},
	{Pattern: "/settings"},
	{Pattern: "/announcements"},
}

// Match finds the route for path. Static segments win over parameters.
func Match(path string) (Route, bool) {
	segments := split(path)
	var best Route
	bestScore := -1
	for _, r := range Routes {
		score, ok := matchSegments(split(r.Pattern), segments)
		if ok && score > bestScore {
			best, bestScore = r, score
		}
	}
	return best, bestScore >= 0
}

// Resolve evaluates the gate for path. Unknown paths are gated like an
// authenticated page with no role restriction; public pages always allow.
func Resolve(g Gate, state models.SessionState, path string) Decision {
	route, ok := Match(path)
	if ok && route.Public {
		return Decision{Outcome: OutcomeAllow}
	}
	return g.Evaluate(route.Roles, state, path)
}

// Permits reports whether role may open path according to the route table.
func Permits(role models.UserRole, path string) bool {
	route, ok := Match(path)
	if !ok {
		return false
	}
	if route.Public || len(route.Roles) == 0 {
		return true
	}
	return hasRole(route.Roles, role)
}

func split(path string) []string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return []string{}
	}
	return strings.Split(trimmed, "/")
}

func matchSegments(pattern, path []string) (int, bool) {
	if len(pattern) != len(path) {
		return 0, false
	}
	score := 0
	for i, seg := range pattern {
		if strings.HasPrefix(seg, ":") {
			if path[i] == "" {
				return 0, false
			}
			continue
		}
		if seg != path[i] {
			return 0, false
		}
		score++
	}
	return score, true
}
