package access

import "github.com/noah-isme/ur-campus-api/internal/models"

// NavItem is one entry of the sidebar menu.
type NavItem struct {
	Route string `json:"route"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

var menus = map[models.UserRole][]NavItem{
	models.RoleAdmin: {
		{Route: "/", Label: "Dashboard", Icon: "layout-dashboard"},
		{Route: "/facilities", Label: "Facilities", Icon: "building"},
		{Route: "/users", Label: "User Management", Icon: "users"},
		{Route: "/feedback", Label: "Feedback", Icon: "message-square"},
		{Route: "/recommendations", Label: "AI Recommendations", Icon: "lightbulb"},
		{Route: "/analytics", Label: "Analytics", Icon: "bar-chart"},
		{Route: "/reports", Label: "Reports", Icon: "file-text"},
		{Route: "/settings", Label: "Settings", Icon: "settings"},
		{Route: "/predictive-planning", Label: "Predictive Planning", Icon: "trending-up"},
	},
	models.RoleStaff: {
		{Route: "/", Label: "Dashboard", Icon: "layout-dashboard"},
		{Route: "/facilities", Label: "My Facilities", Icon: "building"},
		{Route: "/feedback", Label: "Feedback", Icon: "message-square"},
		{Route: "/reports", Label: "Submit Report", Icon: "file-text"},
		{Route: "/recommendations", Label: "AI Suggestions", Icon: "lightbulb"},
		{Route: "/profile", Label: "My Profile", Icon: "user"},
		{Route: "/predictive-planning", Label: "Predictive Planning", Icon: "trending-up"},
	},
	models.RoleStudent: {
		{Route: "/", Label: "Dashboard", Icon: "layout-dashboard"},
		{Route: "/facilities", Label: "Campus Facilities", Icon: "building"},
		{Route: "/feedback/new", Label: "Submit Feedback", Icon: "message-square-plus"},
		{Route: "/my-feedback", Label: "My Feedback", Icon: "message-square"},
		{Route: "/announcements", Label: "Campus Updates", Icon: "bell"},
		{Route: "/profile", Label: "My Profile", Icon: "user"},
	},
}

// Menu returns a copy of role's menu. Unknown roles get an empty menu.
func Menu(role models.UserRole) []NavItem {
	return append([]NavItem{}, menus[role]...)
}
