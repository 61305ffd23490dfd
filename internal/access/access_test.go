package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ur-campus-api/internal/models"
)

func authenticated(role models.UserRole) models.SessionState {
	return models.Authenticated(models.Identity{ID: "1", Role: role})
}

func TestGateLoadingRendersNothing(t *testing.T) {
	var loading models.SessionState
	d := Gate{}.Evaluate(adminOnly, loading, "/users")
	assert.Equal(t, Decision{Outcome: OutcomeLoading}, d)
}

func TestGateRedirectsAnonymousToLogin(t *testing.T) {
	d := Gate{}.Evaluate(nil, models.Anonymous(), "/facilities/fac-001")
	assert.Equal(t, OutcomeRedirectLogin, d.Outcome)
	assert.Equal(t, "/facilities/fac-001", d.From)
	assert.Equal(t, "/login?from=%2Ffacilities%2Ffac-001", d.Redirect)
}

func TestGateDeniesWrongRoleWithMessage(t *testing.T) {
	d := Gate{}.Evaluate(adminAndStaff, authenticated(models.RoleStudent), "/reports")
	assert.Equal(t, OutcomeDenied, d.Outcome)
	assert.Equal(t, UnauthorizedPath, d.Redirect)
	assert.Equal(t, "You don't have permission to access this page. Required role: admin, staff", d.Message)
}

func TestGateGrantsIffRoleAllowedOrUnset(t *testing.T) {
	roleSets := [][]models.UserRole{nil, adminOnly, adminAndStaff, {models.RoleStudent}}
	for _, allowed := range roleSets {
		for _, role := range models.Roles {
			want := len(allowed) == 0 || hasRole(allowed, role)
			got := Gate{}.Evaluate(allowed, authenticated(role), "/x").Allowed()
			assert.Equal(t, want, got, "role %s allowed %v", role, allowed)
		}
	}
}

func TestMatchSegments(t *testing.T) {
	r, ok := Match("/facilities/fac-001")
	require.True(t, ok)
	assert.Equal(t, "/facilities/:id", r.Pattern)

	r, ok = Match("/feedback/new")
	require.True(t, ok)
	assert.Equal(t, "/feedback/new", r.Pattern)

	r, ok = Match("/users?tab=pending")
	require.True(t, ok)
	assert.Equal(t, "/users", r.Pattern)

	r, ok = Match("/")
	require.True(t, ok)
	assert.Equal(t, "/", r.Pattern)

	_, ok = Match("/facilities/fac-001/edit")
	assert.False(t, ok)
}

func TestResolveUsesRouteTable(t *testing.T) {
	g := Gate{}
	assert.Equal(t, OutcomeAllow, Resolve(g, models.Anonymous(), "/login").Outcome)
	assert.Equal(t, OutcomeRedirectLogin, Resolve(g, models.Anonymous(), "/").Outcome)
	assert.Equal(t, OutcomeDenied, Resolve(g, authenticated(models.RoleStaff), "/users").Outcome)
	assert.Equal(t, OutcomeAllow, Resolve(g, authenticated(models.RoleStaff), "/predictive-planning").Outcome)
	assert.Equal(t, OutcomeAllow, Resolve(g, authenticated(models.RoleStudent), "/facilities/fac-003").Outcome)
	assert.Equal(t, OutcomeDenied, Resolve(g, authenticated(models.RoleStudent), "/analytics").Outcome)
}

func TestEveryMenuItemIsPermitted(t *testing.T) {
	for _, role := range models.Roles {
		menu := Menu(role)
		require.NotEmpty(t, menu, role)
		for _, item := range menu {
			assert.True(t, Permits(role, item.Route), "%s cannot open %s", role, item.Route)
		}
	}
}

func TestMenuForUnknownRoleIsEmpty(t *testing.T) {
	assert.Empty(t, Menu("guest"))
	assert.NotNil(t, Menu("guest"))
}

func TestMenuReturnsCopy(t *testing.T) {
	m := Menu(models.RoleAdmin)
	m[0].Label = "changed"
	assert.Equal(t, "Dashboard", Menu(models.RoleAdmin)[0].Label)
}
