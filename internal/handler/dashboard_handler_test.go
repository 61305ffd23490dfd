package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ur-campus-api/internal/models"
	appErrors "github.com/noah-isme/ur-campus-api/pkg/errors"
)

type fakeDashboardSrv struct {
	resp     *models.Dashboard
	hit      bool
	err      error
	lastUser models.Identity
}

func (f *fakeDashboardSrv) Dashboard(_ context.Context, identity models.Identity) (*models.Dashboard, bool, error) {
	f.lastUser = identity
	return f.resp, f.hit, f.err
}

func TestDashboardHandlerRequiresSession(t *testing.T) {
	handler := NewDashboardHandler(&fakeDashboardSrv{})

	c, w := newGinContext(http.MethodGet, "/dashboard", nil)
	handler.Get(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDashboardHandlerReportsCacheHit(t *testing.T) {
	srv := &fakeDashboardSrv{
		resp: &models.Dashboard{Role: models.RoleStaff, Stats: models.DashboardStats{Facilities: 3}},
		hit:  true,
	}
	handler := NewDashboardHandler(srv)

	c, w := newGinContext(http.MethodGet, "/dashboard", nil)
	withIdentity(c, staffIdentity)
	handler.Get(c)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body.Meta["cache_hit"])
	assert.Contains(t, body.Meta, "processing_time_ms")
	assert.Contains(t, string(body.Data), `"role":"staff"`)
	assert.Equal(t, staffIdentity.ID, srv.lastUser.ID)
}

func TestDashboardHandlerPropagatesForbidden(t *testing.T) {
	handler := NewDashboardHandler(&fakeDashboardSrv{err: appErrors.Clone(appErrors.ErrForbidden, "no dashboard for this role")})

	c, w := newGinContext(http.MethodGet, "/dashboard", nil)
	withIdentity(c, models.Identity{ID: "x", Role: "guest"})
	handler.Get(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "no dashboard for this role", decode(t, w).Error.Message)
}
