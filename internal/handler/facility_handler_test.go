package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ur-campus-api/internal/models"
	"github.com/noah-isme/ur-campus-api/internal/view"
	appErrors "github.com/noah-isme/ur-campus-api/pkg/errors"
)

type fakeFacilitySrv struct {
	facilities  []models.Facility
	viewerErr   error
	lastViewer  view.Viewer
	lastFilters view.FacilityFilters
	created     *models.CreateFacilityRequest
	assigned    [2]string
	unassigned  [2]string
}

func (f *fakeFacilitySrv) Get(_ context.Context, id string) (*models.Facility, error) {
	for _, fac := range f.facilities {
		if fac.ID == id {
			return &fac, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "facility not found")
}

func (f *fakeFacilitySrv) Create(_ context.Context, req models.CreateFacilityRequest) (*models.Facility, error) {
	f.created = &req
	return &models.Facility{ID: "fac-100", Name: req.Name, Type: req.Type}, nil
}

func (f *fakeFacilitySrv) Update(_ context.Context, id string, req models.UpdateFacilityRequest) (*models.Facility, error) {
	fac, err := f.Get(context.Background(), id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		fac.Name = *req.Name
	}
	return fac, nil
}

func (f *fakeFacilitySrv) Delete(ctx context.Context, id string) error {
	_, err := f.Get(ctx, id)
	return err
}

func (f *fakeFacilitySrv) Assign(_ context.Context, staffID, facilityID string) error {
	f.assigned = [2]string{staffID, facilityID}
	return nil
}

func (f *fakeFacilitySrv) Unassign(_ context.Context, staffID, facilityID string) error {
	f.unassigned = [2]string{staffID, facilityID}
	return nil
}

func (f *fakeFacilitySrv) Viewer(_ context.Context, identity models.Identity) (view.Viewer, error) {
	if f.viewerErr != nil {
		return view.Viewer{}, f.viewerErr
	}
	return view.Viewer{Identity: identity, Assigned: []string{"fac-002"}}, nil
}

func (f *fakeFacilitySrv) Browse(_ context.Context, v view.Viewer, filters view.FacilityFilters) ([]models.Facility, error) {
	f.lastViewer = v
	f.lastFilters = filters
	return f.facilities, nil
}

func seededFacilities() []models.Facility {
	return []models.Facility{
		{ID: "fac-001", Name: "Main Lecture Hall", Type: models.FacilityClassroom},
		{ID: "fac-002", Name: "Computer Lab 1", Type: models.FacilityLaboratory},
	}
}

func TestFacilityHandlerListBindsFiltersAndViewer(t *testing.T) {
	srv := &fakeFacilitySrv{facilities: seededFacilities()}
	handler := NewFacilityHandler(srv)

	c, w := newGinContext(http.MethodGet, "/facilities?search=lab&type=laboratory", nil)
	withIdentity(c, staffIdentity)
	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "lab", srv.lastFilters.Search)
	assert.Equal(t, "laboratory", srv.lastFilters.Type)
	assert.Equal(t, []string{"fac-002"}, srv.lastViewer.Assigned)

	body := decode(t, w)
	assert.EqualValues(t, 2, body.Meta["total"])
	var items []models.Facility
	require.NoError(t, json.Unmarshal(body.Data, &items))
	assert.Len(t, items, 2)
}

func TestFacilityHandlerListEmptyIsArray(t *testing.T) {
	handler := NewFacilityHandler(&fakeFacilitySrv{})

	c, w := newGinContext(http.MethodGet, "/facilities?status=closed", nil)
	withIdentity(c, studentIdentity)
	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(decode(t, w).Data))
}

func TestFacilityHandlerListViewerFailure(t *testing.T) {
	handler := NewFacilityHandler(&fakeFacilitySrv{viewerErr: appErrors.Clone(appErrors.ErrInternal, "failed to load assignments")})

	c, w := newGinContext(http.MethodGet, "/facilities", nil)
	withIdentity(c, staffIdentity)
	handler.List(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestFacilityHandlerGetNotFound(t *testing.T) {
	handler := NewFacilityHandler(&fakeFacilitySrv{facilities: seededFacilities()})

	c, w := newGinContext(http.MethodGet, "/facilities/fac-404", nil)
	c.Params = gin.Params{{Key: "id", Value: "fac-404"}}
	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFacilityHandlerCreate(t *testing.T) {
	srv := &fakeFacilitySrv{}
	handler := NewFacilityHandler(srv)

	payload := mustJSON(t, models.CreateFacilityRequest{Name: "Robotics Lab", Type: models.FacilityLaboratory, Location: "Block C", Capacity: 30})
	c, w := newGinContext(http.MethodPost, "/facilities", payload)
	handler.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, srv.created)
	assert.Equal(t, "Robotics Lab", srv.created.Name)
}

func TestFacilityHandlerCreateRejectsMalformedJSON(t *testing.T) {
	handler := NewFacilityHandler(&fakeFacilitySrv{})

	c, w := newGinContext(http.MethodPost, "/facilities", []byte(`{"name":`))
	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, appErrors.ErrValidation.Code, decode(t, w).Error.Code)
}

func TestFacilityHandlerAssignments(t *testing.T) {
	srv := &fakeFacilitySrv{}
	handler := NewFacilityHandler(srv)

	c, w := newGinContext(http.MethodPost, "/facilities/fac-003/assignments", []byte(`{"staff_id":"2"}`))
	c.Params = gin.Params{{Key: "id", Value: "fac-003"}}
	handler.Assign(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, [2]string{"2", "fac-003"}, srv.assigned)

	c, w = newGinContext(http.MethodPost, "/facilities/fac-003/assignments", []byte(`{}`))
	c.Params = gin.Params{{Key: "id", Value: "fac-003"}}
	handler.Assign(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, w = newGinContext(http.MethodDelete, "/facilities/fac-003/assignments/2", nil)
	c.Params = gin.Params{{Key: "id", Value: "fac-003"}, {Key: "staffId", Value: "2"}}
	handler.Unassign(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, [2]string{"2", "fac-003"}, srv.unassigned)
}
