package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ur-campus-api/internal/models"
	"github.com/noah-isme/ur-campus-api/internal/view"
	appErrors "github.com/noah-isme/ur-campus-api/pkg/errors"
)

type fakeViewers struct{}

func (fakeViewers) Viewer(_ context.Context, identity models.Identity) (view.Viewer, error) {
	return view.Viewer{Identity: identity}, nil
}

type fakeFeedbackSrv struct {
	page       string
	lastAuthor models.Identity
	lastStatus models.UpdateFeedbackStatusRequest
}

// fb-006 sits outside the staff test identity's facilities.
func (f *fakeFeedbackSrv) Visible(_ context.Context, v view.Viewer, id string) (*models.FeedbackItem, error) {
	switch {
	case id == "fb-006" && v.Identity.Role == models.RoleStaff:
		return nil, appErrors.Clone(appErrors.ErrForbidden, "You do not have access to this feedback")
	case id != "fb-001" && id != "fb-006":
		return nil, appErrors.Clone(appErrors.ErrNotFound, "feedback not found")
	}
	return &models.FeedbackItem{ID: id, Status: models.FeedbackPending}, nil
}

func (f *fakeFeedbackSrv) Create(_ context.Context, req models.CreateFeedbackRequest, author models.Identity) (*models.FeedbackItem, error) {
	f.lastAuthor = author
	return &models.FeedbackItem{ID: "fb-100", UserID: author.ID, FacilityID: req.FacilityID, Status: models.FeedbackPending}, nil
}

func (f *fakeFeedbackSrv) UpdateStatus(_ context.Context, id string, req models.UpdateFeedbackStatusRequest) (*models.FeedbackItem, error) {
	f.lastStatus = req
	return &models.FeedbackItem{ID: id, Status: req.Status}, nil
}

func (f *fakeFeedbackSrv) AddComment(_ context.Context, id string, req models.AddCommentRequest, author models.Identity) (*models.FeedbackItem, error) {
	f.lastAuthor = author
	return &models.FeedbackItem{ID: id, Comments: []models.Comment{{UserID: author.ID, Text: req.Text}}}, nil
}

func (f *fakeFeedbackSrv) Triage(context.Context, view.Viewer, view.FeedbackFilters) ([]models.FeedbackItem, error) {
	f.page = "triage"
	return []models.FeedbackItem{{ID: "fb-001"}}, nil
}

func (f *fakeFeedbackSrv) Mine(context.Context, view.Viewer, view.FeedbackFilters) ([]models.FeedbackItem, error) {
	f.page = "mine"
	return nil, nil
}

func TestFeedbackHandlerPages(t *testing.T) {
	srv := &fakeFeedbackSrv{}
	handler := NewFeedbackHandler(srv, fakeViewers{})

	c, w := newGinContext(http.MethodGet, "/feedback?urgency=high", nil)
	withIdentity(c, staffIdentity)
	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "triage", srv.page)
	assert.Equal(t, map[string]interface{}{"urgency": "high"}, decode(t, w).Meta["filters"])

	c, w = newGinContext(http.MethodGet, "/feedback", nil)
	withIdentity(c, studentIdentity)
	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "triage", srv.page)
	assert.Contains(t, string(decode(t, w).Data), `"id":"fb-001"`)

	c, w = newGinContext(http.MethodGet, "/feedback/mine", nil)
	withIdentity(c, studentIdentity)
	handler.Mine(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "mine", srv.page)
	assert.JSONEq(t, `[]`, string(decode(t, w).Data))
}

func TestFeedbackHandlerCreateUsesSessionAuthor(t *testing.T) {
	srv := &fakeFeedbackSrv{}
	handler := NewFeedbackHandler(srv, fakeViewers{})

	payload := mustJSON(t, models.CreateFeedbackRequest{FacilityID: "fac-001", Urgency: models.UrgencyHigh, Category: models.CategoryEquipment})
	c, w := newGinContext(http.MethodPost, "/feedback", payload)
	withIdentity(c, studentIdentity)
	handler.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, studentIdentity.ID, srv.lastAuthor.ID)
}

func TestFeedbackHandlerCreateRequiresSession(t *testing.T) {
	handler := NewFeedbackHandler(&fakeFeedbackSrv{}, fakeViewers{})

	c, w := newGinContext(http.MethodPost, "/feedback", []byte(`{}`))
	handler.Create(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFeedbackHandlerStatusAndComments(t *testing.T) {
	srv := &fakeFeedbackSrv{}
	handler := NewFeedbackHandler(srv, fakeViewers{})

	c, w := newGinContext(http.MethodPatch, "/feedback/fb-001/status", []byte(`{"status":"resolved"}`))
	c.Params = gin.Params{{Key: "id", Value: "fb-001"}}
	handler.UpdateStatus(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.FeedbackResolved, srv.lastStatus.Status)

	c, w = newGinContext(http.MethodPost, "/feedback/fb-001/comments", []byte(`{"text":"On it"}`))
	c.Params = gin.Params{{Key: "id", Value: "fb-001"}}
	withIdentity(c, staffIdentity)
	handler.AddComment(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, staffIdentity.ID, srv.lastAuthor.ID)
}

func TestFeedbackHandlerGetNotFound(t *testing.T) {
	handler := NewFeedbackHandler(&fakeFeedbackSrv{}, fakeViewers{})

	c, w := newGinContext(http.MethodGet, "/feedback/fb-999", nil)
	c.Params = gin.Params{{Key: "id", Value: "fb-999"}}
	withIdentity(c, adminIdentity)
	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFeedbackHandlerDetailFollowsListScope(t *testing.T) {
	srv := &fakeFeedbackSrv{}
	handler := NewFeedbackHandler(srv, fakeViewers{})

	c, w := newGinContext(http.MethodGet, "/feedback/fb-006", nil)
	c.Params = gin.Params{{Key: "id", Value: "fb-006"}}
	withIdentity(c, staffIdentity)
	handler.Get(c)
	assert.Equal(t, http.StatusForbidden, w.Code)

	c, w = newGinContext(http.MethodGet, "/feedback/fb-006", nil)
	c.Params = gin.Params{{Key: "id", Value: "fb-006"}}
	withIdentity(c, studentIdentity)
	handler.Get(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newGinContext(http.MethodPost, "/feedback/fb-006/comments", []byte(`{"text":"Not mine"}`))
	c.Params = gin.Params{{Key: "id", Value: "fb-006"}}
	withIdentity(c, staffIdentity)
	handler.AddComment(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, srv.lastAuthor.ID)
}
