package handler

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ur-campus-api/internal/models"
	"github.com/noah-isme/ur-campus-api/internal/service"
	"github.com/noah-isme/ur-campus-api/internal/view"
	appErrors "github.com/noah-isme/ur-campus-api/pkg/errors"
)

type reportServiceMock struct {
	report      *models.Report
	generateErr error
	download    *service.ReportDownload
	downloadErr error
	deleted     string
	lastAuthor  models.Identity
}

func (m *reportServiceMock) Browse(context.Context, view.Viewer, view.ReportFilters) ([]models.Report, error) {
	return []models.Report{*m.report}, nil
}

func (m *reportServiceMock) Get(context.Context, string) (*models.Report, error) {
	return m.report, nil
}

func (m *reportServiceMock) Generate(_ context.Context, req models.ReportRequest, author models.Identity) (*models.Report, error) {
	m.lastAuthor = author
	if m.generateErr != nil {
		return nil, m.generateErr
	}
	return &models.Report{ID: "rep-1", Title: req.Title, Type: req.Type, Status: models.ReportGenerating, AuthorID: author.ID}, nil
}

func (m *reportServiceMock) Download(context.Context, string) (*service.ReportDownload, error) {
	return m.download, m.downloadErr
}

func (m *reportServiceMock) Delete(_ context.Context, id string, _ models.Identity) error {
	m.deleted = id
	return nil
}

func TestReportHandlerGenerateQueues(t *testing.T) {
	mockSvc := &reportServiceMock{}
	handler := NewReportHandler(mockSvc, fakeViewers{})

	payload := mustJSON(t, models.ReportRequest{Title: "Lab use", Type: models.ReportUsage})
	c, w := newGinContext(http.MethodPost, "/reports", payload)
	withIdentity(c, staffIdentity)
	handler.Generate(c)

	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, staffIdentity.ID, mockSvc.lastAuthor.ID)
	assert.Contains(t, string(decode(t, w).Data), `"status":"generating"`)
}

func TestReportHandlerGenerateUnavailable(t *testing.T) {
	mockSvc := &reportServiceMock{generateErr: appErrors.Clone(appErrors.ErrUnavailable, "report generation is unavailable")}
	handler := NewReportHandler(mockSvc, fakeViewers{})

	c, w := newGinContext(http.MethodPost, "/reports", []byte(`{"title":"x","type":"usage"}`))
	withIdentity(c, adminIdentity)
	handler.Generate(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestReportHandlerGetOnlyOwnReportsForStaff(t *testing.T) {
	mockSvc := &reportServiceMock{report: &models.Report{ID: "rep-9", AuthorID: "someone-else"}}
	handler := NewReportHandler(mockSvc, fakeViewers{})

	c, w := newGinContext(http.MethodGet, "/reports/rep-9", nil)
	c.Params = gin.Params{{Key: "id", Value: "rep-9"}}
	withIdentity(c, staffIdentity)
	handler.Get(c)
	assert.Equal(t, http.StatusForbidden, w.Code)

	c, w = newGinContext(http.MethodGet, "/reports/rep-9", nil)
	c.Params = gin.Params{{Key: "id", Value: "rep-9"}}
	withIdentity(c, adminIdentity)
	handler.Get(c)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReportHandlerDelete(t *testing.T) {
	mockSvc := &reportServiceMock{}
	handler := NewReportHandler(mockSvc, fakeViewers{})

	c, w := newGinContext(http.MethodDelete, "/reports/rep-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "rep-1"}}
	withIdentity(c, adminIdentity)
	handler.Delete(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "rep-1", mockSvc.deleted)
}

func TestReportHandlerDownloadStreamsFile(t *testing.T) {
	mockSvc := &reportServiceMock{download: &service.ReportDownload{
		Body:        io.NopCloser(strings.NewReader("facility,utilization\nMain Lecture Hall,85\n")),
		Filename:    "rep-1.csv",
		ContentType: "text/csv",
	}}
	handler := NewReportHandler(mockSvc, fakeViewers{})

	c, w := newGinContext(http.MethodGet, "/reports/download/token", nil)
	c.Params = gin.Params{{Key: "token", Value: "token"}}
	handler.Download(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="rep-1.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "Main Lecture Hall,85")
}

func TestReportHandlerDownloadRejectsBadToken(t *testing.T) {
	mockSvc := &reportServiceMock{downloadErr: appErrors.Clone(appErrors.ErrForbidden, "invalid or expired download token")}
	handler := NewReportHandler(mockSvc, fakeViewers{})

	c, w := newGinContext(http.MethodGet, "/reports/download/bad", nil)
	c.Params = gin.Params{{Key: "token", Value: "bad"}}
	handler.Download(c)

	assert.Equal(t, http.StatusForbidden, w.Code)

	c, w = newGinContext(http.MethodGet, "/reports/download/", nil)
	handler.Download(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
