package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/ur-campus-api/internal/models"
	"github.com/noah-isme/ur-campus-api/internal/view"
	appErrors "github.com/noah-isme/ur-campus-api/pkg/errors"
	"github.com/noah-isme/ur-campus-api/pkg/jobs"
	"github.com/noah-isme/ur-campus-api/pkg/storage"
	"github.com/noah-isme/ur-campus-api/pkg/validation"
)

// ReportJobType tags queue jobs that render reports.
const ReportJobType = "report"

type reportStore interface {
	List(ctx context.Context) ([]models.Report, error)
	ListByAuthor(ctx context.Context, authorID string) ([]models.Report, error)
	FindByID(ctx context.Context, id string) (*models.Report, error)
	Create(ctx context.Context, report *models.Report) error
	Update(ctx context.Context, id string, mutate func(*models.Report) error) (*models.Report, error)
	Delete(ctx context.Context, id string) error
}

type jobDispatcher interface {
	Enqueue(job jobs.Job) error
}

type reportRenderer interface {
	Render(ctx context.Context, report *models.Report) (string, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// ReportServiceConfig governs download links.
type ReportServiceConfig struct {
	APIPrefix string
}

// ReportService records report requests and hands rendering to the job queue.
type ReportService struct {
	provider
	repo      reportStore
	queue     jobDispatcher
	exporter  reportRenderer
	signer    *storage.SignedURLSigner
	validator *validator.Validate
	logger    *zap.Logger
	cfg       ReportServiceConfig
	now       func() time.Time
}

// ReportDownload is an opened report file.
type ReportDownload struct {
	Body        io.ReadCloser
	Filename    string
	ContentType string
}

// NewReportService constructs the report service.
func NewReportService(repo reportStore, queue jobDispatcher, exporter reportRenderer, signer *storage.SignedURLSigner, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService, latency ProviderLatency, cfg ReportServiceConfig) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validation.New()
	}
	if cfg.APIPrefix == "" {
		cfg.APIPrefix = "/api/v1"
	}
	return &ReportService{
		provider:  provider{name: "reports", latency: latency, metrics: metrics},
		repo:      repo,
		queue:     queue,
		exporter:  exporter,
		signer:    signer,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// List returns every report.
func (s *ReportService) List(ctx context.Context) ([]models.Report, error) {
	var out []models.Report
	err := s.call(ctx, "list", s.latency.List, func() (err error) {
		out, err = s.repo.List(ctx)
		return err
	})
	if err != nil {
		return nil, storeError(err, "", "failed to list reports")
	}
	for i := range out {
		s.attachDownloadURL(&out[i])
	}
	return out, nil
}

// ListByUser returns reports authored by userID.
func (s *ReportService) ListByUser(ctx context.Context, userID string) ([]models.Report, error) {
	var out []models.Report
	err := s.call(ctx, "list_by_user", s.latency.List, func() (err error) {
		out, err = s.repo.ListByAuthor(ctx, userID)
		return err
	})
	if err != nil {
		return nil, storeError(err, "", "failed to list reports")
	}
	for i := range out {
		s.attachDownloadURL(&out[i])
	}
	return out, nil
}

// Get returns a report with a fresh download link when its file is ready.
func (s *ReportService) Get(ctx context.Context, id string) (*models.Report, error) {
	var out *models.Report
	err := s.call(ctx, "get", s.latency.Detail, func() (err error) {
		out, err = s.repo.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, storeError(err, "report not found", "failed to load report")
	}
	s.attachDownloadURL(out)
	return out, nil
}

// Browse runs the reports page for v.
func (s *ReportService) Browse(ctx context.Context, v view.Viewer, filters view.ReportFilters) ([]models.Report, error) {
	ctrl := view.NewController(view.ReportScope(v))
	if err := ctrl.Load(ctx, s.List); err != nil {
		return nil, err
	}
	ctrl.SetFilters(filters.Predicates(s.now())...)
	return ctrl.Items(), nil
}

// Generate records a report in the generating state and queues it for rendering.
func (s *ReportService) Generate(ctx context.Context, req models.ReportRequest, author models.Identity) (*models.Report, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validation.Error(err)
	}

	report := &models.Report{
		ID:          "report-" + uuid.NewString()[:8],
		Title:       strings.TrimSpace(req.Title),
		Type:        req.Type,
		Department:  strings.TrimSpace(req.Department),
		Author:      author.Name,
		AuthorID:    author.ID,
		Description: strings.TrimSpace(req.Description),
		Status:      models.ReportGenerating,
		Format:      req.Format,
		CreatedAt:   s.now().UTC(),
	}
	if report.Department == "" {
		report.Department = models.DefaultReportDepartment
	}
	if report.Description == "" {
		report.Description = fmt.Sprintf("Automatically generated report based on data analysis for %s metrics.", report.Type)
	}
	if report.Format == "" {
		report.Format = models.ReportFormatCSV
	}

	err := s.call(ctx, "generate", s.latency.Report, func() error {
		return s.repo.Create(ctx, report)
	})
	if err != nil {
		return nil, storeError(err, "", "failed to create report")
	}

	if err := s.queue.Enqueue(jobs.Job{ID: report.ID, Type: ReportJobType}); err != nil {
		s.metrics.RecordReportJob("enqueue_failed")
		failed, _ := s.repo.Update(ctx, report.ID, func(r *models.Report) error {
			r.Status = models.ReportFailed
			r.Error = "failed to enqueue report"
			return nil
		})
		s.logger.Error("report enqueue failed", zap.String("report_id", report.ID), zap.Error(err))
		if failed != nil {
			report = failed
		}
		return report, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "report generation is unavailable")
	}
	s.metrics.RecordReportJob("queued")
	s.logger.Info("report queued", zap.String("report_id", report.ID), zap.String("type", string(report.Type)), zap.String("author_id", author.ID))
	return report, nil
}

// Download resolves a signed token, counts the download and opens the file.
func (s *ReportService) Download(ctx context.Context, token string) (*ReportDownload, error) {
	reportID, key, err := s.signer.Parse(token)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrForbidden.Code, appErrors.ErrForbidden.Status, "invalid or expired download token")
	}
	report, err := s.repo.FindByID(ctx, reportID)
	if err != nil {
		return nil, storeError(err, "report not found", "failed to load report")
	}
	if report.FileKey == "" || report.FileKey != key {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "token mismatch")
	}
	if report.Status != models.ReportCompleted {
		return nil, appErrors.Clone(appErrors.ErrConflict, "report not ready")
	}

	body, err := s.exporter.Open(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "report file not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open report file")
	}
	if _, err := s.repo.Update(ctx, reportID, func(r *models.Report) error {
		r.DownloadCount++
		return nil
	}); err != nil {
		s.logger.Warn("failed to count report download", zap.String("report_id", reportID), zap.Error(err))
	}

	contentType := "text/csv"
	if report.Format == models.ReportFormatPDF {
		contentType = "application/pdf"
	}
	return &ReportDownload{Body: body, Filename: path.Base(key), ContentType: contentType}, nil
}

// Delete removes a report and its file. Only admins and the author may delete.
func (s *ReportService) Delete(ctx context.Context, id string, actor models.Identity) error {
	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return storeError(err, "report not found", "failed to load report")
	}
	if actor.Role != models.RoleAdmin && report.AuthorID != actor.ID {
		return appErrors.Clone(appErrors.ErrForbidden, "You can only delete your own reports")
	}
	err = s.call(ctx, "delete", s.latency.Mutate, func() error {
		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		return storeError(err, "report not found", "failed to delete report")
	}
	if report.FileKey != "" {
		if err := s.exporter.Delete(ctx, report.FileKey); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
			s.logger.Warn("failed to delete report file", zap.String("report_id", id), zap.Error(err))
		}
	}
	return nil
}

func (s *ReportService) attachDownloadURL(report *models.Report) {
	if report == nil || report.Status != models.ReportCompleted || report.FileKey == "" || s.signer == nil {
		return
	}
	token, _, err := s.signer.Generate(report.ID, report.FileKey)
	if err != nil {
		s.logger.Warn("failed to sign report download", zap.String("report_id", report.ID), zap.Error(err))
		return
	}
	report.DownloadURL = fmt.Sprintf("%s/reports/download/%s", strings.TrimRight(s.cfg.APIPrefix, "/"), token)
}

// ReportWorker bridges queue jobs to the ExportService.
type ReportWorker struct {
	repo     reportStore
	exporter reportRenderer
	metrics  *MetricsService
	logger   *zap.Logger
	now      func() time.Time
}

// NewReportWorker constructs a worker.
func NewReportWorker(repo reportStore, exporter reportRenderer, metrics *MetricsService, logger *zap.Logger) *ReportWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportWorker{repo: repo, exporter: exporter, metrics: metrics, logger: logger, now: time.Now}
}

// Handle renders the report named by job. Errors are retried by the queue.
func (w *ReportWorker) Handle(ctx context.Context, job jobs.Job) error {
	report, err := w.repo.FindByID(ctx, job.ID)
	if err != nil {
		return err
	}
	if report.Status != models.ReportGenerating {
		return nil
	}
	key, err := w.exporter.Render(ctx, report)
	if err != nil {
		w.metrics.RecordReportJob("retry")
		return err
	}
	if _, err := w.repo.Update(ctx, job.ID, func(r *models.Report) error {
		completed := w.now().UTC()
		r.Status = models.ReportCompleted
		r.FileKey = key
		r.CompletedAt = &completed
		r.Error = ""
		return nil
	}); err != nil {
		w.logger.Warn("failed to mark report completed", zap.String("report_id", job.ID), zap.Error(err))
		return err
	}
	w.metrics.RecordReportJob("completed")
	w.logger.Info("report completed", zap.String("report_id", job.ID), zap.Int("attempt", job.Attempt+1))
	return nil
}

// MarkFailed records a report whose job exhausted its retries. It is the
// queue's OnExhausted hook.
func (w *ReportWorker) MarkFailed(job jobs.Job, cause error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := w.repo.Update(ctx, job.ID, func(r *models.Report) error {
		r.Status = models.ReportFailed
		r.Error = cause.Error()
		return nil
	}); err != nil {
		w.logger.Warn("failed to mark report failed", zap.String("report_id", job.ID), zap.Error(err))
	}
	w.metrics.RecordReportJob("failed")
}

var _ reportRenderer = (*ExportService)(nil)
