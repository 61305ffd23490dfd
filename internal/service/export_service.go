package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/ur-campus-api/internal/models"
	"github.com/noah-isme/ur-campus-api/pkg/export"
	"github.com/noah-isme/ur-campus-api/pkg/storage"
)

type facilityLister interface {
	List(ctx context.Context) ([]models.Facility, error)
}

type feedbackLister interface {
	List(ctx context.Context) ([]models.FeedbackItem, error)
}

type recommendationLister interface {
	List(ctx context.Context) ([]models.AIRecommendation, error)
}

type predictionLister interface {
	List(ctx context.Context, filter models.PredictionFilter) ([]models.InfrastructurePrediction, error)
}

// ReportSources are the stores a report dataset is built from.
type ReportSources struct {
	Facilities      facilityLister
	Feedback        feedbackLister
	Recommendations recommendationLister
	Predictions     predictionLister
}

// ExportService builds report datasets and persists rendered files to a blob store.
type ExportService struct {
	sources ReportSources
	blobs   storage.BlobStore
	logger  *zap.Logger
	now     func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(sources ReportSources, blobs storage.BlobStore, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{sources: sources, blobs: blobs, logger: logger, now: time.Now}
}

// Render builds the dataset for report, renders it in the report's format
// and stores it. It returns the blob key.
func (s *ExportService) Render(ctx context.Context, report *models.Report) (string, error) {
	if report == nil {
		return "", fmt.Errorf("report nil")
	}
	renderer, err := export.ForFormat(string(report.Format))
	if err != nil {
		return "", err
	}
	dataset, err := s.buildDataset(ctx, report)
	if err != nil {
		return "", err
	}
	payload, err := renderer.Render(dataset)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("reports/%s_%s.%s", report.ID, sanitizeFilename(strings.ToLower(report.Title)), renderer.Extension())
	if err := s.blobs.Save(ctx, key, payload, renderer.ContentType()); err != nil {
		return "", err
	}
	s.logger.Debug("report rendered", zap.String("report_id", report.ID), zap.String("key", key), zap.Int("bytes", len(payload)))
	return key, nil
}

// Open returns the stored file for key.
func (s *ExportService) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.blobs.Open(ctx, key)
}

// Delete removes the stored file for key.
func (s *ExportService) Delete(ctx context.Context, key string) error {
	return s.blobs.Delete(ctx, key)
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "report"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".", "__", "_")
	result := replacer.Replace(raw)
	if len(result) > 60 {
		return result[:60]
	}
	return result
}

func (s *ExportService) buildDataset(ctx context.Context, report *models.Report) (export.Dataset, error) {
	dataset := export.Dataset{
		Title: report.Title,
		Summary: []export.Field{
			{Label: "Type", Value: string(report.Type)},
			{Label: "Department", Value: report.Department},
			{Label: "Author", Value: report.Author},
			{Label: "Generated", Value: s.now().UTC().Format(time.RFC3339)},
			{Label: "Description", Value: report.Description},
		},
	}

	var err error
	switch report.Type {
	case models.ReportUsage:
		err = s.usageRows(ctx, report.Department, &dataset)
	case models.ReportFeedback:
		err = s.feedbackRows(ctx, &dataset)
	case models.ReportProposal:
		err = s.proposalRows(ctx, report.Department, &dataset)
	case models.ReportResource:
		err = s.resourceRows(ctx, &dataset)
	default:
		err = fmt.Errorf("unsupported report type %s", report.Type)
	}
	return dataset, err
}

// inDepartment treats the default department as campus wide.
func inDepartment(department, candidate string) bool {
	if department == "" || strings.EqualFold(department, models.DefaultReportDepartment) {
		return true
	}
	return strings.EqualFold(department, candidate)
}

func (s *ExportService) usageRows(ctx context.Context, department string, dataset *export.Dataset) error {
	facilities, err := s.sources.Facilities.List(ctx)
	if err != nil {
		return err
	}
	dataset.Headers = []string{"Facility", "Type", "Department", "Capacity", "Occupancy", "Utilization %", "Status"}
	for _, f := range facilities {
		if !inDepartment(department, f.Department) {
			continue
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Facility":      f.Name,
			"Type":          string(f.Type),
			"Department":    f.Department,
			"Capacity":      strconv.Itoa(f.Capacity),
			"Occupancy":     strconv.Itoa(f.CurrentOccupancy),
			"Utilization %": strconv.FormatFloat(f.Utilization(), 'f', 1, 64),
			"Status":        string(f.Status),
		})
	}
	return nil
}

func (s *ExportService) feedbackRows(ctx context.Context, dataset *export.Dataset) error {
	items, err := s.sources.Feedback.List(ctx)
	if err != nil {
		return err
	}
	dataset.Headers = []string{"ID", "Facility", "Category", "Urgency", "Status", "Submitted", "Resolved"}
	for _, f := range items {
		resolved := ""
		if f.ResolvedAt != nil {
			resolved = f.ResolvedAt.Format("2006-01-02")
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"ID":        f.ID,
			"Facility":  f.FacilityName,
			"Category":  string(f.Category),
			"Urgency":   string(f.Urgency),
			"Status":    string(f.Status),
			"Submitted": f.CreatedAt.Format("2006-01-02"),
			"Resolved":  resolved,
		})
	}
	return nil
}

func (s *ExportService) proposalRows(ctx context.Context, department string, dataset *export.Dataset) error {
	recs, err := s.sources.Recommendations.List(ctx)
	if err != nil {
		return err
	}
	dataset.Headers = []string{"Title", "Type", "Impact", "Status", "Confidence", "Facility"}
	for _, r := range recs {
		if r.Department != "" && !inDepartment(department, r.Department) {
			continue
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Title":      r.Title,
			"Type":       string(r.Type),
			"Impact":     string(r.Impact),
			"Status":     string(r.Status),
			"Confidence": strconv.Itoa(r.AIConfidence) + "%",
			"Facility":   r.FacilityName,
		})
	}
	return nil
}

func (s *ExportService) resourceRows(ctx context.Context, dataset *export.Dataset) error {
	preds, err := s.sources.Predictions.List(ctx, models.PredictionFilter{})
	if err != nil {
		return err
	}
	dataset.Headers = []string{"Title", "Type", "Year", "Current", "Recommended", "Priority"}
	for _, p := range preds {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Title":       p.Title,
			"Type":        string(p.InfrastructureType),
			"Year":        strconv.Itoa(p.Year),
			"Current":     strconv.Itoa(p.CurrentCapacity),
			"Recommended": strconv.Itoa(p.RecommendedCapacity),
			"Priority":    string(p.Priority),
		})
	}
	return nil
}
