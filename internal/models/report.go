package models

import "time"

// ReportType enumerates report subjects.
type ReportType string

const (
	ReportUsage    ReportType = "usage"
	ReportFeedback ReportType = "feedback"
	ReportProposal ReportType = "proposal"
	ReportResource ReportType = "resource"
)

// ReportFormat enumerates supported export formats.
type ReportFormat string

const (
	ReportFormatCSV ReportFormat = "csv"
	ReportFormatPDF ReportFormat = "pdf"
)

// ReportStatus captures generation lifecycle states.
type ReportStatus string

const (
	ReportGenerating ReportStatus = "generating"
	ReportCompleted  ReportStatus = "completed"
	ReportFailed     ReportStatus = "failed"
)

// DefaultReportDepartment is used when a request names no department.
const DefaultReportDepartment = "General"

// Report is a generated document and its metadata.
type Report struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Type          ReportType   `json:"type"`
	Department    string       `json:"department"`
	Author        string       `json:"author"`
	AuthorID      string       `json:"author_id"`
	Description   string       `json:"description"`
	Status        ReportStatus `json:"status"`
	Format        ReportFormat `json:"format"`
	DownloadCount int          `json:"download_count"`
	CreatedAt     time.Time    `json:"created_at"`
	CompletedAt   *time.Time   `json:"completed_at,omitempty"`
	FileKey       string       `json:"-"`
	DownloadURL   string       `json:"download_url,omitempty"`
	Error         string       `json:"error,omitempty"`
}

// ReportRequest asks for a new report.
type ReportRequest struct {
	Title       string       `json:"title" validate:"required,notblank,max=200"`
	Type        ReportType   `json:"type" validate:"required,oneof=usage feedback proposal resource"`
	Department  string       `json:"department" validate:"max=120"`
	Description string       `json:"description" validate:"max=2000"`
	Format      ReportFormat `json:"format" validate:"omitempty,oneof=csv pdf"`
}
