package domain

import (
	"time"

	"readiness/internal/analyzer"
)

// Upload is a decoded dataset waiting to be analyzed. Rows are stored already capped.
type Upload struct {
	ID         string            `db:"id" json:"id"`
	FileName   string            `db:"file_name" json:"fileName"`
	FileType   FileType          `db:"file_type" json:"fileType"`
	Headers    []string          `db:"-" json:"headers"`
	Rows       []analyzer.RawRow `db:"-" json:"-"`
	ArchiveKey string            `db:"archive_key" json:"archiveKey,omitempty"`
	CreatedAt  time.Time         `db:"created_at" json:"createdAt"`
}

// Dataset returns the engine input for the upload.
func (u *Upload) Dataset() analyzer.Dataset {
	return analyzer.Dataset{Headers: u.Headers, Rows: u.Rows}
}

// ReportRecord is a persisted report together with the upload it was computed from.
type ReportRecord struct {
	ID        string           `json:"id"`
	UploadID  string           `json:"uploadId"`
	Report    *analyzer.Report `json:"report"`
	CreatedAt time.Time        `json:"createdAt"`
}

// ReportSummary is the list view of a stored report.
type ReportSummary struct {
	ID           string    `db:"id" json:"id"`
	UploadID     string    `db:"upload_id" json:"uploadId"`
	OverallScore int       `db:"overall_score" json:"overallScore"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
