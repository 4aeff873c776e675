package handler

import (
	"time"

	"readiness/internal/analyzer"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// AnalyzeRequest is the analyze request body. Questionnaire answers are coerced by truthiness.
type AnalyzeRequest struct {
	UploadID      string         `json:"uploadId" example:"u_9f86d081884c7d65"`
	Questionnaire map[string]any `json:"questionnaire"`
}

// --- Response Types ---

// UploadDetails describes a stored upload.
type UploadDetails struct {
	ID          string    `json:"id" example:"u_9f86d081884c7d65"`
	FileName    string    `json:"fileName" example:"invoices.csv"`
	FileType    string    `json:"fileType" example:"csv"`
	Headers     []string  `json:"headers"`
	RowsParsed  int       `json:"rowsParsed" example:"42"`
	Archived    bool      `json:"archived"`
	DownloadURL string    `json:"downloadUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SchemaField describes one schema field.
type SchemaField struct {
	Path string   `json:"path" example:"invoice.currency"`
	Enum []string `json:"enum,omitempty"`
	Line bool     `json:"line"`
}

// SchemaResponse describes the schema reports are measured against.
type SchemaResponse struct {
	Name    string              `json:"name" example:"GETS"`
	Version string              `json:"version" example:"0.1"`
	Fields  []SchemaField       `json:"fields"`
	Rules   []analyzer.RuleName `json:"rules"`
}

// Response wraps a success response.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *ListMeta   `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
