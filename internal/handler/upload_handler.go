package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"readiness/internal/domain"
	"readiness/internal/service"
)

// UploadHandler handles dataset upload endpoints.
type UploadHandler struct {
	uploadService service.UploadService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploadService service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// Upload handles POST /api/v1/uploads
// @Summary Upload a dataset
// @Description Upload a CSV, JSON or XLSX invoice sample; only the first rows are kept for analysis
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Dataset (csv, json or xlsx)"
// @Success 201 {object} Response{data=service.UploadResult} "Upload accepted"
// @Failure 400 {object} ErrorResponseBody "Missing, unsupported or malformed file"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 500 {object} ErrorResponseBody "Upload failed"
// @Router /uploads [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.uploadService.Upload(c.Request.Context(), service.UploadInput{
		FileName: header.Filename,
		Size:     header.Size,
		Body:     file,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// GetByID handles GET /api/v1/uploads/:id
// @Summary Get upload details
// @Description Get stored upload metadata and, when archived, a temporary download link for the original file
// @Tags uploads
// @Produce json
// @Param id path string true "Upload ID"
// @Success 200 {object} Response{data=UploadDetails} "Upload details"
// @Failure 404 {object} ErrorResponseBody "Upload not found"
// @Router /uploads/{id} [get]
func (h *UploadHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	upload, err := h.uploadService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	details := UploadDetails{
		ID:         upload.ID,
		FileName:   upload.FileName,
		FileType:   string(upload.FileType),
		Headers:    upload.Headers,
		RowsParsed: len(upload.Rows),
		Archived:   upload.ArchiveKey != "",
		CreatedAt:  upload.CreatedAt,
	}
	if details.Archived {
		url, urlErr := h.uploadService.GetDownloadURL(c.Request.Context(), id)
		switch {
		case urlErr == nil:
			details.DownloadURL = url
		case errors.Is(urlErr, domain.ErrNotFound):
		default:
			log.Printf("uploadHandler.GetByID: presigning %s failed: %v", id, urlErr)
		}
	}

	RespondOK(c, details)
}
