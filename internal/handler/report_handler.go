package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"readiness/internal/csvexport"
	"readiness/internal/service"
)

// ReportHandler handles stored report endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// List handles GET /api/v1/reports
// @Summary List recent reports
// @Description List report summaries, newest first
// @Tags reports
// @Produce json
// @Param limit query int false "Maximum number of reports (max 100)" default(10)
// @Success 200 {object} Response{data=[]domain.ReportSummary,meta=ListMeta} "Report summaries"
// @Failure 400 {object} ErrorResponseBody "Invalid limit"
// @Router /reports [get]
func (h *ReportHandler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			RespondError(c, http.StatusBadRequest, "INVALID_LIMIT", "limit must be a non-negative integer")
			return
		}
		limit = v
	}

	reports, applied, err := h.reportService.ListRecent(c.Request.Context(), limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondList(c, reports, ListMeta{Count: len(reports), Limit: applied})
}

// GetByID handles GET /api/v1/reports/:id
// @Summary Get a report
// @Tags reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} Response{data=analyzer.Report} "Readiness report"
// @Failure 404 {object} ErrorResponseBody "Report not found"
// @Router /reports/{id} [get]
func (h *ReportHandler) GetByID(c *gin.Context) {
	record, err := h.reportService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, record.Report)
}

// ExportCSV handles GET /api/v1/reports/:id/export
// @Summary Export a report as CSV
// @Tags reports
// @Produce text/csv
// @Param id path string true "Report ID"
// @Success 200 {file} file "CSV file"
// @Failure 404 {object} ErrorResponseBody "Report not found"
// @Router /reports/{id}/export [get]
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	var buf bytes.Buffer
	record, err := h.reportService.ExportCSV(c.Request.Context(), c.Param("id"), &buf)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename(record.ID, record.CreatedAt)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
