package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"readiness/internal/service"
)

// AnalysisHandler handles readiness analysis endpoints.
type AnalysisHandler struct {
	analysisService service.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// Analyze handles POST /api/v1/analyze
// @Summary Analyze an upload
// @Description Score a stored upload against the GETS schema and persist the report
// @Tags analysis
// @Accept json
// @Produce json
// @Param body body AnalyzeRequest true "Upload ID and posture questionnaire"
// @Success 200 {object} Response{data=analyzer.Report} "Readiness report"
// @Failure 400 {object} ErrorResponseBody "Missing uploadId or questionnaire"
// @Failure 404 {object} ErrorResponseBody "Upload not found"
// @Failure 500 {object} ErrorResponseBody "Analysis failed"
// @Router /analyze [post]
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	report, err := h.analysisService.Analyze(c.Request.Context(), service.AnalyzeInput{
		UploadID:      req.UploadID,
		Questionnaire: req.Questionnaire,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, report)
}
