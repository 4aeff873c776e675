package service

import (
	"context"
	"log"
	"time"

	"readiness/internal/analyzer"
	"readiness/internal/domain"
	"readiness/internal/metrics"
	"readiness/internal/port"
)

// AnalyzeInput is the DTO for analysis requests. Questionnaire answers are loosely typed and coerced by
// truthiness; a nil questionnaire is rejected, an empty one answers every question no.
type AnalyzeInput struct {
	UploadID      string
	Questionnaire map[string]any
}

// AnalysisService runs the readiness engine over stored uploads.
type AnalysisService interface {
	Analyze(ctx context.Context, input AnalyzeInput) (*analyzer.Report, error)
}

type analysisService struct {
	uploadRepo port.UploadRepository
	reportRepo port.ReportRepository
	engine     *analyzer.Analyzer
}

// NewAnalysisService creates a new AnalysisService implementation.
func NewAnalysisService(
	uploadRepo port.UploadRepository,
	reportRepo port.ReportRepository,
	engine *analyzer.Analyzer,
) AnalysisService {
	return &analysisService{
		uploadRepo: uploadRepo,
		reportRepo: reportRepo,
		engine:     engine,
	}
}

func (s *analysisService) Analyze(ctx context.Context, input AnalyzeInput) (*analyzer.Report, error) {
	if input.UploadID == "" {
		return nil, domain.ErrMissingUploadID
	}
	if input.Questionnaire == nil {
		return nil, domain.ErrMissingQuestionnaire
	}

	upload, err := s.uploadRepo.GetByID(ctx, input.UploadID)
	if err != nil {
		return nil, err
	}

	report := s.engine.AnalyzeData(upload.Dataset(), analyzer.QuestionnaireFrom(input.Questionnaire))
	report.ReportID = domain.NewReportID()

	record := &domain.ReportRecord{
		ID:        report.ReportID,
		UploadID:  upload.ID,
		Report:    report,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.reportRepo.Create(ctx, record); err != nil {
		log.Printf("analysisService.Analyze: failed to persist report for upload %s: %v", upload.ID, err)
		return nil, err
	}

	metrics.RecordAnalysis(report)
	log.Printf("analysisService.Analyze: report %s for upload %s scored %d (%d rows, %d gaps)",
		report.ReportID, upload.ID, report.Scores.Overall, report.Meta.RowsParsed, len(report.Gaps))

	return report, nil
}
