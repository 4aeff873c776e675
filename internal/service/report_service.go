package service

import (
	"context"
	"fmt"
	"io"

	"readiness/internal/config"
	"readiness/internal/csvexport"
	"readiness/internal/domain"
	"readiness/internal/port"
)

// ReportService serves stored readiness reports.
type ReportService interface {
	GetByID(ctx context.Context, id string) (*domain.ReportRecord, error)
	ListRecent(ctx context.Context, limit int) ([]domain.ReportSummary, int, error)
	ExportCSV(ctx context.Context, id string, w io.Writer) (*domain.ReportRecord, error)
}

type reportService struct {
	reportRepo port.ReportRepository
	cfg        *config.ReportsConfig
}

// NewReportService creates a new ReportService implementation.
func NewReportService(reportRepo port.ReportRepository, cfg *config.ReportsConfig) ReportService {
	return &reportService{reportRepo: reportRepo, cfg: cfg}
}

func (s *reportService) GetByID(ctx context.Context, id string) (*domain.ReportRecord, error) {
	return s.reportRepo.GetByID(ctx, id)
}

// ListRecent returns the newest report summaries and the limit applied. A non-positive limit means the default;
// limits above the maximum are clamped.
func (s *reportService) ListRecent(ctx context.Context, limit int) ([]domain.ReportSummary, int, error) {
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}
	if limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}
	reports, err := s.reportRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, 0, err
	}
	return reports, limit, nil
}

// ExportCSV writes the report as CSV to w, prefixed with a UTF-8 BOM.
func (s *reportService) ExportCSV(ctx context.Context, id string, w io.Writer) (*domain.ReportRecord, error) {
	record, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := w.Write(csvexport.BOM); err != nil {
		return nil, fmt.Errorf("reportService.ExportCSV: %w", err)
	}
	cw := csvexport.NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return nil, fmt.Errorf("reportService.ExportCSV: %w", err)
	}
	if err := cw.WriteReport(record.Report); err != nil {
		return nil, fmt.Errorf("reportService.ExportCSV: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("reportService.ExportCSV: %w", err)
	}
	return record, nil
}
