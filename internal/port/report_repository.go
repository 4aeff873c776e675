package port

import (
	"context"

	"readiness/internal/domain"
)

// ReportRepository persists analysis reports. Reports are immutable once created.
type ReportRepository interface {
	Create(ctx context.Context, record *domain.ReportRecord) error
	GetByID(ctx context.Context, id string) (*domain.ReportRecord, error)
	ListRecent(ctx context.Context, limit int) ([]domain.ReportSummary, error)
}
