package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"readiness/internal/domain"
)

// MockReportService is a mock implementation of service.ReportService.
// ExportCSV writes the string passed as the optional third return value to w.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) GetByID(ctx context.Context, id string) (*domain.ReportRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportRecord), args.Error(1)
}

func (m *MockReportService) ListRecent(ctx context.Context, limit int) ([]domain.ReportSummary, int, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ReportSummary), args.Int(1), args.Error(2)
}

func (m *MockReportService) ExportCSV(ctx context.Context, id string, w io.Writer) (*domain.ReportRecord, error) {
	args := m.Called(ctx, id, w)
	if len(args) > 2 {
		_, _ = io.WriteString(w, args.String(2))
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportRecord), args.Error(1)
}
