package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"readiness/internal/domain"
)

// MockReportRepo is a mock implementation of port.ReportRepository.
type MockReportRepo struct {
	mock.Mock
}

func (m *MockReportRepo) Create(ctx context.Context, record *domain.ReportRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockReportRepo) GetByID(ctx context.Context, id string) (*domain.ReportRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportRecord), args.Error(1)
}

func (m *MockReportRepo) ListRecent(ctx context.Context, limit int) ([]domain.ReportSummary, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReportSummary), args.Error(1)
}
