package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"nebenscan/internal/letter"
	"nebenscan/internal/service"
)

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Preview(ctx context.Context, billID uuid.UUID) (*service.BillPreview, error) {
	args := m.Called(ctx, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BillPreview), args.Error(1)
}

func (m *MockReportService) FullReport(ctx context.Context, billID uuid.UUID) (*service.FullReport, error) {
	args := m.Called(ctx, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FullReport), args.Error(1)
}

func (m *MockReportService) Letter(ctx context.Context, billID uuid.UUID, lang letter.Language) (string, error) {
	args := m.Called(ctx, billID, lang)
	return args.String(0), args.Error(1)
}

func (m *MockReportService) ExportCSV(ctx context.Context, billID uuid.UUID, w io.Writer) (string, error) {
	args := m.Called(ctx, billID, w)
	return args.String(0), args.Error(1)
}

func (m *MockReportService) ExportXLSX(ctx context.Context, billID uuid.UUID, w io.Writer) (string, error) {
	args := m.Called(ctx, billID, w)
	return args.String(0), args.Error(1)
}
