package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"nebenscan/internal/analysis"
	"nebenscan/internal/domain"
)

// MockAnalysisService is a mock implementation of service.AnalysisService.
type MockAnalysisService struct {
	mock.Mock
}

func (m *MockAnalysisService) RequeueExtraction(ctx context.Context, billID uuid.UUID) (*domain.Bill, error) {
	args := m.Called(ctx, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockAnalysisService) VerifyAndAnalyze(ctx context.Context, billID uuid.UUID, verified domain.VerifiedBill) (*domain.Bill, *analysis.Result, error) {
	args := m.Called(ctx, billID, verified)
	var bill *domain.Bill
	if args.Get(0) != nil {
		bill = args.Get(0).(*domain.Bill)
	}
	var result *analysis.Result
	if args.Get(1) != nil {
		result = args.Get(1).(*analysis.Result)
	}
	return bill, result, args.Error(2)
}

func (m *MockAnalysisService) ExtractBill(ctx context.Context, bill *domain.Bill, maxAttempts int) {
	m.Called(ctx, bill, maxAttempts)
}
