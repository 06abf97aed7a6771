package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"nebenscan/internal/domain"
)

// MockBillRepo is a mock implementation of port.BillRepository.
type MockBillRepo struct {
	mock.Mock
}

func (m *MockBillRepo) Create(ctx context.Context, bill *domain.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepo) GetByID(ctx context.Context, billID uuid.UUID) (*domain.Bill, error) {
	args := m.Called(ctx, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillRepo) List(ctx context.Context, offset, limit int) ([]domain.Bill, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Bill), args.Int(1), args.Error(2)
}

func (m *MockBillRepo) UpdateStatus(ctx context.Context, billID uuid.UUID, status domain.BillStatus) error {
	args := m.Called(ctx, billID, status)
	return args.Error(0)
}

func (m *MockBillRepo) UpdateExtraction(ctx context.Context, bill *domain.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepo) UpdateAnalysis(ctx context.Context, bill *domain.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepo) MarkPaid(ctx context.Context, billID uuid.UUID, paymentID string) error {
	args := m.Called(ctx, billID, paymentID)
	return args.Error(0)
}

func (m *MockBillRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.Bill, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bill), args.Error(1)
}
