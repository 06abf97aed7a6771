package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"nebenscan/internal/domain"
	"nebenscan/internal/service"
)

// MockBillService is a mock implementation of service.BillService.
type MockBillService struct {
	mock.Mock
}

func (m *MockBillService) Upload(ctx context.Context, input service.BillUploadInput) (*domain.Bill, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillService) GetByID(ctx context.Context, billID uuid.UUID) (*domain.Bill, error) {
	args := m.Called(ctx, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillService) List(ctx context.Context, offset, limit int) ([]domain.Bill, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Bill), args.Int(1), args.Error(2)
}

func (m *MockBillService) GetDownloadURL(ctx context.Context, billID uuid.UUID) (string, error) {
	args := m.Called(ctx, billID)
	return args.String(0), args.Error(1)
}
