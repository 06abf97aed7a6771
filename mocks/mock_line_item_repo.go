package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"nebenscan/internal/domain"
)

// MockLineItemRepo is a mock implementation of port.LineItemRepository.
type MockLineItemRepo struct {
	mock.Mock
}

func (m *MockLineItemRepo) ReplaceForBill(ctx context.Context, billID uuid.UUID, items []domain.LineItem) error {
	args := m.Called(ctx, billID, items)
	return args.Error(0)
}

func (m *MockLineItemRepo) ListByBill(ctx context.Context, billID uuid.UUID) ([]domain.LineItem, error) {
	args := m.Called(ctx, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LineItem), args.Error(1)
}

func (m *MockLineItemRepo) UpdateAnalysis(ctx context.Context, item *domain.LineItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
