package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"nebenscan/internal/port"
)

// MockPaymentService is a mock implementation of service.PaymentService.
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) CreateCheckout(ctx context.Context, billID uuid.UUID, origin string) (*port.CheckoutSession, error) {
	args := m.Called(ctx, billID, origin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.CheckoutSession), args.Error(1)
}

func (m *MockPaymentService) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	args := m.Called(ctx, payload, signatureHeader)
	return args.Error(0)
}
