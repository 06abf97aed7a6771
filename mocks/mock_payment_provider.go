package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"nebenscan/internal/port"
)

// MockPaymentProvider is a mock implementation of port.PaymentProvider.
type MockPaymentProvider struct {
	mock.Mock
}

func (m *MockPaymentProvider) CreateCheckoutSession(ctx context.Context, billID, origin string) (*port.CheckoutSession, error) {
	args := m.Called(ctx, billID, origin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.CheckoutSession), args.Error(1)
}

func (m *MockPaymentProvider) VerifyWebhook(payload []byte, signatureHeader string) (*port.WebhookEvent, error) {
	args := m.Called(payload, signatureHeader)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.WebhookEvent), args.Error(1)
}
