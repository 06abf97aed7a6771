package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendReportReadyEmail(ctx context.Context, toEmail, billID string) error {
	args := m.Called(ctx, toEmail, billID)
	return args.Error(0)
}
