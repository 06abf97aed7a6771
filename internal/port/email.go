package port

import "context"

// EmailSender defines the contract for sending tenant notifications.
type EmailSender interface {
	SendReportReadyEmail(ctx context.Context, toEmail, billID string) error
}
