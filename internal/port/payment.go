package port

import "context"

// CheckoutSession is the result of creating a payment session.
type CheckoutSession struct {
	SessionID string
	URL       string
}

// WebhookEvent is a verified payment provider event.
type WebhookEvent struct {
	Type      string
	BillID    string
	SessionID string
}

// PaymentProvider abstracts checkout session creation and webhook
// verification.
type PaymentProvider interface {
	CreateCheckoutSession(ctx context.Context, billID, origin string) (*CheckoutSession, error)
	// VerifyWebhook checks the event signature and returns the decoded
	// event, or domain.ErrInvalidSignature.
	VerifyWebhook(payload []byte, signatureHeader string) (*WebhookEvent, error)
}
