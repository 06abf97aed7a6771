package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"nebenscan/internal/domain"
	"nebenscan/internal/port"
)

// PaymentService handles checkout sessions and payment webhooks.
type PaymentService interface {
	CreateCheckout(ctx context.Context, billID uuid.UUID, origin string) (*port.CheckoutSession, error)
	HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error
}

type paymentService struct {
	billRepo port.BillRepository
	provider port.PaymentProvider
	email    port.EmailSender
}

// NewPaymentService creates a new PaymentService implementation.
func NewPaymentService(
	billRepo port.BillRepository,
	provider port.PaymentProvider,
	email port.EmailSender,
) PaymentService {
	return &paymentService{
		billRepo: billRepo,
		provider: provider,
		email:    email,
	}
}

func (s *paymentService) CreateCheckout(ctx context.Context, billID uuid.UUID, origin string) (*port.CheckoutSession, error) {
	bill, err := s.billRepo.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}

	if bill.Status != domain.BillStatusCompleted {
		return nil, domain.ErrBillNotAnalyzed
	}
	if bill.PaymentStatus == domain.PaymentStatusPaid {
		return nil, domain.ErrAlreadyPaid
	}

	session, err := s.provider.CreateCheckoutSession(ctx, bill.ID.String(), origin)
	if err != nil {
		return nil, fmt.Errorf("creating checkout session: %w", err)
	}

	log.Printf("paymentService.CreateCheckout: session %s created for bill %s", session.SessionID, bill.ID)
	return session, nil
}

// HandleWebhook verifies and processes a payment provider event. Events
// other than checkout completion are acknowledged and ignored.
func (s *paymentService) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	event, err := s.provider.VerifyWebhook(payload, signatureHeader)
	if err != nil {
		return err
	}

	if event.Type != "checkout.session.completed" {
		log.Printf("paymentService.HandleWebhook: ignoring event type %s", event.Type)
		return nil
	}

	billID, err := uuid.Parse(event.BillID)
	if err != nil {
		return fmt.Errorf("webhook event has invalid bill id %q: %w", event.BillID, err)
	}

	if err := s.billRepo.MarkPaid(ctx, billID, event.SessionID); err != nil {
		return fmt.Errorf("marking bill %s paid: %w", billID, err)
	}

	log.Printf("paymentService.HandleWebhook: bill %s marked paid (session %s)", billID, event.SessionID)

	// Notification failures never fail the webhook; Stripe would retry and
	// re-mark an already paid bill.
	bill, err := s.billRepo.GetByID(ctx, billID)
	if err != nil {
		log.Printf("paymentService.HandleWebhook: failed to load bill %s for notification: %v", billID, err)
		return nil
	}
	if bill.ContactEmail != "" {
		if err := s.email.SendReportReadyEmail(ctx, bill.ContactEmail, bill.ID.String()); err != nil {
			log.Printf("paymentService.HandleWebhook: failed to send report email for %s: %v", billID, err)
		}
	}

	return nil
}
