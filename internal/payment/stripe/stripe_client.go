package stripe

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"

	"nebenscan/internal/config"
	"nebenscan/internal/domain"
	"nebenscan/internal/port"
)

// metadataBillKey links a checkout session back to the bill it pays for.
const metadataBillKey = "bill_id"

type stripeClient struct {
	api           *client.API
	webhookSecret string
	priceCents    int64
	currency      string
	productName   string
	productDesc   string
}

// NewClient creates a Stripe-backed PaymentProvider.
func NewClient(cfg *config.PaymentConfig) port.PaymentProvider {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)
	return &stripeClient{
		api:           api,
		webhookSecret: cfg.WebhookSecret,
		priceCents:    cfg.PriceCents,
		currency:      cfg.Currency,
		productName:   cfg.ProductName,
		productDesc:   cfg.ProductDesc,
	}
}

func (c *stripeClient) CreateCheckoutSession(ctx context.Context, billID, origin string) (*port.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(c.currency),
					UnitAmount: stripe.Int64(c.priceCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(c.productName),
						Description: stripe.String(c.productDesc),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(fmt.Sprintf("%s/bills/%s?payment=success", origin, billID)),
		CancelURL:  stripe.String(fmt.Sprintf("%s/bills/%s?payment=cancelled", origin, billID)),
	}
	params.Context = ctx
	params.AddMetadata(metadataBillKey, billID)

	session, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("creating checkout session: %w", err)
	}

	return &port.CheckoutSession{
		SessionID: session.ID,
		URL:       session.URL,
	}, nil
}

func (c *stripeClient) VerifyWebhook(payload []byte, signatureHeader string) (*port.WebhookEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, c.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSignature, err)
	}

	out := &port.WebhookEvent{Type: string(event.Type)}

	if event.Type == "checkout.session.completed" {
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return nil, fmt.Errorf("unmarshaling checkout session: %w", err)
		}
		out.SessionID = session.ID
		out.BillID = session.Metadata[metadataBillKey]
	}

	return out, nil
}
