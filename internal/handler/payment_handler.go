package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"nebenscan/internal/service"
)

// PaymentHandler handles checkout and payment webhook endpoints.
type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Checkout handles POST /api/v1/bills/:id/checkout
// @Summary Create a checkout session
// @Description Create a Stripe Checkout session for the full report of an analyzed bill
// @Tags payments
// @Produce json
// @Param id path string true "Bill ID (UUID)"
// @Success 200 {object} APIResponse "Checkout session ID and URL"
// @Failure 400 {object} APIResponse "Invalid ID or bill not analyzed"
// @Failure 404 {object} APIResponse "Bill not found"
// @Failure 409 {object} APIResponse "Already paid"
// @Router /bills/{id}/checkout [post]
func (h *PaymentHandler) Checkout(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill ID")
		return
	}

	origin := c.GetHeader("Origin")
	if origin == "" {
		origin = "http://" + c.Request.Host
	}

	session, err := h.paymentService.CreateCheckout(c.Request.Context(), billID, origin)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"session_id":   session.SessionID,
		"checkout_url": session.URL,
	})
}

// Webhook handles POST /api/v1/webhooks/stripe
// @Summary Stripe webhook receiver
// @Description Verifies the Stripe signature and marks bills paid on checkout completion
// @Tags payments
// @Accept json
// @Produce json
// @Success 200 {object} APIResponse "Event processed"
// @Failure 400 {object} APIResponse "Invalid signature or payload"
// @Router /webhooks/stripe [post]
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "failed to read webhook payload")
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if err := h.paymentService.HandleWebhook(c.Request.Context(), payload, signature); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"received": true})
}
