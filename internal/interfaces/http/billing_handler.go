package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brushly/brushly-api/internal/application/billing"
	"github.com/brushly/brushly-api/internal/application/dto"
	"github.com/brushly/brushly-api/pkg/logger"
)

// BillingHandler subscription state, checkout and the provider webhook.
type BillingHandler struct {
	gateUC     *billing.GateUseCase
	checkoutUC *billing.CheckoutUseCase
	webhookUC  *billing.WebhookUseCase
	verifier   billing.EventVerifier
	log        *logger.Logger
}

func NewBillingHandler(
	gateUC *billing.GateUseCase,
	checkoutUC *billing.CheckoutUseCase,
	webhookUC *billing.WebhookUseCase,
	verifier billing.EventVerifier,
	log *logger.Logger,
) *BillingHandler {
	return &BillingHandler{
		gateUC:     gateUC,
		checkoutUC: checkoutUC,
		webhookUC:  webhookUC,
		verifier:   verifier,
		log:        log,
	}
}

// Status GET /api/billing/status — gate verdict plus raw state for UI banners.
func (h *BillingHandler) Status(c *fiber.Ctx) error {
	resp, err := h.gateUC.Status(c.Context(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// SubscriptionCheckout POST /api/billing/checkout — opens a hosted checkout
// for the subscription.
func (h *BillingHandler) SubscriptionCheckout(c *fiber.Ctx) error {
	var in dto.SubscriptionCheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.checkoutUC.SubscriptionCheckout(c.Context(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Webhook POST /api/webhooks/stripe (public, signature-verified).
//
// Responses are chosen for the provider's retry machinery: 400 rejects a bad
// signature permanently, 502 asks for a retry after a handler failure, and
// duplicates are acknowledged with 200 so redeliveries stop.
func (h *BillingHandler) Webhook(c *fiber.Ctx) error {
	event, err := h.verifier.VerifyEvent(c.Body(), c.Get("Stripe-Signature"))
	if err != nil {
		h.log.Warn().Err(err).Msg("webhook signature rejected")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_SIGNATURE", Message: "webhook signature verification failed"})
	}

	duplicate, err := h.webhookUC.Process(c.Context(), event)
	if err != nil {
		h.log.Error().Err(err).Str("event_id", event.ID).Str("type", event.Type).Msg("webhook processing failed")
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "PROCESSING_FAILED", Message: "event processing failed, retry"})
	}
	return c.JSON(dto.WebhookAck{Received: true, Duplicate: duplicate})
}
