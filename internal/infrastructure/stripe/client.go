package stripe

import (
	"context"
	"fmt"

	stripeapi "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/brushly/brushly-api/internal/application/billing"
	"github.com/brushly/brushly-api/pkg/config"
)

var _ billing.CheckoutProvider = (*Client)(nil)
var _ billing.EventVerifier = (*Client)(nil)

// Client wraps the Stripe SDK behind the billing ports. The API key lives in
// this instance, not the SDK's package-level default, so tests and multiple
// environments can each carry their own.
type Client struct {
	api           *client.API
	priceID       string
	webhookSecret string
}

// NewClient builds the adapter from configuration.
func NewClient(cfg config.StripeConfig) *Client {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)
	return &Client{
		api:           api,
		priceID:       cfg.PriceID,
		webhookSecret: cfg.WebhookSecret,
	}
}

// CreateSubscriptionCheckout opens a hosted checkout for the subscription
// price. The tenant and referral attribution ride along as session metadata
// and come back on checkout.session.completed.
func (c *Client) CreateSubscriptionCheckout(ctx context.Context, p billing.SubscriptionCheckoutParams) (string, string, error) {
	params := &stripeapi.CheckoutSessionParams{
		Mode: stripeapi.String(string(stripeapi.CheckoutSessionModeSubscription)),
		LineItems: []*stripeapi.CheckoutSessionLineItemParams{{
			Price:    stripeapi.String(c.priceID),
			Quantity: stripeapi.Int64(1),
		}},
		SuccessURL: stripeapi.String(p.SuccessURL),
		CancelURL:  stripeapi.String(p.CancelURL),
	}
	params.Context = ctx
	if p.CustomerEmail != "" {
		params.CustomerEmail = stripeapi.String(p.CustomerEmail)
	}
	params.AddMetadata("kind", "subscription")
	params.AddMetadata("company_id", p.CompanyID)
	if p.CreatorCodeID != "" && p.VisitorID != "" {
		params.AddMetadata("creator_code_id", p.CreatorCodeID)
		params.AddMetadata("visitor_id", p.VisitorID)
	}

	sess, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return "", "", fmt.Errorf("create subscription checkout: %w", err)
	}
	return sess.URL, sess.ID, nil
}

// CreateInvoiceCheckout opens a one-off payment checkout priced ad hoc from
// the invoice amount.
func (c *Client) CreateInvoiceCheckout(ctx context.Context, p billing.InvoiceCheckoutParams) (string, string, error) {
	params := &stripeapi.CheckoutSessionParams{
		Mode: stripeapi.String(string(stripeapi.CheckoutSessionModePayment)),
		LineItems: []*stripeapi.CheckoutSessionLineItemParams{{
			PriceData: &stripeapi.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripeapi.String("usd"),
				UnitAmount: stripeapi.Int64(p.AmountCents),
				ProductData: &stripeapi.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripeapi.String(p.Description),
				},
			},
			Quantity: stripeapi.Int64(1),
		}},
		SuccessURL: stripeapi.String(p.SuccessURL),
		CancelURL:  stripeapi.String(p.CancelURL),
	}
	params.Context = ctx
	params.AddMetadata("kind", "invoice_payment")
	params.AddMetadata("company_id", p.CompanyID)
	params.AddMetadata("invoice_id", p.InvoiceID)
	params.AddMetadata("job_id", p.JobID)

	sess, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return "", "", fmt.Errorf("create invoice checkout: %w", err)
	}
	return sess.URL, sess.ID, nil
}

// VerifyEvent checks the webhook signature and converts the envelope into the
// provider-agnostic event the dispatch pipeline consumes.
func (c *Client) VerifyEvent(payload []byte, signatureHeader string) (*billing.ProviderEvent, error) {
	event, err := webhook.ConstructEvent(payload, signatureHeader, c.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("verify webhook signature: %w", err)
	}
	return &billing.ProviderEvent{
		ID:     event.ID,
		Type:   string(event.Type),
		Object: event.Data.Raw,
	}, nil
}
