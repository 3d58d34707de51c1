package billing

import (
	"context"
	"encoding/json"

	"github.com/brushly/brushly-api/internal/domain/repository"
)

// SubscriptionCheckoutParams inputs for a subscription checkout session.
// The referral fields ride along as session metadata and come back in the
// completed event.
type SubscriptionCheckoutParams struct {
	CompanyID     string
	CustomerEmail string
	CreatorCodeID string
	VisitorID     string
	SuccessURL    string
	CancelURL     string
}

// InvoiceCheckoutParams inputs for a one-off invoice payment session.
type InvoiceCheckoutParams struct {
	CompanyID   string
	InvoiceID   string
	JobID       string
	Description string
	AmountCents int64
	SuccessURL  string
	CancelURL   string
}

// CheckoutProvider creates hosted checkout sessions with the payment provider.
type CheckoutProvider interface {
	CreateSubscriptionCheckout(ctx context.Context, p SubscriptionCheckoutParams) (url, sessionID string, err error)
	CreateInvoiceCheckout(ctx context.Context, p InvoiceCheckoutParams) (url, sessionID string, err error)
}

// ProviderEvent is a verified webhook event, decoupled from the SDK so the
// dispatch logic (and its tests) never touch provider types.
type ProviderEvent struct {
	ID     string
	Type   string
	Object json.RawMessage // the event's data.object payload
}

// EventVerifier checks the webhook signature and parses the envelope.
type EventVerifier interface {
	VerifyEvent(payload []byte, signatureHeader string) (*ProviderEvent, error)
}

// ConversionTxRunner runs fn with referral repositories bound to one
// transaction, so claiming the referral row and bumping the code counter
// commit (or roll back) together.
type ConversionTxRunner interface {
	RunConversion(ctx context.Context, fn func(
		refRepo repository.ReferralRepository,
		codeRepo repository.CreatorCodeRepository,
	) error) error
}
