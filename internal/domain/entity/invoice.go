package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice statuses.
const (
	InvoiceDraft = "draft"
	InvoiceSent  = "sent"
	InvoicePaid  = "paid"
	InvoiceVoid  = "void"
)

// Invoice bills a job. Stripe checkout fields are set once a payment link has
// been created for it.
type Invoice struct {
	ID                      string
	CompanyID               string
	JobID                   string
	CustomerID              string
	Number                  string
	Status                  string
	AmountTotal             decimal.Decimal
	StripeCheckoutSessionID string
	StripePaymentIntentID   string
	IssuedAt                *time.Time
	PaidAt                  *time.Time
	CreatedAt               time.Time
	UpdatedAt               time.Time
}
