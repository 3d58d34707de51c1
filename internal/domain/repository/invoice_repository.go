package repository

import (
	"time"

	"github.com/brushly/brushly-api/internal/domain/entity"
)

// InvoiceRepository is the persistence port for invoices.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Invoice, error)
	ListByJob(jobID string) ([]*entity.Invoice, error)
	Update(invoice *entity.Invoice) error

	// SetCheckoutSession stores the Stripe checkout session created for the invoice.
	SetCheckoutSession(id, sessionID string) error
	// MarkPaid records a completed checkout.
	MarkPaid(id, paymentIntentID string, at time.Time) error
}
