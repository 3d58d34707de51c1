package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest new invoice for a job.
type CreateInvoiceRequest struct {
	JobID       string          `json:"job_id"`
	CustomerID  string          `json:"customer_id"`
	AmountTotal decimal.Decimal `json:"amount_total"`
}

// InvoiceResponse public view.
type InvoiceResponse struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	JobID       string          `json:"job_id"`
	CustomerID  string          `json:"customer_id"`
	Number      string          `json:"number"`
	Status      string          `json:"status"`
	AmountTotal decimal.Decimal `json:"amount_total"`
	IssuedAt    *time.Time      `json:"issued_at,omitempty"`
	PaidAt      *time.Time      `json:"paid_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CheckoutResponse URL the client redirects the payer to.
type CheckoutResponse struct {
	URL string `json:"url"`
}
