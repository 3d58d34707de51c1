package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estimate statuses.
const (
	EstimateDraft    = "draft"
	EstimateSent     = "sent"
	EstimateAccepted = "accepted"
	EstimateDenied   = "denied"
)

// Estimate is a quote for a job. LaborTotal and MaterialsTotal are always the
// sums of the child rows; they are recomputed in the same transaction as any
// line item or material mutation.
type Estimate struct {
	ID             string
	CompanyID      string
	JobID          string
	Status         string
	PublicToken    string
	LaborTotal     decimal.Decimal
	MaterialsTotal decimal.Decimal
	Notes          string
	SentAt         *time.Time
	RespondedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// GrandTotal is labor plus materials.
func (e *Estimate) GrandTotal() decimal.Decimal {
	return e.LaborTotal.Add(e.MaterialsTotal)
}

// EstimateLineItem is a labor line; Amount = Quantity * UnitPrice.
type EstimateLineItem struct {
	ID          string
	EstimateID  string
	CompanyID   string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
	Position    int
	CreatedAt   time.Time
}

// EstimateMaterial is a materials line; Amount = Quantity * UnitCost.
type EstimateMaterial struct {
	ID         string
	EstimateID string
	CompanyID  string
	Name       string
	Quantity   decimal.Decimal
	UnitCost   decimal.Decimal
	Amount     decimal.Decimal
	CreatedAt  time.Time
}
