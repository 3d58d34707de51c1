package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateEstimateRequest new estimate for a job.
type CreateEstimateRequest struct {
	JobID string `json:"job_id"`
	Notes string `json:"notes"`
}

// LineItemRequest labor line payload (create and update share the shape).
type LineItemRequest struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Position    int             `json:"position"`
}

// MaterialRequest material line payload.
type MaterialRequest struct {
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// RespondEstimateRequest customer decision from the public link.
type RespondEstimateRequest struct {
	Decision string `json:"decision"` // "accept" | "deny"
}

// LineItemResponse labor line view.
type LineItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
	Position    int             `json:"position"`
}

// MaterialResponse material line view.
type MaterialResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
	Amount   decimal.Decimal `json:"amount"`
}

// EstimateResponse estimate with child rows and computed totals.
type EstimateResponse struct {
	ID             string             `json:"id"`
	CompanyID      string             `json:"company_id"`
	JobID          string             `json:"job_id"`
	Status         string             `json:"status"`
	PublicToken    string             `json:"public_token,omitempty"`
	LaborTotal     decimal.Decimal    `json:"labor_total"`
	MaterialsTotal decimal.Decimal    `json:"materials_total"`
	GrandTotal     decimal.Decimal    `json:"grand_total"`
	Notes          string             `json:"notes"`
	SentAt         *time.Time         `json:"sent_at,omitempty"`
	RespondedAt    *time.Time         `json:"responded_at,omitempty"`
	LineItems      []LineItemResponse `json:"line_items,omitempty"`
	Materials      []MaterialResponse `json:"materials,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
}
