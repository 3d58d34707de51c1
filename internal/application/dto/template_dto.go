package dto

import "time"

// MessageTemplateRequest create/update payload.
type MessageTemplateRequest struct {
	Kind    string `json:"kind"` // "sms" | "email"
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// MessageTemplateResponse template view.
type MessageTemplateResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	Subject   string    `json:"subject,omitempty"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
