package dto

import "time"

// PublicLinkResponse tells an unauthenticated page what a token points at.
// Kind is which token column matched: unified, schedule, payment or estimate.
type PublicLinkResponse struct {
	Kind       string `json:"kind"`
	JobID      string `json:"job_id"`
	EstimateID string `json:"estimate_id,omitempty"`
}

// PublicJobResponse the customer-facing view of a job (no internal fields).
type PublicJobResponse struct {
	Title         string     `json:"title"`
	CompanyName   string     `json:"company_name"`
	Status        string     `json:"status"`
	ScheduledFor  *time.Time `json:"scheduled_for,omitempty"`
	ScheduleState string     `json:"schedule_state"`
	PaymentState  string     `json:"payment_state"`
	Street        string     `json:"street"`
	City          string     `json:"city"`
	State         string     `json:"state"`
	Zip           string     `json:"zip"`
}
