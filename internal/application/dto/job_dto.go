package dto

import "time"

// CreateJobRequest new job payload.
type CreateJobRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CustomerID  string `json:"customer_id"`
	Street      string `json:"street"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zip         string `json:"zip"`
}

// UpdateJobRequest carries only the fields a client may change; anything else
// in the request body (company_id, token columns, payment fields) is dropped
// by the decoder. nil means "leave alone".
type UpdateJobRequest struct {
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	Status        *string    `json:"status"`
	CustomerID    *string    `json:"customer_id"`
	CrewID        *string    `json:"crew_id"`
	ScheduledFor  *time.Time `json:"scheduled_for"`
	BoardPosition *int       `json:"board_position"`
	Street        *string    `json:"street"`
	City          *string    `json:"city"`
	State         *string    `json:"state"`
	Zip           *string    `json:"zip"`
}

// ScheduleJobRequest proposes or confirms a visit date.
type ScheduleJobRequest struct {
	ScheduledFor time.Time `json:"scheduled_for"`
	Confirm      bool      `json:"confirm"`
}

// UpdateJobStatusRequest moves a job across the board.
type UpdateJobStatusRequest struct {
	Status        string `json:"status"`
	BoardPosition *int   `json:"board_position"`
}

// JobResponse public view of a job.
type JobResponse struct {
	ID            string     `json:"id"`
	CompanyID     string     `json:"company_id"`
	CustomerID    string     `json:"customer_id,omitempty"`
	CrewID        string     `json:"crew_id,omitempty"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Status        string     `json:"status"`
	BoardPosition int        `json:"board_position"`
	ScheduledFor  *time.Time `json:"scheduled_for,omitempty"`
	Street        string     `json:"street"`
	City          string     `json:"city"`
	State         string     `json:"state"`
	Zip           string     `json:"zip"`
	UnifiedToken  string     `json:"unified_job_token"`
	PaymentState  string     `json:"payment_state"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	ScheduleState string     `json:"schedule_state"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// BoardColumn one status column of the board view.
type BoardColumn struct {
	Status string        `json:"status"`
	Jobs   []JobResponse `json:"jobs"`
}
