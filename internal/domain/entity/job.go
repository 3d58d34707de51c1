package entity

import "time"

// Job board statuses, in board order.
const (
	JobStatusNew        = "new"
	JobStatusQuoted     = "quoted"
	JobStatusScheduled  = "scheduled"
	JobStatusInProgress = "in_progress"
	JobStatusDone       = "done"
	JobStatusPaid       = "paid"
	JobStatusArchive    = "archive"
)

// JobStatuses lists every valid board status.
var JobStatuses = []string{
	JobStatusNew, JobStatusQuoted, JobStatusScheduled,
	JobStatusInProgress, JobStatusDone, JobStatusPaid, JobStatusArchive,
}

// ValidJobStatus reports whether s is a known board status.
func ValidJobStatus(s string) bool {
	for _, v := range JobStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Payment states for a job.
const (
	PaymentUnpaid     = "unpaid"
	PaymentProcessing = "processing"
	PaymentPaid       = "paid"
)

// Schedule states for a job.
const (
	ScheduleUnscheduled = "unscheduled"
	ScheduleProposed    = "proposed"
	ScheduleConfirmed   = "confirmed"
)

// Job is a unit of work on the board. It carries three public-link tokens:
// UnifiedToken is the current link format; ScheduleToken and PaymentToken are
// legacy per-feature links that must keep resolving.
type Job struct {
	ID            string
	CompanyID     string
	CustomerID    string // empty when the job has no customer yet
	CrewID        string // empty when unassigned
	Title         string
	Description   string
	Status        string
	BoardPosition int
	ScheduledFor  *time.Time
	Street        string
	City          string
	State         string
	Zip           string
	UnifiedToken  string
	ScheduleToken string
	PaymentToken  string
	PaymentState  string
	PaymentMethod string
	PaidAt        *time.Time
	ScheduleState string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
