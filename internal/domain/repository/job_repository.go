package repository

import (
	"time"

	"github.com/brushly/brushly-api/internal/domain/entity"
)

// Token kinds a public link can resolve through, in precedence order.
const (
	TokenUnified  = "unified"
	TokenSchedule = "schedule"
	TokenPayment  = "payment"
	TokenEstimate = "estimate"
)

// JobRepository is the persistence port for jobs.
type JobRepository interface {
	Create(job *entity.Job) error
	GetByID(id string) (*entity.Job, error)
	// ListByCompany pages jobs; status filters when non-empty.
	ListByCompany(companyID, status string, limit, offset int) ([]*entity.Job, error)
	// ListBoard returns every non-archived job ordered by status then board position.
	ListBoard(companyID string) ([]*entity.Job, error)
	Update(job *entity.Job) error
	Delete(id string) error

	// FindByAnyToken resolves a public token against the unified, schedule and
	// payment columns in one query; the returned kind says which column won.
	// Precedence: unified > schedule > payment. Returns (nil, "", nil) on miss.
	FindByAnyToken(token string) (*entity.Job, string, error)

	// MarkPaid records a completed payment for the job.
	MarkPaid(id, method string, at time.Time) error
}
