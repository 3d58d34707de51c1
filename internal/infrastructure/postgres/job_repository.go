package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/brushly/brushly-api/internal/domain"
	"github.com/brushly/brushly-api/internal/domain/entity"
	"github.com/brushly/brushly-api/internal/domain/repository"
)

var _ repository.JobRepository = (*JobRepo)(nil)

// JobRepo implements JobRepository (usable with pool or tx).
type JobRepo struct {
	q Querier
}

func NewJobRepository(q Querier) *JobRepo {
	return &JobRepo{q: q}
}

const jobColumns = `id, company_id, customer_id, crew_id, title, description, status, board_position,
		scheduled_for, street, city, state, zip,
		unified_token, schedule_token, payment_token,
		payment_state, payment_method, paid_at, schedule_state, created_at, updated_at`

func scanJob(row pgx.Row) (*entity.Job, error) {
	var j entity.Job
	err := row.Scan(
		&j.ID, &j.CompanyID, &j.CustomerID, &j.CrewID, &j.Title, &j.Description,
		&j.Status, &j.BoardPosition, &j.ScheduledFor,
		&j.Street, &j.City, &j.State, &j.Zip,
		&j.UnifiedToken, &j.ScheduleToken, &j.PaymentToken,
		&j.PaymentState, &j.PaymentMethod, &j.PaidAt, &j.ScheduleState,
		&j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan job: %w", err)
	}
	return &j, nil
}

func scanJobs(rows pgx.Rows) ([]*entity.Job, error) {
	defer rows.Close()
	var list []*entity.Job
	for rows.Next() {
		var j entity.Job
		if err := rows.Scan(
			&j.ID, &j.CompanyID, &j.CustomerID, &j.CrewID, &j.Title, &j.Description,
			&j.Status, &j.BoardPosition, &j.ScheduledFor,
			&j.Street, &j.City, &j.State, &j.Zip,
			&j.UnifiedToken, &j.ScheduleToken, &j.PaymentToken,
			&j.PaymentState, &j.PaymentMethod, &j.PaidAt, &j.ScheduleState,
			&j.CreatedAt, &j.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		list = append(list, &j)
	}
	return list, rows.Err()
}

func (r *JobRepo) Create(job *entity.Job) error {
	query := `
		INSERT INTO jobs (` + jobColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`
	_, err := r.q.Exec(context.Background(), query,
		job.ID, job.CompanyID, job.CustomerID, job.CrewID, job.Title, job.Description,
		job.Status, job.BoardPosition, job.ScheduledFor,
		job.Street, job.City, job.State, job.Zip,
		job.UnifiedToken, job.ScheduleToken, job.PaymentToken,
		job.PaymentState, job.PaymentMethod, job.PaidAt, job.ScheduleState,
		job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

func (r *JobRepo) GetByID(id string) (*entity.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	return scanJob(r.q.QueryRow(context.Background(), query, id))
}

func (r *JobRepo) ListByCompany(companyID, status string, limit, offset int) ([]*entity.Job, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM jobs
		WHERE company_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, companyID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return scanJobs(rows)
}

func (r *JobRepo) ListBoard(companyID string) ([]*entity.Job, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM jobs
		WHERE company_id = $1 AND status <> 'archive'
		ORDER BY status, board_position, created_at`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list board: %w", err)
	}
	return scanJobs(rows)
}

func (r *JobRepo) Update(job *entity.Job) error {
	query := `
		UPDATE jobs
		SET customer_id = $2, crew_id = $3, title = $4, description = $5,
		    status = $6, board_position = $7, scheduled_for = $8,
		    street = $9, city = $10, state = $11, zip = $12,
		    payment_state = $13, payment_method = $14, paid_at = $15,
		    schedule_state = $16, updated_at = $17
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		job.ID, job.CustomerID, job.CrewID, job.Title, job.Description,
		job.Status, job.BoardPosition, job.ScheduledFor,
		job.Street, job.City, job.State, job.Zip,
		job.PaymentState, job.PaymentMethod, job.PaidAt, job.ScheduleState,
		job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	return nil
}

func (r *JobRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}

// FindByAnyToken resolves a token against the three token columns in one
// round trip. The CASE picks which column matched, with unified links winning
// over legacy ones when a collision ever happens.
func (r *JobRepo) FindByAnyToken(token string) (*entity.Job, string, error) {
	query := `
		SELECT ` + jobColumns + `,
		       CASE
		           WHEN unified_token = $1 THEN 'unified'
		           WHEN schedule_token = $1 THEN 'schedule'
		           ELSE 'payment'
		       END AS token_kind
		FROM jobs
		WHERE unified_token = $1 OR schedule_token = $1 OR payment_token = $1
		LIMIT 1`
	var j entity.Job
	var kind string
	err := r.q.QueryRow(context.Background(), query, token).Scan(
		&j.ID, &j.CompanyID, &j.CustomerID, &j.CrewID, &j.Title, &j.Description,
		&j.Status, &j.BoardPosition, &j.ScheduledFor,
		&j.Street, &j.City, &j.State, &j.Zip,
		&j.UnifiedToken, &j.ScheduleToken, &j.PaymentToken,
		&j.PaymentState, &j.PaymentMethod, &j.PaidAt, &j.ScheduleState,
		&j.CreatedAt, &j.UpdatedAt,
		&kind,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("find job by token: %w", err)
	}
	return &j, kind, nil
}

func (r *JobRepo) MarkPaid(id, method string, at time.Time) error {
	query := `
		UPDATE jobs
		SET payment_state = 'paid', payment_method = $2, paid_at = $3,
		    status = 'paid', updated_at = $3
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, method, at)
	if err != nil {
		return fmt.Errorf("mark job paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
