package publiclink

import (
	"github.com/brushly/brushly-api/internal/application/dto"
	"github.com/brushly/brushly-api/internal/domain"
	"github.com/brushly/brushly-api/internal/domain/entity"
	"github.com/brushly/brushly-api/internal/domain/repository"
)

// Resolver answers "what does this opaque token point at" for unauthenticated
// customer pages. Job tokens are checked first in one query; estimate public
// tokens are the fallback. Tokens carry no tenant id, the row they match is
// the authorization.
type Resolver struct {
	jobRepo      repository.JobRepository
	estimateRepo repository.EstimateRepository
	companyRepo  repository.CompanyRepository
}

func NewResolver(jobRepo repository.JobRepository, estimateRepo repository.EstimateRepository, companyRepo repository.CompanyRepository) *Resolver {
	return &Resolver{jobRepo: jobRepo, estimateRepo: estimateRepo, companyRepo: companyRepo}
}

// Resolve maps a token to its kind and target ids.
func (r *Resolver) Resolve(token string) (*dto.PublicLinkResponse, error) {
	if token == "" {
		return nil, domain.ErrInvalidInput
	}

	job, kind, err := r.jobRepo.FindByAnyToken(token)
	if err != nil {
		return nil, err
	}
	if job != nil {
		return &dto.PublicLinkResponse{Kind: kind, JobID: job.ID}, nil
	}

	est, err := r.estimateRepo.GetByPublicToken(token)
	if err != nil {
		return nil, err
	}
	if est != nil {
		return &dto.PublicLinkResponse{
			Kind:       repository.TokenEstimate,
			JobID:      est.JobID,
			EstimateID: est.ID,
		}, nil
	}
	return nil, domain.ErrNotFound
}

// JobView builds the customer-facing snapshot for a resolved job token.
func (r *Resolver) JobView(token string) (*dto.PublicJobResponse, error) {
	job, _, err := r.jobRepo.FindByAnyToken(token)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domain.ErrNotFound
	}
	var companyName string
	if company, err := r.companyRepo.GetByID(job.CompanyID); err == nil && company != nil {
		companyName = company.Name
	}
	return toPublicJob(job, companyName), nil
}

func toPublicJob(job *entity.Job, companyName string) *dto.PublicJobResponse {
	return &dto.PublicJobResponse{
		Title:         job.Title,
		CompanyName:   companyName,
		Status:        job.Status,
		ScheduledFor:  job.ScheduledFor,
		ScheduleState: job.ScheduleState,
		PaymentState:  job.PaymentState,
		Street:        job.Street,
		City:          job.City,
		State:         job.State,
		Zip:           job.Zip,
	}
}
