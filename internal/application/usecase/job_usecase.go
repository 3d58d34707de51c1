package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/brushly/brushly-api/internal/application/dto"
	"github.com/brushly/brushly-api/internal/domain"
	"github.com/brushly/brushly-api/internal/domain/entity"
	"github.com/brushly/brushly-api/internal/domain/repository"
)

// JobUseCase the job board. Updates go through a field whitelist: the DTO
// only carries client-writable fields, so company_id, tokens and payment
// columns can never arrive from a request body.
type JobUseCase struct {
	jobRepo      repository.JobRepository
	customerRepo repository.CustomerRepository
	crewRepo     repository.CrewRepository
}

// NewJobUseCase builds the use case.
func NewJobUseCase(jobRepo repository.JobRepository, customerRepo repository.CustomerRepository, crewRepo repository.CrewRepository) *JobUseCase {
	return &JobUseCase{jobRepo: jobRepo, customerRepo: customerRepo, crewRepo: crewRepo}
}

// Create adds a job in the "new" column. All three public tokens are minted
// up front; the legacy columns keep old link formats resolvable.
func (uc *JobUseCase) Create(companyID string, in dto.CreateJobRequest) (*dto.JobResponse, error) {
	if in.Title == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CustomerID != "" {
		if err := uc.checkCustomer(companyID, in.CustomerID); err != nil {
			return nil, err
		}
	}
	now := time.Now()
	job := &entity.Job{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		CustomerID:    in.CustomerID,
		Title:         in.Title,
		Description:   in.Description,
		Status:        entity.JobStatusNew,
		Street:        in.Street,
		City:          in.City,
		State:         in.State,
		Zip:           in.Zip,
		UnifiedToken:  uuid.New().String(),
		ScheduleToken: uuid.New().String(),
		PaymentToken:  uuid.New().String(),
		PaymentState:  entity.PaymentUnpaid,
		ScheduleState: entity.ScheduleUnscheduled,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.jobRepo.Create(job); err != nil {
		return nil, err
	}
	return ToJobResponse(job), nil
}

// Get returns one job, company-scoped.
func (uc *JobUseCase) Get(companyID, id string) (*dto.JobResponse, error) {
	job, err := uc.loadScoped(companyID, id)
	if err != nil {
		return nil, err
	}
	return ToJobResponse(job), nil
}

// List pages jobs, optionally filtered by status.
func (uc *JobUseCase) List(companyID, status string, limit, offset int) ([]*dto.JobResponse, error) {
	if status != "" && !entity.ValidJobStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.jobRepo.ListByCompany(companyID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.JobResponse, 0, len(list))
	for _, j := range list {
		out = append(out, ToJobResponse(j))
	}
	return out, nil
}

// Board returns every non-archived job grouped into status columns.
func (uc *JobUseCase) Board(companyID string) ([]dto.BoardColumn, error) {
	jobs, err := uc.jobRepo.ListBoard(companyID)
	if err != nil {
		return nil, err
	}
	byStatus := make(map[string][]dto.JobResponse)
	for _, j := range jobs {
		byStatus[j.Status] = append(byStatus[j.Status], *ToJobResponse(j))
	}
	columns := make([]dto.BoardColumn, 0, len(entity.JobStatuses)-1)
	for _, status := range entity.JobStatuses {
		if status == entity.JobStatusArchive {
			continue
		}
		columns = append(columns, dto.BoardColumn{Status: status, Jobs: byStatus[status]})
	}
	return columns, nil
}

// Update applies the whitelisted fields from the request.
func (uc *JobUseCase) Update(companyID, id string, in dto.UpdateJobRequest) (*dto.JobResponse, error) {
	job, err := uc.loadScoped(companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		if *in.Title == "" {
			return nil, domain.ErrInvalidInput
		}
		job.Title = *in.Title
	}
	if in.Description != nil {
		job.Description = *in.Description
	}
	if in.Status != nil {
		if !entity.ValidJobStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		job.Status = *in.Status
	}
	if in.CustomerID != nil {
		if *in.CustomerID != "" {
			if err := uc.checkCustomer(companyID, *in.CustomerID); err != nil {
				return nil, err
			}
		}
		job.CustomerID = *in.CustomerID
	}
	if in.CrewID != nil {
		if *in.CrewID != "" {
			if err := uc.checkCrew(companyID, *in.CrewID); err != nil {
				return nil, err
			}
		}
		job.CrewID = *in.CrewID
	}
	if in.ScheduledFor != nil {
		job.ScheduledFor = in.ScheduledFor
	}
	if in.BoardPosition != nil {
		job.BoardPosition = *in.BoardPosition
	}
	if in.Street != nil {
		job.Street = *in.Street
	}
	if in.City != nil {
		job.City = *in.City
	}
	if in.State != nil {
		job.State = *in.State
	}
	if in.Zip != nil {
		job.Zip = *in.Zip
	}
	job.UpdatedAt = time.Now()
	if err := uc.jobRepo.Update(job); err != nil {
		return nil, err
	}
	return ToJobResponse(job), nil
}

// UpdateStatus moves a job across the board.
func (uc *JobUseCase) UpdateStatus(companyID, id string, in dto.UpdateJobStatusRequest) (*dto.JobResponse, error) {
	if !entity.ValidJobStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	job, err := uc.loadScoped(companyID, id)
	if err != nil {
		return nil, err
	}
	job.Status = in.Status
	if in.BoardPosition != nil {
		job.BoardPosition = *in.BoardPosition
	}
	job.UpdatedAt = time.Now()
	if err := uc.jobRepo.Update(job); err != nil {
		return nil, err
	}
	return ToJobResponse(job), nil
}

// Schedule sets the visit date; Confirm flips the state from proposed to confirmed.
func (uc *JobUseCase) Schedule(companyID, id string, in dto.ScheduleJobRequest) (*dto.JobResponse, error) {
	if in.ScheduledFor.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	job, err := uc.loadScoped(companyID, id)
	if err != nil {
		return nil, err
	}
	sched := in.ScheduledFor
	job.ScheduledFor = &sched
	if in.Confirm {
		job.ScheduleState = entity.ScheduleConfirmed
		if job.Status == entity.JobStatusNew || job.Status == entity.JobStatusQuoted {
			job.Status = entity.JobStatusScheduled
		}
	} else {
		job.ScheduleState = entity.ScheduleProposed
	}
	job.UpdatedAt = time.Now()
	if err := uc.jobRepo.Update(job); err != nil {
		return nil, err
	}
	return ToJobResponse(job), nil
}

// Delete archives are preferred in the UI; hard delete stays available.
func (uc *JobUseCase) Delete(companyID, id string) error {
	if _, err := uc.loadScoped(companyID, id); err != nil {
		return err
	}
	return uc.jobRepo.Delete(id)
}

func (uc *JobUseCase) loadScoped(companyID, id string) (*entity.Job, error) {
	job, err := uc.jobRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domain.ErrNotFound
	}
	if job.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return job, nil
}

func (uc *JobUseCase) checkCustomer(companyID, customerID string) error {
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil || customer == nil {
		return domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return nil
}

func (uc *JobUseCase) checkCrew(companyID, crewID string) error {
	crew, err := uc.crewRepo.GetByID(crewID)
	if err != nil || crew == nil {
		return domain.ErrNotFound
	}
	if crew.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return nil
}

// ToJobResponse maps a job for API output. Legacy tokens are not exposed;
// new links always use the unified token.
func ToJobResponse(j *entity.Job) *dto.JobResponse {
	return &dto.JobResponse{
		ID:            j.ID,
		CompanyID:     j.CompanyID,
		CustomerID:    j.CustomerID,
		CrewID:        j.CrewID,
		Title:         j.Title,
		Description:   j.Description,
		Status:        j.Status,
		BoardPosition: j.BoardPosition,
		ScheduledFor:  j.ScheduledFor,
		Street:        j.Street,
		City:          j.City,
		State:         j.State,
		Zip:           j.Zip,
		UnifiedToken:  j.UnifiedToken,
		PaymentState:  j.PaymentState,
		PaidAt:        j.PaidAt,
		ScheduleState: j.ScheduleState,
		CreatedAt:     j.CreatedAt,
		UpdatedAt:     j.UpdatedAt,
	}
}
