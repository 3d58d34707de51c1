package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brushly/brushly-api/internal/application/dto"
	"github.com/brushly/brushly-api/internal/domain"
	"github.com/brushly/brushly-api/internal/domain/entity"
	"github.com/brushly/brushly-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type memJobRepo struct {
	repository.JobRepository
	jobs map[string]*entity.Job
}

func newMemJobRepo() *memJobRepo { return &memJobRepo{jobs: make(map[string]*entity.Job)} }

func (m *memJobRepo) Create(j *entity.Job) error {
	cp := *j
	m.jobs[j.ID] = &cp
	return nil
}

func (m *memJobRepo) GetByID(id string) (*entity.Job, error) {
	j, ok := m.jobs[id]
	if !ok {
		return nil, nil
	}
	cp := *j
	return &cp, nil
}

func (m *memJobRepo) Update(j *entity.Job) error {
	cp := *j
	m.jobs[j.ID] = &cp
	return nil
}

func (m *memJobRepo) Delete(id string) error {
	delete(m.jobs, id)
	return nil
}

func (m *memJobRepo) ListBoard(companyID string) ([]*entity.Job, error) {
	var out []*entity.Job
	for _, j := range m.jobs {
		if j.CompanyID == companyID && j.Status != entity.JobStatusArchive {
			out = append(out, j)
		}
	}
	return out, nil
}

type memCustomerRepo struct {
	repository.CustomerRepository
	customers map[string]*entity.Customer
}

func (m *memCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return m.customers[id], nil
}

type memCrewRepo struct {
	repository.CrewRepository
	crews map[string]*entity.Crew
}

func (m *memCrewRepo) GetByID(id string) (*entity.Crew, error) { return m.crews[id], nil }

func newJobFixture() (*JobUseCase, *memJobRepo, *memCustomerRepo, *memCrewRepo) {
	jobs := newMemJobRepo()
	customers := &memCustomerRepo{customers: make(map[string]*entity.Customer)}
	crews := &memCrewRepo{crews: make(map[string]*entity.Crew)}
	return NewJobUseCase(jobs, customers, crews), jobs, customers, crews
}

func strPtr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestJobCreate_MintsAllThreeTokens(t *testing.T) {
	_, jobs, _, _ := newJobFixture()
	uc := NewJobUseCase(jobs, &memCustomerRepo{}, &memCrewRepo{})

	resp, err := uc.Create("co_1", dto.CreateJobRequest{Title: "Repaint kitchen"})
	require.NoError(t, err)
	assert.Equal(t, entity.JobStatusNew, resp.Status)
	assert.Equal(t, entity.PaymentUnpaid, resp.PaymentState)
	assert.Equal(t, entity.ScheduleUnscheduled, resp.ScheduleState)

	stored := jobs.jobs[resp.ID]
	assert.NotEmpty(t, stored.UnifiedToken)
	assert.NotEmpty(t, stored.ScheduleToken)
	assert.NotEmpty(t, stored.PaymentToken)
	assert.NotEqual(t, stored.UnifiedToken, stored.ScheduleToken)
}

func TestJobCreate_RequiresTitle(t *testing.T) {
	uc, _, _, _ := newJobFixture()

	_, err := uc.Create("co_1", dto.CreateJobRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestJobCreate_CustomerMustBelongToCompany(t *testing.T) {
	uc, _, customers, _ := newJobFixture()
	customers.customers["cust_1"] = &entity.Customer{ID: "cust_1", CompanyID: "co_2"}

	_, err := uc.Create("co_1", dto.CreateJobRequest{Title: "Fence", CustomerID: "cust_1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Responses never leak legacy tokens
// ──────────────────────────────────────────────────────────────────────────────

func TestJobResponse_ExposesOnlyUnifiedToken(t *testing.T) {
	j := &entity.Job{
		ID:            "job_1",
		UnifiedToken:  "tok_u",
		ScheduleToken: "tok_s",
		PaymentToken:  "tok_p",
	}
	resp := ToJobResponse(j)

	assert.Equal(t, "tok_u", resp.UnifiedToken)
	// The legacy columns stay server-side; the DTO has no field for them.
	assert.NotContains(t, []string{resp.UnifiedToken}, "tok_s")
	assert.NotContains(t, []string{resp.UnifiedToken}, "tok_p")
}

// ──────────────────────────────────────────────────────────────────────────────
// Update whitelist
// ──────────────────────────────────────────────────────────────────────────────

func TestJobUpdate_OnlyTouchesProvidedFields(t *testing.T) {
	uc, jobs, _, _ := newJobFixture()
	created, err := uc.Create("co_1", dto.CreateJobRequest{Title: "Original", City: "Austin"})
	require.NoError(t, err)
	tokenBefore := jobs.jobs[created.ID].UnifiedToken

	resp, err := uc.Update("co_1", created.ID, dto.UpdateJobRequest{Title: strPtr("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", resp.Title)
	assert.Equal(t, "Austin", resp.City, "fields not in the request must not change")
	assert.Equal(t, tokenBefore, jobs.jobs[created.ID].UnifiedToken, "tokens are not client-writable")
}

func TestJobUpdate_RejectsEmptyTitle(t *testing.T) {
	uc, _, _, _ := newJobFixture()
	created, err := uc.Create("co_1", dto.CreateJobRequest{Title: "Job"})
	require.NoError(t, err)

	_, err = uc.Update("co_1", created.ID, dto.UpdateJobRequest{Title: strPtr("")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestJobUpdate_RejectsUnknownStatus(t *testing.T) {
	uc, _, _, _ := newJobFixture()
	created, err := uc.Create("co_1", dto.CreateJobRequest{Title: "Job"})
	require.NoError(t, err)

	_, err = uc.Update("co_1", created.ID, dto.UpdateJobRequest{Status: strPtr("launched")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestJobUpdate_CrossCompanyIsForbidden(t *testing.T) {
	uc, _, _, _ := newJobFixture()
	created, err := uc.Create("co_1", dto.CreateJobRequest{Title: "Job"})
	require.NoError(t, err)

	_, err = uc.Update("co_2", created.ID, dto.UpdateJobRequest{Title: strPtr("Stolen")})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestJobUpdate_AssignCrewFromAnotherCompanyIsForbidden(t *testing.T) {
	uc, _, _, crews := newJobFixture()
	crews.crews["crew_1"] = &entity.Crew{ID: "crew_1", CompanyID: "co_2"}
	created, err := uc.Create("co_1", dto.CreateJobRequest{Title: "Job"})
	require.NoError(t, err)

	_, err = uc.Update("co_1", created.ID, dto.UpdateJobRequest{CrewID: strPtr("crew_1")})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Board / status
// ──────────────────────────────────────────────────────────────────────────────

func TestJobBoard_HasAColumnPerStatusWithoutArchive(t *testing.T) {
	uc, _, _, _ := newJobFixture()
	_, err := uc.Create("co_1", dto.CreateJobRequest{Title: "A"})
	require.NoError(t, err)

	columns, err := uc.Board("co_1")
	require.NoError(t, err)
	require.Len(t, columns, len(entity.JobStatuses)-1)
	for _, col := range columns {
		assert.NotEqual(t, entity.JobStatusArchive, col.Status)
	}
	assert.Equal(t, entity.JobStatusNew, columns[0].Status)
	assert.Len(t, columns[0].Jobs, 1)
}

func TestJobUpdateStatus_ValidatesStatus(t *testing.T) {
	uc, _, _, _ := newJobFixture()
	created, err := uc.Create("co_1", dto.CreateJobRequest{Title: "Job"})
	require.NoError(t, err)

	_, err = uc.UpdateStatus("co_1", created.ID, dto.UpdateJobStatusRequest{Status: "bogus"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	resp, err := uc.UpdateStatus("co_1", created.ID, dto.UpdateJobStatusRequest{Status: entity.JobStatusDone})
	require.NoError(t, err)
	assert.Equal(t, entity.JobStatusDone, resp.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Schedule
// ──────────────────────────────────────────────────────────────────────────────

func TestJobSchedule_ProposeThenConfirm(t *testing.T) {
	uc, _, _, _ := newJobFixture()
	created, err := uc.Create("co_1", dto.CreateJobRequest{Title: "Job"})
	require.NoError(t, err)
	when := time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC)

	resp, err := uc.Schedule("co_1", created.ID, dto.ScheduleJobRequest{ScheduledFor: when})
	require.NoError(t, err)
	assert.Equal(t, entity.ScheduleProposed, resp.ScheduleState)
	assert.Equal(t, entity.JobStatusNew, resp.Status, "a proposal does not move the board")

	resp, err = uc.Schedule("co_1", created.ID, dto.ScheduleJobRequest{ScheduledFor: when, Confirm: true})
	require.NoError(t, err)
	assert.Equal(t, entity.ScheduleConfirmed, resp.ScheduleState)
	assert.Equal(t, entity.JobStatusScheduled, resp.Status)
	require.NotNil(t, resp.ScheduledFor)
	assert.True(t, when.Equal(*resp.ScheduledFor))
}

func TestJobSchedule_RequiresADate(t *testing.T) {
	uc, _, _, _ := newJobFixture()
	created, err := uc.Create("co_1", dto.CreateJobRequest{Title: "Job"})
	require.NoError(t, err)

	_, err = uc.Schedule("co_1", created.ID, dto.ScheduleJobRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
