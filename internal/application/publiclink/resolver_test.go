package publiclink

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brushly/brushly-api/internal/domain"
	"github.com/brushly/brushly-api/internal/domain/entity"
	"github.com/brushly/brushly-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// fakeJobRepo resolves tokens the way the real query does: unified wins over
// schedule wins over payment, scanning jobs in insertion order.
type fakeJobRepo struct {
	repository.JobRepository
	jobs []*entity.Job
}

func (f *fakeJobRepo) FindByAnyToken(token string) (*entity.Job, string, error) {
	for _, j := range f.jobs {
		switch token {
		case j.UnifiedToken:
			return j, repository.TokenUnified, nil
		case j.ScheduleToken:
			return j, repository.TokenSchedule, nil
		case j.PaymentToken:
			return j, repository.TokenPayment, nil
		}
	}
	return nil, "", nil
}

type fakeEstimateRepo struct {
	repository.EstimateRepository
	byToken map[string]*entity.Estimate
}

func (f *fakeEstimateRepo) GetByPublicToken(token string) (*entity.Estimate, error) {
	return f.byToken[token], nil
}

type fakeCompanyRepo struct {
	repository.CompanyRepository
	byID map[string]*entity.Company
}

func (f *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	return f.byID[id], nil
}

func newResolverFixture() (*Resolver, *fakeJobRepo, *fakeEstimateRepo, *fakeCompanyRepo) {
	jobs := &fakeJobRepo{}
	ests := &fakeEstimateRepo{byToken: make(map[string]*entity.Estimate)}
	companies := &fakeCompanyRepo{byID: make(map[string]*entity.Company)}
	return NewResolver(jobs, ests, companies), jobs, ests, companies
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolve
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_UnifiedToken(t *testing.T) {
	r, jobs, _, _ := newResolverFixture()
	jobs.jobs = append(jobs.jobs, &entity.Job{ID: "job_1", UnifiedToken: "tok_u"})

	resp, err := r.Resolve("tok_u")
	require.NoError(t, err)
	assert.Equal(t, repository.TokenUnified, resp.Kind)
	assert.Equal(t, "job_1", resp.JobID)
	assert.Empty(t, resp.EstimateID)
}

func TestResolve_LegacyScheduleAndPaymentTokensKeepWorking(t *testing.T) {
	r, jobs, _, _ := newResolverFixture()
	jobs.jobs = append(jobs.jobs, &entity.Job{
		ID:            "job_1",
		UnifiedToken:  "tok_u",
		ScheduleToken: "tok_s",
		PaymentToken:  "tok_p",
	})

	resp, err := r.Resolve("tok_s")
	require.NoError(t, err)
	assert.Equal(t, repository.TokenSchedule, resp.Kind)
	assert.Equal(t, "job_1", resp.JobID)

	resp, err = r.Resolve("tok_p")
	require.NoError(t, err)
	assert.Equal(t, repository.TokenPayment, resp.Kind)
}

func TestResolve_EstimateTokenIsTheFallback(t *testing.T) {
	r, _, ests, _ := newResolverFixture()
	ests.byToken["tok_e"] = &entity.Estimate{ID: "est_1", JobID: "job_1"}

	resp, err := r.Resolve("tok_e")
	require.NoError(t, err)
	assert.Equal(t, repository.TokenEstimate, resp.Kind)
	assert.Equal(t, "job_1", resp.JobID)
	assert.Equal(t, "est_1", resp.EstimateID)
}

func TestResolve_JobTokenWinsOverEstimateToken(t *testing.T) {
	// A collision should never happen with random tokens, but precedence is
	// still fixed: job columns are checked before estimates.
	r, jobs, ests, _ := newResolverFixture()
	jobs.jobs = append(jobs.jobs, &entity.Job{ID: "job_1", UnifiedToken: "tok_x"})
	ests.byToken["tok_x"] = &entity.Estimate{ID: "est_1", JobID: "job_2"}

	resp, err := r.Resolve("tok_x")
	require.NoError(t, err)
	assert.Equal(t, repository.TokenUnified, resp.Kind)
	assert.Equal(t, "job_1", resp.JobID)
}

func TestResolve_UnknownToken(t *testing.T) {
	r, _, _, _ := newResolverFixture()

	_, err := r.Resolve("nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolve_EmptyToken(t *testing.T) {
	r, _, _, _ := newResolverFixture()

	_, err := r.Resolve("")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// JobView
// ──────────────────────────────────────────────────────────────────────────────

func TestJobView_BuildsCustomerSnapshot(t *testing.T) {
	r, jobs, _, companies := newResolverFixture()
	when := time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC)
	jobs.jobs = append(jobs.jobs, &entity.Job{
		ID:            "job_1",
		CompanyID:     "co_1",
		UnifiedToken:  "tok_u",
		Title:         "Exterior repaint",
		Status:        entity.JobStatusScheduled,
		ScheduledFor:  &when,
		ScheduleState: entity.ScheduleConfirmed,
		PaymentState:  entity.PaymentUnpaid,
		Street:        "12 Elm St",
		City:          "Springfield",
	})
	companies.byID["co_1"] = &entity.Company{ID: "co_1", Name: "Fresh Coat Co"}

	view, err := r.JobView("tok_u")
	require.NoError(t, err)
	assert.Equal(t, "Exterior repaint", view.Title)
	assert.Equal(t, "Fresh Coat Co", view.CompanyName)
	assert.Equal(t, entity.ScheduleConfirmed, view.ScheduleState)
	assert.Equal(t, "Springfield", view.City)
	require.NotNil(t, view.ScheduledFor)
	assert.True(t, when.Equal(*view.ScheduledFor))
}

func TestJobView_UnknownToken(t *testing.T) {
	r, _, _, _ := newResolverFixture()

	_, err := r.JobView("nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
