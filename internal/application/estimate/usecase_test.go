package estimate

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brushly/brushly-api/internal/application/dto"
	"github.com/brushly/brushly-api/internal/domain"
	"github.com/brushly/brushly-api/internal/domain/entity"
	"github.com/brushly/brushly-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// In-memory fakes
// ──────────────────────────────────────────────────────────────────────────────

// memEstimateRepo keeps estimates and children in maps and recomputes totals
// the way the SQL does: sums over the child rows.
type memEstimateRepo struct {
	estimates map[string]*entity.Estimate
	items     map[string][]*entity.EstimateLineItem
	materials map[string][]*entity.EstimateMaterial
}

func newMemEstimateRepo() *memEstimateRepo {
	return &memEstimateRepo{
		estimates: make(map[string]*entity.Estimate),
		items:     make(map[string][]*entity.EstimateLineItem),
		materials: make(map[string][]*entity.EstimateMaterial),
	}
}

func (m *memEstimateRepo) Create(e *entity.Estimate) error {
	cp := *e
	m.estimates[e.ID] = &cp
	return nil
}

func (m *memEstimateRepo) GetByID(id string) (*entity.Estimate, error) {
	e, ok := m.estimates[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (m *memEstimateRepo) GetByPublicToken(token string) (*entity.Estimate, error) {
	for _, e := range m.estimates {
		if e.PublicToken == token {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memEstimateRepo) ListByJob(jobID string) ([]*entity.Estimate, error) {
	var out []*entity.Estimate
	for _, e := range m.estimates {
		if e.JobID == jobID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memEstimateRepo) ListByCompany(companyID string, _, _ int) ([]*entity.Estimate, error) {
	var out []*entity.Estimate
	for _, e := range m.estimates {
		if e.CompanyID == companyID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memEstimateRepo) Update(e *entity.Estimate) error {
	if _, ok := m.estimates[e.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *e
	// Totals are owned by RecalcTotals, not by Update.
	cp.LaborTotal = m.estimates[e.ID].LaborTotal
	cp.MaterialsTotal = m.estimates[e.ID].MaterialsTotal
	m.estimates[e.ID] = &cp
	return nil
}

func (m *memEstimateRepo) Delete(id string) error {
	delete(m.estimates, id)
	return nil
}

func (m *memEstimateRepo) AddLineItem(item *entity.EstimateLineItem) error {
	m.items[item.EstimateID] = append(m.items[item.EstimateID], item)
	return nil
}

func (m *memEstimateRepo) UpdateLineItem(item *entity.EstimateLineItem) error {
	for i, it := range m.items[item.EstimateID] {
		if it.ID == item.ID {
			m.items[item.EstimateID][i] = item
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memEstimateRepo) DeleteLineItem(id string) error {
	for estID, items := range m.items {
		for i, it := range items {
			if it.ID == id {
				m.items[estID] = append(items[:i], items[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

func (m *memEstimateRepo) ListLineItems(estimateID string) ([]*entity.EstimateLineItem, error) {
	return m.items[estimateID], nil
}

func (m *memEstimateRepo) AddMaterial(material *entity.EstimateMaterial) error {
	m.materials[material.EstimateID] = append(m.materials[material.EstimateID], material)
	return nil
}

func (m *memEstimateRepo) UpdateMaterial(material *entity.EstimateMaterial) error {
	for i, mt := range m.materials[material.EstimateID] {
		if mt.ID == material.ID {
			m.materials[material.EstimateID][i] = material
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memEstimateRepo) DeleteMaterial(id string) error {
	for estID, materials := range m.materials {
		for i, mt := range materials {
			if mt.ID == id {
				m.materials[estID] = append(materials[:i], materials[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

func (m *memEstimateRepo) ListMaterials(estimateID string) ([]*entity.EstimateMaterial, error) {
	return m.materials[estimateID], nil
}

func (m *memEstimateRepo) RecalcTotals(estimateID string) error {
	e, ok := m.estimates[estimateID]
	if !ok {
		return domain.ErrNotFound
	}
	labor := decimal.Zero
	for _, it := range m.items[estimateID] {
		labor = labor.Add(it.Amount)
	}
	mats := decimal.Zero
	for _, mt := range m.materials[estimateID] {
		mats = mats.Add(mt.Amount)
	}
	e.LaborTotal = labor
	e.MaterialsTotal = mats
	return nil
}

type memJobRepo struct {
	repository.JobRepository
	jobs map[string]*entity.Job
}

func (m *memJobRepo) GetByID(id string) (*entity.Job, error) { return m.jobs[id], nil }
func (m *memJobRepo) Update(j *entity.Job) error             { m.jobs[j.ID] = j; return nil }

// passTxRunner hands the repo straight through.
type passTxRunner struct {
	repo repository.EstimateRepository
}

func (p *passTxRunner) RunEstimate(_ context.Context, fn func(repo repository.EstimateRepository) error) error {
	return fn(p.repo)
}

func newEstimateFixture() (*UseCase, *memEstimateRepo, *memJobRepo) {
	estRepo := newMemEstimateRepo()
	jobRepo := &memJobRepo{jobs: map[string]*entity.Job{
		"job_1": {ID: "job_1", CompanyID: "co_1", Status: entity.JobStatusNew},
	}}
	uc := NewUseCase(&passTxRunner{repo: estRepo}, estRepo, jobRepo)
	return uc, estRepo, jobRepo
}

func mustCreate(t *testing.T, uc *UseCase) *dto.EstimateResponse {
	t.Helper()
	resp, err := uc.Create("co_1", dto.CreateEstimateRequest{JobID: "job_1", Notes: "two coats"})
	require.NoError(t, err)
	return resp
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Create / scoping
// ──────────────────────────────────────────────────────────────────────────────

func TestEstimateCreate_StartsAsDraftWithToken(t *testing.T) {
	uc, _, _ := newEstimateFixture()
	resp := mustCreate(t, uc)

	assert.Equal(t, entity.EstimateDraft, resp.Status)
	assert.NotEmpty(t, resp.PublicToken)
	assert.True(t, resp.GrandTotal.IsZero())
}

func TestEstimateCreate_JobFromAnotherCompanyIsForbidden(t *testing.T) {
	uc, _, jobs := newEstimateFixture()
	jobs.jobs["job_other"] = &entity.Job{ID: "job_other", CompanyID: "co_2"}

	_, err := uc.Create("co_1", dto.CreateEstimateRequest{JobID: "job_other"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestEstimateGet_CrossCompanyIsForbidden(t *testing.T) {
	uc, _, _ := newEstimateFixture()
	resp := mustCreate(t, uc)

	_, err := uc.Get("co_2", resp.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Totals
// ──────────────────────────────────────────────────────────────────────────────

func TestEstimateTotals_FollowChildMutations(t *testing.T) {
	uc, _, _ := newEstimateFixture()
	ctx := context.Background()
	est := mustCreate(t, uc)

	resp, err := uc.AddLineItem(ctx, "co_1", est.ID, dto.LineItemRequest{
		Description: "Prep and prime", Quantity: d("8"), UnitPrice: d("55"),
	})
	require.NoError(t, err)
	assert.True(t, d("440").Equal(resp.LaborTotal), "labor total, got %s", resp.LaborTotal)

	resp, err = uc.AddMaterial(ctx, "co_1", est.ID, dto.MaterialRequest{
		Name: "Eggshell white, 5 gal", Quantity: d("2"), UnitCost: d("189.50"),
	})
	require.NoError(t, err)
	assert.True(t, d("379").Equal(resp.MaterialsTotal), "materials total, got %s", resp.MaterialsTotal)
	assert.True(t, d("819").Equal(resp.GrandTotal), "grand total, got %s", resp.GrandTotal)

	// Deleting the labor line brings labor back to zero.
	require.Len(t, resp.LineItems, 1)
	resp, err = uc.DeleteLineItem(ctx, "co_1", est.ID, resp.LineItems[0].ID)
	require.NoError(t, err)
	assert.True(t, resp.LaborTotal.IsZero())
	assert.True(t, d("379").Equal(resp.GrandTotal))
}

func TestEstimateLineItem_AmountIsQuantityTimesPriceRounded(t *testing.T) {
	uc, _, _ := newEstimateFixture()
	est := mustCreate(t, uc)

	resp, err := uc.AddLineItem(context.Background(), "co_1", est.ID, dto.LineItemRequest{
		Description: "Trim work", Quantity: d("3.5"), UnitPrice: d("33.33"),
	})
	require.NoError(t, err)
	require.Len(t, resp.LineItems, 1)
	// 3.5 * 33.33 = 116.655 -> 116.66
	assert.True(t, d("116.66").Equal(resp.LineItems[0].Amount), "got %s", resp.LineItems[0].Amount)
}

func TestEstimateLineItem_RejectsNonPositiveQuantity(t *testing.T) {
	uc, _, _ := newEstimateFixture()
	est := mustCreate(t, uc)

	_, err := uc.AddLineItem(context.Background(), "co_1", est.ID, dto.LineItemRequest{
		Description: "Nothing", Quantity: d("0"), UnitPrice: d("10"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Send / Respond lifecycle
// ──────────────────────────────────────────────────────────────────────────────

func TestEstimateSend_MovesJobToQuoted(t *testing.T) {
	uc, _, jobs := newEstimateFixture()
	est := mustCreate(t, uc)

	resp, err := uc.Send("co_1", est.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.EstimateSent, resp.Status)
	require.NotNil(t, resp.SentAt)
	assert.Equal(t, entity.JobStatusQuoted, jobs.jobs["job_1"].Status)
}

func TestEstimateRespond_AcceptSchedulesJob(t *testing.T) {
	uc, _, jobs := newEstimateFixture()
	est := mustCreate(t, uc)
	_, err := uc.Send("co_1", est.ID)
	require.NoError(t, err)

	resp, err := uc.Respond(est.PublicToken, "accept")
	require.NoError(t, err)
	assert.Equal(t, entity.EstimateAccepted, resp.Status)
	require.NotNil(t, resp.RespondedAt)
	assert.Equal(t, entity.JobStatusScheduled, jobs.jobs["job_1"].Status)
}

func TestEstimateRespond_SecondDecisionConflicts(t *testing.T) {
	uc, _, _ := newEstimateFixture()
	est := mustCreate(t, uc)
	_, err := uc.Send("co_1", est.ID)
	require.NoError(t, err)

	_, err = uc.Respond(est.PublicToken, "deny")
	require.NoError(t, err)

	// The customer cannot flip a decision once made.
	_, err = uc.Respond(est.PublicToken, "accept")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestEstimateRespond_UnknownDecision(t *testing.T) {
	uc, _, _ := newEstimateFixture()
	est := mustCreate(t, uc)

	_, err := uc.Respond(est.PublicToken, "maybe")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEstimatePublicView_HidesToken(t *testing.T) {
	uc, _, _ := newEstimateFixture()
	est := mustCreate(t, uc)

	resp, err := uc.GetByPublicToken(est.PublicToken)
	require.NoError(t, err)
	assert.Empty(t, resp.PublicToken)
}

func TestEstimateDelete_OnlyDrafts(t *testing.T) {
	uc, _, _ := newEstimateFixture()
	est := mustCreate(t, uc)
	_, err := uc.Send("co_1", est.ID)
	require.NoError(t, err)

	err = uc.Delete("co_1", est.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}
