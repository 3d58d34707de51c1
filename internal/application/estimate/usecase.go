package estimate

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brushly/brushly-api/internal/application/dto"
	"github.com/brushly/brushly-api/internal/domain"
	"github.com/brushly/brushly-api/internal/domain/entity"
	"github.com/brushly/brushly-api/internal/domain/repository"
)

// UseCase estimates with labor and material lines. Totals on the estimate row
// are denormalized sums of the children; every child mutation runs inside a
// transaction that also recomputes them.
type UseCase struct {
	txRunner TxRunner
	estRepo  repository.EstimateRepository
	jobRepo  repository.JobRepository
}

// NewUseCase builds the use case.
func NewUseCase(txRunner TxRunner, estRepo repository.EstimateRepository, jobRepo repository.JobRepository) *UseCase {
	return &UseCase{txRunner: txRunner, estRepo: estRepo, jobRepo: jobRepo}
}

// Create opens a draft estimate for a job.
func (uc *UseCase) Create(companyID string, in dto.CreateEstimateRequest) (*dto.EstimateResponse, error) {
	if in.JobID == "" {
		return nil, domain.ErrInvalidInput
	}
	job, err := uc.jobRepo.GetByID(in.JobID)
	if err != nil || job == nil {
		return nil, domain.ErrNotFound
	}
	if job.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	now := time.Now()
	est := &entity.Estimate{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		JobID:       in.JobID,
		Status:      entity.EstimateDraft,
		PublicToken: uuid.New().String(),
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.estRepo.Create(est); err != nil {
		return nil, err
	}
	return uc.toResponse(est, nil, nil), nil
}

// Get returns an estimate with its children.
func (uc *UseCase) Get(companyID, id string) (*dto.EstimateResponse, error) {
	est, err := uc.loadScoped(companyID, id)
	if err != nil {
		return nil, err
	}
	return uc.withChildren(est)
}

// List pages the company's estimates (headers only).
func (uc *UseCase) List(companyID string, limit, offset int) ([]*dto.EstimateResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.estRepo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.EstimateResponse, 0, len(list))
	for _, est := range list {
		out = append(out, uc.toResponse(est, nil, nil))
	}
	return out, nil
}

// ListForJob returns every estimate attached to one of the company's jobs.
func (uc *UseCase) ListForJob(companyID, jobID string) ([]*dto.EstimateResponse, error) {
	job, err := uc.jobRepo.GetByID(jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domain.ErrNotFound
	}
	if job.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	list, err := uc.estRepo.ListByJob(jobID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.EstimateResponse, 0, len(list))
	for _, est := range list {
		out = append(out, uc.toResponse(est, nil, nil))
	}
	return out, nil
}

// AddLineItem inserts a labor line and recomputes totals in one transaction.
func (uc *UseCase) AddLineItem(ctx context.Context, companyID, estimateID string, in dto.LineItemRequest) (*dto.EstimateResponse, error) {
	est, err := uc.loadScoped(companyID, estimateID)
	if err != nil {
		return nil, err
	}
	if in.Description == "" || !in.Quantity.GreaterThan(decimal.Zero) || in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	item := &entity.EstimateLineItem{
		ID:          uuid.New().String(),
		EstimateID:  est.ID,
		CompanyID:   companyID,
		Description: in.Description,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		Amount:      in.Quantity.Mul(in.UnitPrice).Round(2),
		Position:    in.Position,
		CreatedAt:   time.Now(),
	}
	err = uc.txRunner.RunEstimate(ctx, func(repo repository.EstimateRepository) error {
		if err := repo.AddLineItem(item); err != nil {
			return err
		}
		return repo.RecalcTotals(est.ID)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(companyID, est.ID)
}

// UpdateLineItem rewrites a labor line and recomputes totals.
func (uc *UseCase) UpdateLineItem(ctx context.Context, companyID, estimateID, itemID string, in dto.LineItemRequest) (*dto.EstimateResponse, error) {
	est, err := uc.loadScoped(companyID, estimateID)
	if err != nil {
		return nil, err
	}
	if in.Description == "" || !in.Quantity.GreaterThan(decimal.Zero) || in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	items, err := uc.estRepo.ListLineItems(est.ID)
	if err != nil {
		return nil, err
	}
	var item *entity.EstimateLineItem
	for _, it := range items {
		if it.ID == itemID {
			item = it
			break
		}
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	item.Description = in.Description
	item.Quantity = in.Quantity
	item.UnitPrice = in.UnitPrice
	item.Amount = in.Quantity.Mul(in.UnitPrice).Round(2)
	item.Position = in.Position
	err = uc.txRunner.RunEstimate(ctx, func(repo repository.EstimateRepository) error {
		if err := repo.UpdateLineItem(item); err != nil {
			return err
		}
		return repo.RecalcTotals(est.ID)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(companyID, est.ID)
}

// DeleteLineItem drops a labor line and recomputes totals.
func (uc *UseCase) DeleteLineItem(ctx context.Context, companyID, estimateID, itemID string) (*dto.EstimateResponse, error) {
	est, err := uc.loadScoped(companyID, estimateID)
	if err != nil {
		return nil, err
	}
	err = uc.txRunner.RunEstimate(ctx, func(repo repository.EstimateRepository) error {
		if err := repo.DeleteLineItem(itemID); err != nil {
			return err
		}
		return repo.RecalcTotals(est.ID)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(companyID, est.ID)
}

// AddMaterial inserts a material line and recomputes totals.
func (uc *UseCase) AddMaterial(ctx context.Context, companyID, estimateID string, in dto.MaterialRequest) (*dto.EstimateResponse, error) {
	est, err := uc.loadScoped(companyID, estimateID)
	if err != nil {
		return nil, err
	}
	if in.Name == "" || !in.Quantity.GreaterThan(decimal.Zero) || in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	material := &entity.EstimateMaterial{
		ID:         uuid.New().String(),
		EstimateID: est.ID,
		CompanyID:  companyID,
		Name:       in.Name,
		Quantity:   in.Quantity,
		UnitCost:   in.UnitCost,
		Amount:     in.Quantity.Mul(in.UnitCost).Round(2),
		CreatedAt:  time.Now(),
	}
	err = uc.txRunner.RunEstimate(ctx, func(repo repository.EstimateRepository) error {
		if err := repo.AddMaterial(material); err != nil {
			return err
		}
		return repo.RecalcTotals(est.ID)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(companyID, est.ID)
}

// UpdateMaterial rewrites a material line and recomputes totals.
func (uc *UseCase) UpdateMaterial(ctx context.Context, companyID, estimateID, materialID string, in dto.MaterialRequest) (*dto.EstimateResponse, error) {
	est, err := uc.loadScoped(companyID, estimateID)
	if err != nil {
		return nil, err
	}
	if in.Name == "" || !in.Quantity.GreaterThan(decimal.Zero) || in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	materials, err := uc.estRepo.ListMaterials(est.ID)
	if err != nil {
		return nil, err
	}
	var material *entity.EstimateMaterial
	for _, m := range materials {
		if m.ID == materialID {
			material = m
			break
		}
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	material.Name = in.Name
	material.Quantity = in.Quantity
	material.UnitCost = in.UnitCost
	material.Amount = in.Quantity.Mul(in.UnitCost).Round(2)
	err = uc.txRunner.RunEstimate(ctx, func(repo repository.EstimateRepository) error {
		if err := repo.UpdateMaterial(material); err != nil {
			return err
		}
		return repo.RecalcTotals(est.ID)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(companyID, est.ID)
}

// DeleteMaterial drops a material line and recomputes totals.
func (uc *UseCase) DeleteMaterial(ctx context.Context, companyID, estimateID, materialID string) (*dto.EstimateResponse, error) {
	est, err := uc.loadScoped(companyID, estimateID)
	if err != nil {
		return nil, err
	}
	err = uc.txRunner.RunEstimate(ctx, func(repo repository.EstimateRepository) error {
		if err := repo.DeleteMaterial(materialID); err != nil {
			return err
		}
		return repo.RecalcTotals(est.ID)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(companyID, est.ID)
}

// Send marks the estimate sent and moves its job to "quoted".
func (uc *UseCase) Send(companyID, id string) (*dto.EstimateResponse, error) {
	est, err := uc.loadScoped(companyID, id)
	if err != nil {
		return nil, err
	}
	if est.Status != entity.EstimateDraft && est.Status != entity.EstimateSent {
		return nil, domain.ErrConflict
	}
	now := time.Now()
	est.Status = entity.EstimateSent
	est.SentAt = &now
	est.UpdatedAt = now
	if err := uc.estRepo.Update(est); err != nil {
		return nil, err
	}
	// Advancing the job is a secondary effect; its failure must not undo the send.
	if job, err := uc.jobRepo.GetByID(est.JobID); err == nil && job != nil && job.Status == entity.JobStatusNew {
		job.Status = entity.JobStatusQuoted
		job.UpdatedAt = now
		_ = uc.jobRepo.Update(job)
	}
	return uc.withChildren(est)
}

// Respond applies the customer's decision coming from the public link.
// Accepting advances the job to "scheduled" work intake.
func (uc *UseCase) Respond(publicToken, decision string) (*dto.EstimateResponse, error) {
	est, err := uc.estRepo.GetByPublicToken(publicToken)
	if err != nil {
		return nil, err
	}
	if est == nil {
		return nil, domain.ErrNotFound
	}
	if est.Status == entity.EstimateAccepted || est.Status == entity.EstimateDenied {
		return nil, domain.ErrConflict
	}
	now := time.Now()
	switch decision {
	case "accept":
		est.Status = entity.EstimateAccepted
	case "deny":
		est.Status = entity.EstimateDenied
	default:
		return nil, domain.ErrInvalidInput
	}
	est.RespondedAt = &now
	est.UpdatedAt = now
	if err := uc.estRepo.Update(est); err != nil {
		return nil, err
	}
	if est.Status == entity.EstimateAccepted {
		if job, err := uc.jobRepo.GetByID(est.JobID); err == nil && job != nil && job.Status == entity.JobStatusQuoted {
			job.Status = entity.JobStatusScheduled
			job.UpdatedAt = now
			_ = uc.jobRepo.Update(job)
		}
	}
	return uc.withChildren(est)
}

// GetByPublicToken serves the unauthenticated customer view.
func (uc *UseCase) GetByPublicToken(token string) (*dto.EstimateResponse, error) {
	est, err := uc.estRepo.GetByPublicToken(token)
	if err != nil {
		return nil, err
	}
	if est == nil {
		return nil, domain.ErrNotFound
	}
	resp, err := uc.withChildren(est)
	if err != nil {
		return nil, err
	}
	// The public view never leaks its own token back out.
	resp.PublicToken = ""
	return resp, nil
}

// Delete removes a draft estimate.
func (uc *UseCase) Delete(companyID, id string) error {
	est, err := uc.loadScoped(companyID, id)
	if err != nil {
		return err
	}
	if est.Status != entity.EstimateDraft {
		return domain.ErrConflict
	}
	return uc.estRepo.Delete(id)
}

func (uc *UseCase) loadScoped(companyID, id string) (*entity.Estimate, error) {
	est, err := uc.estRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if est == nil {
		return nil, domain.ErrNotFound
	}
	if est.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return est, nil
}

func (uc *UseCase) withChildren(est *entity.Estimate) (*dto.EstimateResponse, error) {
	items, err := uc.estRepo.ListLineItems(est.ID)
	if err != nil {
		return nil, err
	}
	materials, err := uc.estRepo.ListMaterials(est.ID)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(est, items, materials), nil
}

func (uc *UseCase) toResponse(e *entity.Estimate, items []*entity.EstimateLineItem, materials []*entity.EstimateMaterial) *dto.EstimateResponse {
	resp := &dto.EstimateResponse{
		ID:             e.ID,
		CompanyID:      e.CompanyID,
		JobID:          e.JobID,
		Status:         e.Status,
		PublicToken:    e.PublicToken,
		LaborTotal:     e.LaborTotal,
		MaterialsTotal: e.MaterialsTotal,
		GrandTotal:     e.GrandTotal(),
		Notes:          e.Notes,
		SentAt:         e.SentAt,
		RespondedAt:    e.RespondedAt,
		CreatedAt:      e.CreatedAt,
	}
	for _, it := range items {
		resp.LineItems = append(resp.LineItems, dto.LineItemResponse{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Amount:      it.Amount,
			Position:    it.Position,
		})
	}
	for _, m := range materials {
		resp.Materials = append(resp.Materials, dto.MaterialResponse{
			ID:       m.ID,
			Name:     m.Name,
			Quantity: m.Quantity,
			UnitCost: m.UnitCost,
			Amount:   m.Amount,
		})
	}
	return resp
}
