package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/brushly/brushly-api/internal/application/dto"
	"github.com/brushly/brushly-api/internal/domain"
	"github.com/brushly/brushly-api/internal/domain/entity"
	"github.com/brushly/brushly-api/internal/domain/repository"
)

// TemplateUseCase canned customer messages.
type TemplateUseCase struct {
	repo repository.MessageTemplateRepository
}

// NewTemplateUseCase builds the use case.
func NewTemplateUseCase(repo repository.MessageTemplateRepository) *TemplateUseCase {
	return &TemplateUseCase{repo: repo}
}

// Create adds a template.
func (uc *TemplateUseCase) Create(companyID string, in dto.MessageTemplateRequest) (*dto.MessageTemplateResponse, error) {
	if in.Name == "" || in.Body == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Kind != entity.TemplateSMS && in.Kind != entity.TemplateEmail {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	tpl := &entity.MessageTemplate{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Kind:      in.Kind,
		Name:      in.Name,
		Subject:   in.Subject,
		Body:      in.Body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(tpl); err != nil {
		return nil, err
	}
	return toTemplateResponse(tpl), nil
}

// List returns the company's templates.
func (uc *TemplateUseCase) List(companyID string) ([]*dto.MessageTemplateResponse, error) {
	list, err := uc.repo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MessageTemplateResponse, 0, len(list))
	for _, tpl := range list {
		out = append(out, toTemplateResponse(tpl))
	}
	return out, nil
}

// Update rewrites a template.
func (uc *TemplateUseCase) Update(companyID, id string, in dto.MessageTemplateRequest) (*dto.MessageTemplateResponse, error) {
	tpl, err := uc.loadScoped(companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name == "" || in.Body == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Kind != entity.TemplateSMS && in.Kind != entity.TemplateEmail {
		return nil, domain.ErrInvalidInput
	}
	tpl.Kind = in.Kind
	tpl.Name = in.Name
	tpl.Subject = in.Subject
	tpl.Body = in.Body
	tpl.UpdatedAt = time.Now()
	if err := uc.repo.Update(tpl); err != nil {
		return nil, err
	}
	return toTemplateResponse(tpl), nil
}

// Delete removes a template.
func (uc *TemplateUseCase) Delete(companyID, id string) error {
	if _, err := uc.loadScoped(companyID, id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}

func (uc *TemplateUseCase) loadScoped(companyID, id string) (*entity.MessageTemplate, error) {
	tpl, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, domain.ErrNotFound
	}
	if tpl.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return tpl, nil
}

func toTemplateResponse(t *entity.MessageTemplate) *dto.MessageTemplateResponse {
	return &dto.MessageTemplateResponse{
		ID:        t.ID,
		CompanyID: t.CompanyID,
		Kind:      t.Kind,
		Name:      t.Name,
		Subject:   t.Subject,
		Body:      t.Body,
		CreatedAt: t.CreatedAt,
	}
}
