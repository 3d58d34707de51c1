package usecase

import (
	"time"

	"github.com/brushly/brushly-api/internal/application/dto"
	"github.com/brushly/brushly-api/internal/domain"
	"github.com/brushly/brushly-api/internal/domain/entity"
	"github.com/brushly/brushly-api/internal/domain/repository"
)

// CompanyUseCase tenant self-service: read and whitelisted updates.
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase builds the use case.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Get returns the caller's company.
func (uc *CompanyUseCase) Get(companyID string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return toCompanyResponse(company), nil
}

// Update applies the whitelisted fields (name, theme). Subscription and
// Stripe columns are only ever written by the webhook pipeline.
func (uc *CompanyUseCase) Update(companyID string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		company.Name = *in.Name
	}
	if in.Theme != nil {
		company.Theme = *in.Theme
	}
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:                 c.ID,
		Name:               c.Name,
		Theme:              c.Theme,
		SubscriptionStatus: c.SubscriptionStatus,
		TrialEndsAt:        c.TrialEndsAt,
		CurrentPeriodEnd:   c.CurrentPeriodEnd,
		CreatedAt:          c.CreatedAt,
	}
}
