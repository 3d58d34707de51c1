package estimate

import (
	"context"

	"github.com/brushly/brushly-api/internal/domain"
	"github.com/brushly/brushly-api/internal/domain/repository"
)

// PDFUseCase assembles everything the generator needs to render an estimate.
type PDFUseCase struct {
	estRepo      repository.EstimateRepository
	jobRepo      repository.JobRepository
	companyRepo  repository.CompanyRepository
	customerRepo repository.CustomerRepository
	generator    PDFGenerator
}

// NewPDFUseCase builds the use case.
func NewPDFUseCase(
	estRepo repository.EstimateRepository,
	jobRepo repository.JobRepository,
	companyRepo repository.CompanyRepository,
	customerRepo repository.CustomerRepository,
	generator PDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		estRepo:      estRepo,
		jobRepo:      jobRepo,
		companyRepo:  companyRepo,
		customerRepo: customerRepo,
		generator:    generator,
	}
}

// Render produces the printable estimate, company-scoped.
func (uc *PDFUseCase) Render(ctx context.Context, companyID, estimateID string) ([]byte, error) {
	est, err := uc.estRepo.GetByID(estimateID)
	if err != nil {
		return nil, err
	}
	if est == nil {
		return nil, domain.ErrNotFound
	}
	if est.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil || company == nil {
		return nil, domain.ErrNotFound
	}
	job, err := uc.jobRepo.GetByID(est.JobID)
	if err != nil || job == nil {
		return nil, domain.ErrNotFound
	}
	// The job may not have a customer yet; the generator renders "—" then.
	customer, _ := uc.customerRepo.GetByID(job.CustomerID)

	items, err := uc.estRepo.ListLineItems(est.ID)
	if err != nil {
		return nil, err
	}
	materials, err := uc.estRepo.ListMaterials(est.ID)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateEstimatePDF(ctx, est, company, customer, job, items, materials)
}
