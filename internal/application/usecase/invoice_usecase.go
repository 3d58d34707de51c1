package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brushly/brushly-api/internal/application/dto"
	"github.com/brushly/brushly-api/internal/domain"
	"github.com/brushly/brushly-api/internal/domain/entity"
	"github.com/brushly/brushly-api/internal/domain/repository"
)

// InvoiceUseCase invoices for jobs. Payment state transitions come from the
// webhook pipeline, never from these methods.
type InvoiceUseCase struct {
	invoiceRepo repository.InvoiceRepository
	jobRepo     repository.JobRepository
}

// NewInvoiceUseCase builds the use case.
func NewInvoiceUseCase(invoiceRepo repository.InvoiceRepository, jobRepo repository.JobRepository) *InvoiceUseCase {
	return &InvoiceUseCase{invoiceRepo: invoiceRepo, jobRepo: jobRepo}
}

// Create issues a draft invoice for a job in the company.
func (uc *InvoiceUseCase) Create(companyID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.JobID == "" || !in.AmountTotal.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	job, err := uc.jobRepo.GetByID(in.JobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domain.ErrNotFound
	}
	if job.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	invoice := &entity.Invoice{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		JobID:       in.JobID,
		CustomerID:  in.CustomerID,
		Number:      newInvoiceNumber(now),
		Status:      entity.InvoiceDraft,
		AmountTotal: in.AmountTotal,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.invoiceRepo.Create(invoice); err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice), nil
}

// Get returns one invoice, company-scoped.
func (uc *InvoiceUseCase) Get(companyID, id string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.loadScoped(companyID, id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice), nil
}

// List pages the company's invoices, newest first.
func (uc *InvoiceUseCase) List(companyID string, limit, offset int) ([]*dto.InvoiceResponse, error) {
	list, err := uc.invoiceRepo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, toInvoiceResponse(inv))
	}
	return out, nil
}

// ListByJob returns every invoice on a job, company-scoped through the job.
func (uc *InvoiceUseCase) ListByJob(companyID, jobID string) ([]*dto.InvoiceResponse, error) {
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
	list, err := uc.invoiceRepo.ListByJob(jobID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, toInvoiceResponse(inv))
	}
	return out, nil
}

// Send marks a draft invoice sent and stamps issued_at.
func (uc *InvoiceUseCase) Send(companyID, id string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.loadScoped(companyID, id)
	if err != nil {
		return nil, err
	}
	if invoice.Status != entity.InvoiceDraft {
		return nil, domain.ErrConflict
	}
	now := time.Now()
	invoice.Status = entity.InvoiceSent
	invoice.IssuedAt = &now
	invoice.UpdatedAt = now
	if err := uc.invoiceRepo.Update(invoice); err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice), nil
}

// Void cancels an unpaid invoice.
func (uc *InvoiceUseCase) Void(companyID, id string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.loadScoped(companyID, id)
	if err != nil {
		return nil, err
	}
	if invoice.Status == entity.InvoicePaid {
		return nil, domain.ErrConflict
	}
	invoice.Status = entity.InvoiceVoid
	invoice.UpdatedAt = time.Now()
	if err := uc.invoiceRepo.Update(invoice); err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice), nil
}

func (uc *InvoiceUseCase) loadScoped(companyID, id string) (*entity.Invoice, error) {
	invoice, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	if invoice.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return invoice, nil
}

// newInvoiceNumber builds a human-readable unique number; uniqueness is
// enforced per company by the database.
func newInvoiceNumber(now time.Time) string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("INV-%s-%s", now.Format("20060102"), suffix)
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:          inv.ID,
		CompanyID:   inv.CompanyID,
		JobID:       inv.JobID,
		CustomerID:  inv.CustomerID,
		Number:      inv.Number,
		Status:      inv.Status,
		AmountTotal: inv.AmountTotal,
		IssuedAt:    inv.IssuedAt,
		PaidAt:      inv.PaidAt,
		CreatedAt:   inv.CreatedAt,
	}
}
