package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/brushly/brushly-api/internal/application/dto"
	"github.com/brushly/brushly-api/internal/domain"
	"github.com/brushly/brushly-api/internal/domain/entity"
	"github.com/brushly/brushly-api/internal/domain/repository"
)

// CustomerUseCase customer records for a company.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase builds the use case.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create adds a customer.
func (uc *CustomerUseCase) Create(companyID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Street:    in.Street,
		City:      in.City,
		State:     in.State,
		Zip:       in.Zip,
		Tags:      in.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Get returns one customer, company-scoped.
func (uc *CustomerUseCase) Get(companyID, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.loadScoped(companyID, id)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// List pages the company's customers, optionally filtered by tag.
func (uc *CustomerUseCase) List(companyID, tag string, limit, offset int) ([]*dto.CustomerResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.ListByCompany(companyID, tag, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// Update applies the provided fields.
func (uc *CustomerUseCase) Update(companyID, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.loadScoped(companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		customer.Name = *in.Name
	}
	if in.Email != nil {
		customer.Email = *in.Email
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.Street != nil {
		customer.Street = *in.Street
	}
	if in.City != nil {
		customer.City = *in.City
	}
	if in.State != nil {
		customer.State = *in.State
	}
	if in.Zip != nil {
		customer.Zip = *in.Zip
	}
	if in.Tags != nil {
		customer.Tags = *in.Tags
	}
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Delete removes a customer.
func (uc *CustomerUseCase) Delete(companyID, id string) error {
	if _, err := uc.loadScoped(companyID, id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}

func (uc *CustomerUseCase) loadScoped(companyID, id string) (*entity.Customer, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return customer, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Street:    c.Street,
		City:      c.City,
		State:     c.State,
		Zip:       c.Zip,
		Tags:      c.Tags,
		CreatedAt: c.CreatedAt,
	}
}
