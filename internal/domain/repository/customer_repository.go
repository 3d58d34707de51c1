package repository

import "github.com/brushly/brushly-api/internal/domain/entity"

// CustomerRepository is the persistence port for customers.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	// ListByCompany pages the company's customers; tag filters when non-empty.
	ListByCompany(companyID, tag string, limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	Delete(id string) error
}
