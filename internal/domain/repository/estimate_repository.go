package repository

import "github.com/brushly/brushly-api/internal/domain/entity"

// EstimateRepository is the persistence port for estimates and their child
// rows. Mutating a child and recomputing the parent totals must happen inside
// one transaction; EstimateTxRunner (application layer) binds this interface
// to a tx for those flows.
type EstimateRepository interface {
	Create(estimate *entity.Estimate) error
	GetByID(id string) (*entity.Estimate, error)
	GetByPublicToken(token string) (*entity.Estimate, error)
	ListByJob(jobID string) ([]*entity.Estimate, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Estimate, error)
	Update(estimate *entity.Estimate) error
	Delete(id string) error

	AddLineItem(item *entity.EstimateLineItem) error
	UpdateLineItem(item *entity.EstimateLineItem) error
	DeleteLineItem(id string) error
	ListLineItems(estimateID string) ([]*entity.EstimateLineItem, error)

	AddMaterial(material *entity.EstimateMaterial) error
	UpdateMaterial(material *entity.EstimateMaterial) error
	DeleteMaterial(id string) error
	ListMaterials(estimateID string) ([]*entity.EstimateMaterial, error)

	// RecalcTotals rewrites labor_total and materials_total from the child
	// rows in a single statement.
	RecalcTotals(estimateID string) error
}
