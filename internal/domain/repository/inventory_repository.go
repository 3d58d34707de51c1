package repository

import (
	"github.com/shopspring/decimal"

	"github.com/brushly/brushly-api/internal/domain/entity"
)

// InventoryRepository is the persistence port for inventory items.
type InventoryRepository interface {
	Create(item *entity.InventoryItem) error
	GetByID(id string) (*entity.InventoryItem, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.InventoryItem, error)
	Update(item *entity.InventoryItem) error
	Delete(id string) error

	// AdjustQuantity applies a signed delta atomically (restock or usage).
	AdjustQuantity(id string, delta decimal.Decimal) error
}
