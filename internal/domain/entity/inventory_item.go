package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem tracks paint and supplies on hand. LowStockAt is the
// threshold under which list views flag the item.
type InventoryItem struct {
	ID         string
	CompanyID  string
	Name       string
	SKU        string
	Quantity   decimal.Decimal
	Unit       string // gallon, each, box, ...
	LowStockAt decimal.Decimal
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// LowStock reports whether the item sits at or under its threshold.
func (i *InventoryItem) LowStock() bool {
	if i.LowStockAt.IsZero() {
		return false
	}
	return i.Quantity.LessThanOrEqual(i.LowStockAt)
}
