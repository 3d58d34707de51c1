package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInventoryItemRequest new item payload.
type CreateInventoryItemRequest struct {
	Name       string          `json:"name"`
	SKU        string          `json:"sku"`
	Quantity   decimal.Decimal `json:"quantity"`
	Unit       string          `json:"unit"`
	LowStockAt decimal.Decimal `json:"low_stock_at"`
	Notes      string          `json:"notes"`
}

// AdjustInventoryRequest signed quantity delta (restock positive, usage negative).
type AdjustInventoryRequest struct {
	Delta decimal.Decimal `json:"delta"`
}

// InventoryItemResponse item view with the low-stock flag list views show.
type InventoryItemResponse struct {
	ID         string          `json:"id"`
	CompanyID  string          `json:"company_id"`
	Name       string          `json:"name"`
	SKU        string          `json:"sku"`
	Quantity   decimal.Decimal `json:"quantity"`
	Unit       string          `json:"unit"`
	LowStockAt decimal.Decimal `json:"low_stock_at"`
	LowStock   bool            `json:"low_stock"`
	Notes      string          `json:"notes"`
	CreatedAt  time.Time       `json:"created_at"`
}
