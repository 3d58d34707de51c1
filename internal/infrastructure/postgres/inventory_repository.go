package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/brushly/brushly-api/internal/domain"
	"github.com/brushly/brushly-api/internal/domain/entity"
	"github.com/brushly/brushly-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implements InventoryRepository (usable with pool or tx).
type InventoryRepo struct {
	q Querier
}

func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventoryColumns = `id, company_id, name, sku, quantity, unit, low_stock_at, notes, created_at, updated_at`

func (r *InventoryRepo) Create(item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (` + inventoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.CompanyID, item.Name, item.SKU, item.Quantity, item.Unit,
		item.LowStockAt, item.Notes, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

func (r *InventoryRepo) GetByID(id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE id = $1`
	var it entity.InventoryItem
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&it.ID, &it.CompanyID, &it.Name, &it.SKU, &it.Quantity, &it.Unit,
		&it.LowStockAt, &it.Notes, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return &it, nil
}

func (r *InventoryRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.InventoryItem, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory_items WHERE company_id = $1
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		var it entity.InventoryItem
		if err := rows.Scan(
			&it.ID, &it.CompanyID, &it.Name, &it.SKU, &it.Quantity, &it.Unit,
			&it.LowStockAt, &it.Notes, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

func (r *InventoryRepo) Update(item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET name = $2, sku = $3, unit = $4, low_stock_at = $5, notes = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.SKU, item.Unit, item.LowStockAt, item.Notes, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory item: %w", err)
	}
	return nil
}

func (r *InventoryRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	return nil
}

// AdjustQuantity applies a signed delta atomically. The quantity >= 0 guard
// in the WHERE clause rejects an adjustment that would go negative without a
// read-modify-write race.
func (r *InventoryRepo) AdjustQuantity(id string, delta decimal.Decimal) error {
	query := `
		UPDATE inventory_items
		SET quantity = quantity + $2, updated_at = now()
		WHERE id = $1 AND quantity + $2 >= 0`
	tag, err := r.q.Exec(context.Background(), query, id, delta)
	if err != nil {
		return fmt.Errorf("adjust quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}
