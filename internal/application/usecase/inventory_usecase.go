package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/brushly/brushly-api/internal/application/dto"
	"github.com/brushly/brushly-api/internal/domain"
	"github.com/brushly/brushly-api/internal/domain/entity"
	"github.com/brushly/brushly-api/internal/domain/repository"
)

// InventoryUseCase paint and supplies on hand.
type InventoryUseCase struct {
	repo repository.InventoryRepository
}

// NewInventoryUseCase builds the use case.
func NewInventoryUseCase(repo repository.InventoryRepository) *InventoryUseCase {
	return &InventoryUseCase{repo: repo}
}

// Create adds an item.
func (uc *InventoryUseCase) Create(companyID string, in dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	item := &entity.InventoryItem{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		Name:       in.Name,
		SKU:        in.SKU,
		Quantity:   in.Quantity,
		Unit:       in.Unit,
		LowStockAt: in.LowStockAt,
		Notes:      in.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	return toInventoryResponse(item), nil
}

// List pages items; each row carries its low-stock flag.
func (uc *InventoryUseCase) List(companyID string, limit, offset int) ([]*dto.InventoryItemResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InventoryItemResponse, 0, len(list))
	for _, item := range list {
		out = append(out, toInventoryResponse(item))
	}
	return out, nil
}

// Update rewrites an item's descriptive fields. Quantity changes go through
// Adjust so concurrent restocks and usage compose.
func (uc *InventoryUseCase) Update(companyID, id string, in dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	item, err := uc.loadScoped(companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	item.Name = in.Name
	item.SKU = in.SKU
	item.Unit = in.Unit
	item.LowStockAt = in.LowStockAt
	item.Notes = in.Notes
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	return toInventoryResponse(item), nil
}

// Adjust applies a signed quantity delta. The resulting quantity may hit zero
// but not go under it.
func (uc *InventoryUseCase) Adjust(companyID, id string, in dto.AdjustInventoryRequest) (*dto.InventoryItemResponse, error) {
	item, err := uc.loadScoped(companyID, id)
	if err != nil {
		return nil, err
	}
	if item.Quantity.Add(in.Delta).IsNegative() {
		return nil, domain.ErrConflict
	}
	if err := uc.repo.AdjustQuantity(id, in.Delta); err != nil {
		return nil, err
	}
	item.Quantity = item.Quantity.Add(in.Delta)
	return toInventoryResponse(item), nil
}

// Delete removes an item.
func (uc *InventoryUseCase) Delete(companyID, id string) error {
	if _, err := uc.loadScoped(companyID, id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}

func (uc *InventoryUseCase) loadScoped(companyID, id string) (*entity.InventoryItem, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return item, nil
}

func toInventoryResponse(i *entity.InventoryItem) *dto.InventoryItemResponse {
	return &dto.InventoryItemResponse{
		ID:         i.ID,
		CompanyID:  i.CompanyID,
		Name:       i.Name,
		SKU:        i.SKU,
		Quantity:   i.Quantity,
		Unit:       i.Unit,
		LowStockAt: i.LowStockAt,
		LowStock:   i.LowStock(),
		Notes:      i.Notes,
		CreatedAt:  i.CreatedAt,
	}
}
