package repository

import (
	"context"

	"github.com/omplast/stores-api/internal/domain/entity"
)

// ItemRepository is the read-only port over the item master.
type ItemRepository interface {
	GetByCode(ctx context.Context, itemCode string) (*entity.StockItem, error)
	// List filters by item type and/or sub-category; empty strings mean no filter.
	List(ctx context.Context, itemType, subCategory string) ([]*entity.StockItem, error)
}
