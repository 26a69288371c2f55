package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/omplast/stores-api/internal/domain/entity"
	"github.com/omplast/stores-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo read-only item master access over PostgreSQL.
type ItemRepo struct {
	q Querier
}

// NewItemRepository builds the adapter. Pass pool or tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// GetByCode returns the item or nil when the code is not in the master.
func (r *ItemRepo) GetByCode(ctx context.Context, itemCode string) (*entity.StockItem, error) {
	query := `
		SELECT item_code, item_type, sub_category, uom
		FROM stock_items WHERE item_code = $1`
	var item entity.StockItem
	err := r.q.QueryRow(ctx, query, itemCode).Scan(
		&item.ItemCode, &item.ItemType, &item.SubCategory, &item.UOM,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &item, nil
}

// List returns items filtered by type and/or sub-category; empty = no filter.
func (r *ItemRepo) List(ctx context.Context, itemType, subCategory string) ([]*entity.StockItem, error) {
	query := `
		SELECT item_code, item_type, sub_category, uom
		FROM stock_items WHERE 1=1`
	args := []any{}
	pos := 1
	if itemType != "" {
		query += fmt.Sprintf(" AND item_type = $%d", pos)
		args = append(args, itemType)
		pos++
	}
	if subCategory != "" {
		query += fmt.Sprintf(" AND sub_category = $%d", pos)
		args = append(args, subCategory)
		pos++
	}
	query += " ORDER BY item_code"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockItem
	for rows.Next() {
		var item entity.StockItem
		if err := rows.Scan(&item.ItemCode, &item.ItemType, &item.SubCategory, &item.UOM); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}
