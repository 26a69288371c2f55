package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/omplast/stores-api/internal/domain/entity"
	"github.com/omplast/stores-api/internal/domain/repository"
)

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

// BalanceRepo materialized balance table over PostgreSQL (usable with pool
// or tx).
type BalanceRepo struct {
	q Querier
}

// NewBalanceRepository builds the adapter. Pass pool or tx (Querier).
func NewBalanceRepository(q Querier) *BalanceRepo {
	return &BalanceRepo{q: q}
}

// Get returns the current balance; missing rows read as zero.
func (r *BalanceRepo) Get(ctx context.Context, itemCode, location string) (*entity.Balance, error) {
	return r.get(ctx, itemCode, location, false)
}

// GetForUpdate locks the balance row (SELECT ... FOR UPDATE) so the
// sufficiency check and the later delta serialize against concurrent
// postings of the same key. Missing rows read as zero and are created by the
// first ApplyDelta.
func (r *BalanceRepo) GetForUpdate(ctx context.Context, itemCode, location string) (*entity.Balance, error) {
	return r.get(ctx, itemCode, location, true)
}

func (r *BalanceRepo) get(ctx context.Context, itemCode, location string, forUpdate bool) (*entity.Balance, error) {
	query := `
		SELECT item_code, location, quantity, updated_at
		FROM stock_balances WHERE item_code = $1 AND location = $2`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var b entity.Balance
	err := r.q.QueryRow(ctx, query, itemCode, location).Scan(
		&b.ItemCode, &b.Location, &b.Quantity, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Balance{ItemCode: itemCode, Location: location, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return &b, nil
}

// ApplyDelta upserts quantity = quantity + delta for the key. Only called
// from inside the posting transaction.
func (r *BalanceRepo) ApplyDelta(ctx context.Context, itemCode, location string, delta decimal.Decimal) error {
	query := `
		INSERT INTO stock_balances (item_code, location, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (item_code, location)
		DO UPDATE SET quantity = stock_balances.quantity + EXCLUDED.quantity, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, itemCode, location, delta); err != nil {
		return fmt.Errorf("apply balance delta: %w", err)
	}
	return nil
}

// ListByLocation returns balance rows joined with the item master in one
// aggregate query; the store screens render hundreds of rows per request.
func (r *BalanceRepo) ListByLocation(ctx context.Context, location, itemType string) ([]*entity.BalanceLine, error) {
	query := `
		SELECT b.item_code, i.item_type, i.sub_category, i.uom, b.location, b.quantity
		FROM stock_balances b
		JOIN stock_items i ON i.item_code = b.item_code
		WHERE b.location = $1`
	args := []any{location}
	if itemType != "" {
		query += " AND i.item_type = $2"
		args = append(args, itemType)
	}
	query += " ORDER BY i.sub_category, b.item_code"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list balances by location: %w", err)
	}
	defer rows.Close()
	var list []*entity.BalanceLine
	for rows.Next() {
		var line entity.BalanceLine
		if err := rows.Scan(&line.ItemCode, &line.ItemType, &line.SubCategory,
			&line.UOM, &line.Location, &line.CurrentBalance); err != nil {
			return nil, fmt.Errorf("scan balance line: %w", err)
		}
		list = append(list, &line)
	}
	return list, rows.Err()
}

// ReplaceAll rewrites the materialized balances for a location (empty =
// every location) from the given movement-log sums.
func (r *BalanceRepo) ReplaceAll(ctx context.Context, location string, sums map[repository.BalanceKey]decimal.Decimal) error {
	deleteQuery := `DELETE FROM stock_balances`
	args := []any{}
	if location != "" {
		deleteQuery += " WHERE location = $1"
		args = append(args, location)
	}
	if _, err := r.q.Exec(ctx, deleteQuery, args...); err != nil {
		return fmt.Errorf("clear balances: %w", err)
	}

	batch := &pgx.Batch{}
	insert := `
		INSERT INTO stock_balances (item_code, location, quantity, updated_at)
		VALUES ($1, $2, $3, now())`
	for key, sum := range sums {
		batch.Queue(insert, key.ItemCode, key.Location, sum)
	}
	results := r.q.SendBatch(ctx, batch)
	defer results.Close()
	for range sums {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert rebuilt balance: %w", err)
		}
	}
	return nil
}
