package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/omplast/stores-api/internal/domain/entity"
	"github.com/omplast/stores-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo append-only movement log over PostgreSQL.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository builds the adapter. Pass pool or tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, document_type, document_id, item_code, location, direction, quantity, posted_by, posted_at`

// AppendMany inserts all movements in one batch and returns the count.
func (r *MovementRepo) AppendMany(ctx context.Context, movements []*entity.Movement) (int, error) {
	if len(movements) == 0 {
		return 0, nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, m := range movements {
		batch.Queue(query,
			m.ID, m.DocumentType, m.DocumentID, m.ItemCode, m.Location,
			m.Direction, m.Quantity, m.PostedBy, m.PostedAt,
		)
	}
	results := r.q.SendBatch(ctx, batch)
	defer results.Close()
	for i := range movements {
		if _, err := results.Exec(); err != nil {
			return 0, fmt.Errorf("append movement %d: %w", i, err)
		}
	}
	return len(movements), nil
}

// ListByItem lists movements of one item, newest first.
func (r *MovementRepo) ListByItem(ctx context.Context, itemCode string, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE item_code = $1
		ORDER BY posted_at DESC, id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, itemCode, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by item: %w", err)
	}
	return scanMovements(rows)
}

// ListByDocument lists the movements one posting produced.
func (r *MovementRepo) ListByDocument(ctx context.Context, documentType, documentID string) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE document_type = $1 AND document_id = $2
		ORDER BY posted_at, id`
	rows, err := r.q.Query(ctx, query, documentType, documentID)
	if err != nil {
		return nil, fmt.Errorf("list movements by document: %w", err)
	}
	return scanMovements(rows)
}

// SumByKey aggregates signed quantities per (item_code, location), the
// replay query behind the balance rebuild.
func (r *MovementRepo) SumByKey(ctx context.Context, location string) (map[repository.BalanceKey]decimal.Decimal, error) {
	query := `
		SELECT item_code, location,
		       SUM(CASE WHEN direction = 'OUT' THEN -quantity ELSE quantity END)
		FROM stock_movements`
	args := []any{}
	if location != "" {
		query += " WHERE location = $1"
		args = append(args, location)
	}
	query += " GROUP BY item_code, location"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sum movements: %w", err)
	}
	defer rows.Close()
	sums := make(map[repository.BalanceKey]decimal.Decimal)
	for rows.Next() {
		var key repository.BalanceKey
		var sum decimal.Decimal
		if err := rows.Scan(&key.ItemCode, &key.Location, &sum); err != nil {
			return nil, fmt.Errorf("scan movement sum: %w", err)
		}
		sums[key] = sum
	}
	return sums, rows.Err()
}

func scanMovements(rows pgx.Rows) ([]*entity.Movement, error) {
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.DocumentType, &m.DocumentID, &m.ItemCode,
			&m.Location, &m.Direction, &m.Quantity, &m.PostedBy, &m.PostedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
