package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/omplast/stores-api/internal/domain/entity"
)

// BalanceKey identifies one balance row.
type BalanceKey struct {
	ItemCode string
	Location string
}

// MovementRepository is the port over the append-only movement log.
// No update or delete exists: corrections are new rows.
type MovementRepository interface {
	// AppendMany inserts all movements and returns the inserted count. Only
	// called inside the posting transaction.
	AppendMany(ctx context.Context, movements []*entity.Movement) (int, error)
	ListByItem(ctx context.Context, itemCode string, limit, offset int) ([]*entity.Movement, error)
	ListByDocument(ctx context.Context, documentType, documentID string) ([]*entity.Movement, error)
	// SumByKey returns the signed quantity sum per (item_code, location),
	// optionally restricted to one location. Drives the balance rebuild and
	// the conservation checks.
	SumByKey(ctx context.Context, location string) (map[BalanceKey]decimal.Decimal, error)
}
