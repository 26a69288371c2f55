package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/omplast/stores-api/internal/domain/entity"
)

// BalanceRepository is the port over the materialized balance table.
// ApplyDelta and GetForUpdate are only meaningful inside the posting
// transaction; reads outside it may observe a balance mid-posting.
type BalanceRepository interface {
	Get(ctx context.Context, itemCode, location string) (*entity.Balance, error)
	// GetForUpdate locks the row (SELECT ... FOR UPDATE) so the sufficiency
	// check and the mutation are atomic against concurrent postings.
	GetForUpdate(ctx context.Context, itemCode, location string) (*entity.Balance, error)
	// ApplyDelta upserts quantity = quantity + delta for the key.
	ApplyDelta(ctx context.Context, itemCode, location string, delta decimal.Decimal) error
	// ListByLocation returns balance rows joined with item-master attributes
	// in a single query; itemType empty means all types.
	ListByLocation(ctx context.Context, location, itemType string) ([]*entity.BalanceLine, error)
	// ReplaceAll overwrites the materialized balances for a location (empty =
	// every location) with the given sums. Used by the rebuild operation.
	ReplaceAll(ctx context.Context, location string, sums map[BalanceKey]decimal.Decimal) error
}
