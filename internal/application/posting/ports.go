package posting

import (
	"context"

	"github.com/omplast/stores-api/internal/domain/repository"
)

// TxRunner runs a function inside one DB transaction, handing it repositories
// bound to that transaction. It is what makes a posting all-or-nothing: any
// error from fn rolls back movements, balance deltas and the posted flag
// together.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		balanceRepo repository.BalanceRepository,
		docRepo repository.DocumentRepository,
	) error) error
}
