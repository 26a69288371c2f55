package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/omplast/stores-api/internal/application/posting"
	"github.com/omplast/stores-api/internal/domain/repository"
)

// Ensure TxRunner implements posting.TxRunner.
var _ posting.TxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside one PostgreSQL transaction. The posting
// engine uses it so movement rows, balance deltas and the posted flag commit
// or roll back together.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run begins a transaction, executes fn with tx-bound repositories, then
// commits; any error from fn rolls everything back.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	balanceRepo repository.BalanceRepository,
	docRepo repository.DocumentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewMovementRepository(tx)
	balanceRepo := NewBalanceRepository(tx)
	docRepo := NewDocumentRepository(tx)

	if err := fn(movRepo, balanceRepo, docRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
