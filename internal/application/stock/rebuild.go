package stock

import (
	"context"

	"github.com/omplast/stores-api/internal/application/posting"
	"github.com/omplast/stores-api/internal/domain/repository"
	"github.com/omplast/stores-api/pkg/logger"
)

// RebuildUseCase rematerializes the balance table from the movement log.
// The balance store is only a cache of the log; after a manual DB repair or a
// suspected drift this replays the source of truth in one transaction.
type RebuildUseCase struct {
	txRunner posting.TxRunner
	log      *logger.Logger
}

// NewRebuildUseCase builds the use case.
func NewRebuildUseCase(txRunner posting.TxRunner, log *logger.Logger) *RebuildUseCase {
	return &RebuildUseCase{txRunner: txRunner, log: log}
}

// Rebuild recomputes balances for one location (empty = all) and returns the
// number of balance rows materialized. Runs inside a single transaction so
// readers never observe a half-rebuilt table.
func (uc *RebuildUseCase) Rebuild(ctx context.Context, location string) (int, error) {
	var rows int
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		balanceRepo repository.BalanceRepository,
		_ repository.DocumentRepository,
	) error {
		sums, err := movRepo.SumByKey(ctx, location)
		if err != nil {
			return err
		}
		if err := balanceRepo.ReplaceAll(ctx, location, sums); err != nil {
			return err
		}
		rows = len(sums)
		return nil
	})
	if err != nil {
		return 0, err
	}
	uc.log.Info().Str("location", location).Int("rows", rows).Msg("balances rebuilt from movement log")
	return rows, nil
}
