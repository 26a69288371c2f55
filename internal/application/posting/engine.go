package posting

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/omplast/stores-api/internal/domain"
	"github.com/omplast/stores-api/internal/domain/entity"
	domposting "github.com/omplast/stores-api/internal/domain/posting"
	"github.com/omplast/stores-api/internal/domain/repository"
	"github.com/omplast/stores-api/pkg/logger"
)

// Result is the outcome of a successful posting.
type Result struct {
	EntriesCreated int
	Warnings       []string
}

// Engine turns one saved source document into ledger movements and balance
// updates, exactly once, all-or-nothing.
type Engine struct {
	txRunner TxRunner
	docRepo  repository.DocumentRepository
	adapters map[string]DocumentAdapter
	log      *logger.Logger
}

// NewEngine builds the engine with one adapter per postable document type.
func NewEngine(txRunner TxRunner, docRepo repository.DocumentRepository, log *logger.Logger, adapters ...DocumentAdapter) *Engine {
	byType := make(map[string]DocumentAdapter, len(adapters))
	for _, a := range adapters {
		byType[a.DocumentType()] = a
	}
	return &Engine{txRunner: txRunner, docRepo: docRepo, adapters: byType, log: log}
}

// PostDocument posts one document to stock.
//
// Failure modes: domain.ErrDocumentNotFound, domain.ErrAlreadyPosted,
// *posting.ValidationError (bad line data, nothing computed),
// *posting.InsufficientStockError (full shortage list, nothing written).
// Storage errors roll back the whole unit and leave the document SAVED.
func (e *Engine) PostDocument(ctx context.Context, documentType, documentID, postedBy string) (*Result, error) {
	if documentID == "" || postedBy == "" {
		return nil, domain.ErrInvalidInput
	}
	adapter, ok := e.adapters[documentType]
	if !ok {
		return nil, domain.ErrInvalidInput
	}

	header, err := e.docRepo.GetHeader(ctx, documentType, documentID)
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, domain.ErrDocumentNotFound
	}
	if header.IsPosted() {
		return nil, domain.ErrAlreadyPosted
	}

	expansion, err := adapter.Expand(ctx, documentID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	movements := buildMovements(documentType, documentID, postedBy, now, expansion.Requests)

	err = e.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		balanceRepo repository.BalanceRepository,
		docRepo repository.DocumentRepository,
	) error {
		// Conditional SAVED -> POSTED flip doubles as the idempotency guard:
		// a concurrent posting of the same document loses here and the whole
		// unit, flag included, rolls back on any later error.
		flipped, err := docRepo.MarkPosted(ctx, documentType, documentID, postedBy, now)
		if err != nil {
			return err
		}
		if !flipped {
			return domain.ErrAlreadyPosted
		}

		if err := checkSufficiency(ctx, balanceRepo, expansion.Requests); err != nil {
			return err
		}

		if len(movements) > 0 {
			if _, err := movRepo.AppendMany(ctx, movements); err != nil {
				return err
			}
			for _, d := range aggregateDeltas(expansion.Requests) {
				if err := balanceRepo.ApplyDelta(ctx, d.key.ItemCode, d.key.Location, d.delta); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	evt := e.log.Info().
		Str("document_type", documentType).
		Str("document_id", documentID).
		Str("posted_by", postedBy).
		Int("entries", len(movements))
	if !expansion.TonnageTon.IsZero() {
		evt = evt.Str("tonnage_ton", expansion.TonnageTon.String())
	}
	evt.Msg("document posted")

	return &Result{EntriesCreated: len(movements), Warnings: expansion.Warnings}, nil
}

// checkSufficiency verifies every OUT against the locked current balance.
// Requirements are aggregated per (item, location) first, so two OUT lines of
// the same item cannot both pass against the same stock. Keys are locked in
// sorted order to keep concurrent postings deadlock-free. All violations are
// collected; the caller gets the complete shortage list, not the first.
func checkSufficiency(ctx context.Context, balanceRepo repository.BalanceRepository, requests []MovementRequest) error {
	required := make(map[repository.BalanceKey]decimal.Decimal)
	for _, req := range requests {
		if req.Direction != entity.DirectionOUT {
			continue
		}
		key := repository.BalanceKey{ItemCode: req.ItemCode, Location: req.Location}
		required[key] = required[key].Add(req.Quantity)
	}
	if len(required) == 0 {
		return nil
	}

	keys := make([]repository.BalanceKey, 0, len(required))
	for key := range required {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].ItemCode != keys[j].ItemCode {
			return keys[i].ItemCode < keys[j].ItemCode
		}
		return keys[i].Location < keys[j].Location
	})

	var shortages []domposting.ShortageDetail
	for _, key := range keys {
		balance, err := balanceRepo.GetForUpdate(ctx, key.ItemCode, key.Location)
		if err != nil {
			return err
		}
		if balance.Quantity.LessThan(required[key]) {
			shortages = append(shortages, domposting.ShortageDetail{
				ItemCode: key.ItemCode,
				Shortage: required[key].Sub(balance.Quantity),
				Location: key.Location,
			})
		}
	}
	if len(shortages) > 0 {
		return &domposting.InsufficientStockError{Details: shortages}
	}
	return nil
}

func buildMovements(documentType, documentID, postedBy string, at time.Time, requests []MovementRequest) []*entity.Movement {
	movements := make([]*entity.Movement, 0, len(requests))
	for _, req := range requests {
		movements = append(movements, &entity.Movement{
			ID:           uuid.New().String(),
			DocumentType: documentType,
			DocumentID:   documentID,
			ItemCode:     req.ItemCode,
			Location:     req.Location,
			Direction:    req.Direction,
			Quantity:     req.Quantity,
			PostedBy:     postedBy,
			PostedAt:     at,
		})
	}
	return movements
}

type keyedDelta struct {
	key   repository.BalanceKey
	delta decimal.Decimal
}

// aggregateDeltas folds the requests into one signed delta per balance row,
// in deterministic key order.
func aggregateDeltas(requests []MovementRequest) []keyedDelta {
	sums := make(map[repository.BalanceKey]decimal.Decimal)
	for _, req := range requests {
		key := repository.BalanceKey{ItemCode: req.ItemCode, Location: req.Location}
		if req.Direction == entity.DirectionOUT {
			sums[key] = sums[key].Sub(req.Quantity)
		} else {
			sums[key] = sums[key].Add(req.Quantity)
		}
	}
	deltas := make([]keyedDelta, 0, len(sums))
	for key, delta := range sums {
		deltas = append(deltas, keyedDelta{key: key, delta: delta})
	}
	sort.Slice(deltas, func(i, j int) bool {
		if deltas[i].key.ItemCode != deltas[j].key.ItemCode {
			return deltas[i].key.ItemCode < deltas[j].key.ItemCode
		}
		return deltas[i].key.Location < deltas[j].key.Location
	})
	return deltas
}
