package posting_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/omplast/stores-api/internal/application/posting"
	"github.com/omplast/stores-api/internal/domain/entity"
	"github.com/omplast/stores-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// In-memory store backing the engine tests. One struct holds all tables; the
// repo fakes are views over it, and the tx-runner fake snapshots and restores
// it so rollback semantics behave like the real transaction.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	headers   map[string]*entity.DocumentHeader // key: docType + "/" + docID
	grnLines  map[string][]*entity.GRNLine
	misLines  map[string][]*entity.MISLine
	fgnLines  map[string][]*entity.FGNLine
	outLines  map[string][]*entity.OutboundLine // key: docType + "/" + docID
	items     map[string]*entity.StockItem
	boms      map[string][]*entity.BOMComponent
	movements []*entity.Movement
	balances  map[repository.BalanceKey]decimal.Decimal

	failAppend bool // simulate a storage error inside the transaction
}

func newMemStore() *memStore {
	return &memStore{
		headers:  map[string]*entity.DocumentHeader{},
		grnLines: map[string][]*entity.GRNLine{},
		misLines: map[string][]*entity.MISLine{},
		fgnLines: map[string][]*entity.FGNLine{},
		outLines: map[string][]*entity.OutboundLine{},
		items:    map[string]*entity.StockItem{},
		boms:     map[string][]*entity.BOMComponent{},
		balances: map[repository.BalanceKey]decimal.Decimal{},
	}
}

func docKey(docType, docID string) string { return docType + "/" + docID }

func (s *memStore) addDocument(docType, docID string) {
	s.headers[docKey(docType, docID)] = &entity.DocumentHeader{
		DocumentType: docType,
		DocumentID:   docID,
		Status:       entity.DocStatusSaved,
		DocDate:      time.Now(),
	}
}

func (s *memStore) setBalance(itemCode, location string, qty int64) {
	s.balances[repository.BalanceKey{ItemCode: itemCode, Location: location}] = decimal.NewFromInt(qty)
}

func (s *memStore) balance(itemCode, location string) decimal.Decimal {
	return s.balances[repository.BalanceKey{ItemCode: itemCode, Location: location}]
}

type memSnapshot struct {
	statuses  map[string]string
	movements []*entity.Movement
	balances  map[repository.BalanceKey]decimal.Decimal
}

func (s *memStore) snapshot() memSnapshot {
	snap := memSnapshot{
		statuses:  make(map[string]string, len(s.headers)),
		movements: append([]*entity.Movement(nil), s.movements...),
		balances:  make(map[repository.BalanceKey]decimal.Decimal, len(s.balances)),
	}
	for k, h := range s.headers {
		snap.statuses[k] = h.Status
	}
	for k, v := range s.balances {
		snap.balances[k] = v
	}
	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	for k, status := range snap.statuses {
		s.headers[k].Status = status
	}
	s.movements = snap.movements
	s.balances = snap.balances
}

// ── repository fakes ──────────────────────────────────────────────────────────

type memDocRepo struct{ s *memStore }

func (r *memDocRepo) GetHeader(_ context.Context, docType, docID string) (*entity.DocumentHeader, error) {
	h, ok := r.s.headers[docKey(docType, docID)]
	if !ok {
		return nil, nil
	}
	copied := *h
	return &copied, nil
}

func (r *memDocRepo) MarkPosted(_ context.Context, docType, docID, postedBy string, at time.Time) (bool, error) {
	h, ok := r.s.headers[docKey(docType, docID)]
	if !ok || h.Status != entity.DocStatusSaved {
		return false, nil
	}
	h.Status = entity.DocStatusPosted
	h.PostedBy = postedBy
	h.PostedAt = &at
	return true, nil
}

func (r *memDocRepo) GRNLines(_ context.Context, docID string) ([]*entity.GRNLine, error) {
	return r.s.grnLines[docID], nil
}

func (r *memDocRepo) MISLines(_ context.Context, docID string) ([]*entity.MISLine, error) {
	return r.s.misLines[docID], nil
}

func (r *memDocRepo) FGNLines(_ context.Context, docID string) ([]*entity.FGNLine, error) {
	return r.s.fgnLines[docID], nil
}

func (r *memDocRepo) OutboundLines(_ context.Context, docType, docID string) ([]*entity.OutboundLine, error) {
	return r.s.outLines[docKey(docType, docID)], nil
}

type memMovRepo struct{ s *memStore }

func (r *memMovRepo) AppendMany(_ context.Context, movements []*entity.Movement) (int, error) {
	if r.s.failAppend {
		return 0, errAppendFailed
	}
	r.s.movements = append(r.s.movements, movements...)
	return len(movements), nil
}

func (r *memMovRepo) ListByItem(_ context.Context, itemCode string, limit, offset int) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for _, m := range r.s.movements {
		if m.ItemCode == itemCode {
			list = append(list, m)
		}
	}
	return list, nil
}

func (r *memMovRepo) ListByDocument(_ context.Context, docType, docID string) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for _, m := range r.s.movements {
		if m.DocumentType == docType && m.DocumentID == docID {
			list = append(list, m)
		}
	}
	return list, nil
}

func (r *memMovRepo) SumByKey(_ context.Context, location string) (map[repository.BalanceKey]decimal.Decimal, error) {
	sums := make(map[repository.BalanceKey]decimal.Decimal)
	for _, m := range r.s.movements {
		if location != "" && m.Location != location {
			continue
		}
		key := repository.BalanceKey{ItemCode: m.ItemCode, Location: m.Location}
		sums[key] = sums[key].Add(m.SignedQuantity())
	}
	return sums, nil
}

type memBalanceRepo struct{ s *memStore }

func (r *memBalanceRepo) Get(_ context.Context, itemCode, location string) (*entity.Balance, error) {
	return &entity.Balance{ItemCode: itemCode, Location: location, Quantity: r.s.balance(itemCode, location)}, nil
}

func (r *memBalanceRepo) GetForUpdate(ctx context.Context, itemCode, location string) (*entity.Balance, error) {
	return r.Get(ctx, itemCode, location)
}

func (r *memBalanceRepo) ApplyDelta(_ context.Context, itemCode, location string, delta decimal.Decimal) error {
	key := repository.BalanceKey{ItemCode: itemCode, Location: location}
	r.s.balances[key] = r.s.balances[key].Add(delta)
	return nil
}

func (r *memBalanceRepo) ListByLocation(_ context.Context, location, itemType string) ([]*entity.BalanceLine, error) {
	var list []*entity.BalanceLine
	for key, qty := range r.s.balances {
		if key.Location != location {
			continue
		}
		item := r.s.items[key.ItemCode]
		if item == nil {
			continue
		}
		if itemType != "" && item.ItemType != itemType {
			continue
		}
		list = append(list, &entity.BalanceLine{
			ItemCode:       key.ItemCode,
			ItemType:       item.ItemType,
			SubCategory:    item.SubCategory,
			UOM:            item.UOM,
			Location:       key.Location,
			CurrentBalance: qty,
		})
	}
	return list, nil
}

func (r *memBalanceRepo) ReplaceAll(_ context.Context, location string, sums map[repository.BalanceKey]decimal.Decimal) error {
	for key := range r.s.balances {
		if location == "" || key.Location == location {
			delete(r.s.balances, key)
		}
	}
	for key, sum := range sums {
		r.s.balances[key] = sum
	}
	return nil
}

type memItemRepo struct{ s *memStore }

func (r *memItemRepo) GetByCode(_ context.Context, itemCode string) (*entity.StockItem, error) {
	return r.s.items[itemCode], nil
}

func (r *memItemRepo) List(_ context.Context, itemType, subCategory string) ([]*entity.StockItem, error) {
	var list []*entity.StockItem
	for _, item := range r.s.items {
		if itemType != "" && item.ItemType != itemType {
			continue
		}
		if subCategory != "" && item.SubCategory != subCategory {
			continue
		}
		list = append(list, item)
	}
	return list, nil
}

type memBOMRepo struct{ s *memStore }

func (r *memBOMRepo) ComponentsFor(_ context.Context, fgCode string) ([]*entity.BOMComponent, error) {
	return r.s.boms[fgCode], nil
}

// memTxRunner snapshots the store before fn and restores it when fn fails,
// mirroring the rollback of the real transaction.
type memTxRunner struct{ s *memStore }

func (r *memTxRunner) Run(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	balanceRepo repository.BalanceRepository,
	docRepo repository.DocumentRepository,
) error) error {
	snap := r.s.snapshot()
	if err := fn(&memMovRepo{r.s}, &memBalanceRepo{r.s}, &memDocRepo{r.s}); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

var _ posting.TxRunner = (*memTxRunner)(nil)
var _ repository.DocumentRepository = (*memDocRepo)(nil)
var _ repository.MovementRepository = (*memMovRepo)(nil)
var _ repository.BalanceRepository = (*memBalanceRepo)(nil)
var _ repository.ItemRepository = (*memItemRepo)(nil)
var _ repository.BOMRepository = (*memBOMRepo)(nil)
