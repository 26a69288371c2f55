package stock

import (
	"context"
	"fmt"

	"github.com/omplast/stores-api/internal/application/dto"
	"github.com/omplast/stores-api/internal/domain"
	"github.com/omplast/stores-api/internal/domain/entity"
	"github.com/omplast/stores-api/internal/domain/repository"
)

// QueryUseCase serves the read side of the ledger: balances, movement
// history and the item catalog. Reads go straight to the pool; only postings
// need the transaction runner.
type QueryUseCase struct {
	balanceRepo  repository.BalanceRepository
	movementRepo repository.MovementRepository
	itemRepo     repository.ItemRepository
}

// NewQueryUseCase builds the use case.
func NewQueryUseCase(
	balanceRepo repository.BalanceRepository,
	movementRepo repository.MovementRepository,
	itemRepo repository.ItemRepository,
) *QueryUseCase {
	return &QueryUseCase{balanceRepo: balanceRepo, movementRepo: movementRepo, itemRepo: itemRepo}
}

// GetBalances answers the balance screen query. Empty location defaults to
// the store. With an item code the answer is that single row; otherwise one
// aggregate query returns every matching row, never a per-item loop.
func (uc *QueryUseCase) GetBalances(ctx context.Context, q dto.BalanceQuery) ([]dto.BalanceRow, error) {
	location := q.Location
	if location == "" {
		location = entity.DefaultLocation
	}

	if q.ItemCode != "" {
		item, err := uc.itemRepo.GetByCode(ctx, q.ItemCode)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrItemNotFound
		}
		balance, err := uc.balanceRepo.Get(ctx, q.ItemCode, location)
		if err != nil {
			return nil, err
		}
		return []dto.BalanceRow{{
			ItemCode:       item.ItemCode,
			SubCategory:    item.SubCategory,
			UOM:            item.UOM,
			Location:       location,
			CurrentBalance: balance.Quantity,
		}}, nil
	}

	lines, err := uc.balanceRepo.ListByLocation(ctx, location, q.ItemType)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.BalanceRow, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, dto.BalanceRow{
			ItemCode:       line.ItemCode,
			SubCategory:    line.SubCategory,
			UOM:            line.UOM,
			Location:       line.Location,
			CurrentBalance: line.CurrentBalance,
		})
	}
	return rows, nil
}

// ListMovements answers the movement-history screen.
func (uc *QueryUseCase) ListMovements(ctx context.Context, q dto.MovementQuery) ([]dto.MovementRow, error) {
	q.DefaultPage()

	var (
		movements []*entity.Movement
		err       error
	)
	switch {
	case q.DocumentType != "" && q.DocumentID != "":
		movements, err = uc.movementRepo.ListByDocument(ctx, q.DocumentType, q.DocumentID)
	case q.ItemCode != "":
		movements, err = uc.movementRepo.ListByItem(ctx, q.ItemCode, q.Limit, q.Offset)
	default:
		return nil, fmt.Errorf("%w: item_code or document_type+document_id required", domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, err
	}

	rows := make([]dto.MovementRow, 0, len(movements))
	for _, m := range movements {
		rows = append(rows, dto.MovementRow{
			ID:           m.ID,
			DocumentType: m.DocumentType,
			DocumentID:   m.DocumentID,
			ItemCode:     m.ItemCode,
			Location:     m.Location,
			Direction:    m.Direction,
			Quantity:     m.Quantity,
			PostedBy:     m.PostedBy,
			PostedAt:     m.PostedAt,
		})
	}
	return rows, nil
}

// ListItems answers the item dropdowns of the entry screens.
func (uc *QueryUseCase) ListItems(ctx context.Context, itemType, subCategory string) ([]*entity.StockItem, error) {
	if itemType != "" && !entity.ValidItemType(itemType) {
		return nil, domain.ErrInvalidInput
	}
	return uc.itemRepo.List(ctx, itemType, subCategory)
}
