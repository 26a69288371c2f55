package posting

import (
	"context"
	"fmt"

	"github.com/omplast/stores-api/internal/domain/entity"
	domposting "github.com/omplast/stores-api/internal/domain/posting"
	"github.com/omplast/stores-api/internal/domain/repository"
)

// OutboundAdapter maps delivery-challan and job-work-challan lines 1:1 to OUT
// movements at the store. Dispatch memos may reference free-text items the
// inventory never tracked; those lines are checked against the item master.
type OutboundAdapter struct {
	docType    string
	docRepo    repository.DocumentRepository
	itemRepo   repository.ItemRepository
	strictness Strictness
}

// NewDispatchAdapter builds the adapter for delivery challans.
func NewDispatchAdapter(docRepo repository.DocumentRepository, itemRepo repository.ItemRepository, strictness Strictness) *OutboundAdapter {
	return &OutboundAdapter{docType: entity.DocTypeDispatch, docRepo: docRepo, itemRepo: itemRepo, strictness: strictness}
}

// NewJobWorkAdapter builds the adapter for job-work challans.
func NewJobWorkAdapter(docRepo repository.DocumentRepository, itemRepo repository.ItemRepository, strictness Strictness) *OutboundAdapter {
	return &OutboundAdapter{docType: entity.DocTypeJobWork, docRepo: docRepo, itemRepo: itemRepo, strictness: strictness}
}

func (a *OutboundAdapter) DocumentType() string { return a.docType }

// Expand turns each challan line into one OUT movement at STORE. Item codes
// absent from the item master warn and skip under Lenient strictness.
func (a *OutboundAdapter) Expand(ctx context.Context, documentID string) (*ExpandResult, error) {
	lines, err := a.docRepo.OutboundLines(ctx, a.docType, documentID)
	if err != nil {
		return nil, fmt.Errorf("load %s lines: %w", a.docType, err)
	}
	res := &ExpandResult{}
	for _, line := range lines {
		if line.ItemCode == "" && line.Description == "" {
			continue
		}
		if line.Quantity.IsNegative() {
			return nil, domposting.NewValidationError("%s line %d: negative quantity %s", a.docType, line.LineNo, line.Quantity)
		}
		if line.Quantity.IsZero() {
			continue
		}
		item, err := a.lookupItem(ctx, line.ItemCode)
		if err != nil {
			return nil, err
		}
		if item == nil {
			if a.strictness == Strict {
				return nil, domposting.NewValidationError("%s line %d: item %q not in item master", a.docType, line.LineNo, line.ItemCode)
			}
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s line %d: item %q not in item master, skipped", a.docType, line.LineNo, line.ItemCode))
			continue
		}
		res.Requests = append(res.Requests, MovementRequest{
			ItemCode:  item.ItemCode,
			Location:  entity.DefaultLocation,
			Direction: entity.DirectionOUT,
			Quantity:  line.Quantity,
		})
	}
	return res, nil
}

func (a *OutboundAdapter) lookupItem(ctx context.Context, itemCode string) (*entity.StockItem, error) {
	if itemCode == "" {
		return nil, nil
	}
	item, err := a.itemRepo.GetByCode(ctx, itemCode)
	if err != nil {
		return nil, fmt.Errorf("lookup item %s: %w", itemCode, err)
	}
	return item, nil
}
