package posting

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/omplast/stores-api/internal/domain/entity"
	domposting "github.com/omplast/stores-api/internal/domain/posting"
	"github.com/omplast/stores-api/internal/domain/repository"
)

// FGNAdapter expands finished-goods transfer lines through the bill of
// materials: one IN for the finished good, one OUT per consumed component.
// This is the only BOM-aware posting path.
type FGNAdapter struct {
	docRepo repository.DocumentRepository
	bomRepo repository.BOMRepository
}

// NewFGNAdapter builds the adapter.
func NewFGNAdapter(docRepo repository.DocumentRepository, bomRepo repository.BOMRepository) *FGNAdapter {
	return &FGNAdapter{docRepo: docRepo, bomRepo: bomRepo}
}

func (a *FGNAdapter) DocumentType() string { return entity.DocTypeFGN }

// Expand derives, per line:
//
//   - IN of the finished good at the destination, qty_boxes * pack_size
//   - OUT of each BOM component at the source, qty_per_unit * qty_boxes
//
// A component with zero configured quantity contributes no movement. A line
// missing its finished-good code fails the whole document: posting a partial
// transfer without full component accounting would corrupt the component
// balances. The informational tonnage of the note is accumulated from the
// SFG components' unit weights.
func (a *FGNAdapter) Expand(ctx context.Context, documentID string) (*ExpandResult, error) {
	lines, err := a.docRepo.FGNLines(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("load fgn lines: %w", err)
	}
	res := &ExpandResult{}
	for _, line := range lines {
		if line.FGCode == "" {
			return nil, domposting.NewValidationError("fgn line %d: no colour selected", line.LineNo)
		}
		if line.QtyBoxes.IsNegative() || line.PackSize.IsNegative() {
			return nil, domposting.NewValidationError("fgn line %d: negative quantity", line.LineNo)
		}
		if line.QtyBoxes.IsZero() {
			continue
		}

		from := line.FromLocation
		if from == "" {
			from = entity.DefaultLocation
		}
		to := line.ToLocation
		if to == "" {
			to = entity.DefaultLocation
		}

		fgQty := line.QtyBoxes.Mul(line.PackSize)
		if fgQty.IsPositive() {
			res.Requests = append(res.Requests, MovementRequest{
				ItemCode:  line.FGCode,
				Location:  to,
				Direction: entity.DirectionIN,
				Quantity:  fgQty,
			})
		}

		components, err := a.bomRepo.ComponentsFor(ctx, line.FGCode)
		if err != nil {
			return nil, fmt.Errorf("resolve bom for %s: %w", line.FGCode, err)
		}
		if len(components) == 0 {
			res.Warnings = append(res.Warnings, fmt.Sprintf("fgn line %d: no BOM configured for %s", line.LineNo, line.FGCode))
		}
		var sfgWeight decimal.Decimal
		for _, comp := range components {
			switch comp.Role {
			case entity.ComponentRoleSFG1, entity.ComponentRoleSFG2:
				sfgWeight = sfgWeight.Add(comp.QtyPerUnit.Mul(comp.UnitWeight))
			}
			if comp.QtyPerUnit.IsZero() {
				continue
			}
			res.Requests = append(res.Requests, MovementRequest{
				ItemCode:  comp.ComponentCode,
				Location:  from,
				Direction: entity.DirectionOUT,
				Quantity:  comp.QtyPerUnit.Mul(line.QtyBoxes),
			})
		}
		res.TonnageTon = res.TonnageTon.Add(domposting.TonnageFromWeight(sfgWeight, line.QtyBoxes))
	}
	return res, nil
}
