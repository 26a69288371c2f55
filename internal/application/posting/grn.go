package posting

import (
	"context"
	"fmt"

	"github.com/omplast/stores-api/internal/domain/entity"
	domposting "github.com/omplast/stores-api/internal/domain/posting"
	"github.com/omplast/stores-api/internal/domain/repository"
)

// GRNAdapter maps goods-received-note lines 1:1 to IN movements at the store.
type GRNAdapter struct {
	docRepo repository.DocumentRepository
}

// NewGRNAdapter builds the adapter.
func NewGRNAdapter(docRepo repository.DocumentRepository) *GRNAdapter {
	return &GRNAdapter{docRepo: docRepo}
}

func (a *GRNAdapter) DocumentType() string { return entity.DocTypeGRN }

// Expand turns each received line into one IN movement at STORE. Lines with
// an empty description or zero quantity are skipped silently.
func (a *GRNAdapter) Expand(ctx context.Context, documentID string) (*ExpandResult, error) {
	lines, err := a.docRepo.GRNLines(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("load grn lines: %w", err)
	}
	res := &ExpandResult{}
	for _, line := range lines {
		// Blank rows the entry screen pads the note with.
		if line.Description == "" || line.Quantity.IsZero() {
			continue
		}
		if line.Quantity.IsNegative() {
			return nil, domposting.NewValidationError("grn line %d: negative quantity %s", line.LineNo, line.Quantity)
		}
		code := line.ItemCode
		if code == "" {
			// Free-text receipt with no catalog match still enters the store
			// under its description, so the GRN total stays accountable.
			code = line.Description
			res.Warnings = append(res.Warnings, fmt.Sprintf("grn line %d: no item code, received as %q", line.LineNo, line.Description))
		}
		res.Requests = append(res.Requests, MovementRequest{
			ItemCode:  code,
			Location:  entity.DefaultLocation,
			Direction: entity.DirectionIN,
			Quantity:  line.Quantity,
		})
	}
	return res, nil
}
