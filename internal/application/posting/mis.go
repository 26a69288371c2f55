package posting

import (
	"context"
	"fmt"

	"github.com/omplast/stores-api/internal/domain/entity"
	domposting "github.com/omplast/stores-api/internal/domain/posting"
	"github.com/omplast/stores-api/internal/domain/repository"
)

// MISAdapter maps material-issue-slip lines 1:1 to OUT movements at the
// store. Issues need a resolved item code; a free-text description cannot be
// deducted from any balance.
type MISAdapter struct {
	docRepo    repository.DocumentRepository
	strictness Strictness
}

// NewMISAdapter builds the adapter. Lenient strictness warns and skips lines
// without a resolved item code; Strict fails the document.
func NewMISAdapter(docRepo repository.DocumentRepository, strictness Strictness) *MISAdapter {
	return &MISAdapter{docRepo: docRepo, strictness: strictness}
}

func (a *MISAdapter) DocumentType() string { return entity.DocTypeMIS }

// Expand turns each issue line into one OUT movement at STORE.
func (a *MISAdapter) Expand(ctx context.Context, documentID string) (*ExpandResult, error) {
	lines, err := a.docRepo.MISLines(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("load mis lines: %w", err)
	}
	res := &ExpandResult{}
	for _, line := range lines {
		if line.IssueQty.IsZero() && line.ItemCode == "" {
			continue
		}
		if line.ItemCode == "" {
			if a.strictness == Strict {
				return nil, domposting.NewValidationError("mis line %d: %q matches no stock item", line.LineNo, line.Description)
			}
			res.Warnings = append(res.Warnings, fmt.Sprintf("mis line %d: %q matches no stock item, skipped", line.LineNo, line.Description))
			continue
		}
		if line.IssueQty.IsNegative() {
			return nil, domposting.NewValidationError("mis line %d: negative quantity %s", line.LineNo, line.IssueQty)
		}
		if line.IssueQty.IsZero() {
			continue
		}
		res.Requests = append(res.Requests, MovementRequest{
			ItemCode:  line.ItemCode,
			Location:  entity.DefaultLocation,
			Direction: entity.DirectionOUT,
			Quantity:  line.IssueQty,
		})
	}
	return res, nil
}
