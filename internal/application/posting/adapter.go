package posting

import (
	"context"

	"github.com/shopspring/decimal"
)

// MovementRequest is one normalized stock movement an adapter derived from a
// document line. Quantity is never negative; Direction carries the sign.
type MovementRequest struct {
	ItemCode  string
	Location  string
	Direction string
	Quantity  decimal.Decimal
}

// ExpandResult is what an adapter hands back to the engine: the movement
// requests, any non-blocking warnings, and (FGN only) the informational
// production tonnage.
type ExpandResult struct {
	Requests   []MovementRequest
	Warnings   []string
	TonnageTon decimal.Decimal
}

// Strictness controls how an adapter treats lines it cannot map to a stock
// item: Lenient warns and skips, Strict fails the whole document.
type Strictness int

const (
	Lenient Strictness = iota
	Strict
)

// DocumentAdapter translates one document type's lines into movement
// requests. Adapters load their own typed lines; the engine only knows the
// normalized output.
type DocumentAdapter interface {
	DocumentType() string
	Expand(ctx context.Context, documentID string) (*ExpandResult, error)
}
