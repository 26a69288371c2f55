// Package posting holds the pure domain pieces of stock posting: the typed
// failure values returned to callers and the derived-figure calculations.
package posting

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ShortageDetail describes one item/location that would go negative if the
// document were posted.
type ShortageDetail struct {
	ItemCode string          `json:"item_code"`
	Shortage decimal.Decimal `json:"shortage"`
	Location string          `json:"location"`
}

// InsufficientStockError carries the complete set of shortages for a
// rejected posting, so the caller can fix every line before retrying.
type InsufficientStockError struct {
	Details []ShortageDetail
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, fmt.Sprintf("%s@%s short %s", d.ItemCode, d.Location, d.Shortage))
	}
	return "insufficient stock: " + strings.Join(parts, ", ")
}

// ValidationError rejects a document before any movement is computed, e.g. an
// FGN line saved without a colour selection.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Message
}

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
