package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movement directions.
const (
	DirectionIN  = "IN"  // receipt into a location
	DirectionOUT = "OUT" // issue out of a location
)

// DefaultLocation is the central store. Documents that do not carry an
// explicit location post here.
const DefaultLocation = "STORE"

// Movement is one immutable row of the stock ledger. Corrections are new
// offsetting movements, never edits or deletes.
type Movement struct {
	ID           string
	DocumentType string
	DocumentID   string
	ItemCode     string
	Location     string
	Direction    string
	Quantity     decimal.Decimal // always non-negative; sign comes from Direction
	PostedBy     string
	PostedAt     time.Time
}

// SignedQuantity returns the quantity with its ledger sign: IN positive,
// OUT negative.
func (m *Movement) SignedQuantity() decimal.Decimal {
	if m.Direction == DirectionOUT {
		return m.Quantity.Neg()
	}
	return m.Quantity
}
