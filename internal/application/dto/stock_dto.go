package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceQuery query params for GET /stock/balance.
type BalanceQuery struct {
	ItemCode string `query:"item_code"`
	ItemType string `query:"item_type" validate:"omitempty,oneof=RM PM SPARE FG LOCAL"`
	Location string `query:"location"`
}

// BalanceRow one row of the balance listing, shaped for the store screens.
type BalanceRow struct {
	ItemCode       string          `json:"item_code"`
	SubCategory    string          `json:"sub_category"`
	UOM            string          `json:"uom"`
	Location       string          `json:"location"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
}

// MovementQuery query params for GET /stock/movements.
type MovementQuery struct {
	ItemCode     string `query:"item_code"`
	DocumentType string `query:"document_type"`
	DocumentID   string `query:"document_id"`
	PageRequest
}

// MovementRow one row of the movement history listing.
type MovementRow struct {
	ID           string          `json:"id"`
	DocumentType string          `json:"document_type"`
	DocumentID   string          `json:"document_id"`
	ItemCode     string          `json:"item_code"`
	Location     string          `json:"location"`
	Direction    string          `json:"direction"`
	Quantity     decimal.Decimal `json:"quantity"`
	PostedBy     string          `json:"posted_by"`
	PostedAt     time.Time       `json:"posted_at"`
}

// RebuildRequest body for POST /stock/rebuild. Empty location rebuilds every
// location.
type RebuildRequest struct {
	Location string `json:"location" validate:"max=32"`
}

// RebuildResponse reports how many balance rows the rebuild materialized.
type RebuildResponse struct {
	Success     bool `json:"success"`
	RowsRebuilt int  `json:"rows_rebuilt"`
}
