package dto

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PostDocumentRequest body for POST /stock/post/:docType/:docID.
type PostDocumentRequest struct {
	PostedBy string `json:"posted_by" validate:"required,max=64"`
}

// PostDocumentResponse success envelope for a posting.
type PostDocumentResponse struct {
	Success        bool     `json:"success"`
	EntriesCreated int      `json:"entries_created"`
	Warnings       []string `json:"warnings"`
}

// ParseQuantity parses a quantity from its string form at the boundary.
// Non-numeric and negative inputs are rejected before they reach the posting
// engine; documents store quantities as decimals, but seed files and legacy
// imports still arrive stringly-typed.
func ParseQuantity(s string) (decimal.Decimal, error) {
	q, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("quantity %q is not numeric", s)
	}
	if q.IsNegative() {
		return decimal.Zero, fmt.Errorf("quantity %s is negative", q)
	}
	return q, nil
}
