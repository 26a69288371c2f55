package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Source document types the ledger can post.
const (
	DocTypeGRN      = "grn"      // goods received note
	DocTypeMIS      = "mis"      // material issue slip
	DocTypeFGN      = "fgn"      // finished-goods transfer note
	DocTypeDispatch = "dispatch" // delivery challan
	DocTypeJobWork  = "jobwork"  // job-work challan
)

// Document lifecycle states. A document is created SAVED by the entry
// screens and transitions to POSTED exactly once.
const (
	DocStatusSaved  = "SAVED"
	DocStatusPosted = "POSTED"
)

// DocumentHeader is the posting-relevant view of a source document. The
// entry screens own everything else (party, numbering, print fields).
type DocumentHeader struct {
	DocumentType string
	DocumentID   string
	Status       string
	DocDate      time.Time
	PostedBy     string
	PostedAt     *time.Time
}

// IsPosted reports whether the document has already been posted to stock.
func (h *DocumentHeader) IsPosted() bool {
	return h.Status == DocStatusPosted
}

// GRNLine is one received line of a goods received note.
type GRNLine struct {
	LineNo      int
	ItemCode    string
	Description string
	Quantity    decimal.Decimal
}

// MISLine is one issue line of a material issue slip. ItemCode is empty when
// the clerk typed a free-text description that matched no stock item.
type MISLine struct {
	LineNo      int
	ItemCode    string
	Description string
	IssueQty    decimal.Decimal
}

// FGNLine is one production line of a finished-goods transfer note.
// FGCode is the coloured finished good being produced; empty means the entry
// screen let a line through without a colour selection.
type FGNLine struct {
	LineNo       int
	FGCode       string
	QtyBoxes     decimal.Decimal
	PackSize     decimal.Decimal
	FromLocation string
	ToLocation   string
}

// OutboundLine is one line of a delivery challan or job-work challan.
type OutboundLine struct {
	LineNo      int
	ItemCode    string
	Description string
	Quantity    decimal.Decimal
}

// ValidDocumentType reports whether t names a postable document type.
func ValidDocumentType(t string) bool {
	switch t {
	case DocTypeGRN, DocTypeMIS, DocTypeFGN, DocTypeDispatch, DocTypeJobWork:
		return true
	}
	return false
}
