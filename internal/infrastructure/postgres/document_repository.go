package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/omplast/stores-api/internal/domain/entity"
	"github.com/omplast/stores-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo posting-relevant access to the source documents the entry
// screens persist. Lines are read-only here; the only write is the
// SAVED -> POSTED flip.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository builds the adapter. Pass pool or tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

// GetHeader returns the document header or nil when absent.
func (r *DocumentRepo) GetHeader(ctx context.Context, documentType, documentID string) (*entity.DocumentHeader, error) {
	query := `
		SELECT document_type, document_id, status, doc_date, COALESCE(posted_by, ''), posted_at
		FROM documents WHERE document_type = $1 AND document_id = $2`
	var h entity.DocumentHeader
	err := r.q.QueryRow(ctx, query, documentType, documentID).Scan(
		&h.DocumentType, &h.DocumentID, &h.Status, &h.DocDate, &h.PostedBy, &h.PostedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document header: %w", err)
	}
	return &h, nil
}

// MarkPosted flips status SAVED -> POSTED conditionally. Zero rows affected
// means the document lost the race or was already posted.
func (r *DocumentRepo) MarkPosted(ctx context.Context, documentType, documentID, postedBy string, at time.Time) (bool, error) {
	query := `
		UPDATE documents SET status = $1, posted_by = $2, posted_at = $3
		WHERE document_type = $4 AND document_id = $5 AND status = $6`
	tag, err := r.q.Exec(ctx, query,
		entity.DocStatusPosted, postedBy, at, documentType, documentID, entity.DocStatusSaved,
	)
	if err != nil {
		return false, fmt.Errorf("mark document posted: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// GRNLines loads the received lines of a goods received note.
func (r *DocumentRepo) GRNLines(ctx context.Context, documentID string) ([]*entity.GRNLine, error) {
	query := `
		SELECT line_no, COALESCE(item_code, ''), COALESCE(description, ''), quantity
		FROM grn_lines WHERE document_id = $1 ORDER BY line_no`
	rows, err := r.q.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list grn lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.GRNLine
	for rows.Next() {
		var l entity.GRNLine
		if err := rows.Scan(&l.LineNo, &l.ItemCode, &l.Description, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan grn line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// MISLines loads the issue lines of a material issue slip.
func (r *DocumentRepo) MISLines(ctx context.Context, documentID string) ([]*entity.MISLine, error) {
	query := `
		SELECT line_no, COALESCE(item_code, ''), COALESCE(description, ''), issue_qty
		FROM mis_lines WHERE document_id = $1 ORDER BY line_no`
	rows, err := r.q.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list mis lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.MISLine
	for rows.Next() {
		var l entity.MISLine
		if err := rows.Scan(&l.LineNo, &l.ItemCode, &l.Description, &l.IssueQty); err != nil {
			return nil, fmt.Errorf("scan mis line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// FGNLines loads the production lines of a finished-goods transfer note.
func (r *DocumentRepo) FGNLines(ctx context.Context, documentID string) ([]*entity.FGNLine, error) {
	query := `
		SELECT line_no, COALESCE(fg_code, ''), qty_boxes, pack_size,
		       COALESCE(from_location, ''), COALESCE(to_location, '')
		FROM fgn_lines WHERE document_id = $1 ORDER BY line_no`
	rows, err := r.q.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list fgn lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.FGNLine
	for rows.Next() {
		var l entity.FGNLine
		if err := rows.Scan(&l.LineNo, &l.FGCode, &l.QtyBoxes, &l.PackSize, &l.FromLocation, &l.ToLocation); err != nil {
			return nil, fmt.Errorf("scan fgn line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// OutboundLines loads delivery-challan or job-work-challan lines.
func (r *DocumentRepo) OutboundLines(ctx context.Context, documentType, documentID string) ([]*entity.OutboundLine, error) {
	query := `
		SELECT line_no, COALESCE(item_code, ''), COALESCE(description, ''), quantity
		FROM outbound_lines WHERE document_type = $1 AND document_id = $2 ORDER BY line_no`
	rows, err := r.q.Query(ctx, query, documentType, documentID)
	if err != nil {
		return nil, fmt.Errorf("list %s lines: %w", documentType, err)
	}
	defer rows.Close()
	var list []*entity.OutboundLine
	for rows.Next() {
		var l entity.OutboundLine
		if err := rows.Scan(&l.LineNo, &l.ItemCode, &l.Description, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan %s line: %w", documentType, err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
