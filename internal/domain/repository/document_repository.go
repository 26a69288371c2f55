package repository

import (
	"context"
	"time"

	"github.com/omplast/stores-api/internal/domain/entity"
)

// DocumentRepository exposes the posting-relevant slice of the source
// documents the entry screens persist. The ledger never writes lines; the
// only mutation is the SAVED -> POSTED transition.
type DocumentRepository interface {
	GetHeader(ctx context.Context, documentType, documentID string) (*entity.DocumentHeader, error)
	// MarkPosted flips status SAVED -> POSTED and records the actor. Returns
	// false when the document was not in SAVED state (lost the race or was
	// already posted); writes nothing in that case.
	MarkPosted(ctx context.Context, documentType, documentID, postedBy string, at time.Time) (bool, error)

	GRNLines(ctx context.Context, documentID string) ([]*entity.GRNLine, error)
	MISLines(ctx context.Context, documentID string) ([]*entity.MISLine, error)
	FGNLines(ctx context.Context, documentID string) ([]*entity.FGNLine, error)
	// OutboundLines serves both delivery challans and job-work challans.
	OutboundLines(ctx context.Context, documentType, documentID string) ([]*entity.OutboundLine, error)
}
