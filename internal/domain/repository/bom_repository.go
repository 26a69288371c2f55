package repository

import (
	"context"

	"github.com/omplast/stores-api/internal/domain/entity"
)

// BOMRepository resolves the component explosion of a finished good.
// Reference data; changes never rewrite past movements.
type BOMRepository interface {
	ComponentsFor(ctx context.Context, fgCode string) ([]*entity.BOMComponent, error)
}
