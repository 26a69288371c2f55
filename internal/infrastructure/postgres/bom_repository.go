package postgres

import (
	"context"
	"fmt"

	"github.com/omplast/stores-api/internal/domain/entity"
	"github.com/omplast/stores-api/internal/domain/repository"
)

var _ repository.BOMRepository = (*BOMRepo)(nil)

// BOMRepo finished-good component recipes over PostgreSQL.
type BOMRepo struct {
	q Querier
}

// NewBOMRepository builds the adapter. Pass pool or tx (Querier).
func NewBOMRepository(q Querier) *BOMRepo {
	return &BOMRepo{q: q}
}

// ComponentsFor returns the component explosion of one finished good, in
// stable role order.
func (r *BOMRepo) ComponentsFor(ctx context.Context, fgCode string) ([]*entity.BOMComponent, error) {
	query := `
		SELECT fg_code, component_code, role, qty_per_unit, unit_weight
		FROM bom_components WHERE fg_code = $1
		ORDER BY role, component_code`
	rows, err := r.q.Query(ctx, query, fgCode)
	if err != nil {
		return nil, fmt.Errorf("list bom components: %w", err)
	}
	defer rows.Close()
	var list []*entity.BOMComponent
	for rows.Next() {
		var c entity.BOMComponent
		if err := rows.Scan(&c.FGCode, &c.ComponentCode, &c.Role, &c.QtyPerUnit, &c.UnitWeight); err != nil {
			return nil, fmt.Errorf("scan bom component: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
