package entity

import "github.com/shopspring/decimal"

// BOM component roles used by the finished-goods transfer explosion.
const (
	ComponentRoleSFG1      = "SFG1"
	ComponentRoleSFG2      = "SFG2"
	ComponentRoleContainer = "CONTAINER"
	ComponentRolePolybag   = "POLYBAG"
	ComponentRoleWrap      = "WRAP"
)

// BOMComponent is one component of a finished good's recipe: consume
// QtyPerUnit of ComponentCode per box produced. UnitWeight (grams) feeds the
// derived tonnage figure only.
type BOMComponent struct {
	FGCode        string
	ComponentCode string
	Role          string
	QtyPerUnit    decimal.Decimal
	UnitWeight    decimal.Decimal
}
