package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance is the materialized on-hand quantity of an item at a location.
// Derived from the movement log; the posting transaction keeps both in step.
type Balance struct {
	ItemCode  string
	Location  string
	Quantity  decimal.Decimal
	UpdatedAt time.Time
}

// BalanceLine is a balance row joined with its item-master attributes, as
// returned by the bulk location queries.
type BalanceLine struct {
	ItemCode       string
	ItemType       string
	SubCategory    string
	UOM            string
	Location       string
	CurrentBalance decimal.Decimal
}
