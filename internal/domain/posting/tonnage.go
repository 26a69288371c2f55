package posting

import "github.com/shopspring/decimal"

var tonDivisor = decimal.NewFromInt(1_000_000)

// Tonnage computes the informational production weight of an FGN line in
// metric tons:
//
//	(sfg1Qty*sfg1Weight + sfg2Qty*sfg2Weight) * qtyBoxes / 1_000_000
//
// Per-unit quantities and weights come from the BOM; weights are in grams.
// The figure is for reporting only and never becomes a movement.
func Tonnage(sfg1Qty, sfg1Weight, sfg2Qty, sfg2Weight, qtyBoxes decimal.Decimal) decimal.Decimal {
	perBox := sfg1Qty.Mul(sfg1Weight).Add(sfg2Qty.Mul(sfg2Weight))
	return TonnageFromWeight(perBox, qtyBoxes)
}

// TonnageFromWeight converts an already-summed per-box SFG weight (grams)
// into tons for the given box count.
func TonnageFromWeight(perBoxWeight, qtyBoxes decimal.Decimal) decimal.Decimal {
	return perBoxWeight.Mul(qtyBoxes).Div(tonDivisor)
}
