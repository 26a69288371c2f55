package entity

// Item types of the stock catalog.
const (
	ItemTypeRM    = "RM"    // raw material
	ItemTypePM    = "PM"    // packing material
	ItemTypeSPARE = "SPARE" // machine spares
	ItemTypeFG    = "FG"    // finished good
	ItemTypeLOCAL = "LOCAL" // locally purchased consumables
)

// StockItem is one entry of the item master. The ledger only reads it;
// creation and maintenance happen in the back-office screens.
type StockItem struct {
	ItemCode    string
	ItemType    string
	SubCategory string
	UOM         string
}

// ValidItemType reports whether t is one of the known item types.
func ValidItemType(t string) bool {
	switch t {
	case ItemTypeRM, ItemTypePM, ItemTypeSPARE, ItemTypeFG, ItemTypeLOCAL:
		return true
	}
	return false
}
