package domain

// Product is a finite-stock catalog item.
//
// Stock is the total number of physical units owned; ReservedStock is the
// portion allocated to non-terminal orders. Available units are always
// Stock - ReservedStock, and 0 <= ReservedStock <= Stock must hold.
type Product struct {
	ID    string
	SKU   string
	Name  string
	Price float64

	Stock         int
	ReservedStock int

	// CapacityUnit is how much vehicle capacity one unit of this product
	// occupies (e.g. gallons per crate).
	CapacityUnit float64
}

// Available returns the number of units not reserved by any order.
func (p Product) Available() int {
	return p.Stock - p.ReservedStock
}
