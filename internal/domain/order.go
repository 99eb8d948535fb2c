package domain

// DateFormat is the day-granularity format used for order and route dates.
const DateFormat = "2006-01-02"

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderRouted     OrderStatus = "Routed"
	OrderDelivering OrderStatus = "Delivering"
	OrderDelivered  OrderStatus = "Delivered"
	OrderFailed     OrderStatus = "Failed"
)

// Terminal reports whether no further transition can leave this status.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderFailed
}

// OrderItem is one product line on an order.
//
// UnitPrice is the catalog price captured when the line was created and is
// immutable afterwards. SpecialPrice, when set, overrides it for totals.
type OrderItem struct {
	ProductID    string
	Quantity     int
	UnitPrice    float64
	SpecialPrice *float64
}

// EffectivePrice returns the per-unit price used for the order total.
func (i OrderItem) EffectivePrice() float64 {
	if i.SpecialPrice != nil {
		return *i.SpecialPrice
	}
	return i.UnitPrice
}

// Order is a store's request for product units on a given day.
// While an order is non-terminal its item quantities are reserved against
// product stock; Delivered consumes the reservation, Failed releases it.
type Order struct {
	ID          string
	StoreID     string
	StoreName   string
	Items       []OrderItem
	TotalAmount float64
	Status      OrderStatus
	OrderDate   string
	// DesiredDeliveryDate selects the day this order becomes eligible for
	// trip generation. Empty means not scheduled yet.
	DesiredDeliveryDate string
	Location            Coordinate
	// AssignedVehicleID pins the order to one vehicle. Empty means the
	// order may be picked up by any vehicle covering its store's region.
	AssignedVehicleID string
	OrderedBy         Actor
}

// Total computes the order amount from its items.
func Total(items []OrderItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.EffectivePrice() * float64(it.Quantity)
	}
	return sum
}
