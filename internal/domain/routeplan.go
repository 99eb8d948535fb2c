package domain

// StopStatus is the terminal outcome of a single delivery stop.
type StopStatus string

const (
	StopPending   StopStatus = "Pending"
	StopCompleted StopStatus = "Completed"
	StopFailed    StopStatus = "Failed"
)

// RouteStop is one visit within a trip. Composition is fixed at planning
// time; only Status and ProofRef change afterwards.
type RouteStop struct {
	OrderID   string
	StoreID   string
	StoreName string
	Address   string
	Status    StopStatus
	// ProofRef points at the stored proof-of-delivery blob. Set only when
	// the stop completes successfully.
	ProofRef string
}

// RoutePlan is one trip: an ordered visiting sequence for a single vehicle
// and driver on a single day. A vehicle may own several plans per day.
type RoutePlan struct {
	ID        string
	DriverID  string
	VehicleID string
	Date      string
	Stops     []RouteStop
	Region    string
}

// PendingStops counts stops that have not reached a terminal status.
func (p RoutePlan) PendingStops() int {
	n := 0
	for _, s := range p.Stops {
		if s.Status == StopPending {
			n++
		}
	}
	return n
}
