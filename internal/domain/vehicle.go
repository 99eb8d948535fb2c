package domain

// VehicleStatus represents the availability of a fleet vehicle.
type VehicleStatus string

const (
	VehicleIdle        VehicleStatus = "Idle"
	VehicleDelivering  VehicleStatus = "Delivering"
	VehicleUnderRepair VehicleStatus = "Under Repair"
)

// Vehicle is a fleet unit with a finite carrying capacity.
//
// A vehicle may serve several trips on one day; it stays Delivering from
// dispatch until the last pending stop across all of that day's trips has
// been resolved.
type Vehicle struct {
	ID          string
	PlateNumber string
	Model       string
	// Capacity is expressed in the same units as order demand
	// (item quantity times the product's CapacityUnit).
	Capacity float64
	Status   VehicleStatus
	Region   string
}
