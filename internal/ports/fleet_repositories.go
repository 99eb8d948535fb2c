package ports

import "water-distribution-service/internal/domain"

// Port: a boundary for vehicle records. The fleet dispatcher is the
// single writer of vehicle status.
type VehicleRepository interface {
	GetVehicle(id string) (domain.Vehicle, error)
	ListVehicles() ([]domain.Vehicle, error)
	SaveVehicle(v domain.Vehicle) error
}

// Port: a boundary for route plans (trips). Plans are created by the
// dispatcher; only stop terminal status and proof references mutate later.
type RoutePlanRepository interface {
	GetRoutePlan(id string) (domain.RoutePlan, error)
	ListRoutePlans() ([]domain.RoutePlan, error)
	SaveRoutePlan(p domain.RoutePlan) error
}
