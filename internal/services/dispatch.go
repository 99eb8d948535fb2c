package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"water-distribution-service/internal/domain"
	"water-distribution-service/internal/platform/obs"
	"water-distribution-service/internal/ports"
)

// Dispatch orchestrates trip generation and the vehicle lifecycle. It is
// the single writer of vehicle status and the only creator of route plans.
type Dispatch struct {
	mu sync.Mutex

	orders   *Orders
	stores   ports.StoreRepository
	users    ports.UserRepository
	vehicles ports.VehicleRepository
	routes   ports.RoutePlanRepository
	region   ports.RegionClassifier

	sequencer ports.StopSequencer
	depot     domain.Coordinate
}

func NewDispatch(
	orders *Orders,
	stores ports.StoreRepository,
	users ports.UserRepository,
	vehicles ports.VehicleRepository,
	routes ports.RoutePlanRepository,
	region ports.RegionClassifier,
	sequencer ports.StopSequencer,
	depot domain.Coordinate,
) *Dispatch {
	return &Dispatch{
		orders:    orders,
		stores:    stores,
		users:     users,
		vehicles:  vehicles,
		routes:    routes,
		region:    region,
		sequencer: sequencer,
		depot:     depot,
	}
}

// PlanSummary reports the outcome of one trip-generation run.
type PlanSummary struct {
	Routes []domain.RoutePlan
	// Routed counts orders placed on a trip; Oversize counts orders whose
	// single-order demand exceeds the vehicle capacity; Unrouted counts
	// eligible orders the heuristic could not place (including stale ones
	// skipped at commit time).
	Routed   int
	Oversize int
	Unrouted int
	Message  string
}

// CreateRoutePlan clusters the day's eligible orders for one vehicle into
// capacity-bounded trips and commits them.
//
// Eligible means: Pending, desired delivery date equals the requested date,
// and either already pinned to this vehicle or unassigned within the
// vehicle's region. The eligible set is snapshotted before sequencing; an
// order mutated concurrently fails its Routed transition at commit and is
// excluded as a partial success rather than failing the whole run.
func (d *Dispatch) CreateRoutePlan(ctx context.Context, date, vehicleID, driverID string) (summary PlanSummary, err error) {
	defer obs.Time(ctx, "create_route_plan")(&err)

	d.mu.Lock()
	defer d.mu.Unlock()

	vehicle, err := d.vehicles.GetVehicle(vehicleID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return PlanSummary{}, fmt.Errorf("create route plan: vehicle %q: %w", vehicleID, ErrVehicleNotFound)
		}
		return PlanSummary{}, fmt.Errorf("create route plan: vehicle %q: %w", vehicleID, err)
	}
	driver, err := d.users.GetUser(driverID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return PlanSummary{}, fmt.Errorf("create route plan: driver %q: %w", driverID, ErrValidation)
		}
		return PlanSummary{}, fmt.Errorf("create route plan: driver %q: %w", driverID, err)
	}

	eligible, err := d.eligibleOrders(ctx, date, vehicle)
	if err != nil {
		return PlanSummary{}, fmt.Errorf("create route plan: %w", err)
	}
	if len(eligible) == 0 {
		return PlanSummary{}, fmt.Errorf("create route plan: date %s vehicle %s: %w", date, vehicleID, ErrNoEligibleOrders)
	}

	// Orders too large for the vehicle are unroutable by definition and
	// must not reach the sequencer.
	nodes := make([]ports.DemandNode, 0, len(eligible))
	byID := make(map[string]domain.Order, len(eligible))
	oversize := 0
	for _, o := range eligible {
		demand, err := d.orders.Demand(o.Items)
		if err != nil {
			return PlanSummary{}, fmt.Errorf("create route plan: order %s: %w", o.ID, err)
		}
		if demand > vehicle.Capacity {
			oversize++
			continue
		}
		byID[o.ID] = o
		nodes = append(nodes, ports.DemandNode{ID: o.ID, Location: o.Location, Demand: demand})
	}

	trips, err := d.sequencer.SequenceTrips(nodes, d.depot, vehicle.Capacity)
	if err != nil {
		return PlanSummary{}, fmt.Errorf("create route plan: %w", err)
	}
	if len(trips) == 0 && len(nodes) > 0 {
		return PlanSummary{}, fmt.Errorf("create route plan: %d nodes produced no trips: %w", len(nodes), ErrRouteGenerationFailure)
	}

	routed := 0
	plans := make([]domain.RoutePlan, 0, len(trips))
	for _, trip := range trips {
		stops := make([]domain.RouteStop, 0, len(trip.NodeIDs))
		for _, orderID := range trip.NodeIDs {
			order := byID[orderID]

			// Commit point: skip orders that went stale since the snapshot.
			if err := d.orders.MarkRouted(ctx, orderID, vehicle.ID); err != nil {
				if errors.Is(err, ErrInvalidStateTransition) || errors.Is(err, ErrOrderNotFound) {
					continue
				}
				return PlanSummary{}, fmt.Errorf("create route plan: %w", err)
			}

			store, err := d.stores.GetStore(order.StoreID)
			if err != nil {
				return PlanSummary{}, fmt.Errorf("create route plan: store %q: %w", order.StoreID, err)
			}
			stops = append(stops, domain.RouteStop{
				OrderID:   order.ID,
				StoreID:   order.StoreID,
				StoreName: order.StoreName,
				Address:   store.Address,
				Status:    domain.StopPending,
			})
			routed++
		}
		if len(stops) == 0 {
			continue
		}

		plan := domain.RoutePlan{
			ID:        uuid.NewString(),
			DriverID:  driver.ID,
			VehicleID: vehicle.ID,
			Date:      date,
			Stops:     stops,
			Region:    vehicle.Region,
		}
		if err := d.routes.SaveRoutePlan(plan); err != nil {
			return PlanSummary{}, fmt.Errorf("create route plan: save plan: %w", err)
		}
		plans = append(plans, plan)
	}

	unrouted := len(nodes) - routed
	msg := fmt.Sprintf("created %d trip(s) for %s, scheduling %d order(s)", len(plans), driver.Name, routed)
	if oversize > 0 {
		msg += fmt.Sprintf("; %d order(s) skipped: demand exceeds vehicle capacity", oversize)
	}
	if unrouted > 0 {
		msg += fmt.Sprintf("; %d order(s) could not be routed", unrouted)
	}

	return PlanSummary{
		Routes:   plans,
		Routed:   routed,
		Oversize: oversize,
		Unrouted: unrouted,
		Message:  msg,
	}, nil
}

// DispatchVehicle sends an idle vehicle out: the vehicle becomes
// Delivering, and so does every Routed order assigned to it.
func (d *Dispatch) DispatchVehicle(ctx context.Context, vehicleID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	vehicle, err := d.vehicles.GetVehicle(vehicleID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return fmt.Errorf("dispatch vehicle: %q: %w", vehicleID, ErrVehicleNotFound)
		}
		return fmt.Errorf("dispatch vehicle: %q: %w", vehicleID, err)
	}
	if vehicle.Status != domain.VehicleIdle {
		return fmt.Errorf("dispatch vehicle: %q status %s: %w", vehicleID, vehicle.Status, ErrVehicleNotIdle)
	}

	all, err := d.orders.List(ctx)
	if err != nil {
		return fmt.Errorf("dispatch vehicle: list orders: %w", err)
	}
	routed := make([]string, 0, len(all))
	for _, o := range all {
		if o.AssignedVehicleID == vehicleID && o.Status == domain.OrderRouted {
			routed = append(routed, o.ID)
		}
	}
	// With nothing routed there is no stop whose resolution would ever
	// free the vehicle again, so the transition must not happen.
	if len(routed) == 0 {
		return fmt.Errorf("dispatch vehicle: %q: %w", vehicleID, ErrNoRoutedOrders)
	}

	vehicle.Status = domain.VehicleDelivering
	if err := d.vehicles.SaveVehicle(vehicle); err != nil {
		return fmt.Errorf("dispatch vehicle: save: %w", err)
	}

	for _, id := range routed {
		if err := d.orders.SetStatus(ctx, id, domain.OrderDelivering); err != nil {
			return fmt.Errorf("dispatch vehicle: order %s: %w", id, err)
		}
	}
	return nil
}

// CompleteVehicleRoute returns a vehicle to Idle. The stop completion
// handler invokes it once the last pending stop across all of the
// vehicle's trips for the day has been resolved; no polling happens here.
func (d *Dispatch) CompleteVehicleRoute(ctx context.Context, vehicleID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	vehicle, err := d.vehicles.GetVehicle(vehicleID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return fmt.Errorf("complete vehicle route: %q: %w", vehicleID, ErrVehicleNotFound)
		}
		return fmt.Errorf("complete vehicle route: %q: %w", vehicleID, err)
	}

	vehicle.Status = domain.VehicleIdle
	if err := d.vehicles.SaveVehicle(vehicle); err != nil {
		return fmt.Errorf("complete vehicle route: save: %w", err)
	}
	return nil
}

// eligibleOrders snapshots the orders this vehicle may serve on the date.
func (d *Dispatch) eligibleOrders(ctx context.Context, date string, vehicle domain.Vehicle) ([]domain.Order, error) {
	all, err := d.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	eligible := make([]domain.Order, 0, len(all))
	for _, o := range all {
		if o.Status != domain.OrderPending || o.DesiredDeliveryDate != date {
			continue
		}
		if o.AssignedVehicleID == vehicle.ID {
			eligible = append(eligible, o)
			continue
		}
		if o.AssignedVehicleID != "" {
			continue
		}
		if d.orderRegion(o) == vehicle.Region {
			eligible = append(eligible, o)
		}
	}
	return eligible, nil
}

// orderRegion resolves the region an unassigned order belongs to: the
// store's configured region, or the classifier's label for its location.
func (d *Dispatch) orderRegion(o domain.Order) string {
	store, err := d.stores.GetStore(o.StoreID)
	if err == nil && store.Region != "" {
		return store.Region
	}
	return d.region.ClassifyRegion(o.Location)
}
