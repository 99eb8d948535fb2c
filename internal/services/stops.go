package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"water-distribution-service/internal/domain"
	"water-distribution-service/internal/ports"
)

// Stops processes per-stop delivery outcomes. It is the only writer of
// stop terminal status and of the Delivered/Failed order transitions.
type Stops struct {
	mu sync.Mutex

	routes   ports.RoutePlanRepository
	orders   *Orders
	dispatch *Dispatch
	proofs   ports.ProofStore
}

func NewStops(
	routes ports.RoutePlanRepository,
	orders *Orders,
	dispatch *Dispatch,
	proofs ports.ProofStore,
) *Stops {
	return &Stops{
		routes:   routes,
		orders:   orders,
		dispatch: dispatch,
		proofs:   proofs,
	}
}

// Resolve records a driver's outcome for one stop: Completed (with proof)
// or Failed. It transitions the order accordingly and, once no pending
// stop remains across any of the vehicle's trips for the day, frees the
// vehicle.
//
// Resolving an already-terminal stop is a no-op returning the current
// plan, so a retried call cannot double-move stock or re-fire completion.
func (s *Stops) Resolve(
	ctx context.Context,
	routeID, orderID string,
	outcome domain.StopStatus,
	proof []byte,
) (domain.RoutePlan, error) {
	if outcome != domain.StopCompleted && outcome != domain.StopFailed {
		return domain.RoutePlan{}, fmt.Errorf("resolve stop: outcome %q: %w", outcome, ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	plan, err := s.routes.GetRoutePlan(routeID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return domain.RoutePlan{}, fmt.Errorf("resolve stop: route %q: %w", routeID, ErrRouteNotFound)
		}
		return domain.RoutePlan{}, fmt.Errorf("resolve stop: route %q: %w", routeID, err)
	}

	idx := -1
	for i, st := range plan.Stops {
		if st.OrderID == orderID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return domain.RoutePlan{}, fmt.Errorf("resolve stop: order %q on route %q: %w", orderID, routeID, ErrStopNotFound)
	}

	if plan.Stops[idx].Status != domain.StopPending {
		// Idempotent retry: the stop was already resolved.
		return plan, nil
	}

	if outcome == domain.StopCompleted && len(proof) > 0 {
		key := fmt.Sprintf("proof:delivery:%s:%s", routeID, orderID)
		if err := s.proofs.Put(ctx, key, proof); err != nil {
			return domain.RoutePlan{}, fmt.Errorf("resolve stop: store proof: %w", err)
		}
		plan.Stops[idx].ProofRef = key
	}
	plan.Stops[idx].Status = outcome

	orderStatus := domain.OrderDelivered
	if outcome == domain.StopFailed {
		orderStatus = domain.OrderFailed
	}
	if err := s.orders.SetStatus(ctx, orderID, orderStatus); err != nil {
		// A retry after a failed plan save arrives with the order already
		// terminal while the stop is still Pending; accept it when the
		// order sits in the requested outcome, so the stop record and the
		// vehicle can still catch up.
		order, gerr := s.orders.Get(ctx, orderID)
		if gerr != nil || !errors.Is(err, ErrInvalidStateTransition) || order.Status != orderStatus {
			return domain.RoutePlan{}, fmt.Errorf("resolve stop: %w", err)
		}
	}

	if err := s.routes.SaveRoutePlan(plan); err != nil {
		return domain.RoutePlan{}, fmt.Errorf("resolve stop: save route: %w", err)
	}

	done, err := s.vehicleDayDone(plan.VehicleID, plan.Date)
	if err != nil {
		return domain.RoutePlan{}, fmt.Errorf("resolve stop: %w", err)
	}
	if done {
		if err := s.dispatch.CompleteVehicleRoute(ctx, plan.VehicleID); err != nil {
			return domain.RoutePlan{}, fmt.Errorf("resolve stop: %w", err)
		}
	}
	return plan, nil
}

// vehicleDayDone reports whether no pending stop remains among all trips
// sharing this vehicle and date. This narrow predicate realizes the
// multi-trip-per-vehicle-per-day semantics without background polling.
func (s *Stops) vehicleDayDone(vehicleID, date string) (bool, error) {
	all, err := s.routes.ListRoutePlans()
	if err != nil {
		return false, fmt.Errorf("list routes: %w", err)
	}
	for _, p := range all {
		if p.VehicleID != vehicleID || p.Date != date {
			continue
		}
		if p.PendingStops() > 0 {
			return false, nil
		}
	}
	return true, nil
}
