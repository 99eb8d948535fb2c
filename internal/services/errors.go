package services

import "errors"

var (
	// ErrValidation indicates a malformed request or an unknown reference.
	ErrValidation = errors.New("services: validation failed")
	// ErrUnknownProduct indicates an order item references no catalog product.
	ErrUnknownProduct = errors.New("services: unknown product")
	// ErrUnknownStore indicates the order references no registered store.
	ErrUnknownStore = errors.New("services: unknown store")
	// ErrInsufficientStock indicates a reservation would exceed availability.
	ErrInsufficientStock = errors.New("services: insufficient stock")
	// ErrOrderNotFound indicates the order does not exist.
	ErrOrderNotFound = errors.New("services: order not found")
	// ErrInvalidStateForDeletion indicates only Pending orders may be deleted.
	ErrInvalidStateForDeletion = errors.New("services: order not deletable in current state")
	// ErrInvalidStateTransition indicates an illegal lifecycle move.
	ErrInvalidStateTransition = errors.New("services: invalid state transition")
	// ErrNoEligibleOrders indicates trip generation found nothing to route.
	ErrNoEligibleOrders = errors.New("services: no eligible orders")
	// ErrRouteGenerationFailure indicates the builder produced no trips
	// despite eligible nodes existing.
	ErrRouteGenerationFailure = errors.New("services: route generation failed")
	// ErrVehicleNotIdle indicates dispatch requires an idle vehicle.
	ErrVehicleNotIdle = errors.New("services: vehicle not idle")
	// ErrNoRoutedOrders indicates dispatch found no routed order for the
	// vehicle, so there would be no stops to resolve it back to idle.
	ErrNoRoutedOrders = errors.New("services: no routed orders for vehicle")
	// ErrVehicleNotFound indicates the vehicle does not exist.
	ErrVehicleNotFound = errors.New("services: vehicle not found")
	// ErrRouteNotFound indicates the route plan does not exist.
	ErrRouteNotFound = errors.New("services: route plan not found")
	// ErrStopNotFound indicates the route plan has no stop for the order.
	ErrStopNotFound = errors.New("services: stop not found")
	// ErrTooManyNodes bounds the quadratic savings enumeration.
	ErrTooManyNodes = errors.New("services: too many demand nodes")
	// ErrNodeOversize indicates a single node's demand exceeds trip capacity;
	// such nodes must be filtered out before sequencing.
	ErrNodeOversize = errors.New("services: node demand exceeds capacity")
	// ErrStoreHasActivity refuses store deletion while orders or visits
	// still reference the store.
	ErrStoreHasActivity = errors.New("services: store has related activity")
)
