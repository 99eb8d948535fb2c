package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"water-distribution-service/internal/domain"
	"water-distribution-service/internal/ports"
)

// Orders is the order ledger: the single writer of order records and the
// owner of the rule that reserved stock always matches the item quantities
// of non-terminal orders.
type Orders struct {
	mu sync.Mutex

	orders   ports.OrderRepository
	products ports.ProductRepository
	stores   ports.StoreRepository
	vehicles ports.VehicleRepository
	inv      *Inventory

	// now is swappable in tests.
	now func() time.Time
}

func NewOrders(
	orders ports.OrderRepository,
	products ports.ProductRepository,
	stores ports.StoreRepository,
	vehicles ports.VehicleRepository,
	inv *Inventory,
) *Orders {
	return &Orders{
		orders:   orders,
		products: products,
		stores:   stores,
		vehicles: vehicles,
		inv:      inv,
		now:      time.Now,
	}
}

// ItemInput is one requested order line.
type ItemInput struct {
	ProductID    string
	Quantity     int
	SpecialPrice *float64
}

type CreateOrderInput struct {
	StoreID             string
	Items               []ItemInput
	OrderedBy           domain.Actor
	DesiredDeliveryDate string
}

type UpdateOrderInput struct {
	Items []ItemInput
	// AssignedVehicleID, when non-nil, replaces the order's vehicle pointer
	// (empty string clears it).
	AssignedVehicleID   *string
	DesiredDeliveryDate *string
}

// OrderResult carries the updated order plus an optional non-fatal warning.
// A capacity overrun on manual vehicle assignment is deliberately a warning,
// never a rejection: the operator resolves it during trip generation.
type OrderResult struct {
	Order   domain.Order
	Warning string
}

// Create validates every item against availability, reserves all of them
// atomically, and stores the order as Pending and unassigned.
func (s *Orders) Create(ctx context.Context, in CreateOrderInput) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.buildItems(in.Items)
	if err != nil {
		return domain.Order{}, fmt.Errorf("create order: %w", err)
	}

	store, err := s.stores.GetStore(in.StoreID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return domain.Order{}, fmt.Errorf("create order: store %q: %w", in.StoreID, ErrUnknownStore)
		}
		return domain.Order{}, fmt.Errorf("create order: store %q: %w", in.StoreID, err)
	}

	if err := s.inv.Reserve(items); err != nil {
		return domain.Order{}, fmt.Errorf("create order: %w", err)
	}

	order := domain.Order{
		ID:                  uuid.NewString(),
		StoreID:             store.ID,
		StoreName:           store.Name,
		Items:               items,
		TotalAmount:         domain.Total(items),
		Status:              domain.OrderPending,
		OrderDate:           s.now().Format(domain.DateFormat),
		DesiredDeliveryDate: in.DesiredDeliveryDate,
		Location:            store.Location,
		OrderedBy:           in.OrderedBy,
	}

	if err := s.orders.SaveOrder(order); err != nil {
		// Roll the reservation back so a storage failure cannot leak stock.
		if rerr := s.inv.Release(items); rerr != nil {
			return domain.Order{}, fmt.Errorf("create order: save: %v (release failed: %w)", err, rerr)
		}
		return domain.Order{}, fmt.Errorf("create order: save: %w", err)
	}
	return order, nil
}

// Update edits an order that is still Pending or Routed. The reservation
// delta between old and new item sets is validated and applied atomically;
// a vehicle assignment triggers the soft capacity check.
func (s *Orders) Update(ctx context.Context, orderID string, in UpdateOrderInput) (OrderResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.getOrder(orderID)
	if err != nil {
		return OrderResult{}, fmt.Errorf("update order: %w", err)
	}
	if order.Status != domain.OrderPending && order.Status != domain.OrderRouted {
		return OrderResult{}, fmt.Errorf("update order: status %s: %w", order.Status, ErrInvalidStateTransition)
	}

	items, err := s.buildItems(in.Items)
	if err != nil {
		return OrderResult{}, fmt.Errorf("update order: %w", err)
	}

	var warning string
	if in.AssignedVehicleID != nil && *in.AssignedVehicleID != "" {
		warning, err = s.softCapacityCheck(*in.AssignedVehicleID, orderID, items)
		if err != nil {
			return OrderResult{}, fmt.Errorf("update order: %w", err)
		}
	}

	deltas := make(map[string]int)
	for _, it := range order.Items {
		deltas[it.ProductID] -= it.Quantity
	}
	for _, it := range items {
		deltas[it.ProductID] += it.Quantity
	}
	if err := s.inv.ApplyReservationDelta(deltas); err != nil {
		return OrderResult{}, fmt.Errorf("update order: %w", err)
	}

	order.Items = items
	order.TotalAmount = domain.Total(items)
	if in.AssignedVehicleID != nil {
		order.AssignedVehicleID = *in.AssignedVehicleID
	}
	if in.DesiredDeliveryDate != nil {
		order.DesiredDeliveryDate = *in.DesiredDeliveryDate
	}

	if err := s.orders.SaveOrder(order); err != nil {
		return OrderResult{}, fmt.Errorf("update order: save: %w", err)
	}
	return OrderResult{Order: order, Warning: warning}, nil
}

// Delete removes a Pending order and releases its full reservation.
func (s *Orders) Delete(ctx context.Context, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.getOrder(orderID)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if order.Status != domain.OrderPending {
		return fmt.Errorf("delete order: status %s: %w", order.Status, ErrInvalidStateForDeletion)
	}

	if err := s.inv.Release(order.Items); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if err := s.orders.DeleteOrder(orderID); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

// Reassign repoints an unrouted order's vehicle (empty id clears it) and
// performs the soft capacity check. Stock does not move.
func (s *Orders) Reassign(ctx context.Context, orderID, vehicleID string) (OrderResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.getOrder(orderID)
	if err != nil {
		return OrderResult{}, fmt.Errorf("reassign order: %w", err)
	}

	var warning string
	if vehicleID != "" {
		warning, err = s.softCapacityCheck(vehicleID, orderID, order.Items)
		if err != nil {
			return OrderResult{}, fmt.Errorf("reassign order: %w", err)
		}
	}

	order.AssignedVehicleID = vehicleID
	if err := s.orders.SaveOrder(order); err != nil {
		return OrderResult{}, fmt.Errorf("reassign order: save: %w", err)
	}
	return OrderResult{Order: order, Warning: warning}, nil
}

// SetStatus performs a guarded lifecycle transition. Delivered commits the
// order's stock; Failed releases the reservation. Either side effect fires
// at most once because terminal states accept no further transitions.
func (s *Orders) SetStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setStatusLocked(orderID, status)
}

// MarkRouted moves a Pending order to Routed and pins its vehicle.
// The dispatcher calls this at trip-commit time; an order edited or deleted
// since the eligibility snapshot fails here and is skipped as stale.
func (s *Orders) MarkRouted(ctx context.Context, orderID, vehicleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.getOrder(orderID)
	if err != nil {
		return fmt.Errorf("mark routed: %w", err)
	}
	if order.Status != domain.OrderPending {
		return fmt.Errorf("mark routed: status %s: %w", order.Status, ErrInvalidStateTransition)
	}

	order.Status = domain.OrderRouted
	order.AssignedVehicleID = vehicleID
	if err := s.orders.SaveOrder(order); err != nil {
		return fmt.Errorf("mark routed: save: %w", err)
	}
	return nil
}

func (s *Orders) Get(ctx context.Context, orderID string) (domain.Order, error) {
	return s.getOrder(orderID)
}

func (s *Orders) List(ctx context.Context) ([]domain.Order, error) {
	return s.orders.ListOrders()
}

// Demand returns the vehicle-capacity demand of an item set:
// sum of quantity times the product's capacity unit.
func (s *Orders) Demand(items []domain.OrderItem) (float64, error) {
	var demand float64
	for _, it := range items {
		p, err := s.products.GetProduct(it.ProductID)
		if err != nil {
			if errors.Is(err, ports.ErrNotFound) {
				return 0, fmt.Errorf("demand: product %q: %w", it.ProductID, ErrUnknownProduct)
			}
			return 0, fmt.Errorf("demand: product %q: %w", it.ProductID, err)
		}
		demand += float64(it.Quantity) * p.CapacityUnit
	}
	return demand, nil
}

func (s *Orders) setStatusLocked(orderID string, status domain.OrderStatus) error {
	order, err := s.getOrder(orderID)
	if err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	if !domain.CanTransition(order.Status, status) {
		return fmt.Errorf("set status: %s -> %s: %w", order.Status, status, ErrInvalidStateTransition)
	}

	switch status {
	case domain.OrderDelivered:
		if err := s.inv.Commit(order.Items); err != nil {
			return fmt.Errorf("set status: %w", err)
		}
	case domain.OrderFailed:
		if err := s.inv.Release(order.Items); err != nil {
			return fmt.Errorf("set status: %w", err)
		}
	}

	order.Status = status
	if err := s.orders.SaveOrder(order); err != nil {
		return fmt.Errorf("set status: save: %w", err)
	}
	return nil
}

func (s *Orders) getOrder(orderID string) (domain.Order, error) {
	order, err := s.orders.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return domain.Order{}, fmt.Errorf("order %q: %w", orderID, ErrOrderNotFound)
		}
		return domain.Order{}, fmt.Errorf("order %q: %w", orderID, err)
	}
	return order, nil
}

// buildItems validates requested lines and captures the catalog unit price.
func (s *Orders) buildItems(in []ItemInput) ([]domain.OrderItem, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("order needs at least one item: %w", ErrValidation)
	}
	items := make([]domain.OrderItem, 0, len(in))
	for _, it := range in {
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("product %q quantity %d: %w", it.ProductID, it.Quantity, ErrValidation)
		}
		p, err := s.products.GetProduct(it.ProductID)
		if err != nil {
			if errors.Is(err, ports.ErrNotFound) {
				return nil, fmt.Errorf("product %q: %w", it.ProductID, ErrUnknownProduct)
			}
			return nil, fmt.Errorf("product %q: %w", it.ProductID, err)
		}
		items = append(items, domain.OrderItem{
			ProductID:    p.ID,
			Quantity:     it.Quantity,
			UnitPrice:    p.Price,
			SpecialPrice: it.SpecialPrice,
		})
	}
	return items, nil
}

// softCapacityCheck compares the vehicle's committed load plus the new
// items against its capacity. Exceeding it yields a warning, not an error.
func (s *Orders) softCapacityCheck(vehicleID, excludeOrderID string, items []domain.OrderItem) (string, error) {
	vehicle, err := s.vehicles.GetVehicle(vehicleID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return "", fmt.Errorf("vehicle %q: %w", vehicleID, ErrVehicleNotFound)
		}
		return "", fmt.Errorf("vehicle %q: %w", vehicleID, err)
	}

	all, err := s.orders.ListOrders()
	if err != nil {
		return "", fmt.Errorf("list orders: %w", err)
	}

	var load float64
	for _, o := range all {
		if o.AssignedVehicleID != vehicleID || o.ID == excludeOrderID || o.Status.Terminal() {
			continue
		}
		d, err := s.Demand(o.Items)
		if err != nil {
			return "", err
		}
		load += d
	}

	demand, err := s.Demand(items)
	if err != nil {
		return "", err
	}

	if load+demand > vehicle.Capacity {
		return fmt.Sprintf(
			"vehicle %s capacity exceeded (%.1f of %.1f); an extra trip will be created during planning",
			vehicle.PlateNumber, load+demand, vehicle.Capacity,
		), nil
	}
	return "", nil
}
