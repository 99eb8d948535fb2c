package repositories

import (
	"sync"

	"water-distribution-service/internal/domain"
	"water-distribution-service/internal/ports"
)

// In-memory order store. Orders are returned in insertion order so that
// eligibility snapshots and savings-pair enumeration stay deterministic.
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
	seq    []string
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{orders: make(map[string]domain.Order)}
}

func (r *MemoryOrderRepository) GetOrder(id string) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return domain.Order{}, ports.ErrNotFound
	}
	return cloneOrder(o), nil
}

func (r *MemoryOrderRepository) ListOrders() ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Order, 0, len(r.seq))
	for _, id := range r.seq {
		if o, ok := r.orders[id]; ok {
			out = append(out, cloneOrder(o))
		}
	}
	return out, nil
}

func (r *MemoryOrderRepository) SaveOrder(o domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[o.ID]; !ok {
		r.seq = append(r.seq, o.ID)
	}
	r.orders[o.ID] = cloneOrder(o)
	return nil
}

func (r *MemoryOrderRepository) DeleteOrder(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

// cloneOrder copies the item slice so callers cannot alias stored state.
func cloneOrder(o domain.Order) domain.Order {
	items := make([]domain.OrderItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}

type MemoryVehicleRepository struct {
	mu       sync.RWMutex
	vehicles map[string]domain.Vehicle
	seq      []string
}

func NewMemoryVehicleRepository(seed []domain.Vehicle) *MemoryVehicleRepository {
	r := &MemoryVehicleRepository{vehicles: make(map[string]domain.Vehicle, len(seed))}
	for _, v := range seed {
		r.vehicles[v.ID] = v
		r.seq = append(r.seq, v.ID)
	}
	return r
}

func (r *MemoryVehicleRepository) GetVehicle(id string) (domain.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.vehicles[id]
	if !ok {
		return domain.Vehicle{}, ports.ErrNotFound
	}
	return v, nil
}

func (r *MemoryVehicleRepository) ListVehicles() ([]domain.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Vehicle, 0, len(r.seq))
	for _, id := range r.seq {
		out = append(out, r.vehicles[id])
	}
	return out, nil
}

func (r *MemoryVehicleRepository) SaveVehicle(v domain.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vehicles[v.ID]; !ok {
		r.seq = append(r.seq, v.ID)
	}
	r.vehicles[v.ID] = v
	return nil
}

type MemoryRoutePlanRepository struct {
	mu    sync.RWMutex
	plans map[string]domain.RoutePlan
	seq   []string
}

func NewMemoryRoutePlanRepository() *MemoryRoutePlanRepository {
	return &MemoryRoutePlanRepository{plans: make(map[string]domain.RoutePlan)}
}

func (r *MemoryRoutePlanRepository) GetRoutePlan(id string) (domain.RoutePlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plans[id]
	if !ok {
		return domain.RoutePlan{}, ports.ErrNotFound
	}
	return clonePlan(p), nil
}

func (r *MemoryRoutePlanRepository) ListRoutePlans() ([]domain.RoutePlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.RoutePlan, 0, len(r.seq))
	for _, id := range r.seq {
		out = append(out, clonePlan(r.plans[id]))
	}
	return out, nil
}

func (r *MemoryRoutePlanRepository) SaveRoutePlan(p domain.RoutePlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plans[p.ID]; !ok {
		r.seq = append(r.seq, p.ID)
	}
	r.plans[p.ID] = clonePlan(p)
	return nil
}

func clonePlan(p domain.RoutePlan) domain.RoutePlan {
	stops := make([]domain.RouteStop, len(p.Stops))
	copy(stops, p.Stops)
	p.Stops = stops
	return p
}

type MemoryVisitRepository struct {
	mu     sync.RWMutex
	visits map[string]domain.Visit
	seq    []string
}

func NewMemoryVisitRepository() *MemoryVisitRepository {
	return &MemoryVisitRepository{visits: make(map[string]domain.Visit)}
}

func (r *MemoryVisitRepository) GetVisit(id string) (domain.Visit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.visits[id]
	if !ok {
		return domain.Visit{}, ports.ErrNotFound
	}
	return v, nil
}

func (r *MemoryVisitRepository) ListVisits() ([]domain.Visit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Visit, 0, len(r.seq))
	for _, id := range r.seq {
		out = append(out, r.visits[id])
	}
	return out, nil
}

func (r *MemoryVisitRepository) SaveVisit(v domain.Visit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.visits[v.ID]; !ok {
		r.seq = append(r.seq, v.ID)
	}
	r.visits[v.ID] = v
	return nil
}

type MemoryVisitRouteRepository struct {
	mu    sync.RWMutex
	plans []domain.VisitRoutePlan
}

func NewMemoryVisitRouteRepository() *MemoryVisitRouteRepository {
	return &MemoryVisitRouteRepository{}
}

func (r *MemoryVisitRouteRepository) ListVisitRoutePlans() ([]domain.VisitRoutePlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.VisitRoutePlan, len(r.plans))
	copy(out, r.plans)
	return out, nil
}

func (r *MemoryVisitRouteRepository) SaveVisitRoutePlan(p domain.VisitRoutePlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans = append(r.plans, p)
	return nil
}
