package repositories

import (
	"sync"

	"water-distribution-service/internal/domain"
	"water-distribution-service/internal/ports"
)

// In-memory implementation of the catalog repository ports. Each
// repository serializes access behind its own RWMutex, which gives the
// single-writer-per-aggregate discipline the services rely on.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products map[string]domain.Product
	order    []string
}

func NewMemoryProductRepository(seed []domain.Product) *MemoryProductRepository {
	r := &MemoryProductRepository{products: make(map[string]domain.Product, len(seed))}
	for _, p := range seed {
		r.products[p.ID] = p
		r.order = append(r.order, p.ID)
	}
	return r
}

func (r *MemoryProductRepository) GetProduct(id string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return domain.Product{}, ports.ErrNotFound
	}
	return p, nil
}

func (r *MemoryProductRepository) ListProducts() ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Product, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.products[id])
	}
	return out, nil
}

func (r *MemoryProductRepository) SaveProduct(p domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		r.order = append(r.order, p.ID)
	}
	r.products[p.ID] = p
	return nil
}

type MemoryStoreRepository struct {
	mu     sync.RWMutex
	stores map[string]domain.Store
	order  []string
}

func NewMemoryStoreRepository(seed []domain.Store) *MemoryStoreRepository {
	r := &MemoryStoreRepository{stores: make(map[string]domain.Store, len(seed))}
	for _, s := range seed {
		r.stores[s.ID] = s
		r.order = append(r.order, s.ID)
	}
	return r
}

func (r *MemoryStoreRepository) GetStore(id string) (domain.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.stores[id]
	if !ok {
		return domain.Store{}, ports.ErrNotFound
	}
	return s, nil
}

func (r *MemoryStoreRepository) ListStores() ([]domain.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Store, 0, len(r.order))
	for _, id := range r.order {
		if s, ok := r.stores[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *MemoryStoreRepository) SaveStore(s domain.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stores[s.ID]; !ok {
		r.order = append(r.order, s.ID)
	}
	r.stores[s.ID] = s
	return nil
}

func (r *MemoryStoreRepository) DeleteStore(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stores[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.stores, id)
	return nil
}

type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
	order []string
}

func NewMemoryUserRepository(seed []domain.User) *MemoryUserRepository {
	r := &MemoryUserRepository{users: make(map[string]domain.User, len(seed))}
	for _, u := range seed {
		r.users[u.ID] = u
		r.order = append(r.order, u.ID)
	}
	return r
}

func (r *MemoryUserRepository) GetUser(id string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return domain.User{}, ports.ErrNotFound
	}
	return u, nil
}

func (r *MemoryUserRepository) ListUsers() ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.users[id])
	}
	return out, nil
}
