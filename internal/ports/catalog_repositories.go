package ports

import "water-distribution-service/internal/domain"

// Port: a boundary for reading and mutating product stock records.
// The inventory ledger is the single writer of stock fields.
type ProductRepository interface {
	GetProduct(id string) (domain.Product, error)
	ListProducts() ([]domain.Product, error)
	SaveProduct(p domain.Product) error
}

// Port: a boundary for store (customer location) records.
type StoreRepository interface {
	GetStore(id string) (domain.Store, error)
	ListStores() ([]domain.Store, error)
	SaveStore(s domain.Store) error
	DeleteStore(id string) error
}

// Port: read-only access to system users (drivers, salespeople).
type UserRepository interface {
	GetUser(id string) (domain.User, error)
	ListUsers() ([]domain.User, error)
}
