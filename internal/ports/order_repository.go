package ports

import "water-distribution-service/internal/domain"

// Port: a boundary for order records. The order ledger is the single
// writer of order status and item composition.
type OrderRepository interface {
	GetOrder(id string) (domain.Order, error)
	ListOrders() ([]domain.Order, error)
	SaveOrder(o domain.Order) error
	DeleteOrder(id string) error
}
