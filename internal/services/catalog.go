package services

import (
	"context"
	"errors"
	"fmt"

	"water-distribution-service/internal/domain"
	"water-distribution-service/internal/ports"
)

// Catalog exposes read access to products, stores and users, plus the
// store-deletion guard.
type Catalog struct {
	products ports.ProductRepository
	stores   ports.StoreRepository
	users    ports.UserRepository
	orders   ports.OrderRepository
	visits   ports.VisitRepository
}

func NewCatalog(
	products ports.ProductRepository,
	stores ports.StoreRepository,
	users ports.UserRepository,
	orders ports.OrderRepository,
	visits ports.VisitRepository,
) *Catalog {
	return &Catalog{
		products: products,
		stores:   stores,
		users:    users,
		orders:   orders,
		visits:   visits,
	}
}

func (c *Catalog) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return c.products.ListProducts()
}

func (c *Catalog) ListStores(ctx context.Context) ([]domain.Store, error) {
	return c.stores.ListStores()
}

func (c *Catalog) ListUsers(ctx context.Context) ([]domain.User, error) {
	return c.users.ListUsers()
}

// DeleteStore removes a store unless orders or visits still reference it.
func (c *Catalog) DeleteStore(ctx context.Context, storeID string) error {
	if _, err := c.stores.GetStore(storeID); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return fmt.Errorf("delete store: %q: %w", storeID, ErrUnknownStore)
		}
		return fmt.Errorf("delete store: %q: %w", storeID, err)
	}

	orders, err := c.orders.ListOrders()
	if err != nil {
		return fmt.Errorf("delete store: list orders: %w", err)
	}
	for _, o := range orders {
		if o.StoreID == storeID {
			return fmt.Errorf("delete store: %q has orders: %w", storeID, ErrStoreHasActivity)
		}
	}

	visits, err := c.visits.ListVisits()
	if err != nil {
		return fmt.Errorf("delete store: list visits: %w", err)
	}
	for _, v := range visits {
		if v.StoreID == storeID {
			return fmt.Errorf("delete store: %q has visits: %w", storeID, ErrStoreHasActivity)
		}
	}

	if err := c.stores.DeleteStore(storeID); err != nil {
		return fmt.Errorf("delete store: %w", err)
	}
	return nil
}
