package services

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"water-distribution-service/internal/domain"
	"water-distribution-service/internal/ports"
)

// Inventory is the stock ledger. It is the single writer of Stock and
// ReservedStock on products, and keeps 0 <= ReservedStock <= Stock.
//
// Multi-product operations lock every affected product in sorted id order,
// so concurrent orders touching overlapping product sets cannot deadlock,
// and either apply all their deltas or none of them.
type Inventory struct {
	products ports.ProductRepository

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewInventory(products ports.ProductRepository) *Inventory {
	return &Inventory{
		products: products,
		locks:    make(map[string]*sync.Mutex),
	}
}

// lockProducts acquires per-product locks in sorted id order and returns
// the unlock function. Duplicate ids are collapsed.
func (inv *Inventory) lockProducts(ids []string) func() {
	uniq := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		uniq[id] = struct{}{}
	}
	sorted := make([]string, 0, len(uniq))
	for id := range uniq {
		sorted = append(sorted, id)
	}
	sort.Strings(sorted)

	inv.mu.Lock()
	muxes := make([]*sync.Mutex, 0, len(sorted))
	for _, id := range sorted {
		m, ok := inv.locks[id]
		if !ok {
			m = &sync.Mutex{}
			inv.locks[id] = m
		}
		muxes = append(muxes, m)
	}
	inv.mu.Unlock()

	for _, m := range muxes {
		m.Lock()
	}
	return func() {
		for k := len(muxes) - 1; k >= 0; k-- {
			muxes[k].Unlock()
		}
	}
}

// Available returns the unreserved unit count for one product.
func (inv *Inventory) Available(productID string) (int, error) {
	p, err := inv.products.GetProduct(productID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return 0, fmt.Errorf("available: product %q: %w", productID, ErrUnknownProduct)
		}
		return 0, fmt.Errorf("available: product %q: %w", productID, err)
	}
	return p.Available(), nil
}

// Reserve increments ReservedStock for every item, or fails with
// ErrInsufficientStock leaving no item applied.
func (inv *Inventory) Reserve(items []domain.OrderItem) error {
	return inv.applyDeltas(reservationDeltas(items, +1))
}

// Release decrements ReservedStock for every item without consuming
// physical stock (the goods never left).
func (inv *Inventory) Release(items []domain.OrderItem) error {
	return inv.applyDeltas(reservationDeltas(items, -1))
}

// Commit consumes physical stock on final delivery: both Stock and
// ReservedStock drop by each item's quantity.
func (inv *Inventory) Commit(items []domain.OrderItem) error {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	unlock := inv.lockProducts(ids)
	defer unlock()

	products, err := inv.loadAll(ids)
	if err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	for _, it := range items {
		p := products[it.ProductID]
		p.Stock -= it.Quantity
		p.ReservedStock -= it.Quantity
		if p.ReservedStock < 0 {
			// Over-release means a reservation was lost somewhere; clamp to
			// keep the ledger invariant but make the violation visible.
			log.Printf("inventory invariant violation: product=%s reserved=%d after commit", p.ID, p.ReservedStock)
			p.ReservedStock = 0
		}
		products[it.ProductID] = p
	}

	return inv.saveAll(products, ids)
}

// ApplyReservationDelta adjusts reservations by a per-product signed delta,
// validating that every net increase fits available stock before any
// product is touched. Used when an order's item set is edited in place.
func (inv *Inventory) ApplyReservationDelta(deltas map[string]int) error {
	return inv.applyDeltas(deltas)
}

func (inv *Inventory) applyDeltas(deltas map[string]int) error {
	if len(deltas) == 0 {
		return nil
	}
	ids := make([]string, 0, len(deltas))
	for id := range deltas {
		ids = append(ids, id)
	}
	unlock := inv.lockProducts(ids)
	defer unlock()

	products, err := inv.loadAll(ids)
	if err != nil {
		return err
	}

	// Validate first: either every delta applies or none does.
	for id, d := range deltas {
		if d <= 0 {
			continue
		}
		p := products[id]
		if d > p.Available() {
			return fmt.Errorf("reserve %d x %s (available %d): %w", d, p.Name, p.Available(), ErrInsufficientStock)
		}
	}

	for id, d := range deltas {
		p := products[id]
		p.ReservedStock += d
		if p.ReservedStock < 0 {
			log.Printf("inventory invariant violation: product=%s reserved=%d after release", p.ID, p.ReservedStock)
			p.ReservedStock = 0
		}
		products[id] = p
	}

	return inv.saveAll(products, ids)
}

func (inv *Inventory) loadAll(ids []string) (map[string]domain.Product, error) {
	out := make(map[string]domain.Product, len(ids))
	for _, id := range ids {
		if _, ok := out[id]; ok {
			continue
		}
		p, err := inv.products.GetProduct(id)
		if err != nil {
			if errors.Is(err, ports.ErrNotFound) {
				return nil, fmt.Errorf("product %q: %w", id, ErrUnknownProduct)
			}
			return nil, fmt.Errorf("product %q: %w", id, err)
		}
		out[id] = p
	}
	return out, nil
}

func (inv *Inventory) saveAll(products map[string]domain.Product, ids []string) error {
	saved := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := saved[id]; ok {
			continue
		}
		saved[id] = struct{}{}
		if err := inv.products.SaveProduct(products[id]); err != nil {
			return fmt.Errorf("save product %q: %w", id, err)
		}
	}
	return nil
}

// reservationDeltas folds items into per-product signed quantity deltas.
func reservationDeltas(items []domain.OrderItem, sign int) map[string]int {
	deltas := make(map[string]int, len(items))
	for _, it := range items {
		deltas[it.ProductID] += sign * it.Quantity
	}
	return deltas
}
