package services

import (
	"context"
	"errors"
	"testing"

	"water-distribution-service/internal/adapters/repositories"
	"water-distribution-service/internal/domain"
)

type orderFixture struct {
	orders   *Orders
	inv      *Inventory
	products *repositories.MemoryProductRepository
	repo     *repositories.MemoryOrderRepository
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	products := repositories.NewMemoryProductRepository([]domain.Product{
		gallon(100),
		carton(100),
	})
	stores := repositories.NewMemoryStoreRepository([]domain.Store{
		{ID: "store-1", Name: "Toko Berkah", Address: "Jl. Wates KM 12", Region: "Kulon Progo", Location: domain.Coordinate{Lat: -7.84, Lng: 110.22}},
	})
	vehicles := repositories.NewMemoryVehicleRepository([]domain.Vehicle{
		{ID: "veh-1", PlateNumber: "AB 8123 KP", Capacity: 50, Status: domain.VehicleIdle, Region: "Kulon Progo"},
	})
	repo := repositories.NewMemoryOrderRepository()
	inv := NewInventory(products)
	return &orderFixture{
		orders:   NewOrders(repo, products, stores, vehicles, inv),
		inv:      inv,
		products: products,
		repo:     repo,
	}
}

func (f *orderFixture) create(t *testing.T, qty int) domain.Order {
	t.Helper()
	order, err := f.orders.Create(context.Background(), CreateOrderInput{
		StoreID:             "store-1",
		Items:               []ItemInput{{ProductID: "gallon", Quantity: qty}},
		OrderedBy:           domain.Actor{ID: "user-sales-1", Name: "Siti", Role: "Sales"},
		DesiredDeliveryDate: "2026-09-01",
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	return order
}

func (f *orderFixture) reserved(t *testing.T, productID string) int {
	t.Helper()
	p, err := f.products.GetProduct(productID)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	return p.ReservedStock
}

func TestCreateOrderReservesStock(t *testing.T) {
	f := newOrderFixture(t)

	order := f.create(t, 25)

	if order.Status != domain.OrderPending {
		t.Fatalf("status = %s, want %s", order.Status, domain.OrderPending)
	}
	if order.AssignedVehicleID != "" {
		t.Fatalf("new order should be unassigned, got %q", order.AssignedVehicleID)
	}
	if order.StoreName != "Toko Berkah" {
		t.Fatalf("store name = %q", order.StoreName)
	}
	if order.TotalAmount != 25*6000 {
		t.Fatalf("total = %.0f, want %d", order.TotalAmount, 25*6000)
	}
	if got := f.reserved(t, "gallon"); got != 25 {
		t.Fatalf("reserved = %d, want 25", got)
	}
}

func TestCreateOrderSpecialPriceOverridesTotal(t *testing.T) {
	f := newOrderFixture(t)
	special := 5500.0

	order, err := f.orders.Create(context.Background(), CreateOrderInput{
		StoreID:             "store-1",
		Items:               []ItemInput{{ProductID: "gallon", Quantity: 10, SpecialPrice: &special}},
		DesiredDeliveryDate: "2026-09-01",
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.TotalAmount != 55000 {
		t.Fatalf("total = %.0f, want 55000", order.TotalAmount)
	}
	// The catalog price is still captured for audit.
	if order.Items[0].UnitPrice != 6000 {
		t.Fatalf("unit price = %.0f, want 6000", order.Items[0].UnitPrice)
	}
}

func TestCreateOrderUnknownStoreLeavesStockUntouched(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.orders.Create(context.Background(), CreateOrderInput{
		StoreID: "nope",
		Items:   []ItemInput{{ProductID: "gallon", Quantity: 10}},
	})
	if !errors.Is(err, ErrUnknownStore) {
		t.Fatalf("err = %v, want ErrUnknownStore", err)
	}
	if got := f.reserved(t, "gallon"); got != 0 {
		t.Fatalf("reserved = %d, want 0", got)
	}
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.orders.Create(context.Background(), CreateOrderInput{
		StoreID: "store-1",
		Items:   []ItemInput{{ProductID: "gallon", Quantity: 101}},
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}
}

func TestCreateOrderRejectsBadItems(t *testing.T) {
	f := newOrderFixture(t)

	if _, err := f.orders.Create(context.Background(), CreateOrderInput{StoreID: "store-1"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty items: err = %v, want ErrValidation", err)
	}

	_, err := f.orders.Create(context.Background(), CreateOrderInput{
		StoreID: "store-1",
		Items:   []ItemInput{{ProductID: "gallon", Quantity: 0}},
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("zero quantity: err = %v, want ErrValidation", err)
	}
}

func TestUpdateOrderAdjustsReservationDelta(t *testing.T) {
	f := newOrderFixture(t)
	order := f.create(t, 10)

	_, err := f.orders.Update(context.Background(), order.ID, UpdateOrderInput{
		Items: []ItemInput{{ProductID: "gallon", Quantity: 4}, {ProductID: "carton", Quantity: 6}},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := f.reserved(t, "gallon"); got != 4 {
		t.Fatalf("gallon reserved = %d, want 4", got)
	}
	if got := f.reserved(t, "carton"); got != 6 {
		t.Fatalf("carton reserved = %d, want 6", got)
	}
}

func TestUpdateOrderRejectedAfterDispatch(t *testing.T) {
	f := newOrderFixture(t)
	order := f.create(t, 10)

	mustSetStatus(t, f.orders, order.ID, domain.OrderRouted, domain.OrderDelivering)

	_, err := f.orders.Update(context.Background(), order.ID, UpdateOrderInput{
		Items: []ItemInput{{ProductID: "gallon", Quantity: 1}},
	})
	if !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("err = %v, want ErrInvalidStateTransition", err)
	}
}

func TestDeleteOrderReleasesReservation(t *testing.T) {
	f := newOrderFixture(t)
	order := f.create(t, 10)

	if err := f.orders.Delete(context.Background(), order.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := f.reserved(t, "gallon"); got != 0 {
		t.Fatalf("reserved = %d, want 0", got)
	}
	if _, err := f.orders.Get(context.Background(), order.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("err = %v, want ErrOrderNotFound", err)
	}
}

func TestDeleteOrderOnlyWhilePending(t *testing.T) {
	f := newOrderFixture(t)
	order := f.create(t, 10)

	mustSetStatus(t, f.orders, order.ID, domain.OrderRouted)

	if err := f.orders.Delete(context.Background(), order.ID); !errors.Is(err, ErrInvalidStateForDeletion) {
		t.Fatalf("err = %v, want ErrInvalidStateForDeletion", err)
	}
	if got := f.reserved(t, "gallon"); got != 10 {
		t.Fatalf("reserved = %d, want 10", got)
	}
}

func TestReassignWarnsOnCapacityOverrun(t *testing.T) {
	f := newOrderFixture(t)
	order := f.create(t, 60) // vehicle capacity is 50

	res, err := f.orders.Reassign(context.Background(), order.ID, "veh-1")
	if err != nil {
		t.Fatalf("reassign: %v", err)
	}
	if res.Warning == "" {
		t.Fatal("expected a capacity warning")
	}
	if res.Order.AssignedVehicleID != "veh-1" {
		t.Fatalf("assignment should stick despite the warning, got %q", res.Order.AssignedVehicleID)
	}
}

func TestReassignClearsVehicle(t *testing.T) {
	f := newOrderFixture(t)
	order := f.create(t, 10)

	if _, err := f.orders.Reassign(context.Background(), order.ID, "veh-1"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	res, err := f.orders.Reassign(context.Background(), order.ID, "")
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if res.Order.AssignedVehicleID != "" {
		t.Fatalf("vehicle should be cleared, got %q", res.Order.AssignedVehicleID)
	}
	if res.Warning != "" {
		t.Fatalf("clearing must not warn, got %q", res.Warning)
	}
}

func TestReassignUnknownVehicle(t *testing.T) {
	f := newOrderFixture(t)
	order := f.create(t, 10)

	if _, err := f.orders.Reassign(context.Background(), order.ID, "veh-nope"); !errors.Is(err, ErrVehicleNotFound) {
		t.Fatalf("err = %v, want ErrVehicleNotFound", err)
	}
}

func TestSetStatusDeliveredCommitsStock(t *testing.T) {
	f := newOrderFixture(t)
	order := f.create(t, 10)

	mustSetStatus(t, f.orders, order.ID, domain.OrderRouted, domain.OrderDelivering, domain.OrderDelivered)

	p, _ := f.products.GetProduct("gallon")
	if p.Stock != 90 {
		t.Fatalf("stock = %d, want 90", p.Stock)
	}
	if p.ReservedStock != 0 {
		t.Fatalf("reserved = %d, want 0", p.ReservedStock)
	}
}

func TestSetStatusFailedReleasesStock(t *testing.T) {
	f := newOrderFixture(t)
	order := f.create(t, 10)

	mustSetStatus(t, f.orders, order.ID, domain.OrderFailed)

	p, _ := f.products.GetProduct("gallon")
	if p.Stock != 100 {
		t.Fatalf("stock = %d, want 100", p.Stock)
	}
	if p.ReservedStock != 0 {
		t.Fatalf("reserved = %d, want 0", p.ReservedStock)
	}
}

func TestSetStatusRejectsSkippedStates(t *testing.T) {
	f := newOrderFixture(t)
	order := f.create(t, 10)

	err := f.orders.SetStatus(context.Background(), order.ID, domain.OrderDelivered)
	if !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("err = %v, want ErrInvalidStateTransition", err)
	}
}

func TestMarkRoutedPinsVehicleAndRejectsStale(t *testing.T) {
	f := newOrderFixture(t)
	order := f.create(t, 10)

	if err := f.orders.MarkRouted(context.Background(), order.ID, "veh-1"); err != nil {
		t.Fatalf("mark routed: %v", err)
	}
	got, err := f.orders.Get(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != domain.OrderRouted || got.AssignedVehicleID != "veh-1" {
		t.Fatalf("order = %s/%s, want Routed/veh-1", got.Status, got.AssignedVehicleID)
	}

	// A second routing attempt must fail: the order left Pending.
	if err := f.orders.MarkRouted(context.Background(), order.ID, "veh-1"); !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("err = %v, want ErrInvalidStateTransition", err)
	}
}

func mustSetStatus(t *testing.T, orders *Orders, orderID string, statuses ...domain.OrderStatus) {
	t.Helper()
	for _, st := range statuses {
		if err := orders.SetStatus(context.Background(), orderID, st); err != nil {
			t.Fatalf("set status %s: %v", st, err)
		}
	}
}
