package services

import (
	"context"
	"errors"
	"testing"

	"water-distribution-service/internal/adapters/region"
	"water-distribution-service/internal/adapters/repositories"
	"water-distribution-service/internal/domain"
)

type dispatchFixture struct {
	orders   *Orders
	dispatch *Dispatch
	products *repositories.MemoryProductRepository
	vehicles *repositories.MemoryVehicleRepository
	routes   *repositories.MemoryRoutePlanRepository
}

func newDispatchFixture(t *testing.T) *dispatchFixture {
	t.Helper()

	products := repositories.NewMemoryProductRepository([]domain.Product{gallon(1000)})
	stores := repositories.NewMemoryStoreRepository([]domain.Store{
		{ID: "store-kp", Name: "Toko Berkah", Address: "Jl. Wates KM 12", Region: "Kulon Progo", Location: domain.Coordinate{Lat: -7.84, Lng: 110.22}},
		{ID: "store-kp-2", Name: "Tirta Makmur", Address: "Jl. Sentolo", Region: "Kulon Progo", Location: domain.Coordinate{Lat: -7.85, Lng: 110.23}},
		{ID: "store-sl", Name: "Warung Segar", Address: "Jl. Kaliurang KM 7", Region: "Sleman", Location: domain.Coordinate{Lat: -7.74, Lng: 110.39}},
	})
	users := repositories.NewMemoryUserRepository([]domain.User{
		{ID: "driver-1", Name: "Agus", Role: domain.RoleDriver},
	})
	vehicles := repositories.NewMemoryVehicleRepository([]domain.Vehicle{
		{ID: "veh-1", PlateNumber: "AB 8123 KP", Capacity: 50, Status: domain.VehicleIdle, Region: "Kulon Progo"},
	})
	orderRepo := repositories.NewMemoryOrderRepository()
	routes := repositories.NewMemoryRoutePlanRepository()

	classifier := region.NewStaticClassifier(map[string]domain.Coordinate{
		"Kulon Progo": {Lat: -7.8664, Lng: 110.1486},
		"Sleman":      {Lat: -7.7162, Lng: 110.3529},
	})

	inv := NewInventory(products)
	orders := NewOrders(orderRepo, products, stores, vehicles, inv)
	depot := domain.Coordinate{Lat: -7.8664161, Lng: 110.1486773}
	dispatch := NewDispatch(orders, stores, users, vehicles, routes, classifier, &SavingsSequencer{}, depot)

	return &dispatchFixture{orders: orders, dispatch: dispatch, products: products, vehicles: vehicles, routes: routes}
}

func (f *dispatchFixture) createOrder(t *testing.T, storeID string, qty int, date string) domain.Order {
	t.Helper()
	order, err := f.orders.Create(context.Background(), CreateOrderInput{
		StoreID:             storeID,
		Items:               []ItemInput{{ProductID: "gallon", Quantity: qty}},
		DesiredDeliveryDate: date,
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	return order
}

func TestCreateRoutePlanRoutesRegionOrders(t *testing.T) {
	f := newDispatchFixture(t)
	a := f.createOrder(t, "store-kp", 20, "2026-09-01")
	b := f.createOrder(t, "store-kp-2", 25, "2026-09-01")

	summary, err := f.dispatch.CreateRoutePlan(context.Background(), "2026-09-01", "veh-1", "driver-1")
	if err != nil {
		t.Fatalf("create route plan: %v", err)
	}
	if summary.Routed != 2 || summary.Oversize != 0 || summary.Unrouted != 0 {
		t.Fatalf("summary = %+v", summary)
	}
	if len(summary.Routes) != 1 {
		t.Fatalf("expected 1 trip, got %d", len(summary.Routes))
	}
	plan := summary.Routes[0]
	if plan.VehicleID != "veh-1" || plan.DriverID != "driver-1" || plan.Region != "Kulon Progo" {
		t.Fatalf("plan = %+v", plan)
	}
	if len(plan.Stops) != 2 {
		t.Fatalf("expected 2 stops, got %d", len(plan.Stops))
	}
	for _, st := range plan.Stops {
		if st.Status != domain.StopPending {
			t.Fatalf("stop %s status = %s", st.OrderID, st.Status)
		}
		if st.Address == "" || st.StoreName == "" {
			t.Fatalf("stop %s missing store detail", st.OrderID)
		}
	}

	for _, id := range []string{a.ID, b.ID} {
		o, err := f.orders.Get(context.Background(), id)
		if err != nil {
			t.Fatalf("get order: %v", err)
		}
		if o.Status != domain.OrderRouted || o.AssignedVehicleID != "veh-1" {
			t.Fatalf("order %s = %s/%s, want Routed/veh-1", id, o.Status, o.AssignedVehicleID)
		}
	}
}

func TestCreateRoutePlanSplitsTripsOnCapacity(t *testing.T) {
	f := newDispatchFixture(t)
	f.createOrder(t, "store-kp", 30, "2026-09-01")
	f.createOrder(t, "store-kp-2", 30, "2026-09-01")

	summary, err := f.dispatch.CreateRoutePlan(context.Background(), "2026-09-01", "veh-1", "driver-1")
	if err != nil {
		t.Fatalf("create route plan: %v", err)
	}
	if len(summary.Routes) != 2 {
		t.Fatalf("expected 2 trips for 60 units on a 50-unit vehicle, got %d", len(summary.Routes))
	}
	if summary.Routed != 2 {
		t.Fatalf("routed = %d, want 2", summary.Routed)
	}
}

func TestCreateRoutePlanSkipsOversizeOrders(t *testing.T) {
	f := newDispatchFixture(t)
	big := f.createOrder(t, "store-kp", 60, "2026-09-01")
	f.createOrder(t, "store-kp-2", 10, "2026-09-01")

	summary, err := f.dispatch.CreateRoutePlan(context.Background(), "2026-09-01", "veh-1", "driver-1")
	if err != nil {
		t.Fatalf("create route plan: %v", err)
	}
	if summary.Oversize != 1 || summary.Routed != 1 {
		t.Fatalf("summary = %+v", summary)
	}

	o, _ := f.orders.Get(context.Background(), big.ID)
	if o.Status != domain.OrderPending {
		t.Fatalf("oversize order status = %s, want Pending", o.Status)
	}
}

func TestCreateRoutePlanEligibilityFilters(t *testing.T) {
	f := newDispatchFixture(t)

	// An unassigned order outside the vehicle's region and an order for
	// another day are both invisible to this run.
	f.createOrder(t, "store-sl", 10, "2026-09-01")
	f.createOrder(t, "store-kp", 10, "2026-09-02")

	_, err := f.dispatch.CreateRoutePlan(context.Background(), "2026-09-01", "veh-1", "driver-1")
	if !errors.Is(err, ErrNoEligibleOrders) {
		t.Fatalf("err = %v, want ErrNoEligibleOrders", err)
	}
}

func TestCreateRoutePlanIncludesPinnedOrderOutsideRegion(t *testing.T) {
	f := newDispatchFixture(t)
	out := f.createOrder(t, "store-sl", 10, "2026-09-01")
	if _, err := f.orders.Reassign(context.Background(), out.ID, "veh-1"); err != nil {
		t.Fatalf("reassign: %v", err)
	}

	summary, err := f.dispatch.CreateRoutePlan(context.Background(), "2026-09-01", "veh-1", "driver-1")
	if err != nil {
		t.Fatalf("create route plan: %v", err)
	}
	if summary.Routed != 1 {
		t.Fatalf("routed = %d, want 1 (pinned order crosses regions)", summary.Routed)
	}
}

func TestCreateRoutePlanUnknownVehicleAndDriver(t *testing.T) {
	f := newDispatchFixture(t)
	f.createOrder(t, "store-kp", 10, "2026-09-01")

	if _, err := f.dispatch.CreateRoutePlan(context.Background(), "2026-09-01", "veh-nope", "driver-1"); !errors.Is(err, ErrVehicleNotFound) {
		t.Fatalf("err = %v, want ErrVehicleNotFound", err)
	}
	if _, err := f.dispatch.CreateRoutePlan(context.Background(), "2026-09-01", "veh-1", "driver-nope"); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestDispatchVehicleRequiresRoutedOrders(t *testing.T) {
	f := newDispatchFixture(t)
	// A pending order alone is not enough; nothing has been routed yet.
	f.createOrder(t, "store-kp", 20, "2026-09-01")

	if err := f.dispatch.DispatchVehicle(context.Background(), "veh-1"); !errors.Is(err, ErrNoRoutedOrders) {
		t.Fatalf("err = %v, want ErrNoRoutedOrders", err)
	}
	v, _ := f.vehicles.GetVehicle("veh-1")
	if v.Status != domain.VehicleIdle {
		t.Fatalf("vehicle status = %s, want Idle (nothing to deliver)", v.Status)
	}
}

func TestDispatchVehicleMovesRoutedOrdersOut(t *testing.T) {
	f := newDispatchFixture(t)
	order := f.createOrder(t, "store-kp", 20, "2026-09-01")

	if _, err := f.dispatch.CreateRoutePlan(context.Background(), "2026-09-01", "veh-1", "driver-1"); err != nil {
		t.Fatalf("create route plan: %v", err)
	}
	if err := f.dispatch.DispatchVehicle(context.Background(), "veh-1"); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	v, _ := f.vehicles.GetVehicle("veh-1")
	if v.Status != domain.VehicleDelivering {
		t.Fatalf("vehicle status = %s, want Delivering", v.Status)
	}
	o, _ := f.orders.Get(context.Background(), order.ID)
	if o.Status != domain.OrderDelivering {
		t.Fatalf("order status = %s, want Delivering", o.Status)
	}

	// A vehicle already on the road cannot be dispatched again.
	if err := f.dispatch.DispatchVehicle(context.Background(), "veh-1"); !errors.Is(err, ErrVehicleNotIdle) {
		t.Fatalf("err = %v, want ErrVehicleNotIdle", err)
	}
}
