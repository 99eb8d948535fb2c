package services

import (
	"context"
	"errors"
	"testing"

	"water-distribution-service/internal/adapters/proofstore"
	"water-distribution-service/internal/adapters/repositories"
	"water-distribution-service/internal/domain"
)

type visitsFixture struct {
	visits *Visits
	proofs *proofstore.MemoryProofStore
}

func newVisitsFixture(t *testing.T) *visitsFixture {
	t.Helper()

	// Three stores north of the depot along the same meridian, nearest first.
	stores := repositories.NewMemoryStoreRepository([]domain.Store{
		{ID: "store-near", Name: "Toko Dekat", Address: "Jl. Pertama", Location: domain.Coordinate{Lat: -7.80, Lng: 110.1486}},
		{ID: "store-mid", Name: "Toko Tengah", Address: "Jl. Kedua", Location: domain.Coordinate{Lat: -7.75, Lng: 110.1486}},
		{ID: "store-far", Name: "Toko Jauh", Address: "Jl. Ketiga", Location: domain.Coordinate{Lat: -7.70, Lng: 110.1486}},
	})
	proofs := proofstore.NewMemoryProofStore()
	depot := domain.Coordinate{Lat: -7.8664161, Lng: 110.1486773}
	visits := NewVisits(
		repositories.NewMemoryVisitRepository(),
		repositories.NewMemoryVisitRouteRepository(),
		stores,
		proofs,
		&SavingsSequencer{},
		depot,
	)
	return &visitsFixture{visits: visits, proofs: proofs}
}

func (f *visitsFixture) schedule(t *testing.T, storeID, salesPersonID, date string) domain.Visit {
	t.Helper()
	v, err := f.visits.Schedule(context.Background(), storeID, salesPersonID, date, "restock check")
	if err != nil {
		t.Fatalf("schedule visit: %v", err)
	}
	return v
}

func TestScheduleVisit(t *testing.T) {
	f := newVisitsFixture(t)

	v := f.schedule(t, "store-near", "sales-1", "2026-09-01")
	if v.Status != domain.VisitUpcoming {
		t.Fatalf("status = %s, want Upcoming", v.Status)
	}
	if v.ID == "" {
		t.Fatal("expected generated visit id")
	}

	if _, err := f.visits.Schedule(context.Background(), "store-nope", "sales-1", "2026-09-01", ""); !errors.Is(err, ErrUnknownStore) {
		t.Fatalf("err = %v, want ErrUnknownStore", err)
	}
}

func TestPlanVisitRouteSequencesNearestFirst(t *testing.T) {
	f := newVisitsFixture(t)
	near := f.schedule(t, "store-near", "sales-1", "2026-09-01")
	mid := f.schedule(t, "store-mid", "sales-1", "2026-09-01")
	far := f.schedule(t, "store-far", "sales-1", "2026-09-01")

	plan, err := f.visits.PlanVisitRoute(context.Background(), "sales-1", "2026-09-01")
	if err != nil {
		t.Fatalf("plan visit route: %v", err)
	}
	if plan.SalesPersonID != "sales-1" || plan.Date != "2026-09-01" {
		t.Fatalf("plan = %+v", plan)
	}
	if len(plan.Stops) != 3 {
		t.Fatalf("expected 3 stops, got %d", len(plan.Stops))
	}
	want := []string{near.ID, mid.ID, far.ID}
	for i, stop := range plan.Stops {
		if stop.VisitID != want[i] {
			t.Fatalf("stop %d = %s, want %s", i, stop.VisitID, want[i])
		}
	}
	if plan.Stops[0].StoreName != "Toko Dekat" || plan.Stops[0].Address != "Jl. Pertama" {
		t.Fatalf("stop detail = %+v", plan.Stops[0])
	}
}

func TestPlanVisitRouteFiltersByPersonDateAndStatus(t *testing.T) {
	f := newVisitsFixture(t)
	f.schedule(t, "store-near", "sales-2", "2026-09-01")
	f.schedule(t, "store-mid", "sales-1", "2026-09-02")
	done := f.schedule(t, "store-far", "sales-1", "2026-09-01")
	if _, err := f.visits.Resolve(context.Background(), done.ID, domain.VisitSkipped, nil); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if _, err := f.visits.PlanVisitRoute(context.Background(), "sales-1", "2026-09-01"); !errors.Is(err, ErrNoEligibleOrders) {
		t.Fatalf("err = %v, want ErrNoEligibleOrders", err)
	}
}

func TestResolveVisitStoresProof(t *testing.T) {
	f := newVisitsFixture(t)
	v := f.schedule(t, "store-near", "sales-1", "2026-09-01")

	resolved, err := f.visits.Resolve(context.Background(), v.ID, domain.VisitCompleted, []byte("photo.jpg"))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Status != domain.VisitCompleted {
		t.Fatalf("status = %s, want Completed", resolved.Status)
	}
	if resolved.ProofRef == "" {
		t.Fatal("expected proof reference")
	}
	if blob, err := f.proofs.Get(context.Background(), resolved.ProofRef); err != nil || string(blob) != "photo.jpg" {
		t.Fatalf("proof blob = %q, err = %v", blob, err)
	}
}

func TestResolveVisitIdempotent(t *testing.T) {
	f := newVisitsFixture(t)
	v := f.schedule(t, "store-near", "sales-1", "2026-09-01")

	if _, err := f.visits.Resolve(context.Background(), v.ID, domain.VisitCompleted, nil); err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	resolved, err := f.visits.Resolve(context.Background(), v.ID, domain.VisitSkipped, nil)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if resolved.Status != domain.VisitCompleted {
		t.Fatalf("retry flipped status to %s", resolved.Status)
	}
}

func TestResolveVisitValidation(t *testing.T) {
	f := newVisitsFixture(t)
	v := f.schedule(t, "store-near", "sales-1", "2026-09-01")

	if _, err := f.visits.Resolve(context.Background(), v.ID, domain.VisitUpcoming, nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if _, err := f.visits.Resolve(context.Background(), "visit-nope", domain.VisitCompleted, nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}
