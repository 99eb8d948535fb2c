package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"

	"water-distribution-service/internal/domain"
	"water-distribution-service/internal/ports"
)

// Visits plans and resolves sales visits: the zero-demand variant of
// delivery routing. With no demand and unbounded capacity the savings
// builder degenerates into a single sequenced trip covering the day.
type Visits struct {
	mu sync.Mutex

	visits      ports.VisitRepository
	visitRoutes ports.VisitRouteRepository
	stores      ports.StoreRepository
	proofs      ports.ProofStore
	sequencer   ports.StopSequencer
	depot       domain.Coordinate
}

func NewVisits(
	visits ports.VisitRepository,
	visitRoutes ports.VisitRouteRepository,
	stores ports.StoreRepository,
	proofs ports.ProofStore,
	sequencer ports.StopSequencer,
	depot domain.Coordinate,
) *Visits {
	return &Visits{
		visits:      visits,
		visitRoutes: visitRoutes,
		stores:      stores,
		proofs:      proofs,
		sequencer:   sequencer,
		depot:       depot,
	}
}

// Schedule registers an upcoming visit.
func (s *Visits) Schedule(ctx context.Context, storeID, salesPersonID, date, purpose string) (domain.Visit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.stores.GetStore(storeID); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return domain.Visit{}, fmt.Errorf("schedule visit: store %q: %w", storeID, ErrUnknownStore)
		}
		return domain.Visit{}, fmt.Errorf("schedule visit: store %q: %w", storeID, err)
	}

	v := domain.Visit{
		ID:            uuid.NewString(),
		StoreID:       storeID,
		SalesPersonID: salesPersonID,
		VisitDate:     date,
		Purpose:       purpose,
		Status:        domain.VisitUpcoming,
	}
	if err := s.visits.SaveVisit(v); err != nil {
		return domain.Visit{}, fmt.Errorf("schedule visit: save: %w", err)
	}
	return v, nil
}

// PlanVisitRoute sequences one salesperson's upcoming visits for a day
// into a single route approximating a travelling-salesperson path.
func (s *Visits) PlanVisitRoute(ctx context.Context, salesPersonID, date string) (domain.VisitRoutePlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.visits.ListVisits()
	if err != nil {
		return domain.VisitRoutePlan{}, fmt.Errorf("plan visit route: list visits: %w", err)
	}

	nodes := make([]ports.DemandNode, 0, len(all))
	byID := make(map[string]domain.Visit, len(all))
	for _, v := range all {
		if v.SalesPersonID != salesPersonID || v.VisitDate != date || v.Status != domain.VisitUpcoming {
			continue
		}
		store, err := s.stores.GetStore(v.StoreID)
		if err != nil {
			return domain.VisitRoutePlan{}, fmt.Errorf("plan visit route: store %q: %w", v.StoreID, err)
		}
		byID[v.ID] = v
		nodes = append(nodes, ports.DemandNode{ID: v.ID, Location: store.Location})
	}
	if len(nodes) == 0 {
		return domain.VisitRoutePlan{}, fmt.Errorf("plan visit route: salesperson %s date %s: %w", salesPersonID, date, ErrNoEligibleOrders)
	}

	trips, err := s.sequencer.SequenceTrips(nodes, s.depot, math.Inf(1))
	if err != nil {
		return domain.VisitRoutePlan{}, fmt.Errorf("plan visit route: %w", err)
	}
	if len(trips) == 0 || len(trips[0].NodeIDs) == 0 {
		return domain.VisitRoutePlan{}, fmt.Errorf("plan visit route: no sequence produced: %w", ErrRouteGenerationFailure)
	}

	// Unbounded capacity and zero demand merge everything into one trip.
	sequence := trips[0].NodeIDs

	stops := make([]domain.VisitStop, 0, len(sequence))
	for _, visitID := range sequence {
		v := byID[visitID]
		store, err := s.stores.GetStore(v.StoreID)
		if err != nil {
			return domain.VisitRoutePlan{}, fmt.Errorf("plan visit route: store %q: %w", v.StoreID, err)
		}
		stops = append(stops, domain.VisitStop{
			VisitID:   v.ID,
			StoreID:   v.StoreID,
			StoreName: store.Name,
			Address:   store.Address,
			Purpose:   v.Purpose,
		})
	}

	plan := domain.VisitRoutePlan{
		ID:            uuid.NewString(),
		SalesPersonID: salesPersonID,
		Date:          date,
		Stops:         stops,
	}
	if err := s.visitRoutes.SaveVisitRoutePlan(plan); err != nil {
		return domain.VisitRoutePlan{}, fmt.Errorf("plan visit route: save: %w", err)
	}
	return plan, nil
}

// Resolve records a visit outcome, storing proof-of-visit when supplied.
func (s *Visits) Resolve(ctx context.Context, visitID string, status domain.VisitStatus, proof []byte) (domain.Visit, error) {
	if status != domain.VisitCompleted && status != domain.VisitSkipped {
		return domain.Visit{}, fmt.Errorf("resolve visit: status %q: %w", status, ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.visits.GetVisit(visitID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return domain.Visit{}, fmt.Errorf("resolve visit: %q: %w", visitID, ErrValidation)
		}
		return domain.Visit{}, fmt.Errorf("resolve visit: %q: %w", visitID, err)
	}
	if v.Status != domain.VisitUpcoming {
		return v, nil
	}

	if status == domain.VisitCompleted && len(proof) > 0 {
		key := fmt.Sprintf("proof:visit:%s", visitID)
		if err := s.proofs.Put(ctx, key, proof); err != nil {
			return domain.Visit{}, fmt.Errorf("resolve visit: store proof: %w", err)
		}
		v.ProofRef = key
	}
	v.Status = status
	if err := s.visits.SaveVisit(v); err != nil {
		return domain.Visit{}, fmt.Errorf("resolve visit: save: %w", err)
	}
	return v, nil
}
