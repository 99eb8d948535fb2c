package ports

import "water-distribution-service/internal/domain"

// DemandNode is one location to visit, with the vehicle capacity it consumes.
type DemandNode struct {
	ID       string
	Location domain.Coordinate
	Demand   float64
}

// TripPlan is an ordered visiting sequence whose total demand fits one trip.
type TripPlan struct {
	NodeIDs []string
	Load    float64
}

// Contract for partitioning demand nodes into capacity-bounded trips.
// The default implementation is the deterministic savings heuristic;
// alternative sequencers can be swapped in at composition time.
type StopSequencer interface {
	SequenceTrips(nodes []DemandNode, depot domain.Coordinate, capacity float64) ([]TripPlan, error)
}
