package services

import (
	"fmt"
	"sort"

	"water-distribution-service/internal/domain"
	"water-distribution-service/internal/ports"
)

// DefaultMaxSavingsNodes bounds the O(n^2) savings enumeration.
const DefaultMaxSavingsNodes = 512

// SavingsSequencer partitions demand nodes into capacity-bounded trips
// using the Clarke-Wright savings heuristic.
//
// The heuristic minimizes depot round trips at each step; it does not
// attempt global route optimization (e.g., exact VRP solvers). The design
// prioritizes determinism and simplicity over optimality.
type SavingsSequencer struct {
	// MaxNodes caps the eligible node count. Zero means DefaultMaxSavingsNodes.
	MaxNodes int
}

var _ ports.StopSequencer = (*SavingsSequencer)(nil)

type saving struct {
	i, j  int
	value float64
}

// SequenceTrips returns a partition of the nodes into ordered visiting
// sequences, each with total demand <= capacity.
//
// Given identical node order the output is reproducible: the savings list
// is sorted with a stable sort and ties keep enumeration order.
func (s *SavingsSequencer) SequenceTrips(
	nodes []ports.DemandNode,
	depot domain.Coordinate,
	capacity float64,
) ([]ports.TripPlan, error) {
	if len(nodes) == 0 {
		return []ports.TripPlan{}, nil
	}

	maxNodes := s.MaxNodes
	if maxNodes == 0 {
		maxNodes = DefaultMaxSavingsNodes
	}
	if len(nodes) > maxNodes {
		return nil, fmt.Errorf("sequence trips: %d nodes exceed limit %d: %w", len(nodes), maxNodes, ErrTooManyNodes)
	}

	seen := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("sequence trips: node with empty id: %w", ErrValidation)
		}
		if _, dup := seen[n.ID]; dup {
			return nil, fmt.Errorf("sequence trips: duplicate node id %q: %w", n.ID, ErrValidation)
		}
		seen[n.ID] = struct{}{}

		if n.Demand < 0 {
			return nil, fmt.Errorf("sequence trips: node %q has negative demand: %w", n.ID, ErrValidation)
		}
		if n.Demand > capacity {
			return nil, fmt.Errorf("sequence trips: node %q demand %.2f exceeds capacity %.2f: %w",
				n.ID, n.Demand, capacity, ErrNodeOversize)
		}
	}

	// Distances from the depot to every node, then savings for every
	// unordered pair: saving(i,j) = d(depot,i) + d(depot,j) - d(i,j).
	depotDist := make([]float64, len(nodes))
	for i, n := range nodes {
		depotDist[i] = domain.Haversine(depot, n.Location)
	}

	savings := make([]saving, 0, len(nodes)*(len(nodes)-1)/2)
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			dij := domain.Haversine(nodes[i].Location, nodes[j].Location)
			savings = append(savings, saving{i: i, j: j, value: depotDist[i] + depotDist[j] - dij})
		}
	}
	// Stable sort keeps enumeration order for equal savings (determinism).
	sort.SliceStable(savings, func(a, b int) bool {
		return savings[a].value > savings[b].value
	})

	// One singleton trip per node. tripOf tracks each node's current trip
	// so merge candidates are found without scanning all trips.
	trips := make([][]int, len(nodes))
	loads := make([]float64, len(nodes))
	tripOf := make([]int, len(nodes))
	for i := range nodes {
		trips[i] = []int{i}
		loads[i] = nodes[i].Demand
		tripOf[i] = i
	}

	for _, sv := range savings {
		ti, tj := tripOf[sv.i], tripOf[sv.j]
		if ti == tj {
			continue
		}
		if loads[ti]+loads[tj] > capacity {
			continue
		}

		merged, ok := spliceAtEndpoints(trips[ti], trips[tj], sv.i, sv.j)
		if !ok {
			// Neither node sits at a mergeable endpoint of its trip.
			continue
		}

		trips[ti] = merged
		loads[ti] += loads[tj]
		for _, n := range trips[tj] {
			tripOf[n] = ti
		}
		trips[tj] = nil
	}

	out := make([]ports.TripPlan, 0, len(nodes))
	for t, seq := range trips {
		if seq == nil {
			continue
		}
		ids := make([]string, len(seq))
		for k, n := range seq {
			ids[k] = nodes[n].ID
		}
		out = append(out, ports.TripPlan{NodeIDs: ids, Load: loads[t]})
	}
	return out, nil
}

// spliceAtEndpoints concatenates two trips so that nodes i and j become
// adjacent, reversing either sequence as needed. An interior node cannot
// be spliced; the merge only succeeds when both nodes are endpoints.
func spliceAtEndpoints(a, b []int, i, j int) ([]int, bool) {
	iAtStart := a[0] == i
	iAtEnd := a[len(a)-1] == i
	jAtStart := b[0] == j
	jAtEnd := b[len(b)-1] == j

	switch {
	case iAtEnd && jAtStart:
		return concat(a, b), true
	case iAtStart && jAtEnd:
		return concat(b, a), true
	case iAtEnd && jAtEnd:
		return concat(a, reversed(b)), true
	case iAtStart && jAtStart:
		return concat(reversed(a), b), true
	}
	return nil, false
}

func concat(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

func reversed(s []int) []int {
	out := make([]int, len(s))
	for k, v := range s {
		out[len(s)-1-k] = v
	}
	return out
}
