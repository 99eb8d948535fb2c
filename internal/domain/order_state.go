package domain

// transition defines a legal forward move in the order lifecycle.
type transition struct {
	From OrderStatus
	To   OrderStatus
}

// validTransitions is the authoritative order state machine.
// Only forward moves exist; Failed is reachable from any non-terminal state
// (the goods never left, so the reservation is released exactly once).
var validTransitions = []transition{
	{From: OrderPending, To: OrderRouted},
	{From: OrderRouted, To: OrderDelivering},
	{From: OrderDelivering, To: OrderDelivered},
	{From: OrderPending, To: OrderFailed},
	{From: OrderRouted, To: OrderFailed},
	{From: OrderDelivering, To: OrderFailed},
}

var transitionSet = func() map[transition]bool {
	m := make(map[transition]bool, len(validTransitions))
	for _, t := range validTransitions {
		m[t] = true
	}
	return m
}()

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to OrderStatus) bool {
	return transitionSet[transition{From: from, To: to}]
}

// NextStatuses returns all statuses reachable from the given one.
func NextStatuses(from OrderStatus) []OrderStatus {
	var out []OrderStatus
	for _, t := range validTransitions {
		if t.From == from {
			out = append(out, t.To)
		}
	}
	return out
}
