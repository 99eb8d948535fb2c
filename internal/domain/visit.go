package domain

// VisitStatus tracks a planned sales visit to a store.
type VisitStatus string

const (
	VisitUpcoming  VisitStatus = "Upcoming"
	VisitCompleted VisitStatus = "Completed"
	VisitSkipped   VisitStatus = "Skipped"
)

// Visit is a scheduled sales call, the zero-demand sibling of an order.
type Visit struct {
	ID            string
	StoreID       string
	SalesPersonID string
	VisitDate     string
	Purpose       string
	Status        VisitStatus
	ProofRef      string
}

// VisitStop is one store call within a sequenced visit route.
type VisitStop struct {
	VisitID   string
	StoreID   string
	StoreName string
	Address   string
	Purpose   string
}

// VisitRoutePlan is the sequenced set of visits for one salesperson and day.
// Visits carry no demand, so a single unbounded trip covers the whole day.
type VisitRoutePlan struct {
	ID            string
	SalesPersonID string
	Date          string
	Stops         []VisitStop
}
