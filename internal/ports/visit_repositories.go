package ports

import "water-distribution-service/internal/domain"

// Port: a boundary for scheduled sales visits.
type VisitRepository interface {
	GetVisit(id string) (domain.Visit, error)
	ListVisits() ([]domain.Visit, error)
	SaveVisit(v domain.Visit) error
}

// Port: a boundary for sequenced sales-visit routes.
type VisitRouteRepository interface {
	ListVisitRoutePlans() ([]domain.VisitRoutePlan, error)
	SaveVisitRoutePlan(p domain.VisitRoutePlan) error
}
