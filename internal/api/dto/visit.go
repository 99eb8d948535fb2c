package dto

type ScheduleVisitRequest struct {
	StoreID       string `json:"store_id"`
	SalesPersonID string `json:"sales_person_id"`
	VisitDate     string `json:"visit_date"`
	Purpose       string `json:"purpose"`
}

type PlanVisitRouteRequest struct {
	SalesPersonID string `json:"sales_person_id"`
	Date          string `json:"date"`
}

type ResolveVisitRequest struct {
	Status string `json:"status"`
	Proof  []byte `json:"proof,omitempty"`
}

type VisitStopResponse struct {
	VisitID   string `json:"visit_id"`
	StoreID   string `json:"store_id"`
	StoreName string `json:"store_name"`
	Address   string `json:"address"`
	Purpose   string `json:"purpose"`
}

type VisitRoutePlanResponse struct {
	RouteID       string              `json:"route_id"`
	SalesPersonID string              `json:"sales_person_id"`
	Date          string              `json:"date"`
	Stops         []VisitStopResponse `json:"stops"`
}

type VisitResponse struct {
	VisitID       string `json:"visit_id"`
	StoreID       string `json:"store_id"`
	SalesPersonID string `json:"sales_person_id"`
	VisitDate     string `json:"visit_date"`
	Purpose       string `json:"purpose"`
	Status        string `json:"status"`
	ProofRef      string `json:"proof_ref,omitempty"`
}
