package dto

type CreateRoutePlanRequest struct {
	Date      string `json:"date"`
	VehicleID string `json:"vehicle_id"`
	DriverID  string `json:"driver_id"`
}

type RouteStopResponse struct {
	OrderID   string `json:"order_id"`
	StoreID   string `json:"store_id"`
	StoreName string `json:"store_name"`
	Address   string `json:"address"`
	Status    string `json:"status"`
	ProofRef  string `json:"proof_ref,omitempty"`
}

type RoutePlanResponse struct {
	RouteID   string              `json:"route_id"`
	DriverID  string              `json:"driver_id"`
	VehicleID string              `json:"vehicle_id"`
	Date      string              `json:"date"`
	Region    string              `json:"region"`
	Stops     []RouteStopResponse `json:"stops"`
}

type CreateRoutePlanResponse struct {
	Routes   []RoutePlanResponse `json:"routes"`
	Routed   int                 `json:"routed"`
	Oversize int                 `json:"oversize"`
	Unrouted int                 `json:"unrouted"`
	Message  string              `json:"message"`
}

type ListRoutePlansResponse struct {
	Routes []RoutePlanResponse `json:"routes"`
}

// Proof is base64 in transit (encoding/json's []byte convention) and is
// stored verbatim.
type ResolveStopRequest struct {
	Outcome string `json:"outcome"`
	Proof   []byte `json:"proof,omitempty"`
}
