package dto

type OrderItemRequest struct {
	ProductID    string   `json:"product_id"`
	Quantity     int      `json:"quantity"`
	SpecialPrice *float64 `json:"special_price"`
}

type ActorRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type CreateOrderRequest struct {
	StoreID             string             `json:"store_id"`
	Items               []OrderItemRequest `json:"items"`
	OrderedBy           ActorRequest       `json:"ordered_by"`
	DesiredDeliveryDate string             `json:"desired_delivery_date"`
}

type UpdateOrderRequest struct {
	Items               []OrderItemRequest `json:"items"`
	AssignedVehicleID   *string            `json:"assigned_vehicle_id"`
	DesiredDeliveryDate *string            `json:"desired_delivery_date"`
}

type ReassignOrderRequest struct {
	VehicleID string `json:"vehicle_id"`
}

type OrderItemResponse struct {
	ProductID    string   `json:"product_id"`
	Quantity     int      `json:"quantity"`
	UnitPrice    float64  `json:"unit_price"`
	SpecialPrice *float64 `json:"special_price,omitempty"`
}

type OrderResponse struct {
	OrderID             string              `json:"order_id"`
	StoreID             string              `json:"store_id"`
	StoreName           string              `json:"store_name"`
	Items               []OrderItemResponse `json:"items"`
	TotalAmount         float64             `json:"total_amount"`
	Status              string              `json:"status"`
	OrderDate           string              `json:"order_date"`
	DesiredDeliveryDate string              `json:"desired_delivery_date,omitempty"`
	AssignedVehicleID   string              `json:"assigned_vehicle_id,omitempty"`
	Warning             string              `json:"warning,omitempty"`
}

type ListOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
}
