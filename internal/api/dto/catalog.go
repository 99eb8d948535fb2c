package dto

type ProductResponse struct {
	ProductID      string  `json:"product_id"`
	SKU            string  `json:"sku"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	Stock          int     `json:"stock"`
	ReservedStock  int     `json:"reserved_stock"`
	AvailableStock int     `json:"available_stock"`
	CapacityUnit   float64 `json:"capacity_unit"`
}

type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
}

type StoreResponse struct {
	StoreID   string  `json:"store_id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Region    string  `json:"region"`
	IsPartner bool    `json:"is_partner"`
}

type ListStoresResponse struct {
	Stores []StoreResponse `json:"stores"`
}

type UserResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Email  string `json:"email,omitempty"`
}

type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

type VehicleResponse struct {
	VehicleID   string  `json:"vehicle_id"`
	PlateNumber string  `json:"plate_number"`
	Model       string  `json:"model"`
	Capacity    float64 `json:"capacity"`
	Status      string  `json:"status"`
	Region      string  `json:"region"`
}

type ListVehiclesResponse struct {
	Vehicles []VehicleResponse `json:"vehicles"`
}
