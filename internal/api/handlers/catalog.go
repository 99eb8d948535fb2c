package handlers

import (
	"net/http"

	"water-distribution-service/internal/api/dto"
	"water-distribution-service/internal/services"
)

// CatalogHandler exposes read-only product and store endpoints.
type CatalogHandler struct {
	Catalog *services.Catalog
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Catalog.ListProducts(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.ListProductsResponse{Products: make([]dto.ProductResponse, 0, len(products))}
	for _, p := range products {
		res.Products = append(res.Products, dto.ProductResponse{
			ProductID:      p.ID,
			SKU:            p.SKU,
			Name:           p.Name,
			Price:          p.Price,
			Stock:          p.Stock,
			ReservedStock:  p.ReservedStock,
			AvailableStock: p.Available(),
			CapacityUnit:   p.CapacityUnit,
		})
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *CatalogHandler) ListStores(w http.ResponseWriter, r *http.Request) {
	stores, err := h.Catalog.ListStores(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.ListStoresResponse{Stores: make([]dto.StoreResponse, 0, len(stores))}
	for _, s := range stores {
		res.Stores = append(res.Stores, dto.StoreResponse{
			StoreID:   s.ID,
			Name:      s.Name,
			Address:   s.Address,
			Lat:       s.Location.Lat,
			Lng:       s.Location.Lng,
			Region:    s.Region,
			IsPartner: s.IsPartner,
		})
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *CatalogHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Catalog.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.ListUsersResponse{Users: make([]dto.UserResponse, 0, len(users))}
	for _, u := range users {
		res.Users = append(res.Users, dto.UserResponse{
			UserID: u.ID,
			Name:   u.Name,
			Role:   string(u.Role),
			Email:  u.Email,
		})
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *CatalogHandler) DeleteStore(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.DeleteStore(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
