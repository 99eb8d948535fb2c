package handlers

import (
	"net/http"

	"water-distribution-service/internal/api/dto"
	"water-distribution-service/internal/domain"
	"water-distribution-service/internal/services"
)

// OrderHandler exposes the order ledger operations.
type OrderHandler struct {
	Orders *services.Orders
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.ListOrdersResponse{Orders: make([]dto.OrderResponse, 0, len(orders))}
	for _, o := range orders {
		res.Orders = append(res.Orders, toOrderResponse(o, ""))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOrderRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.Orders.Create(r.Context(), services.CreateOrderInput{
		StoreID:             req.StoreID,
		Items:               toItemInputs(req.Items),
		OrderedBy:           domain.Actor{ID: req.OrderedBy.ID, Name: req.OrderedBy.Name, Role: req.OrderedBy.Role},
		DesiredDeliveryDate: req.DesiredDeliveryDate,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toOrderResponse(order, ""))
}

func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateOrderRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.Orders.Update(r.Context(), r.PathValue("id"), services.UpdateOrderInput{
		Items:               toItemInputs(req.Items),
		AssignedVehicleID:   req.AssignedVehicleID,
		DesiredDeliveryDate: req.DesiredDeliveryDate,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toOrderResponse(result.Order, result.Warning))
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Orders.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *OrderHandler) Reassign(w http.ResponseWriter, r *http.Request) {
	var req dto.ReassignOrderRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.Orders.Reassign(r.Context(), r.PathValue("id"), req.VehicleID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toOrderResponse(result.Order, result.Warning))
}

func toItemInputs(items []dto.OrderItemRequest) []services.ItemInput {
	out := make([]services.ItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, services.ItemInput{
			ProductID:    it.ProductID,
			Quantity:     it.Quantity,
			SpecialPrice: it.SpecialPrice,
		})
	}
	return out
}

func toOrderResponse(o domain.Order, warning string) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID:    it.ProductID,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			SpecialPrice: it.SpecialPrice,
		})
	}
	return dto.OrderResponse{
		OrderID:             o.ID,
		StoreID:             o.StoreID,
		StoreName:           o.StoreName,
		Items:               items,
		TotalAmount:         o.TotalAmount,
		Status:              string(o.Status),
		OrderDate:           o.OrderDate,
		DesiredDeliveryDate: o.DesiredDeliveryDate,
		AssignedVehicleID:   o.AssignedVehicleID,
		Warning:             warning,
	}
}
