package handlers

import (
	"net/http"
	"strings"

	"water-distribution-service/internal/api/dto"
	"water-distribution-service/internal/domain"
	"water-distribution-service/internal/ports"
	"water-distribution-service/internal/services"
)

// RouteHandler exposes trip generation and stop resolution.
type RouteHandler struct {
	Dispatch *services.Dispatch
	Stops    *services.Stops
	Repo     ports.RoutePlanRepository
}

func (h *RouteHandler) List(w http.ResponseWriter, r *http.Request) {
	plans, err := h.Repo.ListRoutePlans()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.ListRoutePlansResponse{Routes: make([]dto.RoutePlanResponse, 0, len(plans))}
	for _, p := range plans {
		res.Routes = append(res.Routes, toRoutePlanResponse(p))
	}
	writeJSON(w, r, http.StatusOK, res)
}

// Create generates capacity-bounded trips for one vehicle, driver and day.
func (h *RouteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRoutePlanRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Date) == "" || strings.TrimSpace(req.VehicleID) == "" || strings.TrimSpace(req.DriverID) == "" {
		writeError(w, r, http.StatusBadRequest, "date, vehicle_id and driver_id are required")
		return
	}

	summary, err := h.Dispatch.CreateRoutePlan(r.Context(), req.Date, req.VehicleID, req.DriverID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.CreateRoutePlanResponse{
		Routes:   make([]dto.RoutePlanResponse, 0, len(summary.Routes)),
		Routed:   summary.Routed,
		Oversize: summary.Oversize,
		Unrouted: summary.Unrouted,
		Message:  summary.Message,
	}
	for _, p := range summary.Routes {
		res.Routes = append(res.Routes, toRoutePlanResponse(p))
	}
	writeJSON(w, r, http.StatusCreated, res)
}

// ResolveStop records a driver's outcome for one stop.
func (h *RouteHandler) ResolveStop(w http.ResponseWriter, r *http.Request) {
	var req dto.ResolveStopRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	plan, err := h.Stops.Resolve(
		r.Context(),
		r.PathValue("id"),
		r.PathValue("orderId"),
		domain.StopStatus(req.Outcome),
		req.Proof,
	)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toRoutePlanResponse(plan))
}

func toRoutePlanResponse(p domain.RoutePlan) dto.RoutePlanResponse {
	stops := make([]dto.RouteStopResponse, 0, len(p.Stops))
	for _, s := range p.Stops {
		stops = append(stops, dto.RouteStopResponse{
			OrderID:   s.OrderID,
			StoreID:   s.StoreID,
			StoreName: s.StoreName,
			Address:   s.Address,
			Status:    string(s.Status),
			ProofRef:  s.ProofRef,
		})
	}
	return dto.RoutePlanResponse{
		RouteID:   p.ID,
		DriverID:  p.DriverID,
		VehicleID: p.VehicleID,
		Date:      p.Date,
		Region:    p.Region,
		Stops:     stops,
	}
}
