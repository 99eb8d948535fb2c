package handlers

import (
	"net/http"

	"water-distribution-service/internal/api/dto"
	"water-distribution-service/internal/ports"
	"water-distribution-service/internal/services"
)

// VehicleHandler exposes fleet reads and the dispatch transition.
type VehicleHandler struct {
	Dispatcher *services.Dispatch
	Repo       ports.VehicleRepository
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.Repo.ListVehicles()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.ListVehiclesResponse{Vehicles: make([]dto.VehicleResponse, 0, len(vehicles))}
	for _, v := range vehicles {
		res.Vehicles = append(res.Vehicles, dto.VehicleResponse{
			VehicleID:   v.ID,
			PlateNumber: v.PlateNumber,
			Model:       v.Model,
			Capacity:    v.Capacity,
			Status:      string(v.Status),
			Region:      v.Region,
		})
	}
	writeJSON(w, r, http.StatusOK, res)
}

// Dispatch sends an idle vehicle out on its planned trips.
func (h *VehicleHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	if err := h.Dispatcher.DispatchVehicle(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "dispatched"})
}
