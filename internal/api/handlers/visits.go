package handlers

import (
	"net/http"
	"strings"

	"water-distribution-service/internal/api/dto"
	"water-distribution-service/internal/domain"
	"water-distribution-service/internal/services"
)

// VisitHandler exposes sales-visit scheduling and route planning.
type VisitHandler struct {
	Visits *services.Visits
}

func (h *VisitHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	var req dto.ScheduleVisitRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	visit, err := h.Visits.Schedule(r.Context(), req.StoreID, req.SalesPersonID, req.VisitDate, req.Purpose)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toVisitResponse(visit))
}

// PlanRoute sequences one salesperson's upcoming visits for a day.
func (h *VisitHandler) PlanRoute(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanVisitRouteRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.SalesPersonID) == "" || strings.TrimSpace(req.Date) == "" {
		writeError(w, r, http.StatusBadRequest, "sales_person_id and date are required")
		return
	}

	plan, err := h.Visits.PlanVisitRoute(r.Context(), req.SalesPersonID, req.Date)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	stops := make([]dto.VisitStopResponse, 0, len(plan.Stops))
	for _, s := range plan.Stops {
		stops = append(stops, dto.VisitStopResponse{
			VisitID:   s.VisitID,
			StoreID:   s.StoreID,
			StoreName: s.StoreName,
			Address:   s.Address,
			Purpose:   s.Purpose,
		})
	}
	writeJSON(w, r, http.StatusCreated, dto.VisitRoutePlanResponse{
		RouteID:       plan.ID,
		SalesPersonID: plan.SalesPersonID,
		Date:          plan.Date,
		Stops:         stops,
	})
}

func (h *VisitHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req dto.ResolveVisitRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	visit, err := h.Visits.Resolve(r.Context(), r.PathValue("id"), domain.VisitStatus(req.Status), req.Proof)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toVisitResponse(visit))
}

func toVisitResponse(v domain.Visit) dto.VisitResponse {
	return dto.VisitResponse{
		VisitID:       v.ID,
		StoreID:       v.StoreID,
		SalesPersonID: v.SalesPersonID,
		VisitDate:     v.VisitDate,
		Purpose:       v.Purpose,
		Status:        string(v.Status),
		ProofRef:      v.ProofRef,
	}
}
