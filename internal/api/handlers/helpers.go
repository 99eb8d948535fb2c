package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"water-distribution-service/internal/services"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Unrecognized errors are logged and surfaced as an opaque 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrVehicleNotFound),
		errors.Is(err, services.ErrRouteNotFound),
		errors.Is(err, services.ErrStopNotFound):
		writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrUnknownProduct),
		errors.Is(err, services.ErrUnknownStore),
		errors.Is(err, services.ErrTooManyNodes):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrInvalidStateForDeletion),
		errors.Is(err, services.ErrInvalidStateTransition),
		errors.Is(err, services.ErrVehicleNotIdle),
		errors.Is(err, services.ErrStoreHasActivity):
		writeError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrNoEligibleOrders),
		errors.Is(err, services.ErrNoRoutedOrders),
		errors.Is(err, services.ErrRouteGenerationFailure):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	default:
		log.Printf("internal error: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// decodeStrict decodes exactly one JSON object, rejecting unknown fields.
func decodeStrict(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return errors.New("invalid json body")
	}
	if err := dec.Decode(&struct{}{}); err == nil {
		return errors.New("body must contain only one JSON object")
	}
	return nil
}
