package handlers

import (
	"net/http"
	"time"
)

// ArrivalsHandler serves live arrival predictions for a stop.
type ArrivalsHandler struct {
	arrivals ArrivalProvider
}

func NewArrivalsHandler(arrivals ArrivalProvider) *ArrivalsHandler {
	return &ArrivalsHandler{arrivals: arrivals}
}

// GetArrivals returns the normalized predictions for one stop code.
func (h *ArrivalsHandler) GetArrivals(w http.ResponseWriter, r *http.Request) {
	stopCode := r.PathValue("stopCode")
	if stopCode == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": "Stop code is required",
		})
		return
	}

	predictions, err := h.arrivals.Resolve(r.Context(), stopCode)
	if err != nil {
		writeProviderError(w, "Failed to fetch bus arrivals", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"stop_code":  stopCode,
		"arrivals":   predictions,
		"count":      len(predictions),
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	})
}
