package handlers

import (
	"net/http"
)

type RootHandler struct{}

func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

func (h *RootHandler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":        "busarrival",
		"description": "Nearby bus stops and live arrival timings from the LTA DataMall",
		"version":     "1.0.0",
		"endpoints": map[string]string{
			"GET /":                        "API information",
			"GET /health":                  "Health check",
			"GET /metrics":                 "Prometheus metrics",
			"GET /api/stops/search":        "Search stops by name, road, or code (?q=)",
			"GET /api/stops/nearby":        "Ranked stops near a point (?lat=&lng=&radius_km=)",
			"GET /api/arrivals/{stopCode}": "Live arrival predictions for a stop",
			"GET /api/favorites":           "Saved favorite stops",
			"PUT /api/favorites":           "Replace saved favorite stops",
		},
	})
}

func (h *RootHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"error":   "Route not found",
		"message": "Check the root endpoint (/) for available routes",
	})
}
