package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/devanlim/busarrival/internal/catalog"
)

// FavoritesHandler proxies the durable favorite-stop store.
type FavoritesHandler struct {
	store FavoritesStore
}

func NewFavoritesHandler(store FavoritesStore) *FavoritesHandler {
	return &FavoritesHandler{store: store}
}

// Get returns the saved stops.
func (h *FavoritesHandler) Get(w http.ResponseWriter, r *http.Request) {
	stops, err := h.store.Get()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "Failed to read favorites",
			"message": err.Error(),
		})
		return
	}
	if stops == nil {
		stops = []catalog.Stop{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"favorites": stops,
		"count":     len(stops),
	})
}

// Put replaces the saved stops with the request body.
func (h *FavoritesHandler) Put(w http.ResponseWriter, r *http.Request) {
	var stops []catalog.Stop
	if err := json.NewDecoder(r.Body).Decode(&stops); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": "Request body must be a JSON array of stops",
		})
		return
	}
	for _, stop := range stops {
		if stop.Code == "" {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error": "Every favorite needs a stopCode",
			})
			return
		}
	}

	if err := h.store.Set(stops); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "Failed to save favorites",
			"message": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(stops),
	})
}
