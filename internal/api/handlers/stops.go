package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/devanlim/busarrival/internal/geo"
	"github.com/devanlim/busarrival/internal/provider"
	"github.com/devanlim/busarrival/internal/proximity"
)

const (
	minRadiusKm      = 0.1
	maxRadiusKm      = 5
	defaultSearchCap = 10
	maxSearchCap     = 100
)

// bucketThresholds drives the "within 500m / 1km / 2km" filter counts.
var bucketThresholds = []float64{0.5, 1, 2}

// StopsHandler serves stop search and nearby-stop queries.
type StopsHandler struct {
	catalog         StopCatalog
	resolver        NearbyResolver
	defaultRadiusKm float64
}

func NewStopsHandler(cat StopCatalog, resolver NearbyResolver, defaultRadiusKm float64) *StopsHandler {
	return &StopsHandler{
		catalog:         cat,
		resolver:        resolver,
		defaultRadiusKm: defaultRadiusKm,
	}
}

// Search finds stops by a text query over name, code and road name.
func (h *StopsHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": "q query parameter is required",
		})
		return
	}

	stops, err := h.catalog.FetchAll(r.Context(), query)
	if err != nil {
		writeProviderError(w, "Failed to search bus stops", err)
		return
	}

	limit := parseIntQueryParam(r, "limit", defaultSearchCap, 1, maxSearchCap)
	if len(stops) > limit {
		stops = stops[:limit]
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"query":   query,
		"stops":   stops,
		"count":   len(stops),
	})
}

// rankedStopResponse decorates a ranked stop with display affordances.
type rankedStopResponse struct {
	proximity.RankedStop
	Distance string     `json:"distance"`
	Bucket   geo.Bucket `json:"bucket"`
}

// Nearby returns the stops within a radius of a coordinate, ranked by
// distance, along with bucket counts for the filter UI.
func (h *StopsHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	lat, lng, ok := parseCoords(w, r)
	if !ok {
		return
	}
	origin := geo.Coordinate{Lat: lat, Lng: lng}
	if !origin.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": "lat/lng out of range",
		})
		return
	}

	radius := parseFloatQueryParam(r, "radius_km", h.defaultRadiusKm, minRadiusKm, maxRadiusKm)
	strategy := proximity.ClientSide
	if r.URL.Query().Get("strategy") == string(proximity.ServerSide) {
		strategy = proximity.ServerSide
	}

	ranked, err := h.resolver.ResolveSearch(r.Context(),
		proximity.Query{Origin: origin, RadiusKm: radius},
		strategy,
		r.URL.Query().Get("q"),
	)
	if err != nil {
		if errors.Is(err, proximity.ErrInvalidRadius) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error": "radius_km must be greater than zero",
			})
			return
		}
		writeProviderError(w, "Failed to resolve nearby stops", err)
		return
	}

	stops := make([]rankedStopResponse, 0, len(ranked))
	for _, s := range ranked {
		stops = append(stops, rankedStopResponse{
			RankedStop: s,
			Distance:   geo.FormatDistance(s.DistanceKm),
			Bucket:     geo.DistanceBucket(s.DistanceKm),
		})
	}

	counts := proximity.BucketCounts(ranked, bucketThresholds)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"lat":       lat,
		"lng":       lng,
		"radius_km": radius,
		"stops":     stops,
		"count":     len(stops),
		"within": map[string]int{
			"500m": counts[0.5],
			"1km":  counts[1],
			"2km":  counts[2],
		},
	})
}

func parseCoords(w http.ResponseWriter, r *http.Request) (lat, lng float64, ok bool) {
	latStr := r.URL.Query().Get("lat")
	lngStr := r.URL.Query().Get("lng")

	if latStr == "" || lngStr == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": "lat and lng query parameters are required",
		})
		return 0, 0, false
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": "Invalid lat parameter",
		})
		return 0, 0, false
	}

	lng, err = strconv.ParseFloat(lngStr, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": "Invalid lng parameter",
		})
		return 0, 0, false
	}

	return lat, lng, true
}

// writeProviderError maps remote provider failures to a recoverable 502 and
// everything else to a 500.
func writeProviderError(w http.ResponseWriter, message string, err error) {
	var perr *provider.Error
	if errors.As(err, &perr) {
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"error":           message,
			"message":         err.Error(),
			"provider_status": perr.Status,
			"retryable":       true,
		})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]any{
		"error":   message,
		"message": err.Error(),
	})
}

func parseIntQueryParam(r *http.Request, name string, defaultVal, min, max int) int {
	str := r.URL.Query().Get(name)
	if str == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(str)
	if err != nil {
		return defaultVal
	}

	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

func parseFloatQueryParam(r *http.Request, name string, defaultVal, min, max float64) float64 {
	str := r.URL.Query().Get(name)
	if str == "" {
		return defaultVal
	}

	val, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return defaultVal
	}

	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
