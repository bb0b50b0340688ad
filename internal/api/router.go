package api

import (
	"net/http"
	"time"

	"github.com/devanlim/busarrival/internal/api/handlers"
	"github.com/devanlim/busarrival/internal/config"
	"github.com/devanlim/busarrival/internal/metrics"
)

// NewRouter creates and configures the HTTP router with all routes and middleware.
// collector may be nil to disable the /metrics endpoint.
func NewRouter(
	cfg *config.Config,
	cat handlers.StopCatalog,
	resolver handlers.NearbyResolver,
	arrivals handlers.ArrivalProvider,
	favorites handlers.FavoritesStore,
	collector *metrics.Collector,
) http.Handler {
	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler()
	rootHandler := handlers.NewRootHandler()
	stopsHandler := handlers.NewStopsHandler(cat, resolver, cfg.DefaultRadiusKm)
	arrivalsHandler := handlers.NewArrivalsHandler(arrivals)
	favoritesHandler := handlers.NewFavoritesHandler(favorites)

	mux.HandleFunc("GET /{$}", rootHandler.Index)
	mux.HandleFunc("GET /health", healthHandler.Health)
	if collector != nil {
		mux.Handle("GET /metrics", collector.Handler())
	}

	// The three provider proxies
	mux.HandleFunc("GET /api/stops/search", stopsHandler.Search)
	mux.HandleFunc("GET /api/stops/nearby", stopsHandler.Nearby)
	mux.HandleFunc("GET /api/arrivals/{stopCode}", arrivalsHandler.GetArrivals)

	// Favorites store proxy
	mux.HandleFunc("GET /api/favorites", favoritesHandler.Get)
	mux.HandleFunc("PUT /api/favorites", favoritesHandler.Put)

	mux.HandleFunc("/", rootHandler.NotFound)

	return Chain(mux,
		Recovery,
		Logging(collector),
		CORS,
		Timeout(15*time.Second),
	)
}
