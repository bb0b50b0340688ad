package handlers

import (
	"context"

	"github.com/devanlim/busarrival/internal/arrivals"
	"github.com/devanlim/busarrival/internal/catalog"
	"github.com/devanlim/busarrival/internal/proximity"
)

// StopCatalog abstracts the stop catalog fetch for testability.
type StopCatalog interface {
	FetchAll(ctx context.Context, query string) ([]catalog.Stop, error)
}

// NearbyResolver abstracts the proximity pipeline.
type NearbyResolver interface {
	ResolveSearch(ctx context.Context, q proximity.Query, strategy proximity.Strategy, textQuery string) ([]proximity.RankedStop, error)
}

// ArrivalProvider abstracts the arrival resolution.
type ArrivalProvider interface {
	Resolve(ctx context.Context, stopCode string) ([]arrivals.Prediction, error)
}

// FavoritesStore abstracts the durable favorite-stop store.
type FavoritesStore interface {
	Get() ([]catalog.Stop, error)
	Set(stops []catalog.Stop) error
}
