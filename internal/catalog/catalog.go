// Package catalog retrieves the bus stop catalog from the transit open-data
// provider, with a static fallback when the provider is unavailable.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/devanlim/busarrival/internal/geo"
)

const (
	// BatchSize is the provider's fixed page size for the stop listing.
	BatchSize = 500
	// maxSkip bounds pagination against a misbehaving provider.
	maxSkip = 10000
)

// ErrCatalogUnavailable is returned only when the provider fails and the
// fallback list is itself empty.
var ErrCatalogUnavailable = errors.New("stop catalog unavailable")

// Stop is one transit boarding location. Identity is Code.
type Stop struct {
	Code     string         `json:"stopCode"`
	Name     string         `json:"stopName"`
	RoadName string         `json:"roadName"`
	Location geo.Coordinate `json:"location"`
}

// Lister abstracts the remote stop catalog for testability.
type Lister interface {
	ListStops(ctx context.Context, skip int) ([]Stop, error)
}

// Metrics receives fetch-level counters. Implementations must be safe for
// concurrent use. A nil Metrics disables reporting.
type Metrics interface {
	CatalogBatchFetched(count int)
	CatalogFallbackServed()
}

// Fetcher pages through the remote catalog and merges batches. It holds no
// cross-call state; every FetchAll is a fresh fetch.
type Fetcher struct {
	lister   Lister
	fallback []Stop
	metrics  Metrics
}

// NewFetcher creates a fetcher over the given remote catalog. Passing a nil
// fallback slice uses the built-in stop list.
func NewFetcher(lister Lister, fallback []Stop, metrics Metrics) *Fetcher {
	if fallback == nil {
		fallback = FallbackStops()
	}
	return &Fetcher{lister: lister, fallback: fallback, metrics: metrics}
}

// FetchAll retrieves the full stop catalog, issuing sequential batch requests
// until a batch comes back empty or the safety cap is reached. A non-empty
// query applies a case-insensitive substring match over stop name, stop code
// and road name. If the provider errors or yields zero records the fallback
// list is returned instead; that is a degraded mode, not an error.
func (f *Fetcher) FetchAll(ctx context.Context, query string) ([]Stop, error) {
	var all []Stop
	for skip := 0; skip <= maxSkip; skip += BatchSize {
		batch, err := f.lister.ListStops(ctx, skip)
		if err != nil {
			return f.degrade(query, fmt.Errorf("listing stops at skip %d: %w", skip, err))
		}
		if len(batch) == 0 {
			break
		}
		if f.metrics != nil {
			f.metrics.CatalogBatchFetched(len(batch))
		}
		all = append(all, batch...)
	}

	if len(all) == 0 {
		return f.degrade(query, nil)
	}
	return filterStops(all, query), nil
}

func (f *Fetcher) degrade(query string, cause error) ([]Stop, error) {
	if len(f.fallback) == 0 {
		if cause != nil {
			return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, cause)
		}
		return nil, ErrCatalogUnavailable
	}
	if f.metrics != nil {
		f.metrics.CatalogFallbackServed()
	}
	return filterStops(f.fallback, query), nil
}

// filterStops applies the text post-filter. The provider has no text search,
// so matching always happens client-side.
func filterStops(stops []Stop, query string) []Stop {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		out := make([]Stop, len(stops))
		copy(out, stops)
		return out
	}

	var out []Stop
	for _, s := range stops {
		if strings.Contains(strings.ToLower(s.Name), query) ||
			strings.Contains(strings.ToLower(s.Code), query) ||
			strings.Contains(strings.ToLower(s.RoadName), query) {
			out = append(out, s)
		}
	}
	return out
}
