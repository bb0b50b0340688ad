package arrivals

import (
	"context"
	"fmt"
	"time"

	"github.com/devanlim/busarrival/internal/cache"
)

// Source abstracts the remote arrival API for testability.
type Source interface {
	Services(ctx context.Context, stopCode string) ([]RawService, error)
}

// Metrics counts arrival fetches; nil disables reporting.
type Metrics interface {
	ArrivalFetch(cacheHit bool)
}

// Resolver turns raw provider records into normalized predictions. A short
// TTL cache in front of the source keeps repeated polls within one refresh
// interval from hammering the provider; a zero TTL disables it.
type Resolver struct {
	source  Source
	cache   *cache.Cache[[]RawService]
	metrics Metrics
	now     func() time.Time
}

// NewResolver creates a resolver over the given source.
func NewResolver(source Source, cacheTTL time.Duration, metrics Metrics) *Resolver {
	return &Resolver{
		source:  source,
		cache:   cache.New[[]RawService](cacheTTL),
		metrics: metrics,
		now:     time.Now,
	}
}

// Resolve fetches and decodes the arrival predictions for one stop, grouped
// by service and sorted numeric-aware by service number.
func (r *Resolver) Resolve(ctx context.Context, stopCode string) ([]Prediction, error) {
	if stopCode == "" {
		return nil, fmt.Errorf("stop code is required")
	}

	raw, ok := r.cache.Get(stopCode)
	if !ok {
		var err error
		raw, err = r.source.Services(ctx, stopCode)
		if err != nil {
			return nil, err
		}
		r.cache.Set(stopCode, raw)
	}
	if r.metrics != nil {
		r.metrics.ArrivalFetch(ok)
	}

	return Decode(raw, r.now()), nil
}

// Close releases the resolver's cache sweeper.
func (r *Resolver) Close() {
	r.cache.Close()
}
