// Package proximity ranks bus stops by great-circle distance from a rider.
package proximity

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/devanlim/busarrival/internal/catalog"
	"github.com/devanlim/busarrival/internal/geo"
)

// MaxResults caps the ranked list to bound payload size.
const MaxResults = 100

// ErrInvalidRadius reports a non-positive radius. Input validation at the
// API boundary should prevent it from occurring at runtime.
var ErrInvalidRadius = errors.New("radius must be greater than zero")

// Query is one proximity search: stateless, no identity beyond its inputs.
type Query struct {
	Origin   geo.Coordinate
	RadiusKm float64
}

// RankedStop is a catalog stop with its distance from the query origin.
// The distance is only meaningful within the query that produced it.
type RankedStop struct {
	catalog.Stop
	DistanceKm float64 `json:"distanceKm"`
}

// Strategy selects where distance filtering happens.
type Strategy string

const (
	// ClientSide fetches the full catalog and filters locally.
	ClientSide Strategy = "fetch-all"
	// ServerSide delegates filtering to a provider that accepts a radius.
	ServerSide Strategy = "server-side"
)

// RadiusSource is a remote collaborator that performs the haversine filter
// and sort itself and returns pre-ranked stops.
type RadiusSource interface {
	StopsWithinRadius(ctx context.Context, origin geo.Coordinate, radiusKm float64) ([]RankedStop, error)
}

// Metrics counts resolved queries; nil disables reporting.
type Metrics interface {
	ProximityQueryResolved(strategy string, results int)
}

// Resolver orchestrates candidate retrieval, distance computation and ranking.
type Resolver struct {
	fetcher *catalog.Fetcher
	remote  RadiusSource
	metrics Metrics
}

// NewResolver creates a resolver. remote may be nil if the server-side
// strategy is never selected.
func NewResolver(fetcher *catalog.Fetcher, remote RadiusSource, metrics Metrics) *Resolver {
	return &Resolver{fetcher: fetcher, remote: remote, metrics: metrics}
}

// Resolve returns all stops within q.RadiusKm of q.Origin, sorted ascending
// by distance with ties broken by ascending stop code. Both strategies
// produce the same ordering for the same candidate set.
func (r *Resolver) Resolve(ctx context.Context, q Query, strategy Strategy) ([]RankedStop, error) {
	return r.ResolveSearch(ctx, q, strategy, "")
}

// ResolveSearch is Resolve with an optional text query applied to the
// candidate set before distance filtering. Only the client-side strategy
// supports text filtering; the remote collaborator has no search capability.
func (r *Resolver) ResolveSearch(ctx context.Context, q Query, strategy Strategy, textQuery string) ([]RankedStop, error) {
	if q.RadiusKm <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidRadius, q.RadiusKm)
	}

	if strategy == ServerSide && r.remote != nil {
		ranked, err := r.remote.StopsWithinRadius(ctx, q.Origin, q.RadiusKm)
		if err != nil {
			return nil, fmt.Errorf("server-side radius query: %w", err)
		}
		// The remote side ran the identical filter and sort; trust its order.
		ranked = capResults(ranked)
		r.observe(strategy, len(ranked))
		return ranked, nil
	}

	candidates, err := r.fetcher.FetchAll(ctx, textQuery)
	if err != nil {
		return nil, err
	}

	ranked := Rank(q.Origin, candidates, q.RadiusKm)
	ranked = capResults(ranked)
	r.observe(ClientSide, len(ranked))
	return ranked, nil
}

// Rank computes distances for every candidate, keeps those within radiusKm
// and sorts ascending by distance, tie-broken by stop code.
func Rank(origin geo.Coordinate, candidates []catalog.Stop, radiusKm float64) []RankedStop {
	var ranked []RankedStop
	for _, stop := range candidates {
		dist := geo.HaversineKm(origin, stop.Location)
		if dist <= radiusKm {
			ranked = append(ranked, RankedStop{Stop: stop, DistanceKm: dist})
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].DistanceKm != ranked[j].DistanceKm {
			return ranked[i].DistanceKm < ranked[j].DistanceKm
		}
		return ranked[i].Code < ranked[j].Code
	})
	return ranked
}

// BucketCounts reports, for each threshold, how many ranked stops fall within
// it. It drives the "within 500m (N)" style filter labels without another
// catalog query.
func BucketCounts(ranked []RankedStop, thresholdsKm []float64) map[float64]int {
	counts := make(map[float64]int, len(thresholdsKm))
	for _, t := range thresholdsKm {
		n := 0
		for _, s := range ranked {
			if s.DistanceKm <= t {
				n++
			}
		}
		counts[t] = n
	}
	return counts
}

func capResults(ranked []RankedStop) []RankedStop {
	if len(ranked) > MaxResults {
		return ranked[:MaxResults]
	}
	return ranked
}

func (r *Resolver) observe(strategy Strategy, results int) {
	if r.metrics != nil {
		r.metrics.ProximityQueryResolved(string(strategy), results)
	}
}
