package proximity

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/devanlim/busarrival/internal/catalog"
	"github.com/devanlim/busarrival/internal/geo"
)

var origin = geo.Coordinate{Lat: 1.3000, Lng: 103.8500}

// candidateSet spreads stops at increasing latitude offsets, roughly 111m apart.
func candidateSet(n int) []catalog.Stop {
	stops := make([]catalog.Stop, n)
	for i := range stops {
		stops[i] = catalog.Stop{
			Code: fmt.Sprintf("%05d", i),
			Name: fmt.Sprintf("Stop %d", i),
			Location: geo.Coordinate{
				Lat: origin.Lat + float64(i)*0.001,
				Lng: origin.Lng,
			},
		}
	}
	return stops
}

type staticLister struct{ stops []catalog.Stop }

func (s *staticLister) ListStops(_ context.Context, skip int) ([]catalog.Stop, error) {
	if skip > 0 {
		return nil, nil
	}
	return s.stops, nil
}

func newResolver(stops []catalog.Stop, remote RadiusSource) *Resolver {
	fetcher := catalog.NewFetcher(&staticLister{stops: stops}, nil, nil)
	return NewResolver(fetcher, remote, nil)
}

func TestResolveInvalidRadius(t *testing.T) {
	r := newResolver(candidateSet(5), nil)
	for _, radius := range []float64{0, -1} {
		_, err := r.Resolve(context.Background(), Query{Origin: origin, RadiusKm: radius}, ClientSide)
		if !errors.Is(err, ErrInvalidRadius) {
			t.Errorf("radius %v: err = %v, want ErrInvalidRadius", radius, err)
		}
	}
}

func TestResolveSortedAscending(t *testing.T) {
	// Shuffle the candidates so sorting is actually exercised.
	stops := candidateSet(20)
	for i := range stops {
		j := (i * 7) % len(stops)
		stops[i], stops[j] = stops[j], stops[i]
	}
	r := newResolver(stops, nil)

	ranked, err := r.Resolve(context.Background(), Query{Origin: origin, RadiusKm: 5}, ClientSide)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(ranked) == 0 {
		t.Fatal("expected results")
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].DistanceKm < ranked[i-1].DistanceKm {
			t.Fatalf("not sorted at %d: %v after %v", i, ranked[i].DistanceKm, ranked[i-1].DistanceKm)
		}
	}
}

func TestResolveTiesBrokenByStopCode(t *testing.T) {
	// Two stops at the identical location: equal distance.
	same := geo.Coordinate{Lat: 1.3010, Lng: 103.8500}
	stops := []catalog.Stop{
		{Code: "99999", Name: "B", Location: same},
		{Code: "11111", Name: "A", Location: same},
	}
	r := newResolver(stops, nil)

	ranked, err := r.Resolve(context.Background(), Query{Origin: origin, RadiusKm: 2}, ClientSide)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("got %d results, want 2", len(ranked))
	}
	if ranked[0].Code != "11111" || ranked[1].Code != "99999" {
		t.Errorf("tie not broken by stop code: %s, %s", ranked[0].Code, ranked[1].Code)
	}
}

func TestResolveMonotonicRadius(t *testing.T) {
	r := newResolver(candidateSet(30), nil)

	prev := -1
	for _, radius := range []float64{0.2, 0.5, 1, 2, 4} {
		ranked, err := r.Resolve(context.Background(), Query{Origin: origin, RadiusKm: radius}, ClientSide)
		if err != nil {
			t.Fatalf("Resolve(%v): %v", radius, err)
		}
		if len(ranked) < prev {
			t.Errorf("radius %v returned %d results, fewer than smaller radius (%d)", radius, len(ranked), prev)
		}
		prev = len(ranked)
	}
}

func TestResolveHalfKilometerScenario(t *testing.T) {
	stops := []catalog.Stop{
		{Code: "00001", Name: "Here", Location: geo.Coordinate{Lat: 1.3000, Lng: 103.8500}},
		{Code: "00002", Name: "Far", Location: geo.Coordinate{Lat: 1.3100, Lng: 103.8500}}, // ~1.11km
	}
	r := newResolver(stops, nil)

	ranked, err := r.Resolve(context.Background(), Query{Origin: origin, RadiusKm: 0.5}, ClientSide)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(ranked) != 1 || ranked[0].Code != "00001" {
		t.Fatalf("ranked = %+v, want only the zero-distance stop", ranked)
	}
	if ranked[0].DistanceKm != 0 {
		t.Errorf("DistanceKm = %v, want 0", ranked[0].DistanceKm)
	}
}

func TestResolveCapsResults(t *testing.T) {
	r := newResolver(candidateSet(150), nil)

	ranked, err := r.Resolve(context.Background(), Query{Origin: origin, RadiusKm: 100}, ClientSide)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(ranked) != MaxResults {
		t.Errorf("got %d results, want cap of %d", len(ranked), MaxResults)
	}
}

type fakeRemote struct {
	ranked []RankedStop
	err    error
}

func (f *fakeRemote) StopsWithinRadius(_ context.Context, _ geo.Coordinate, _ float64) ([]RankedStop, error) {
	return f.ranked, f.err
}

func TestServerSideOrderMatchesClientSide(t *testing.T) {
	stops := candidateSet(12)
	clientSide := newResolver(stops, nil)

	local, err := clientSide.Resolve(context.Background(), Query{Origin: origin, RadiusKm: 1}, ClientSide)
	if err != nil {
		t.Fatalf("client-side Resolve: %v", err)
	}

	// A remote running the same algorithm over the same candidates.
	remote := &fakeRemote{ranked: Rank(origin, stops, 1)}
	serverSide := newResolver(nil, remote)

	remoteRanked, err := serverSide.Resolve(context.Background(), Query{Origin: origin, RadiusKm: 1}, ServerSide)
	if err != nil {
		t.Fatalf("server-side Resolve: %v", err)
	}

	if len(local) != len(remoteRanked) {
		t.Fatalf("result counts differ: %d vs %d", len(local), len(remoteRanked))
	}
	for i := range local {
		if local[i].Code != remoteRanked[i].Code {
			t.Errorf("order differs at %d: %s vs %s", i, local[i].Code, remoteRanked[i].Code)
		}
	}
}

func TestServerSideError(t *testing.T) {
	r := newResolver(nil, &fakeRemote{err: errors.New("remote down")})
	_, err := r.Resolve(context.Background(), Query{Origin: origin, RadiusKm: 1}, ServerSide)
	if err == nil {
		t.Fatal("expected error from remote")
	}
}

func TestBucketCounts(t *testing.T) {
	ranked := []RankedStop{
		{DistanceKm: 0.1},
		{DistanceKm: 0.45},
		{DistanceKm: 0.8},
		{DistanceKm: 1.5},
		{DistanceKm: 1.9},
	}
	counts := BucketCounts(ranked, []float64{0.5, 1, 2})

	if counts[0.5] != 2 || counts[1] != 3 || counts[2] != 5 {
		t.Errorf("counts = %v, want 2/3/5", counts)
	}
	if !(counts[2] >= counts[1] && counts[1] >= counts[0.5]) {
		t.Error("bucket counts must be monotonic in threshold")
	}
}
