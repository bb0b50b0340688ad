// Package session holds the set of stops a rider is watching and drives
// manual and timed arrival refreshes.
package session

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/devanlim/busarrival/internal/arrivals"
	"github.com/devanlim/busarrival/internal/catalog"
)

// DefaultRefreshInterval is the timed refresh period.
const DefaultRefreshInterval = 30 * time.Second

// ArrivalSource resolves predictions for one stop.
type ArrivalSource interface {
	Resolve(ctx context.Context, stopCode string) ([]arrivals.Prediction, error)
}

// Snapshot is the result of one refresh of one watched stop.
type Snapshot struct {
	Stop        catalog.Stop
	Predictions []arrivals.Prediction
	UpdatedAt   time.Time
}

// Session tracks watched stops. All methods are safe for concurrent use.
// Refresh cycles never overlap: a timed tick firing while a cycle is in
// flight is skipped.
type Session struct {
	resolver ArrivalSource
	onUpdate func(Snapshot)
	logger   *slog.Logger

	mu    sync.Mutex
	stops map[string]catalog.Stop
	order []string

	inFlight atomic.Bool
}

// New creates a session. onUpdate receives one snapshot per refreshed stop;
// it may be nil.
func New(resolver ArrivalSource, onUpdate func(Snapshot), logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	if onUpdate == nil {
		onUpdate = func(Snapshot) {}
	}
	return &Session{
		resolver: resolver,
		onUpdate: onUpdate,
		logger:   logger,
		stops:    make(map[string]catalog.Stop),
	}
}

// Add starts watching a stop. It returns false if the stop is already watched.
func (s *Session) Add(stop catalog.Stop) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.stops[stop.Code]; ok {
		return false
	}
	s.stops[stop.Code] = stop
	s.order = append(s.order, stop.Code)
	return true
}

// Remove stops watching a stop. Any in-flight fetch for it is allowed to
// finish, but its result is discarded on arrival.
func (s *Session) Remove(stopCode string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.stops, stopCode)
	kept := s.order[:0]
	for _, code := range s.order {
		if code != stopCode {
			kept = append(kept, code)
		}
	}
	s.order = kept
}

// Stops returns the watched stops in selection order.
func (s *Session) Stops() []catalog.Stop {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]catalog.Stop, 0, len(s.order))
	for _, code := range s.order {
		out = append(out, s.stops[code])
	}
	return out
}

// Refresh fetches arrivals for every watched stop, sequentially. It returns
// false without doing anything when another cycle is still in flight.
func (s *Session) Refresh(ctx context.Context) bool {
	if !s.inFlight.CompareAndSwap(false, true) {
		return false
	}
	defer s.inFlight.Store(false)

	for _, stop := range s.Stops() {
		preds, err := s.resolver.Resolve(ctx, stop.Code)
		if err != nil {
			// Provider failures reduce to "no data for this stop".
			s.logger.Warn("arrival refresh failed", "stop", stop.Code, "error", err)
			continue
		}
		if !s.watching(stop.Code) {
			continue
		}
		s.onUpdate(Snapshot{Stop: stop, Predictions: preds, UpdatedAt: time.Now()})
	}
	return true
}

// Run refreshes on a fixed interval until ctx is cancelled. Ticks that fire
// during an in-flight cycle are skipped.
func (s *Session) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.Refresh(ctx) {
				s.logger.Debug("refresh tick skipped, cycle in flight")
			}
		}
	}
}

func (s *Session) watching(stopCode string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.stops[stopCode]
	return ok
}
