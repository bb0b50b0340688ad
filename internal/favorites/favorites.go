// Package favorites stores the rider's saved stops in a per-profile JSON
// file, surviving restarts.
package favorites

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/devanlim/busarrival/internal/catalog"
)

// Store is a synchronous key-value store of favorite stops keyed by stop
// code. All methods are safe for concurrent use.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store backed by the given file path. The file is
// created on first Set.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Get returns all saved stops. A missing file is an empty list, not an error.
func (s *Store) Get() ([]catalog.Stop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Set replaces the saved list, deduplicating by stop code while preserving
// first-seen order.
func (s *Store) Set(stops []catalog.Stop) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(dedupe(stops))
}

// Add appends a stop unless its code is already saved.
func (s *Store) Add(stop catalog.Stop) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stops, err := s.load()
	if err != nil {
		return err
	}
	for _, existing := range stops {
		if existing.Code == stop.Code {
			return nil
		}
	}
	return s.save(append(stops, stop))
}

// Remove deletes the stop with the given code, if present.
func (s *Store) Remove(stopCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stops, err := s.load()
	if err != nil {
		return err
	}
	kept := stops[:0]
	for _, stop := range stops {
		if stop.Code != stopCode {
			kept = append(kept, stop)
		}
	}
	return s.save(kept)
}

func (s *Store) load() ([]catalog.Stop, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading favorites file: %w", err)
	}

	var stops []catalog.Stop
	if err := json.Unmarshal(data, &stops); err != nil {
		return nil, fmt.Errorf("parsing favorites file: %w", err)
	}
	return stops, nil
}

func (s *Store) save(stops []catalog.Stop) error {
	if stops == nil {
		stops = []catalog.Stop{}
	}
	data, err := json.MarshalIndent(stops, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding favorites: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating favorites dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing favorites file: %w", err)
	}
	return nil
}

func dedupe(stops []catalog.Stop) []catalog.Stop {
	seen := make(map[string]bool, len(stops))
	var out []catalog.Stop
	for _, stop := range stops {
		if seen[stop.Code] {
			continue
		}
		seen[stop.Code] = true
		out = append(out, stop)
	}
	return out
}
