// Package geoloc models the device location boundary: position acquisition
// happens outside this service, but its failures arrive categorized.
package geoloc

import (
	"context"
	"time"

	"github.com/devanlim/busarrival/internal/geo"
)

// Kind categorizes a location acquisition failure.
type Kind string

const (
	PermissionDenied Kind = "permission_denied"
	Unavailable      Kind = "unavailable"
	Timeout          Kind = "timeout"
	Unknown          Kind = "unknown"
)

// Error is a categorized location failure. It is surfaced directly to the
// rider with a kind-specific message and never retried automatically; retry
// is a user action.
type Error struct {
	Kind Kind
}

func (e *Error) Error() string {
	return "location: " + e.Message()
}

// Message returns the rider-facing text for the failure kind.
func (e *Error) Message() string {
	switch e.Kind {
	case PermissionDenied:
		return "location access denied, enable location services and try again"
	case Unavailable:
		return "location information is unavailable, check GPS settings"
	case Timeout:
		return "location request timed out, try again"
	default:
		return "an unknown error occurred while retrieving location"
	}
}

// Options controls one acquisition attempt.
type Options struct {
	HighAccuracy bool
	// Timeout bounds the acquisition; default 15s.
	Timeout time.Duration
	// MaxAge allows reuse of a previously acquired position no older than
	// this, without re-prompting; default 5 minutes.
	MaxAge time.Duration
}

// DefaultOptions matches the acquisition settings the client UI uses.
func DefaultOptions() Options {
	return Options{
		HighAccuracy: true,
		Timeout:      15 * time.Second,
		MaxAge:       5 * time.Minute,
	}
}

// Locator acquires the rider's current position.
type Locator interface {
	Current(ctx context.Context, opts Options) (geo.Coordinate, error)
}
