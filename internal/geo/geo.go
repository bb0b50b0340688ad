// Package geo provides great-circle distance math for stop lookups.
package geo

import (
	"fmt"
	"math"
)

const earthRadiusKm = 6371

// Coordinate is a WGS84 position in degrees.
type Coordinate struct {
	Lat float64 `json:"latitude"`
	Lng float64 `json:"longitude"`
}

// Valid reports whether the coordinate is within WGS84 range.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// HaversineKm calculates the great-circle distance in kilometers between two points.
func HaversineKm(a, b Coordinate) float64 {
	lat1Rad := a.Lat * math.Pi / 180
	lat2Rad := b.Lat * math.Pi / 180
	deltaLat := (b.Lat - a.Lat) * math.Pi / 180
	deltaLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// Bucket classifies a distance for display affordances.
type Bucket string

const (
	BucketNear     Bucket = "near"     // within 500m
	BucketModerate Bucket = "moderate" // within 1km
	BucketFar      Bucket = "far"
)

// DistanceBucket maps a distance to its display bucket. The 0.5km and 1km
// thresholds are shared with the nearby-stop filter UI.
func DistanceBucket(km float64) Bucket {
	switch {
	case km <= 0.5:
		return BucketNear
	case km <= 1:
		return BucketModerate
	default:
		return BucketFar
	}
}

// FormatDistance renders a distance as whole meters below 1km, otherwise
// as kilometers with two decimals.
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%dm", int(math.Round(km*1000)))
	}
	return fmt.Sprintf("%.2fkm", km)
}
