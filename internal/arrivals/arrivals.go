// Package arrivals fetches live bus arrival predictions and normalizes the
// provider's load/type/feature codes.
package arrivals

import (
	"sort"
	"strconv"
	"time"
)

// CrowdLevel is the decoded vehicle load.
type CrowdLevel string

const (
	CrowdLow    CrowdLevel = "low"
	CrowdMedium CrowdLevel = "medium"
	CrowdHigh   CrowdLevel = "high"
)

// DeckerClass is the decoded vehicle body type.
type DeckerClass string

const (
	DeckerSingle  DeckerClass = "single"
	DeckerDouble  DeckerClass = "double"
	DeckerUnknown DeckerClass = "unknown"
)

// Prediction is one normalized upcoming arrival at a stop. Predictions are
// regenerated on every poll and never persisted.
type Prediction struct {
	ServiceNo            string      `json:"serviceNumber"`
	Operator             string      `json:"operator,omitempty"`
	Minutes              int         `json:"minutesUntilArrival"`
	Crowd                CrowdLevel  `json:"crowdLevel"`
	Decker               DeckerClass `json:"deckerClass"`
	WheelchairAccessible bool        `json:"wheelchairAccessible"`
}

// RawVehicle is one provider vehicle prediction before decoding. A zero
// Estimated time means the provider has no estimate for this slot.
type RawVehicle struct {
	Estimated time.Time
	Load      string
	Feature   string
	Type      string
}

// RawService is one provider service record: up to three upcoming vehicles.
type RawService struct {
	ServiceNo string
	Operator  string
	Vehicles  [3]RawVehicle
}

// crowdFromLoad decodes a provider load code. Unknown codes default to low;
// the provider vocabulary may expand.
func crowdFromLoad(code string) CrowdLevel {
	switch code {
	case "SEA":
		return CrowdLow
	case "SDA":
		return CrowdMedium
	case "LSD":
		return CrowdHigh
	default:
		return CrowdLow
	}
}

// deckerFromType decodes a provider vehicle type code. BD is a bendy bus,
// single-level.
func deckerFromType(code string) DeckerClass {
	switch code {
	case "SD", "BD":
		return DeckerSingle
	case "DD":
		return DeckerDouble
	default:
		return DeckerUnknown
	}
}

func wheelchairAccessible(feature string) bool {
	return feature == "WAB"
}

// minutesUntil floors the wait to whole minutes, clamped at zero so a bus
// already at the stop never shows negative.
func minutesUntil(estimated, now time.Time) int {
	mins := int(estimated.Sub(now) / time.Minute)
	if mins < 0 {
		return 0
	}
	return mins
}

// Decode turns raw service records into the normalized prediction list,
// grouped by service and sorted numeric-aware by service number. Vehicles
// without an estimate are omitted.
func Decode(services []RawService, now time.Time) []Prediction {
	sorted := make([]RawService, len(services))
	copy(sorted, services)
	sort.Slice(sorted, func(i, j int) bool {
		return serviceNoLess(sorted[i].ServiceNo, sorted[j].ServiceNo)
	})

	var out []Prediction
	for _, svc := range sorted {
		for _, v := range svc.Vehicles {
			if v.Estimated.IsZero() {
				continue
			}
			out = append(out, Prediction{
				ServiceNo:            svc.ServiceNo,
				Operator:             svc.Operator,
				Minutes:              minutesUntil(v.Estimated, now),
				Crowd:                crowdFromLoad(v.Load),
				Decker:               deckerFromType(v.Type),
				WheelchairAccessible: wheelchairAccessible(v.Feature),
			})
		}
	}
	return out
}

// serviceNoLess orders service numbers so that numeric ones compare
// numerically ("2" before "14" before "111") and non-numeric ones fall back
// to plain string order. A numeric prefix wins over no digits at all, which
// keeps variants like "14e" next to "14".
func serviceNoLess(a, b string) bool {
	an, aok := numericPrefix(a)
	bn, bok := numericPrefix(b)
	switch {
	case aok && bok:
		if an != bn {
			return an < bn
		}
		return a < b
	case aok:
		return true
	case bok:
		return false
	default:
		return a < b
	}
}

func numericPrefix(s string) (int, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
