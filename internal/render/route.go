// Package render derives map views from telemetry pages. Everything here is
// a pure function over one page of samples; switching between route and
// marker mode never refetches.
package render

import (
	"fleet-device-tracker/internal/domain/telemetry"
)

// LatLng is one plottable point.
type LatLng struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// MarkerKind distinguishes how a marker is drawn.
type MarkerKind string

const (
	MarkerStart MarkerKind = "start"
	MarkerEnd   MarkerKind = "end"
	MarkerPower MarkerKind = "power"
)

// Marker is one annotated point with its hover detail.
type Marker struct {
	Kind     MarkerKind `json:"kind"`
	Position LatLng     `json:"position"`
	PowerOn  bool       `json:"power_on"`
	Tooltip  Tooltip    `json:"tooltip"`
}

// Tooltip carries the formatted hover fields. Missing values come through
// as the "N/A" sentinel, never blank.
type Tooltip struct {
	Coordinates string `json:"coordinates"`
	Speed       string `json:"speed"`
	Power       string `json:"power"`
	Timestamp   string `json:"timestamp"`
}

// Route is the simplified path view: a polyline through every valid point
// with distinguished start and end markers. Path is empty when fewer than
// two valid points exist; a lone point renders as start and end with no line.
type Route struct {
	Path    []LatLng `json:"path"`
	Markers []Marker `json:"markers"`
}

// BuildRoute derives the route view from one page of samples. Samples
// without a usable fix are skipped; the page order is preserved.
func BuildRoute(samples []telemetry.Sample) Route {
	valid := withFix(samples)
	if len(valid) == 0 {
		return Route{}
	}

	first := valid[0]
	last := valid[len(valid)-1]

	route := Route{
		Markers: []Marker{
			newMarker(MarkerStart, first),
			newMarker(MarkerEnd, last),
		},
	}

	if len(valid) < 2 {
		return route
	}

	route.Path = make([]LatLng, len(valid))
	for i, s := range valid {
		route.Path[i] = LatLng{Latitude: s.Latitude, Longitude: s.Longitude}
	}

	return route
}

// BuildMarkers derives the per-sample power view: one marker per valid
// point, no connecting path.
func BuildMarkers(samples []telemetry.Sample) []Marker {
	valid := withFix(samples)
	markers := make([]Marker, len(valid))
	for i, s := range valid {
		markers[i] = newMarker(MarkerPower, s)
	}
	return markers
}

func withFix(samples []telemetry.Sample) []telemetry.Sample {
	valid := make([]telemetry.Sample, 0, len(samples))
	for _, s := range samples {
		if s.HasFix() {
			valid = append(valid, s)
		}
	}
	return valid
}

func newMarker(kind MarkerKind, s telemetry.Sample) Marker {
	return Marker{
		Kind:     kind,
		Position: LatLng{Latitude: s.Latitude, Longitude: s.Longitude},
		PowerOn:  s.MainPower,
		Tooltip: Tooltip{
			Coordinates: FormatLatLng(s.Latitude, s.Longitude),
			Speed:       FormatSpeed(s.Speed),
			Power:       FormatPower(s.MainPower),
			Timestamp:   FormatTimestamp(s.ReportedAt),
		},
	}
}
