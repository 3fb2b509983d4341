package render

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-device-tracker/internal/domain/telemetry"
)

func sampleAt(lat, lng float64, power bool) telemetry.Sample {
	return telemetry.Sample{
		PacketType: "TRK",
		IMEI:       "359632107245618",
		MainPower:  power,
		Latitude:   lat,
		Longitude:  lng,
	}
}

func noFixSample() telemetry.Sample {
	return sampleAt(math.NaN(), math.NaN(), true)
}

func TestBuildRoute(t *testing.T) {
	t.Run("connects all valid points with start and end markers", func(t *testing.T) {
		samples := []telemetry.Sample{
			sampleAt(10.762622, 106.660172, true),
			sampleAt(10.763001, 106.661544, true),
			sampleAt(10.764120, 106.662810, false),
		}

		route := BuildRoute(samples)

		require.Len(t, route.Path, 3)
		assert.Equal(t, LatLng{Latitude: 10.762622, Longitude: 106.660172}, route.Path[0])
		assert.Equal(t, LatLng{Latitude: 10.764120, Longitude: 106.662810}, route.Path[2])

		require.Len(t, route.Markers, 2)
		assert.Equal(t, MarkerStart, route.Markers[0].Kind)
		assert.Equal(t, route.Path[0], route.Markers[0].Position)
		assert.Equal(t, MarkerEnd, route.Markers[1].Kind)
		assert.Equal(t, route.Path[2], route.Markers[1].Position)
	})

	t.Run("skips samples without a fix", func(t *testing.T) {
		samples := []telemetry.Sample{
			noFixSample(),
			sampleAt(10.762622, 106.660172, true),
			noFixSample(),
			sampleAt(10.763001, 106.661544, true),
		}

		route := BuildRoute(samples)

		require.Len(t, route.Path, 2)
		assert.Equal(t, LatLng{Latitude: 10.762622, Longitude: 106.660172}, route.Markers[0].Position)
		assert.Equal(t, LatLng{Latitude: 10.763001, Longitude: 106.661544}, route.Markers[1].Position)
	})

	t.Run("single valid point renders start and end without a path", func(t *testing.T) {
		route := BuildRoute([]telemetry.Sample{
			noFixSample(),
			sampleAt(10.762622, 106.660172, true),
		})

		assert.Empty(t, route.Path)
		require.Len(t, route.Markers, 2)
		assert.Equal(t, MarkerStart, route.Markers[0].Kind)
		assert.Equal(t, MarkerEnd, route.Markers[1].Kind)
		assert.Equal(t, route.Markers[0].Position, route.Markers[1].Position)
	})

	t.Run("no valid points renders an empty route", func(t *testing.T) {
		route := BuildRoute([]telemetry.Sample{noFixSample(), noFixSample()})
		assert.Empty(t, route.Path)
		assert.Empty(t, route.Markers)
	})

	t.Run("empty page renders an empty route", func(t *testing.T) {
		route := BuildRoute(nil)
		assert.Empty(t, route.Path)
		assert.Empty(t, route.Markers)
	})

	t.Run("zero coordinates are a real position", func(t *testing.T) {
		route := BuildRoute([]telemetry.Sample{
			sampleAt(0, 0, true),
			sampleAt(0.0001, 0.0001, true),
		})
		require.Len(t, route.Path, 2)
		assert.Equal(t, LatLng{}, route.Path[0])
	})
}

func TestBuildMarkers(t *testing.T) {
	t.Run("one marker per valid point", func(t *testing.T) {
		ts := time.Date(2026, time.March, 14, 9, 26, 53, 0, time.UTC)
		speed := 42.5
		samples := []telemetry.Sample{
			{IMEI: "359632107245618", MainPower: true, Latitude: 10.762622, Longitude: 106.660172, Speed: &speed, ReportedAt: &ts},
			noFixSample(),
			{IMEI: "359632107245618", MainPower: false, Latitude: 10.763001, Longitude: 106.661544},
		}

		markers := BuildMarkers(samples)

		require.Len(t, markers, 2)
		assert.Equal(t, MarkerPower, markers[0].Kind)
		assert.True(t, markers[0].PowerOn)
		assert.False(t, markers[1].PowerOn)

		assert.Equal(t, "10.762622, 106.660172", markers[0].Tooltip.Coordinates)
		assert.Equal(t, "42.5 km/h", markers[0].Tooltip.Speed)
		assert.Equal(t, "Power On", markers[0].Tooltip.Power)
		assert.Equal(t, "14 Mar 2026 09:26:53", markers[0].Tooltip.Timestamp)
	})

	t.Run("missing detail falls back to the sentinel", func(t *testing.T) {
		markers := BuildMarkers([]telemetry.Sample{
			{IMEI: "359632107245618", Latitude: 10.762622, Longitude: 106.660172},
		})

		require.Len(t, markers, 1)
		assert.Equal(t, NotAvailable, markers[0].Tooltip.Speed)
		assert.Equal(t, NotAvailable, markers[0].Tooltip.Timestamp)
		assert.Equal(t, "Power Off", markers[0].Tooltip.Power)
	})
}

func TestFormatters(t *testing.T) {
	t.Run("coordinates", func(t *testing.T) {
		assert.Equal(t, "10.762622, 106.660172", FormatLatLng(10.762622, 106.660172))
		assert.Equal(t, "0.000000, 0.000000", FormatLatLng(0, 0))
		assert.Equal(t, NotAvailable, FormatLatLng(math.NaN(), 106.660172))
		assert.Equal(t, NotAvailable, FormatLatLng(10.762622, math.NaN()))
	})

	t.Run("speed", func(t *testing.T) {
		speed := 15.0
		assert.Equal(t, "15.0 km/h", FormatSpeed(&speed))

		negative := -1.0
		assert.Equal(t, NotAvailable, FormatSpeed(&negative))

		nan := math.NaN()
		assert.Equal(t, NotAvailable, FormatSpeed(&nan))
		assert.Equal(t, NotAvailable, FormatSpeed(nil))
	})

	t.Run("timestamp", func(t *testing.T) {
		ts := time.Date(2026, time.January, 2, 15, 4, 5, 0, time.UTC)
		assert.Equal(t, "02 Jan 2026 15:04:05", FormatTimestamp(&ts))
		assert.Equal(t, NotAvailable, FormatTimestamp(nil))

		var zero time.Time
		assert.Equal(t, NotAvailable, FormatTimestamp(&zero))
	})
}
