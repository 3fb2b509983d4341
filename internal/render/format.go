package render

import (
	"fmt"
	"math"
	"time"
)

// NotAvailable is the sentinel every formatter in this package returns for
// missing or unparseable input. Formatters never panic and never emit
// garbage values.
const NotAvailable = "N/A"

// FormatLatLng renders a coordinate pair with fixed precision.
func FormatLatLng(lat, lng float64) string {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return NotAvailable
	}
	return fmt.Sprintf("%.6f, %.6f", lat, lng)
}

// FormatSpeed renders a speed in km/h.
func FormatSpeed(speed *float64) string {
	if speed == nil || math.IsNaN(*speed) || *speed < 0 {
		return NotAvailable
	}
	return fmt.Sprintf("%.1f km/h", *speed)
}

// FormatTimestamp renders a report time in the operator's display format.
func FormatTimestamp(ts *time.Time) string {
	if ts == nil || ts.IsZero() {
		return NotAvailable
	}
	return ts.Format("02 Jan 2006 15:04:05")
}

// FormatPower renders the main-power flag.
func FormatPower(on bool) string {
	if on {
		return "Power On"
	}
	return "Power Off"
}
