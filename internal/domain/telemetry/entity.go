package telemetry

import (
	"math"
	"time"
)

// Sample is one decoded GPS/power report from a device. A sample is a pure
// value: it has no identity beyond its position in the device's
// chronological sequence.
type Sample struct {
	PacketType string
	IMEI       string
	MainPower  bool

	// Latitude/Longitude are NaN when the source tokens were not numeric.
	// Range validation is the caller's concern.
	Latitude  float64
	Longitude float64

	// Populated by the aggregation layer, not by the frame decoder.
	Speed      *float64
	ReportedAt *time.Time

	// Raw keeps the undecoded frame for diagnostics.
	Raw string
}

// HasFix reports whether the sample carries usable coordinates. Samples
// without a fix stay in pages for record-count fidelity but are excluded
// from spatial rendering.
func (s Sample) HasFix() bool {
	return !math.IsNaN(s.Latitude) && !math.IsNaN(s.Longitude)
}
