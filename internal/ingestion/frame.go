package ingestion

import (
	"math"
	"strconv"
	"strings"

	"fleet-device-tracker/internal/domain/telemetry"
)

// Positional layout of a raw tracker frame. Fields are "|"-delimited ASCII;
// positions not listed carry checksum and telemetry this service does not
// model.
const (
	fieldPacketType = 0
	fieldIMEI       = 1
	fieldMainPower  = 3
	fieldLatitude   = 5
	fieldLongitude  = 6
)

// mainPowerOn is the only flag token that means external power is present.
const mainPowerOn = "1"

// DecodeFrame parses one raw frame into a telemetry sample. Decoding is
// total: short or garbled frames yield a sample with NaN coordinates and
// mainPower=false rather than an error, and the raw frame is kept for
// diagnostics. Coordinate range validation is the caller's responsibility.
func DecodeFrame(raw string) telemetry.Sample {
	fields := strings.Split(raw, "|")

	return telemetry.Sample{
		PacketType: fieldAt(fields, fieldPacketType),
		IMEI:       fieldAt(fields, fieldIMEI),
		MainPower:  fieldAt(fields, fieldMainPower) == mainPowerOn,
		Latitude:   parseCoordinate(fieldAt(fields, fieldLatitude)),
		Longitude:  parseCoordinate(fieldAt(fields, fieldLongitude)),
		Raw:        raw,
	}
}

func fieldAt(fields []string, idx int) string {
	if idx >= len(fields) {
		return ""
	}
	return fields[idx]
}

// parseCoordinate yields NaN for anything that is not a float, never zero:
// 0,0 is a real coordinate and must stay distinguishable from "no fix".
func parseCoordinate(token string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(token), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
