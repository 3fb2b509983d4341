package telemetry

import (
	"math"
	"time"

	domainTelemetry "fleet-device-tracker/internal/domain/telemetry"
)

// TelemetryFilterRequest uses the backend's offset/limit pagination contract.
type TelemetryFilterRequest struct {
	IMEI   string `form:"imei" validate:"required,numeric,min=14,max=16"`
	Search string `form:"search"`
	Offset int    `form:"offset" validate:"omitempty,min=0"`
	Limit  int    `form:"limit" validate:"omitempty,min=1,max=500"`
}

// SampleResponse mirrors the stored sample. Coordinates are nil, not zero,
// when the frame carried no usable fix.
type SampleResponse struct {
	PacketType string     `json:"packet_type"`
	IMEI       string     `json:"imei"`
	MainPower  bool       `json:"main_power"`
	Latitude   *float64   `json:"latitude"`
	Longitude  *float64   `json:"longitude"`
	Speed      *float64   `json:"speed,omitempty"`
	ReportedAt *time.Time `json:"timestamp_server,omitempty"`
	Raw        string     `json:"raw"`
}

type SampleListResponse struct {
	Samples    []SampleResponse `json:"samples"`
	Total      int64            `json:"total"`
	TotalPages int              `json:"total_pages"`
}

func toSampleResponse(s domainTelemetry.Sample) SampleResponse {
	resp := SampleResponse{
		PacketType: s.PacketType,
		IMEI:       s.IMEI,
		MainPower:  s.MainPower,
		Speed:      s.Speed,
		ReportedAt: s.ReportedAt,
		Raw:        s.Raw,
	}
	if !math.IsNaN(s.Latitude) {
		lat := s.Latitude
		resp.Latitude = &lat
	}
	if !math.IsNaN(s.Longitude) {
		lon := s.Longitude
		resp.Longitude = &lon
	}
	return resp
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}
