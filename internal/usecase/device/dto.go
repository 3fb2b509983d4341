package device

import (
	"time"

	"github.com/google/uuid"

	domainDevice "fleet-device-tracker/internal/domain/device"
)

// DeviceResponse represents a device in API responses.
type DeviceResponse struct {
	ID           uuid.UUID  `json:"id"`
	IMEI         string     `json:"imei"`
	SerialNumber *string    `json:"serial_number,omitempty"`
	Model        *string    `json:"model,omitempty"`
	Status       string     `json:"status"`
	Online       bool       `json:"online"`
	LastSeenAt   *time.Time `json:"last_seen_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func toDeviceResponse(d *domainDevice.Device) DeviceResponse {
	return DeviceResponse{
		ID:           d.ID,
		IMEI:         d.IMEI,
		SerialNumber: d.SerialNumber,
		Model:        d.Model,
		Status:       string(d.Status),
		Online:       d.IsOnline(),
		LastSeenAt:   d.LastSeenAt,
		CreatedAt:    d.CreatedAt,
	}
}
