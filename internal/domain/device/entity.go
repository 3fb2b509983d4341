package device

import (
	"time"

	"github.com/google/uuid"
)

// Device represents a trackable GPS unit. IMEI is the hardware identifier
// telemetry frames join on.
type Device struct {
	ID           uuid.UUID
	IMEI         string
	SerialNumber *string
	Model        *string
	Status       DeviceStatus
	LastSeenAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DeviceStatus represents the operational status of a device.
type DeviceStatus string

const (
	StatusActive   DeviceStatus = "active"
	StatusInactive DeviceStatus = "inactive"
	StatusFaulty   DeviceStatus = "faulty"
	StatusRetired  DeviceStatus = "retired"
)

// IsOnline checks if the device reported within the last 5 minutes.
func (d *Device) IsOnline() bool {
	if d.LastSeenAt == nil {
		return false
	}
	return time.Since(*d.LastSeenAt) < 5*time.Minute
}
