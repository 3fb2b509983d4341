package models

import (
	"time"

	"github.com/google/uuid"
)

// DeviceModel represents the database model for devices.
type DeviceModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	IMEI         string     `gorm:"type:varchar(16);not null;uniqueIndex"`
	SerialNumber *string    `gorm:"type:varchar(64);index"`
	Model        *string    `gorm:"type:varchar(64)"`
	Status       string     `gorm:"type:varchar(16);not null;default:'active';index"`
	LastSeenAt   *time.Time `gorm:"type:timestamptz"`
	CreatedAt    time.Time  `gorm:"not null"`
	UpdatedAt    time.Time  `gorm:"not null"`
}

func (DeviceModel) TableName() string {
	return "devices"
}
