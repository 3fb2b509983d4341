package models

import (
	"time"

	"github.com/google/uuid"
)

// MovementModel represents the database model for device movements. The
// schema keeps one nullable reference column per endpoint flavour and side;
// the repository collapses them into the domain's tagged endpoint union so
// the kind/column mismatch class cannot reach the domain layer.
type MovementModel struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`

	// The partial unique index backstops the one-in-transit-per-device rule
	// against concurrent creates racing past the service-level custody check.
	DeviceID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uidx_movements_device_in_transit,where:movement_status = 'IN_TRANSIT'"`

	MovementType   string `gorm:"type:varchar(32);not null"`
	MovementStatus string `gorm:"type:varchar(16);not null;default:'IN_TRANSIT';index"`

	FromEntityType            string     `gorm:"type:varchar(32);not null"`
	FromEntityWarehouseID     *uuid.UUID `gorm:"type:uuid"`
	FromEntityFieldEngineerID *uuid.UUID `gorm:"type:uuid"`
	FromEntityVehicleID       *uuid.UUID `gorm:"type:uuid"`

	ToEntityType            string     `gorm:"type:varchar(32);not null"`
	ToEntityWarehouseID     *uuid.UUID `gorm:"type:uuid"`
	ToEntityFieldEngineerID *uuid.UUID `gorm:"type:uuid"`
	ToEntityVehicleID       *uuid.UUID `gorm:"type:uuid"`

	MovementDate  time.Time  `gorm:"type:date;not null;index"`
	DispatchedAt  *time.Time `gorm:"type:timestamptz"`
	ReceivedAt    *time.Time `gorm:"type:timestamptz"`
	HandoverProof *string    `gorm:"type:text"`
	Remarks       *string    `gorm:"type:text"`

	CreatedByID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time  `gorm:"not null;index"`
	UpdatedAt   time.Time  `gorm:"not null"`

	// Relations
	Device *DeviceModel `gorm:"foreignKey:DeviceID"`
}

func (MovementModel) TableName() string {
	return "device_movements"
}
