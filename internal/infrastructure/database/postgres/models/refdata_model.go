package models

import "github.com/google/uuid"

// Reference masters movements point at. Owned by other services; this
// service only reads them.

type WarehouseModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	Code         string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	Name         string    `gorm:"type:varchar(128);not null"`
	IsProduction bool      `gorm:"not null;default:false"`
}

func (WarehouseModel) TableName() string {
	return "warehouses"
}

type FieldEngineerModel struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key"`
	Code string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	Name string    `gorm:"type:varchar(128);not null"`
}

func (FieldEngineerModel) TableName() string {
	return "field_engineers"
}

type VehicleModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key"`
	RegistrationNumber string    `gorm:"type:varchar(32);not null;uniqueIndex"`
}

func (VehicleModel) TableName() string {
	return "vehicles"
}
