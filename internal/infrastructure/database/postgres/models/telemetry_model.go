package models

import "time"

// TelemetrySampleModel represents the database model for decoded tracker
// frames. Coordinates are stored as nullable columns: NULL means the frame
// carried no usable fix, which must stay distinguishable from 0,0.
type TelemetrySampleModel struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	PacketType string    `gorm:"type:varchar(16);not null"`
	IMEI       string    `gorm:"type:varchar(16);not null;index:idx_samples_imei_reported"`
	MainPower  bool      `gorm:"not null"`
	Latitude   *float64  `gorm:"type:double precision"`
	Longitude  *float64  `gorm:"type:double precision"`
	Speed      *float64  `gorm:"type:double precision"`
	Raw        string    `gorm:"type:text;not null"`
	ReportedAt time.Time `gorm:"type:timestamptz;not null;index:idx_samples_imei_reported"`
}

func (TelemetrySampleModel) TableName() string {
	return "telemetry_samples"
}
