package postgres

import (
	"context"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"fleet-device-tracker/internal/domain/telemetry"
	"fleet-device-tracker/internal/infrastructure/database/postgres/models"
)

type TelemetryRepository struct {
	db *DB
}

func NewTelemetryRepository(db *DB) *TelemetryRepository {
	return &TelemetryRepository{db: db}
}

// ListByIMEI returns samples ascending by report time, ties broken by
// insertion order. This is the canonical stable ordering renderers rely on
// for start/end markers.
func (r *TelemetryRepository) ListByIMEI(ctx context.Context, imei string, filter *telemetry.Filter) ([]telemetry.Sample, int64, error) {
	var dbModels []models.TelemetrySampleModel
	var total int64

	db := r.db.DB.WithContext(ctx).
		Model(&models.TelemetrySampleModel{}).
		Where("imei = ?", imei)

	if filter.Search != "" {
		db = db.Where("raw ILIKE ?", "%"+filter.Search+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count samples: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	err := db.Order("reported_at ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&dbModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list samples: %w", err)
	}

	samples := make([]telemetry.Sample, len(dbModels))
	for i := range dbModels {
		samples[i] = toSampleEntity(&dbModels[i])
	}

	return samples, total, nil
}

// BatchInsert persists a batch of decoded samples in one transaction.
func (r *TelemetryRepository) BatchInsert(ctx context.Context, samples []telemetry.Sample) error {
	if len(samples) == 0 {
		return nil
	}

	dbModels := make([]models.TelemetrySampleModel, len(samples))
	for i, s := range samples {
		dbModels[i] = toSampleModel(s)
	}

	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.CreateInBatches(dbModels, 500).Error; err != nil {
			return fmt.Errorf("failed to insert sample batch: %w", err)
		}
		return nil
	})
}

func toSampleModel(s telemetry.Sample) models.TelemetrySampleModel {
	m := models.TelemetrySampleModel{
		PacketType: s.PacketType,
		IMEI:       s.IMEI,
		MainPower:  s.MainPower,
		Speed:      s.Speed,
		Raw:        s.Raw,
	}

	if !math.IsNaN(s.Latitude) {
		lat := s.Latitude
		m.Latitude = &lat
	}
	if !math.IsNaN(s.Longitude) {
		lon := s.Longitude
		m.Longitude = &lon
	}

	if s.ReportedAt != nil {
		m.ReportedAt = *s.ReportedAt
	} else {
		m.ReportedAt = time.Now()
	}

	return m
}

func toSampleEntity(m *models.TelemetrySampleModel) telemetry.Sample {
	s := telemetry.Sample{
		PacketType: m.PacketType,
		IMEI:       m.IMEI,
		MainPower:  m.MainPower,
		Latitude:   math.NaN(),
		Longitude:  math.NaN(),
		Speed:      m.Speed,
		Raw:        m.Raw,
	}

	if m.Latitude != nil {
		s.Latitude = *m.Latitude
	}
	if m.Longitude != nil {
		s.Longitude = *m.Longitude
	}

	reportedAt := m.ReportedAt
	s.ReportedAt = &reportedAt

	return s
}
