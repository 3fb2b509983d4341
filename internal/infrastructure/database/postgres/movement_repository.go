package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-device-tracker/internal/domain/movement"
	"fleet-device-tracker/internal/infrastructure/database/postgres/models"
)

type MovementRepository struct {
	db *DB
}

func NewMovementRepository(db *DB) *MovementRepository {
	return &MovementRepository{db: db}
}

func (r *MovementRepository) Create(ctx context.Context, m *movement.DeviceMovement) error {
	m.ID = uuid.New()
	m.CreatedAt = time.Now()
	m.UpdatedAt = time.Now()
	if m.Status == "" {
		m.Status = movement.StatusInTransit
	}

	dbModel := toMovementModel(m)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		// The partial unique index on (device_id) WHERE IN_TRANSIT rejects
		// the loser of two concurrent creates for the same device.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return movement.ErrCustodyConflict
		}
		return fmt.Errorf("failed to create movement: %w", err)
	}

	m.ID = dbModel.ID
	m.CreatedAt = dbModel.CreatedAt
	m.UpdatedAt = dbModel.UpdatedAt

	return nil
}

func (r *MovementRepository) GetByID(ctx context.Context, movementID uuid.UUID) (*movement.DeviceMovement, error) {
	var dbModel models.MovementModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", movementID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, movement.ErrMovementNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get movement: %w", err)
	}

	return toMovementEntity(&dbModel), nil
}

func (r *MovementRepository) ActiveByDevice(ctx context.Context, deviceID uuid.UUID) (*movement.DeviceMovement, error) {
	var dbModel models.MovementModel
	err := r.db.DB.WithContext(ctx).
		Where("device_id = ? AND movement_status = ?", deviceID, string(movement.StatusInTransit)).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, movement.ErrMovementNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active movement: %w", err)
	}

	return toMovementEntity(&dbModel), nil
}

func (r *MovementRepository) List(ctx context.Context, filter *movement.Filter) ([]*movement.DeviceMovement, int64, error) {
	var dbModels []models.MovementModel
	var total int64

	db := r.db.DB.WithContext(ctx).Model(&models.MovementModel{})

	if filter.DeviceID != nil {
		db = db.Where("device_id = ?", *filter.DeviceID)
	}
	if filter.Status != nil {
		db = db.Where("movement_status = ?", string(*filter.Status))
	}
	if filter.Type != nil {
		db = db.Where("movement_type = ?", string(*filter.Type))
	}
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		db = db.Where(
			"remarks ILIKE ? OR device_id IN (SELECT id FROM devices WHERE imei ILIKE ? OR serial_number ILIKE ?)",
			search, search, search)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count movements: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	// Ordering is fixed so offset pagination stays stable across pages.
	err := db.Order("movement_date DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&dbModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list movements: %w", err)
	}

	movements := make([]*movement.DeviceMovement, len(dbModels))
	for i := range dbModels {
		movements[i] = toMovementEntity(&dbModels[i])
	}

	return movements, total, nil
}

func (r *MovementRepository) Close(ctx context.Context, movementID uuid.UUID, status movement.MovementStatus, receivedAt *time.Time, remarks *string) error {
	updates := map[string]interface{}{
		"movement_status": string(status),
		"updated_at":      time.Now(),
	}
	if receivedAt != nil {
		updates["received_at"] = *receivedAt
	}
	if remarks != nil {
		updates["remarks"] = *remarks
	}

	// The status guard keeps terminal movements immutable even under
	// concurrent receive/cancel requests.
	result := r.db.DB.WithContext(ctx).
		Model(&models.MovementModel{}).
		Where("id = ? AND movement_status = ?", movementID, string(movement.StatusInTransit)).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to close movement: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return movement.ErrMovementNotFound
	}

	return nil
}

func toMovementModel(m *movement.DeviceMovement) *models.MovementModel {
	dbModel := &models.MovementModel{
		ID:             m.ID,
		DeviceID:       m.DeviceID,
		MovementType:   string(m.Type),
		MovementStatus: string(m.Status),
		FromEntityType: string(m.From.Kind),
		ToEntityType:   string(m.To.Kind),
		MovementDate:   m.MovementDate,
		DispatchedAt:   m.DispatchedAt,
		ReceivedAt:     m.ReceivedAt,
		HandoverProof:  m.HandoverProof,
		Remarks:        m.Remarks,
		CreatedByID:    m.CreatedByID,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}

	setEndpointColumns(m.From, &dbModel.FromEntityWarehouseID, &dbModel.FromEntityFieldEngineerID, &dbModel.FromEntityVehicleID)
	setEndpointColumns(m.To, &dbModel.ToEntityWarehouseID, &dbModel.ToEntityFieldEngineerID, &dbModel.ToEntityVehicleID)

	return dbModel
}

func setEndpointColumns(e movement.Endpoint, warehouseID, engineerID, vehicleID **uuid.UUID) {
	id := e.ID
	switch {
	case e.IsWarehouse():
		*warehouseID = &id
	case e.Kind == movement.KindEngineer:
		*engineerID = &id
	case e.Kind == movement.KindVehicle:
		*vehicleID = &id
	}
}

func toMovementEntity(dbModel *models.MovementModel) *movement.DeviceMovement {
	return &movement.DeviceMovement{
		ID:            dbModel.ID,
		DeviceID:      dbModel.DeviceID,
		Type:          movement.MovementType(dbModel.MovementType),
		Status:        movement.MovementStatus(dbModel.MovementStatus),
		From:          toEndpoint(dbModel.FromEntityType, dbModel.FromEntityWarehouseID, dbModel.FromEntityFieldEngineerID, dbModel.FromEntityVehicleID),
		To:            toEndpoint(dbModel.ToEntityType, dbModel.ToEntityWarehouseID, dbModel.ToEntityFieldEngineerID, dbModel.ToEntityVehicleID),
		MovementDate:  dbModel.MovementDate,
		DispatchedAt:  dbModel.DispatchedAt,
		ReceivedAt:    dbModel.ReceivedAt,
		HandoverProof: dbModel.HandoverProof,
		Remarks:       dbModel.Remarks,
		CreatedByID:   dbModel.CreatedByID,
		CreatedAt:     dbModel.CreatedAt,
		UpdatedAt:     dbModel.UpdatedAt,
	}
}

// toEndpoint rebuilds the endpoint union from the legacy column triple.
// When a row disagrees with its declared kind the populated column wins in
// the fixed priority order warehouse, engineer, vehicle; a row with no
// populated column keeps the declared kind and a nil ID, which resolves to
// the Unknown label upstream.
func toEndpoint(kind string, warehouseID, engineerID, vehicleID *uuid.UUID) movement.Endpoint {
	e := movement.Endpoint{Kind: movement.EndpointKind(kind)}

	declared := idForKind(e.Kind, warehouseID, engineerID, vehicleID)
	if declared != nil {
		e.ID = *declared
		return e
	}

	switch {
	case warehouseID != nil:
		return movement.Endpoint{Kind: movement.KindWarehouse, ID: *warehouseID}
	case engineerID != nil:
		return movement.Endpoint{Kind: movement.KindEngineer, ID: *engineerID}
	case vehicleID != nil:
		return movement.Endpoint{Kind: movement.KindVehicle, ID: *vehicleID}
	}

	return e
}

func idForKind(kind movement.EndpointKind, warehouseID, engineerID, vehicleID *uuid.UUID) *uuid.UUID {
	switch kind {
	case movement.KindWarehouse, movement.KindProductionWarehouse:
		return warehouseID
	case movement.KindEngineer:
		return engineerID
	case movement.KindVehicle:
		return vehicleID
	}
	return nil
}
