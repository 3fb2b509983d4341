package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-device-tracker/internal/domain/refdata"
	"fleet-device-tracker/internal/infrastructure/database/postgres/models"
)

type RefdataRepository struct {
	db *DB
}

func NewRefdataRepository(db *DB) *RefdataRepository {
	return &RefdataRepository{db: db}
}

func (r *RefdataRepository) GetWarehouse(ctx context.Context, id uuid.UUID) (*refdata.Warehouse, error) {
	var m models.WarehouseModel
	err := r.db.DB.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, refdata.ErrWarehouseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get warehouse: %w", err)
	}

	return &refdata.Warehouse{
		ID:           m.ID,
		Code:         m.Code,
		Name:         m.Name,
		IsProduction: m.IsProduction,
	}, nil
}

func (r *RefdataRepository) GetEngineer(ctx context.Context, id uuid.UUID) (*refdata.FieldEngineer, error) {
	var m models.FieldEngineerModel
	err := r.db.DB.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, refdata.ErrEngineerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get field engineer: %w", err)
	}

	return &refdata.FieldEngineer{
		ID:   m.ID,
		Code: m.Code,
		Name: m.Name,
	}, nil
}

func (r *RefdataRepository) GetVehicle(ctx context.Context, id uuid.UUID) (*refdata.Vehicle, error) {
	var m models.VehicleModel
	err := r.db.DB.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, refdata.ErrVehicleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	return &refdata.Vehicle{
		ID:                 m.ID,
		RegistrationNumber: m.RegistrationNumber,
	}, nil
}
