package refdata

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrWarehouseNotFound = errors.New("warehouse not found")
	ErrEngineerNotFound  = errors.New("field engineer not found")
	ErrVehicleNotFound   = errors.New("vehicle not found")
)

// Repository is the read-only reference-data provider movement endpoints
// resolve against. Kept behind an interface so the movement service can be
// tested without the master tables.
type Repository interface {
	GetWarehouse(ctx context.Context, id uuid.UUID) (*Warehouse, error)
	GetEngineer(ctx context.Context, id uuid.UUID) (*FieldEngineer, error)
	GetVehicle(ctx context.Context, id uuid.UUID) (*Vehicle, error)
}
