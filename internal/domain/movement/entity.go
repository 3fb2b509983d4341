package movement

import (
	"time"

	"github.com/google/uuid"
)

// MovementStatus represents the lifecycle state of a device movement.
type MovementStatus string

const (
	StatusInTransit MovementStatus = "IN_TRANSIT" // Created, device travelling
	StatusReceived  MovementStatus = "RECEIVED"   // Receiving side confirmed handover
	StatusCancelled MovementStatus = "CANCELLED"  // Cancelled before receipt
)

// MovementType is the closed set of relocation kinds the backend accepts.
// The display layer knows a broader symmetric vocabulary (ENGINEER_TO_WH,
// VEHICLE_TO_ENGINEER, ...); those are an extension point and are rejected
// here until the backend models them.
type MovementType string

const (
	TypeProdToWarehouse   MovementType = "PROD_TO_WH"
	TypeWarehouseToEng    MovementType = "WH_TO_ENGINEER"
	TypeEngineerToVehicle MovementType = "ENGINEER_TO_VEHICLE"
)

// EndpointKind discriminates which party holds a device on one side of a
// movement.
type EndpointKind string

const (
	KindProductionWarehouse EndpointKind = "PRODUCTION_WAREHOUSE"
	KindWarehouse           EndpointKind = "WAREHOUSE"
	KindEngineer            EndpointKind = "ENGINEER"
	KindVehicle             EndpointKind = "VEHICLE"
)

// Endpoint is one side of a movement: exactly one party, identified by kind.
// Warehouses (production or field), engineers and vehicles live in separate
// reference tables; Kind selects which table ID points into.
type Endpoint struct {
	Kind EndpointKind
	ID   uuid.UUID
}

// IsWarehouse reports whether the endpoint is a warehouse of either flavour.
func (e Endpoint) IsWarehouse() bool {
	return e.Kind == KindWarehouse || e.Kind == KindProductionWarehouse
}

// DeviceMovement records one physical relocation of a device between two
// endpoints. Movements are an audit trail: core fields are immutable after
// creation and records are never deleted.
type DeviceMovement struct {
	ID       uuid.UUID
	DeviceID uuid.UUID

	Type MovementType
	From Endpoint
	To   Endpoint

	Status MovementStatus

	MovementDate  time.Time
	DispatchedAt  *time.Time
	ReceivedAt    *time.Time
	HandoverProof *string
	Remarks       *string

	CreatedByID *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsTerminal reports whether the movement can no longer change state.
func (m *DeviceMovement) IsTerminal() bool {
	return m.Status == StatusReceived || m.Status == StatusCancelled
}
