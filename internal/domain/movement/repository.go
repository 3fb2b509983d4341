package movement

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for movement persistence. There is no
// Delete: movements form the device custody audit trail.
type Repository interface {
	Create(ctx context.Context, m *DeviceMovement) error
	GetByID(ctx context.Context, movementID uuid.UUID) (*DeviceMovement, error)
	List(ctx context.Context, filter *Filter) ([]*DeviceMovement, int64, error)

	// ActiveByDevice returns the device's IN_TRANSIT movement, or
	// ErrMovementNotFound when custody is settled.
	ActiveByDevice(ctx context.Context, deviceID uuid.UUID) (*DeviceMovement, error)

	// Close finalises an IN_TRANSIT movement. receivedAt is set only for
	// transitions to RECEIVED.
	Close(ctx context.Context, movementID uuid.UUID, status MovementStatus, receivedAt *time.Time, remarks *string) error
}

// Filter represents filtering options for listing movements.
type Filter struct {
	DeviceID *uuid.UUID
	Status   *MovementStatus
	Type     *MovementType

	// Search matches device identifying fields (IMEI, serial) and remarks.
	Search string

	Offset int
	Limit  int
}
