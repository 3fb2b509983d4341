package movement

import (
	"math"
	"time"

	"github.com/google/uuid"

	domainMovement "fleet-device-tracker/internal/domain/movement"
)

// UnknownLabel is the sentinel for an endpoint whose reference record could
// not be resolved. Labels are never blank.
const UnknownLabel = "Unknown"

// CreateMovementRequest carries the observed wire shape: a type discriminator
// per side plus three mutually exclusive reference fields. The validator
// collapses each side into a domain Endpoint before anything else runs.
type CreateMovementRequest struct {
	DeviceID     uuid.UUID `json:"device_id" validate:"required"`
	MovementType string    `json:"movement_type" validate:"required"`

	FromEntityType            string     `json:"from_entity_type" validate:"required"`
	FromEntityWarehouseID     *uuid.UUID `json:"from_entity_warehouse_id"`
	FromEntityFieldEngineerID *uuid.UUID `json:"from_entity_field_engineer_id"`
	FromEntityVehicleID       *uuid.UUID `json:"from_entity_vehicle_id"`

	ToEntityType            string     `json:"to_entity_type" validate:"required"`
	ToEntityWarehouseID     *uuid.UUID `json:"to_entity_warehouse_id"`
	ToEntityFieldEngineerID *uuid.UUID `json:"to_entity_field_engineer_id"`
	ToEntityVehicleID       *uuid.UUID `json:"to_entity_vehicle_id"`

	MovementDate  *time.Time `json:"movement_date" validate:"required"`
	DispatchedAt  *time.Time `json:"dispatched_at" validate:"omitempty"`
	HandoverProof *string    `json:"handover_proof" validate:"omitempty,max=500"`
	Remarks       *string    `json:"remarks" validate:"omitempty,max=500"`
}

type ReceiveMovementRequest struct {
	ReceivedAt *time.Time `json:"received_at" validate:"omitempty"`
	Remarks    *string    `json:"remarks" validate:"omitempty,max=500"`
}

type CancelMovementRequest struct {
	Remarks *string `json:"remarks" validate:"omitempty,max=500"`
}

// MovementFilterRequest uses the backend's offset/limit pagination contract.
type MovementFilterRequest struct {
	DeviceID *uuid.UUID `form:"device_id"`
	Status   string     `form:"status" validate:"omitempty,oneof=IN_TRANSIT RECEIVED CANCELLED"`
	Type     string     `form:"type" validate:"omitempty,oneof=PROD_TO_WH WH_TO_ENGINEER ENGINEER_TO_VEHICLE"`
	Search   string     `form:"search"`
	Offset   int        `form:"offset" validate:"omitempty,min=0"`
	Limit    int        `form:"limit" validate:"omitempty,min=1,max=100"`
}

// EndpointResponse is one resolved side of a movement.
type EndpointResponse struct {
	Kind  string    `json:"kind"`
	ID    uuid.UUID `json:"id"`
	Label string    `json:"label"`
}

type MovementResponse struct {
	ID       uuid.UUID `json:"id"`
	DeviceID uuid.UUID `json:"device_id"`

	Type   string `json:"movement_type"`
	Status string `json:"movement_status"`

	From EndpointResponse `json:"from"`
	To   EndpointResponse `json:"to"`

	MovementDate  time.Time  `json:"movement_date"`
	DispatchedAt  *time.Time `json:"dispatched_at,omitempty"`
	ReceivedAt    *time.Time `json:"received_at,omitempty"`
	HandoverProof *string    `json:"handover_proof,omitempty"`
	Remarks       *string    `json:"remarks,omitempty"`

	CreatedByID *uuid.UUID `json:"created_by_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type MovementListResponse struct {
	Movements  []MovementResponse `json:"movements"`
	Total      int64              `json:"total"`
	TotalPages int                `json:"total_pages"`
}

func toMovementResponse(m *domainMovement.DeviceMovement, fromLabel, toLabel string) MovementResponse {
	return MovementResponse{
		ID:       m.ID,
		DeviceID: m.DeviceID,
		Type:     string(m.Type),
		Status:   string(m.Status),
		From: EndpointResponse{
			Kind:  string(m.From.Kind),
			ID:    m.From.ID,
			Label: fromLabel,
		},
		To: EndpointResponse{
			Kind:  string(m.To.Kind),
			ID:    m.To.ID,
			Label: toLabel,
		},
		MovementDate:  m.MovementDate,
		DispatchedAt:  m.DispatchedAt,
		ReceivedAt:    m.ReceivedAt,
		HandoverProof: m.HandoverProof,
		Remarks:       m.Remarks,
		CreatedByID:   m.CreatedByID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}
