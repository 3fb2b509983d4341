package movement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainDevice "fleet-device-tracker/internal/domain/device"
	domainMovement "fleet-device-tracker/internal/domain/movement"
	"fleet-device-tracker/internal/domain/refdata"
	"fleet-device-tracker/internal/logger"
	appErrors "fleet-device-tracker/pkg/errors"
)

// Service implements the movement transition engine and query service.
type Service struct {
	movementRepo domainMovement.Repository
	deviceRepo   domainDevice.Repository
	refRepo      refdata.Repository
}

// NewService creates a new movement service.
func NewService(
	movementRepo domainMovement.Repository,
	deviceRepo domainDevice.Repository,
	refRepo refdata.Repository,
) *Service {
	return &Service{
		movementRepo: movementRepo,
		deviceRepo:   deviceRepo,
		refRepo:      refRepo,
	}
}

// Create opens a new movement in IN_TRANSIT. A device can have at most one
// open movement; custody cannot be split.
func (s *Service) Create(ctx context.Context, createdBy *uuid.UUID, req *CreateMovementRequest) (*MovementResponse, error) {
	movementType, from, to, err := validateCreate(req)
	if err != nil {
		return nil, err
	}

	if _, err := s.deviceRepo.GetByID(ctx, req.DeviceID); err != nil {
		if errors.Is(err, domainDevice.ErrDeviceNotFound) {
			return nil, appErrors.Validation("device_id", "device does not exist")
		}
		return nil, err
	}

	if err := s.checkEndpointExists(ctx, "from", from); err != nil {
		return nil, err
	}
	if err := s.checkEndpointExists(ctx, "to", to); err != nil {
		return nil, err
	}

	active, err := s.movementRepo.ActiveByDevice(ctx, req.DeviceID)
	if err != nil && !errors.Is(err, domainMovement.ErrMovementNotFound) {
		return nil, err
	}
	if active != nil {
		return nil, appErrors.NewAppError(
			appErrors.CodeStateConflict,
			fmt.Sprintf("Device already has movement %s in transit", active.ID),
			domainMovement.ErrCustodyConflict,
		)
	}

	m := &domainMovement.DeviceMovement{
		DeviceID:      req.DeviceID,
		Type:          movementType,
		From:          from,
		To:            to,
		Status:        domainMovement.StatusInTransit,
		MovementDate:  *req.MovementDate,
		DispatchedAt:  req.DispatchedAt,
		HandoverProof: emptyToNil(req.HandoverProof),
		Remarks:       emptyToNil(req.Remarks),
		CreatedByID:   createdBy,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := s.movementRepo.Create(ctx, m); err != nil {
		if errors.Is(err, domainMovement.ErrCustodyConflict) {
			return nil, appErrors.NewAppError(
				appErrors.CodeStateConflict,
				"Device already has a movement in transit",
				err,
			)
		}
		return nil, err
	}

	logger.Info("Movement created",
		zap.String("movement_id", m.ID.String()),
		zap.String("device_id", m.DeviceID.String()),
		zap.String("movement_type", string(m.Type)),
		zap.String("event", "movement_created"),
	)

	return s.respond(ctx, m), nil
}

// Receive marks an IN_TRANSIT movement as handed over.
func (s *Service) Receive(ctx context.Context, movementID uuid.UUID, req *ReceiveMovementRequest) (*MovementResponse, error) {
	if err := ValidateStruct(req); err != nil {
		return nil, err
	}

	m, err := s.getMovement(ctx, movementID)
	if err != nil {
		return nil, err
	}

	if err := ValidateStatusTransition(m.Status, domainMovement.StatusReceived); err != nil {
		return nil, err
	}

	receivedAt := time.Now()
	if req.ReceivedAt != nil {
		receivedAt = *req.ReceivedAt
	}

	if err := s.movementRepo.Close(ctx, movementID, domainMovement.StatusReceived, &receivedAt, emptyToNil(req.Remarks)); err != nil {
		return nil, err
	}

	logger.Info("Movement received",
		zap.String("movement_id", movementID.String()),
		zap.String("event", "movement_received"),
	)

	updated, err := s.getMovement(ctx, movementID)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, updated), nil
}

// Cancel voids an IN_TRANSIT movement.
func (s *Service) Cancel(ctx context.Context, movementID uuid.UUID, req *CancelMovementRequest) (*MovementResponse, error) {
	if err := ValidateStruct(req); err != nil {
		return nil, err
	}

	m, err := s.getMovement(ctx, movementID)
	if err != nil {
		return nil, err
	}

	if err := ValidateStatusTransition(m.Status, domainMovement.StatusCancelled); err != nil {
		return nil, err
	}

	if err := s.movementRepo.Close(ctx, movementID, domainMovement.StatusCancelled, nil, emptyToNil(req.Remarks)); err != nil {
		return nil, err
	}

	logger.Info("Movement cancelled",
		zap.String("movement_id", movementID.String()),
		zap.String("event", "movement_cancelled"),
	)

	updated, err := s.getMovement(ctx, movementID)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, updated), nil
}

// Get returns a single movement with resolved endpoint labels.
func (s *Service) Get(ctx context.Context, movementID uuid.UUID) (*MovementResponse, error) {
	m, err := s.getMovement(ctx, movementID)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, m), nil
}

// List returns a page of movements with resolved from/to labels.
func (s *Service) List(ctx context.Context, req *MovementFilterRequest) (*MovementListResponse, error) {
	if err := ValidateStruct(req); err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	filter := &domainMovement.Filter{
		DeviceID: req.DeviceID,
		Search:   req.Search,
		Offset:   offset,
		Limit:    limit,
	}
	if req.Status != "" {
		status := domainMovement.MovementStatus(req.Status)
		filter.Status = &status
	}
	if req.Type != "" {
		movementType := domainMovement.MovementType(req.Type)
		filter.Type = &movementType
	}

	movements, total, err := s.movementRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]MovementResponse, len(movements))
	for i, m := range movements {
		responses[i] = *s.respond(ctx, m)
	}

	return &MovementListResponse{
		Movements:  responses,
		Total:      total,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (s *Service) getMovement(ctx context.Context, movementID uuid.UUID) (*domainMovement.DeviceMovement, error) {
	m, err := s.movementRepo.GetByID(ctx, movementID)
	if err != nil {
		if errors.Is(err, domainMovement.ErrMovementNotFound) {
			return nil, appErrors.NotFound(domainMovement.ErrMovementNotFound)
		}
		return nil, err
	}
	return m, nil
}

func (s *Service) respond(ctx context.Context, m *domainMovement.DeviceMovement) *MovementResponse {
	resp := toMovementResponse(m, s.resolveLabel(ctx, m.From), s.resolveLabel(ctx, m.To))
	return &resp
}

// resolveLabel produces the human-readable endpoint label: warehouse code,
// then engineer code, then vehicle registration; Unknown when the reference
// record is missing.
func (s *Service) resolveLabel(ctx context.Context, e domainMovement.Endpoint) string {
	if e.ID == uuid.Nil {
		return UnknownLabel
	}

	switch {
	case e.IsWarehouse():
		if wh, err := s.refRepo.GetWarehouse(ctx, e.ID); err == nil {
			return wh.Code
		}
	case e.Kind == domainMovement.KindEngineer:
		if eng, err := s.refRepo.GetEngineer(ctx, e.ID); err == nil {
			return eng.Code
		}
	case e.Kind == domainMovement.KindVehicle:
		if v, err := s.refRepo.GetVehicle(ctx, e.ID); err == nil {
			return v.RegistrationNumber
		}
	}

	return UnknownLabel
}

func (s *Service) checkEndpointExists(ctx context.Context, side string, e domainMovement.Endpoint) error {
	var err error
	switch {
	case e.IsWarehouse():
		_, err = s.refRepo.GetWarehouse(ctx, e.ID)
	case e.Kind == domainMovement.KindEngineer:
		_, err = s.refRepo.GetEngineer(ctx, e.ID)
	case e.Kind == domainMovement.KindVehicle:
		_, err = s.refRepo.GetVehicle(ctx, e.ID)
	}

	if err != nil {
		return appErrors.Validation(side+"_entity", fmt.Sprintf("%s endpoint does not exist", e.Kind))
	}
	return nil
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
