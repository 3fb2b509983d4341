package movement

import (
	"fmt"

	domainMovement "fleet-device-tracker/internal/domain/movement"
	appErrors "fleet-device-tracker/pkg/errors"
)

// State machine for movement status transitions. IN_TRANSIT is the only
// non-terminal state: a movement is either received or cancelled, once.
var validTransitions = map[domainMovement.MovementStatus][]domainMovement.MovementStatus{
	domainMovement.StatusInTransit: {
		domainMovement.StatusReceived,
		domainMovement.StatusCancelled,
	},
	domainMovement.StatusReceived: {
		// Terminal state - no transitions
	},
	domainMovement.StatusCancelled: {
		// Terminal state - no transitions
	},
}

// ValidateStatusTransition checks if a status transition is allowed.
func ValidateStatusTransition(currentStatus, newStatus domainMovement.MovementStatus) error {
	allowedStatuses, exists := validTransitions[currentStatus]
	if !exists {
		return appErrors.NewAppError(
			appErrors.CodeStateConflict,
			fmt.Sprintf("Unknown current status: %s", currentStatus),
			domainMovement.ErrInvalidStatus,
		)
	}

	for _, allowed := range allowedStatuses {
		if newStatus == allowed {
			return nil
		}
	}

	return appErrors.NewAppError(
		appErrors.CodeStateConflict,
		fmt.Sprintf("Cannot transition from %s to %s", currentStatus, newStatus),
		domainMovement.ErrInvalidTransition,
	)
}

// GetAllowedTransitions returns allowed next statuses.
func GetAllowedTransitions(currentStatus domainMovement.MovementStatus) []domainMovement.MovementStatus {
	return validTransitions[currentStatus]
}

type endpointRule struct {
	From []domainMovement.EndpointKind
	To   []domainMovement.EndpointKind
}

// Which endpoint kinds each movement type accepts on each side. A field
// warehouse may dispatch to an engineer directly off a production delivery,
// so WH_TO_ENGINEER accepts either warehouse flavour on the from side.
var endpointRules = map[domainMovement.MovementType]endpointRule{
	domainMovement.TypeProdToWarehouse: {
		From: []domainMovement.EndpointKind{domainMovement.KindProductionWarehouse},
		To:   []domainMovement.EndpointKind{domainMovement.KindWarehouse},
	},
	domainMovement.TypeWarehouseToEng: {
		From: []domainMovement.EndpointKind{domainMovement.KindWarehouse, domainMovement.KindProductionWarehouse},
		To:   []domainMovement.EndpointKind{domainMovement.KindEngineer},
	},
	domainMovement.TypeEngineerToVehicle: {
		From: []domainMovement.EndpointKind{domainMovement.KindEngineer},
		To:   []domainMovement.EndpointKind{domainMovement.KindVehicle},
	},
}

// ValidateTypeEndpoints checks that the declared endpoint kinds are
// consistent with the movement type.
func ValidateTypeEndpoints(movementType domainMovement.MovementType, from, to domainMovement.EndpointKind) error {
	rule, exists := endpointRules[movementType]
	if !exists {
		return appErrors.NewAppError(
			appErrors.CodeValidation,
			fmt.Sprintf("Unknown movement type: %s", movementType),
			domainMovement.ErrInvalidType,
		)
	}

	if !kindAllowed(rule.From, from) {
		return appErrors.NewAppError(
			appErrors.CodeValidation,
			fmt.Sprintf("Movement type %s does not accept %s as the from endpoint", movementType, from),
			domainMovement.ErrEndpointMismatch,
		)
	}
	if !kindAllowed(rule.To, to) {
		return appErrors.NewAppError(
			appErrors.CodeValidation,
			fmt.Sprintf("Movement type %s does not accept %s as the to endpoint", movementType, to),
			domainMovement.ErrEndpointMismatch,
		)
	}

	return nil
}

func kindAllowed(allowed []domainMovement.EndpointKind, kind domainMovement.EndpointKind) bool {
	for _, k := range allowed {
		if k == kind {
			return true
		}
	}
	return false
}
