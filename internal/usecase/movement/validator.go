package movement

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	domainMovement "fleet-device-tracker/internal/domain/movement"
	appErrors "fleet-device-tracker/pkg/errors"
)

var validate = validator.New()

// ValidateStruct runs tag-level validation over a request DTO.
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}
	return nil
}

func parseEndpointKind(raw string) (domainMovement.EndpointKind, bool) {
	switch domainMovement.EndpointKind(raw) {
	case domainMovement.KindProductionWarehouse:
		return domainMovement.KindProductionWarehouse, true
	case domainMovement.KindWarehouse:
		return domainMovement.KindWarehouse, true
	case domainMovement.KindEngineer:
		return domainMovement.KindEngineer, true
	case domainMovement.KindVehicle:
		return domainMovement.KindVehicle, true
	}
	return "", false
}

func parseMovementType(raw string) (domainMovement.MovementType, bool) {
	switch domainMovement.MovementType(raw) {
	case domainMovement.TypeProdToWarehouse:
		return domainMovement.TypeProdToWarehouse, true
	case domainMovement.TypeWarehouseToEng:
		return domainMovement.TypeWarehouseToEng, true
	case domainMovement.TypeEngineerToVehicle:
		return domainMovement.TypeEngineerToVehicle, true
	}
	return "", false
}

// resolveEndpoint collapses the wire shape (a kind discriminator plus three
// mutually exclusive reference fields) into a domain Endpoint. The field
// matching the declared kind must be set and the other two empty; a populated
// non-matching field is a cross-field mismatch, never silently accepted.
func resolveEndpoint(side, rawKind string, warehouseID, engineerID, vehicleID *uuid.UUID) (domainMovement.Endpoint, error) {
	kind, ok := parseEndpointKind(rawKind)
	if !ok {
		return domainMovement.Endpoint{}, appErrors.Validation(
			side+"_entity_type",
			fmt.Sprintf("unknown endpoint kind %q", rawKind),
		)
	}

	var want *uuid.UUID
	var wantField string
	switch kind {
	case domainMovement.KindWarehouse, domainMovement.KindProductionWarehouse:
		want, wantField = warehouseID, side+"_entity_warehouse_id"
	case domainMovement.KindEngineer:
		want, wantField = engineerID, side+"_entity_field_engineer_id"
	case domainMovement.KindVehicle:
		want, wantField = vehicleID, side+"_entity_vehicle_id"
	}

	if want == nil || *want == uuid.Nil {
		return domainMovement.Endpoint{}, appErrors.Validation(
			wantField,
			fmt.Sprintf("required for endpoint kind %s", kind),
		)
	}

	populated := 0
	for _, id := range []*uuid.UUID{warehouseID, engineerID, vehicleID} {
		if id != nil && *id != uuid.Nil {
			populated++
		}
	}
	if populated > 1 {
		return domainMovement.Endpoint{}, appErrors.Validation(
			side+"_entity_type",
			"exactly one endpoint reference may be set per side",
		)
	}

	return domainMovement.Endpoint{Kind: kind, ID: *want}, nil
}

// validateCreate turns a create request into its validated domain parts.
func validateCreate(req *CreateMovementRequest) (domainMovement.MovementType, domainMovement.Endpoint, domainMovement.Endpoint, error) {
	var none domainMovement.Endpoint

	if err := ValidateStruct(req); err != nil {
		return "", none, none, err
	}

	movementType, ok := parseMovementType(req.MovementType)
	if !ok {
		return "", none, none, appErrors.Validation(
			"movement_type",
			fmt.Sprintf("unknown movement type %q", req.MovementType),
		)
	}

	from, err := resolveEndpoint("from", req.FromEntityType,
		req.FromEntityWarehouseID, req.FromEntityFieldEngineerID, req.FromEntityVehicleID)
	if err != nil {
		return "", none, none, err
	}

	to, err := resolveEndpoint("to", req.ToEntityType,
		req.ToEntityWarehouseID, req.ToEntityFieldEngineerID, req.ToEntityVehicleID)
	if err != nil {
		return "", none, none, err
	}

	if err := ValidateTypeEndpoints(movementType, from.Kind, to.Kind); err != nil {
		return "", none, none, err
	}

	return movementType, from, to, nil
}
