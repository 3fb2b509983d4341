package device

import (
	"context"
	"errors"

	domainDevice "fleet-device-tracker/internal/domain/device"
	appErrors "fleet-device-tracker/pkg/errors"
)

// Service exposes device master-data lookups.
type Service struct {
	deviceRepo domainDevice.Repository
}

// NewService creates a new device service.
func NewService(deviceRepo domainDevice.Repository) *Service {
	return &Service{deviceRepo: deviceRepo}
}

// GetByIMEI resolves a device by its hardware identifier.
func (s *Service) GetByIMEI(ctx context.Context, imei string) (*DeviceResponse, error) {
	if imei == "" {
		return nil, appErrors.Validation("imei", "imei is required")
	}

	d, err := s.deviceRepo.GetByIMEI(ctx, imei)
	if err != nil {
		if errors.Is(err, domainDevice.ErrDeviceNotFound) || errors.Is(err, domainDevice.ErrUnknownIMEI) {
			return nil, appErrors.NotFound(domainDevice.ErrUnknownIMEI)
		}
		return nil, err
	}

	resp := toDeviceResponse(d)
	return &resp, nil
}
