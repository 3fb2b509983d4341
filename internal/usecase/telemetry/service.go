package telemetry

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	domainDevice "fleet-device-tracker/internal/domain/device"
	domainTelemetry "fleet-device-tracker/internal/domain/telemetry"
	appErrors "fleet-device-tracker/pkg/errors"
)

var validate = validator.New()

// Service implements the telemetry aggregation reads.
type Service struct {
	sampleRepo domainTelemetry.Repository
	deviceRepo domainDevice.Repository
}

// NewService creates a new telemetry service.
func NewService(sampleRepo domainTelemetry.Repository, deviceRepo domainDevice.Repository) *Service {
	return &Service{
		sampleRepo: sampleRepo,
		deviceRepo: deviceRepo,
	}
}

// ListByIMEI returns one page of a device's samples in the canonical
// ascending chronological order. Samples without a fix stay in the page.
func (s *Service) ListByIMEI(ctx context.Context, req *TelemetryFilterRequest) (*SampleListResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	if _, err := s.deviceRepo.GetByIMEI(ctx, req.IMEI); err != nil {
		if errors.Is(err, domainDevice.ErrDeviceNotFound) || errors.Is(err, domainDevice.ErrUnknownIMEI) {
			return nil, appErrors.NotFound(domainDevice.ErrUnknownIMEI)
		}
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	samples, total, err := s.sampleRepo.ListByIMEI(ctx, req.IMEI, &domainTelemetry.Filter{
		Search: req.Search,
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]SampleResponse, len(samples))
	for i, sample := range samples {
		responses[i] = toSampleResponse(sample)
	}

	return &SampleListResponse{
		Samples:    responses,
		Total:      total,
		TotalPages: totalPages(total, limit),
	}, nil
}
