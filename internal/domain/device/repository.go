package device

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for device lookups. Device master-data
// CRUD is owned elsewhere; movements and ingestion only read.
type Repository interface {
	GetByID(ctx context.Context, deviceID uuid.UUID) (*Device, error)
	GetByIMEI(ctx context.Context, imei string) (*Device, error)
	UpdateLastSeen(ctx context.Context, deviceID uuid.UUID, seenAt time.Time) error
}
