package telemetry

import "context"

// Repository defines reads over the stored sample stream.
type Repository interface {
	// ListByIMEI returns samples in the canonical stable order: ascending
	// by report time, ties broken by insertion order. Renderers rely on the
	// first and last elements of a page being meaningful endpoints.
	ListByIMEI(ctx context.Context, imei string, filter *Filter) ([]Sample, int64, error)
}

// Filter carries pagination and search for sample listings.
type Filter struct {
	Search string
	Offset int
	Limit  int
}
