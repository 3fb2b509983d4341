package ingestion

import (
	"sync"
	"time"
)

// Metrics tracks frame ingestion performance.
type Metrics struct {
	FramesReceived  int64     `json:"frames_received"`
	FramesStored    int64     `json:"frames_stored"`
	FramesDropped   int64     `json:"frames_dropped"`
	MalformedFrames int64     `json:"malformed_frames"`
	UnknownIMEI     int64     `json:"unknown_imei"`
	BatchesFlushed  int64     `json:"batches_flushed"`
	LastStoredAt    time.Time `json:"last_stored_at"`
	BufferSize      int       `json:"buffer_size"`
}

// MetricsTracker provides a goroutine-safe wrapper around Metrics.
type MetricsTracker struct {
	mu      sync.RWMutex
	metrics Metrics
}

// NewMetricsTracker builds a new tracker with zeroed metrics.
func NewMetricsTracker() *MetricsTracker {
	return &MetricsTracker{}
}

// Update applies a mutation in a thread-safe way.
func (t *MetricsTracker) Update(fn func(*Metrics)) {
	if fn == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	fn(&t.metrics)
}

// Snapshot returns a copy of the current metrics.
func (t *MetricsTracker) Snapshot() Metrics {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.metrics
}

// Reset clears accumulated metrics.
func (t *MetricsTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.metrics = Metrics{}
}
