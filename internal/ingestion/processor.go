package ingestion

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"fleet-device-tracker/internal/domain/device"
	"fleet-device-tracker/internal/domain/telemetry"
	"fleet-device-tracker/internal/logger"
)

// SampleWriter persists decoded samples. Implemented by the postgres
// telemetry repository.
type SampleWriter interface {
	BatchInsert(ctx context.Context, samples []telemetry.Sample) error
}

// Processor decodes raw frames and writes them out in batches from a pool
// of workers.
type Processor struct {
	writer     SampleWriter
	deviceRepo device.Repository

	batchSize    int
	batchTimeout time.Duration
	workerCount  int

	frameChan chan string
	buffer    []telemetry.Sample

	ctx       context.Context
	cancel    context.CancelFunc
	workerWg  sync.WaitGroup
	flusherWg sync.WaitGroup
	mu        sync.Mutex

	stopMu  sync.RWMutex
	stopped bool

	metrics *MetricsTracker
}

// NewProcessor creates a frame processor.
func NewProcessor(writer SampleWriter, deviceRepo device.Repository, batchSize, workerCount, bufferSize int, batchTimeout time.Duration) *Processor {
	ctx, cancel := context.WithCancel(context.Background())

	return &Processor{
		writer:       writer,
		deviceRepo:   deviceRepo,
		batchSize:    batchSize,
		batchTimeout: batchTimeout,
		workerCount:  workerCount,
		frameChan:    make(chan string, bufferSize),
		buffer:       make([]telemetry.Sample, 0, batchSize),
		ctx:          ctx,
		cancel:       cancel,
		metrics:      NewMetricsTracker(),
	}
}

// Start launches the workers and the batch flusher.
func (p *Processor) Start() {
	logger.Info("Starting frame processor",
		zap.Int("workers", p.workerCount),
		zap.Int("batch_size", p.batchSize),
		zap.Duration("batch_timeout", p.batchTimeout),
	)

	for i := 0; i < p.workerCount; i++ {
		p.workerWg.Add(1)
		go p.frameWorker(i)
	}

	p.flusherWg.Add(1)
	go p.batchFlusher()
}

// Stop closes the intake, lets the workers drain what is already queued,
// then flushes what is left in the buffer. Safe to call more than once.
func (p *Processor) Stop() {
	p.stopMu.Lock()
	if p.stopped {
		p.stopMu.Unlock()
		return
	}
	p.stopped = true
	p.stopMu.Unlock()

	close(p.frameChan)
	p.workerWg.Wait()
	p.cancel()
	p.flusherWg.Wait()
	p.flushBatch()

	logger.Info("Frame processor stopped")
}

// Enqueue queues a raw frame for decoding. Frames are dropped, not blocked
// on, when the buffer is full or the processor has been stopped.
func (p *Processor) Enqueue(raw string) {
	p.stopMu.RLock()
	defer p.stopMu.RUnlock()
	if p.stopped {
		return
	}

	select {
	case p.frameChan <- raw:
		p.metrics.Update(func(m *Metrics) {
			m.FramesReceived++
			m.BufferSize = len(p.frameChan)
		})
	default:
		logger.Warn("Frame buffer full, dropping frame")
		p.metrics.Update(func(m *Metrics) {
			m.FramesDropped++
		})
	}
}

func (p *Processor) frameWorker(id int) {
	defer p.workerWg.Done()

	for raw := range p.frameChan {
		p.processFrame(raw)
	}
}

func (p *Processor) processFrame(raw string) {
	sample := DecodeFrame(raw)
	if sample.IMEI == "" {
		p.metrics.Update(func(m *Metrics) {
			m.FramesDropped++
		})
		return
	}

	now := time.Now()
	sample.ReportedAt = &now

	if !sample.HasFix() {
		// Kept for record-count fidelity; only spatial rendering skips it.
		p.metrics.Update(func(m *Metrics) {
			m.MalformedFrames++
		})
	}

	ctx, cancel := context.WithTimeout(p.ctx, 3*time.Second)
	dev, err := p.deviceRepo.GetByIMEI(ctx, sample.IMEI)
	cancel()
	if err != nil {
		logger.Warn("Frame from unregistered IMEI",
			zap.String("imei", sample.IMEI),
		)
		p.metrics.Update(func(m *Metrics) {
			m.UnknownIMEI++
		})
		return
	}

	p.mu.Lock()
	p.buffer = append(p.buffer, sample)
	shouldFlush := len(p.buffer) >= p.batchSize
	p.mu.Unlock()

	if shouldFlush {
		p.flushBatch()
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		if err := p.deviceRepo.UpdateLastSeen(ctx, dev.ID, now); err != nil {
			logger.Warn("Failed to update device last seen",
				zap.String("imei", sample.IMEI),
				zap.Error(err),
			)
		}
	}()
}

func (p *Processor) batchFlusher() {
	defer p.flusherWg.Done()

	ticker := time.NewTicker(p.batchTimeout)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.flushBatch()
		case <-p.ctx.Done():
			return
		}
	}
}

func (p *Processor) flushBatch() {
	p.mu.Lock()
	if len(p.buffer) == 0 {
		p.mu.Unlock()
		return
	}
	batch := make([]telemetry.Sample, len(p.buffer))
	copy(batch, p.buffer)
	p.buffer = p.buffer[:0]
	p.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := p.writer.BatchInsert(ctx, batch); err != nil {
		logger.Error("Failed to insert sample batch",
			zap.Int("batch_size", len(batch)),
			zap.Error(err),
		)
		p.metrics.Update(func(m *Metrics) {
			m.FramesDropped += int64(len(batch))
		})
		return
	}

	p.metrics.Update(func(m *Metrics) {
		m.FramesStored += int64(len(batch))
		m.BatchesFlushed++
		m.LastStoredAt = time.Now()
	})
}

// GetMetrics returns current metrics.
func (p *Processor) GetMetrics() Metrics {
	return p.metrics.Snapshot()
}
