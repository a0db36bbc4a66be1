package llm

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UsageRecord captures token accounting for a single model invocation.
type UsageRecord struct {
	ID               uuid.UUID
	Operation        Operation
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Duration         time.Duration
	Succeeded        bool
	CreatedAt        time.Time
}

// UsageRecorder receives usage records from the router after each invocation.
type UsageRecorder interface {
	// Record queues a usage record for persistence. Must not block.
	Record(rec *UsageRecord)
}

// UsageSink persists usage records. Implementations may write to a database,
// a file, or an in-memory store.
type UsageSink interface {
	Save(rec *UsageRecord) error
}

// AsyncUsageRecorder records usage asynchronously so model calls never block
// on persistence.
type AsyncUsageRecorder struct {
	sink   UsageSink
	logger *zap.Logger
	queue  chan *UsageRecord
	stop   chan struct{}
	done   chan struct{}

	closeOnce sync.Once
}

// NewAsyncUsageRecorder creates a new async recorder.
// queueSize controls the buffer size - if full, records are dropped with a warning.
func NewAsyncUsageRecorder(sink UsageSink, logger *zap.Logger, queueSize int) *AsyncUsageRecorder {
	if queueSize <= 0 {
		queueSize = 100
	}

	r := &AsyncUsageRecorder{
		sink:   sink,
		logger: logger.Named("usage-recorder"),
		queue:  make(chan *UsageRecord, queueSize),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}

	go r.processQueue()

	return r
}

// Record queues a usage record for async persistence.
// Non-blocking - if the queue is full or the recorder is closed, the record
// is dropped with a warning.
func (r *AsyncUsageRecorder) Record(rec *UsageRecord) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	select {
	case <-r.stop:
		r.logger.Warn("usage recorder closed, dropping entry",
			zap.String("operation", string(rec.Operation)),
			zap.String("model", rec.Model))
		return
	default:
	}

	select {
	case r.queue <- rec:
		// Queued successfully
	default:
		r.logger.Warn("usage record queue full, dropping entry",
			zap.String("operation", string(rec.Operation)),
			zap.String("model", rec.Model))
	}
}

// Close stops the recorder and waits for pending records to be saved. Safe to
// call more than once; records arriving after Close are dropped, not panicked
// on, since the queue channel is never closed.
func (r *AsyncUsageRecorder) Close() {
	r.closeOnce.Do(func() { close(r.stop) })
	<-r.done
}

func (r *AsyncUsageRecorder) processQueue() {
	defer close(r.done)

	for {
		select {
		case rec := <-r.queue:
			r.save(rec)
		case <-r.stop:
			// Drain whatever is already buffered, then exit.
			for {
				select {
				case rec := <-r.queue:
					r.save(rec)
				default:
					return
				}
			}
		}
	}
}

func (r *AsyncUsageRecorder) save(rec *UsageRecord) {
	if err := r.sink.Save(rec); err != nil {
		r.logger.Error("failed to save usage record",
			zap.String("id", rec.ID.String()),
			zap.String("operation", string(rec.Operation)),
			zap.Error(err))
	}
}

var _ UsageRecorder = (*AsyncUsageRecorder)(nil)

// MemoryUsageSink accumulates usage records in memory. Useful for tests and
// for surfacing per-session token stats in a UI.
type MemoryUsageSink struct {
	mu      sync.Mutex
	records []*UsageRecord
}

// NewMemoryUsageSink creates an empty in-memory sink.
func NewMemoryUsageSink() *MemoryUsageSink {
	return &MemoryUsageSink{}
}

// Save implements UsageSink.
func (s *MemoryUsageSink) Save(rec *UsageRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

// Records returns a copy of all saved records.
func (s *MemoryUsageSink) Records() []*UsageRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*UsageRecord, len(s.records))
	copy(out, s.records)
	return out
}

// TotalTokens sums total token usage across all saved records.
func (s *MemoryUsageSink) TotalTokens() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, rec := range s.records {
		total += rec.TotalTokens
	}
	return total
}
