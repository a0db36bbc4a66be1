package llm

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestAsyncUsageRecorder_FlushesOnClose(t *testing.T) {
	sink := NewMemoryUsageSink()
	recorder := NewAsyncUsageRecorder(sink, zap.NewNop(), 10)

	for i := 0; i < 5; i++ {
		recorder.Record(&UsageRecord{
			Operation:   OpGenerateQuery,
			Model:       "qwen-plus",
			TotalTokens: 100,
			Succeeded:   true,
		})
	}
	recorder.Close()

	if got := len(sink.Records()); got != 5 {
		t.Fatalf("expected 5 records after close, got %d", got)
	}
	if got := sink.TotalTokens(); got != 500 {
		t.Errorf("expected 500 total tokens, got %d", got)
	}
}

func TestAsyncUsageRecorder_AssignsIDAndTimestamp(t *testing.T) {
	sink := NewMemoryUsageSink()
	recorder := NewAsyncUsageRecorder(sink, zap.NewNop(), 10)

	recorder.Record(&UsageRecord{Operation: OpSelectTables})
	recorder.Close()

	records := sink.Records()
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("expected a generated ID")
	}
	if records[0].CreatedAt.IsZero() {
		t.Error("expected a timestamp")
	}
	if time.Since(records[0].CreatedAt) > time.Minute {
		t.Error("timestamp implausibly old")
	}
}

func TestAsyncUsageRecorder_DropsWhenFull(t *testing.T) {
	block := make(chan struct{})
	sink := &blockingSink{release: block}
	recorder := NewAsyncUsageRecorder(sink, zap.NewNop(), 1)

	// First record occupies the worker, second fills the queue, the rest
	// must be dropped without blocking.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			recorder.Record(&UsageRecord{Operation: OpGenerateQuery})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Record blocked on a full queue")
	}

	close(block)
	recorder.Close()
}

func TestAsyncUsageRecorder_RecordAfterCloseDropsQuietly(t *testing.T) {
	sink := NewMemoryUsageSink()
	recorder := NewAsyncUsageRecorder(sink, zap.NewNop(), 10)

	recorder.Record(&UsageRecord{Operation: OpGenerateQuery, TotalTokens: 10})
	recorder.Close()

	// A straggler after shutdown must be dropped, not panic.
	recorder.Record(&UsageRecord{Operation: OpSelectTables, TotalTokens: 999})

	if got := len(sink.Records()); got != 1 {
		t.Fatalf("expected only the pre-close record, got %d", got)
	}
	if got := sink.TotalTokens(); got != 10 {
		t.Errorf("expected 10 total tokens, got %d", got)
	}
}

func TestAsyncUsageRecorder_CloseIsIdempotent(t *testing.T) {
	recorder := NewAsyncUsageRecorder(NewMemoryUsageSink(), zap.NewNop(), 10)
	recorder.Close()
	recorder.Close()
}

type blockingSink struct {
	release chan struct{}
}

func (s *blockingSink) Save(rec *UsageRecord) error {
	<-s.release
	return nil
}
