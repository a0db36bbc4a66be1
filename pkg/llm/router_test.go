package llm

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestOperationKind(t *testing.T) {
	finals := []Operation{OpGenerateQuery, OpGenerateCreateTable, OpGenerateAlterTable}
	for _, op := range finals {
		if op.Kind() != FinalGeneration {
			t.Errorf("%s should be FinalGeneration", op)
		}
	}

	auxiliaries := []Operation{
		OpSelectTables, OpSelectReferenceTable, OpSelectEnumColumns,
		OpJudgeEnumValues, OpParseConnectionConf,
	}
	for _, op := range auxiliaries {
		if op.Kind() != AuxiliarySelection {
			t.Errorf("%s should be AuxiliarySelection", op)
		}
	}
}

func TestRouter_RoutesByOperationKind(t *testing.T) {
	accuracy := NewMockInvoker()
	accuracy.Model = "accuracy-model"
	turbo := NewMockInvoker()
	turbo.Model = "turbo-model"

	router := NewRouter(accuracy, turbo, nil, zap.NewNop())

	if _, err := router.Invoke(context.Background(), OpGenerateQuery, "s", "u"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if accuracy.CompleteCalls != 1 || turbo.CompleteCalls != 0 {
		t.Errorf("final generation should use accuracy model: accuracy=%d turbo=%d",
			accuracy.CompleteCalls, turbo.CompleteCalls)
	}

	if _, err := router.Invoke(context.Background(), OpSelectTables, "s", "u"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if turbo.CompleteCalls != 1 {
		t.Errorf("auxiliary selection should use turbo model, calls=%d", turbo.CompleteCalls)
	}
}

func TestRouter_TurboFallsBackToAccuracy(t *testing.T) {
	accuracy := NewMockInvoker()
	router := NewRouter(accuracy, nil, nil, zap.NewNop())

	if _, err := router.Invoke(context.Background(), OpSelectTables, "s", "u"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if accuracy.CompleteCalls != 1 {
		t.Errorf("expected accuracy model to serve turbo traffic, calls=%d", accuracy.CompleteCalls)
	}
}

func TestRouter_NoRetryOnFailure(t *testing.T) {
	mock := NewMockInvoker()
	mock.CompleteFunc = func(ctx context.Context, systemPrompt, userPrompt string) (*CompletionResult, error) {
		return nil, NewError(KindRateLimited, "rate limited", true, nil)
	}
	router := NewRouter(mock, mock, nil, zap.NewNop())

	_, err := router.Invoke(context.Background(), OpGenerateQuery, "s", "u")
	if err == nil {
		t.Fatal("expected error")
	}
	// Retry policy lives in the clients; the router must pass failures
	// through after a single attempt.
	if mock.CompleteCalls != 1 {
		t.Errorf("router retried: %d calls", mock.CompleteCalls)
	}
}

func TestRouter_RecordsUsage(t *testing.T) {
	mock := NewMockInvoker()
	mock.Model = "turbo-model"
	mock.CompleteFunc = func(ctx context.Context, systemPrompt, userPrompt string) (*CompletionResult, error) {
		return &CompletionResult{
			Content:          "users",
			PromptTokens:     120,
			CompletionTokens: 5,
			TotalTokens:      125,
		}, nil
	}

	sink := NewMemoryUsageSink()
	recorder := NewAsyncUsageRecorder(sink, zap.NewNop(), 10)
	router := NewRouter(mock, mock, recorder, zap.NewNop())

	if _, err := router.Invoke(context.Background(), OpSelectTables, "s", "u"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	recorder.Close()

	records := sink.Records()
	if len(records) != 1 {
		t.Fatalf("expected 1 usage record, got %d", len(records))
	}
	rec := records[0]
	if rec.Operation != OpSelectTables || rec.Model != "turbo-model" {
		t.Errorf("unexpected record: %+v", rec)
	}
	if rec.TotalTokens != 125 || !rec.Succeeded {
		t.Errorf("unexpected accounting: %+v", rec)
	}
	if sink.TotalTokens() != 125 {
		t.Errorf("expected 125 total tokens, got %d", sink.TotalTokens())
	}
}

func TestRouter_RecordsFailedInvocation(t *testing.T) {
	mock := NewMockInvoker()
	mock.CompleteFunc = func(ctx context.Context, systemPrompt, userPrompt string) (*CompletionResult, error) {
		return nil, NewError(KindTimeout, "request timeout", true, nil)
	}

	sink := NewMemoryUsageSink()
	recorder := NewAsyncUsageRecorder(sink, zap.NewNop(), 10)
	router := NewRouter(mock, mock, recorder, zap.NewNop())

	if _, err := router.Invoke(context.Background(), OpGenerateQuery, "s", "u"); err == nil {
		t.Fatal("expected error")
	}
	recorder.Close()

	records := sink.Records()
	if len(records) != 1 {
		t.Fatalf("expected 1 usage record, got %d", len(records))
	}
	if records[0].Succeeded {
		t.Error("failed invocation recorded as succeeded")
	}
}
