package llm

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Operation identifies a model-backed task for routing and usage accounting.
type Operation string

const (
	OpGenerateQuery        Operation = "generate_query"
	OpGenerateCreateTable  Operation = "generate_create_table"
	OpGenerateAlterTable   Operation = "generate_alter_table"
	OpSelectTables         Operation = "select_tables"
	OpSelectReferenceTable Operation = "select_reference_tables"
	OpSelectEnumColumns    Operation = "select_enum_columns"
	OpJudgeEnumValues      Operation = "judge_enum_values"
	OpParseConnectionConf  Operation = "parse_connection_config"
)

// OperationKind separates final SQL generation from the cheaper auxiliary
// selection and judgement tasks.
type OperationKind int

const (
	// FinalGeneration produces SQL the user will see. Routed to the
	// accuracy model.
	FinalGeneration OperationKind = iota
	// AuxiliarySelection narrows context or makes small judgements ahead of
	// generation. Routed to the turbo model.
	AuxiliarySelection
)

// Kind returns the routing class for the operation. Unknown operations are
// treated as final generation so they get the stronger model.
func (op Operation) Kind() OperationKind {
	switch op {
	case OpSelectTables, OpSelectReferenceTable, OpSelectEnumColumns,
		OpJudgeEnumValues, OpParseConnectionConf:
		return AuxiliarySelection
	default:
		return FinalGeneration
	}
}

// Router dispatches operations to the accuracy or turbo model. It performs no
// retries of its own; transient-failure retry lives inside the clients.
type Router struct {
	accuracy Invoker
	turbo    Invoker
	recorder UsageRecorder
	logger   *zap.Logger
}

// NewRouter creates a router over the two model roles. turbo may equal
// accuracy when only one model is configured. recorder may be nil.
func NewRouter(accuracy, turbo Invoker, recorder UsageRecorder, logger *zap.Logger) *Router {
	if turbo == nil {
		turbo = accuracy
	}
	return &Router{
		accuracy: accuracy,
		turbo:    turbo,
		recorder: recorder,
		logger:   logger.Named("router"),
	}
}

// InvokerFor returns the client that will serve the operation.
func (r *Router) InvokerFor(op Operation) Invoker {
	if op.Kind() == AuxiliarySelection {
		return r.turbo
	}
	return r.accuracy
}

// Invoke routes the operation to the appropriate model and records usage.
func (r *Router) Invoke(ctx context.Context, op Operation, systemPrompt, userPrompt string) (*CompletionResult, error) {
	client := r.InvokerFor(op)

	r.logger.Debug("routing operation",
		zap.String("operation", string(op)),
		zap.String("model", client.GetModel()))

	start := time.Now()
	result, err := client.Complete(ctx, systemPrompt, userPrompt)
	elapsed := time.Since(start)

	if r.recorder != nil {
		rec := &UsageRecord{
			Operation: op,
			Model:     client.GetModel(),
			Duration:  elapsed,
			Succeeded: err == nil,
		}
		if result != nil {
			rec.PromptTokens = result.PromptTokens
			rec.CompletionTokens = result.CompletionTokens
			rec.TotalTokens = result.TotalTokens
		}
		r.recorder.Record(rec)
	}

	if err != nil {
		return nil, err
	}
	return result, nil
}
