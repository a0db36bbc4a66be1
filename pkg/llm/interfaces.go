// Package llm provides model clients and the routing layer that decides
// which configured model serves each operation.
package llm

import (
	"context"
)

// CompletionResult is one model response with usage accounting.
type CompletionResult struct {
	Content          string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Invoker is the model invocation capability: submit a prompt pair, get a
// text completion. Use this interface for dependency injection to enable
// mocking in tests.
type Invoker interface {
	// Complete performs one blocking completion exchange.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (*CompletionResult, error)

	// GetModel returns the configured model name.
	GetModel() string

	// GetEndpoint returns the configured endpoint.
	GetEndpoint() string
}

// Ensure implementations satisfy Invoker at compile time.
var (
	_ Invoker = (*Client)(nil)
	_ Invoker = (*AnthropicClient)(nil)
	_ Invoker = (*MockInvoker)(nil)
)
